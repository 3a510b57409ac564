package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/csc-gandhinagar/stipend-flow/internal/common"
	"github.com/csc-gandhinagar/stipend-flow/internal/model"
)

const headersKey = "headers"

// HasSession reports whether a working set is stored.
func (s *SQLiteStore) HasSession(ctx context.Context) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM applicants").Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count applicants: %w", err)
	}
	return count > 0, nil
}

// LoadSession reads the stored working set in position order.
// Returns common.ErrNoSession when nothing has been ingested yet.
func (s *SQLiteStore) LoadSession(ctx context.Context) (*model.Session, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, status, fields, original_fields FROM applicants ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to query applicants: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var applicants model.WorkingSet
	for rows.Next() {
		var (
			id                       int
			status, fields, original string
		)
		if err := rows.Scan(&id, &status, &fields, &original); err != nil {
			return nil, fmt.Errorf("failed to scan applicant: %w", err)
		}

		a := model.Applicant{ID: id, Status: model.Status(status)}
		if err := json.Unmarshal([]byte(fields), &a.Fields); err != nil {
			return nil, fmt.Errorf("failed to decode fields for applicant %d: %w", id, err)
		}
		if err := json.Unmarshal([]byte(original), &a.OriginalFields); err != nil {
			return nil, fmt.Errorf("failed to decode original fields for applicant %d: %w", id, err)
		}
		applicants = append(applicants, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate applicants: %w", err)
	}

	if len(applicants) == 0 {
		return nil, common.ErrNoSession
	}

	headers, err := s.loadHeaders(ctx)
	if err != nil {
		return nil, err
	}

	return &model.Session{Headers: headers, Applicants: applicants}, nil
}

// ReplaceSession atomically swaps the stored working set for the given
// one. Either the whole session is written or the previous one remains.
func (s *SQLiteStore) ReplaceSession(ctx context.Context, session *model.Session) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSession(session); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM applicants"); err != nil {
		return fmt.Errorf("failed to clear applicants: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO applicants (id, position, status, fields, original_fields)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for pos := range session.Applicants {
		a := &session.Applicants[pos]

		fields, err := json.Marshal(a.Fields)
		if err != nil {
			return fmt.Errorf("failed to encode fields for applicant %d: %w", a.ID, err)
		}
		original, err := json.Marshal(a.OriginalFields)
		if err != nil {
			return fmt.Errorf("failed to encode original fields for applicant %d: %w", a.ID, err)
		}

		if _, err := stmt.ExecContext(ctx, a.ID, pos, string(a.Status), string(fields), string(original)); err != nil {
			return fmt.Errorf("failed to insert applicant %d: %w", a.ID, err)
		}
	}

	headers, err := json.Marshal(session.Headers)
	if err != nil {
		return fmt.Errorf("failed to encode headers: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO session_meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, headersKey, string(headers)); err != nil {
		return fmt.Errorf("failed to store headers: %w", err)
	}

	return tx.Commit()
}

// Clear discards the stored working set entirely.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM applicants"); err != nil {
		return fmt.Errorf("failed to clear applicants: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM session_meta"); err != nil {
		return fmt.Errorf("failed to clear session metadata: %w", err)
	}

	return tx.Commit()
}

func (s *SQLiteStore) loadHeaders(ctx context.Context) ([]string, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM session_meta WHERE key = ?", headersKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load headers: %w", err)
	}

	var headers []string
	if err := json.Unmarshal([]byte(raw), &headers); err != nil {
		return nil, fmt.Errorf("failed to decode headers: %w", err)
	}
	return headers, nil
}
