package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/csc-gandhinagar/stipend-flow/internal/columns"
	"github.com/csc-gandhinagar/stipend-flow/internal/model"
)

// Decision records one reviewer action taken during a queue walk.
type Decision struct {
	Remark string
	ID     int
	Status model.Status
}

// ReviewPrompter implements the interactive line-based review loop for
// applicants flagged as Review.
type ReviewPrompter struct {
	writer      io.Writer
	reader      *bufio.Reader
	progressBar *progressbar.ProgressBar
}

// NewReviewPrompter creates a review prompter with the given reader and writer.
func NewReviewPrompter(reader io.Reader, writer io.Writer) *ReviewPrompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &ReviewPrompter{
		reader: bufio.NewReader(reader),
		writer: writer,
	}
}

// ReviewQueue walks the given Review applicants one at a time and
// collects approve/reject decisions. Skipped applicants stay in Review.
// Quitting returns the decisions made so far without error.
func (p *ReviewPrompter) ReviewQueue(ctx context.Context, queue []model.Applicant) ([]Decision, error) {
	if len(queue) == 0 {
		return nil, nil
	}

	p.initProgressBar(len(queue))

	var decisions []Decision
	for i := range queue {
		select {
		case <-ctx.Done():
			return decisions, ctx.Err()
		default:
		}

		a := &queue[i]
		if _, err := fmt.Fprintln(p.writer, RenderBox(
			fmt.Sprintf("Application Review (%d of %d)", i+1, len(queue)),
			p.formatApplicant(a),
		)); err != nil {
			return decisions, fmt.Errorf("failed to write applicant box: %w", err)
		}

		decision, quit, err := p.promptDecision(a)
		if err != nil {
			return decisions, err
		}
		if decision != nil {
			decisions = append(decisions, *decision)
		}
		p.updateProgress()
		if quit {
			break
		}
	}

	return decisions, nil
}

func (p *ReviewPrompter) promptDecision(a *model.Applicant) (decision *Decision, quit bool, err error) {
	for {
		if _, err := fmt.Fprint(p.writer, FormatPrompt("[A]pprove  [R]eject  [S]kip  [Q]uit")); err != nil {
			return nil, false, fmt.Errorf("failed to write prompt: %w", err)
		}

		line, err := p.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil, true, nil
			}
			return nil, false, fmt.Errorf("failed to read input: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "a", "approve":
			d, err := p.decisionWithRemark(a.ID, model.StatusApproved)
			return d, false, err
		case "r", "reject":
			d, err := p.decisionWithRemark(a.ID, model.StatusRejected)
			return d, false, err
		case "s", "skip", "":
			return nil, false, nil
		case "q", "quit":
			return nil, true, nil
		default:
			if _, err := fmt.Fprintln(p.writer, FormatWarning("Please answer a, r, s or q")); err != nil {
				return nil, false, fmt.Errorf("failed to write warning: %w", err)
			}
		}
	}
}

func (p *ReviewPrompter) decisionWithRemark(id int, status model.Status) (*Decision, error) {
	if _, err := fmt.Fprint(p.writer, FormatPrompt("Remark (optional)")); err != nil {
		return nil, fmt.Errorf("failed to write remark prompt: %w", err)
	}

	line, err := p.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read remark: %w", err)
	}

	return &Decision{ID: id, Status: status, Remark: strings.TrimSpace(line)}, nil
}

func (p *ReviewPrompter) formatApplicant(a *model.Applicant) string {
	keys := columns.Keys(a.Fields)

	nameKey := columns.FindFunc(keys, func(lower string) bool {
		return strings.Contains(lower, "name") && !strings.Contains(lower, "username")
	})
	birthKey := columns.Find(keys, "birth place")
	mobileKey := columns.Find(keys, "mobile")

	return fmt.Sprintf("  ID: %d\n", a.ID) +
		fmt.Sprintf("  Name: %s\n", valueOr(a.Get(nameKey), "N/A")) +
		fmt.Sprintf("  Roll No: %s\n", valueOr(columns.RollOf(a.Fields), "N/A")) +
		fmt.Sprintf("  Mobile: %s\n", valueOr(a.Get(mobileKey), "N/A")) +
		fmt.Sprintf("  Birth Place: %s\n", valueOr(a.Get(birthKey), "N/A")) +
		"  Status: " + StatusStyle(string(a.Status)).Render(string(a.Status))
}

func (p *ReviewPrompter) initProgressBar(total int) {
	p.progressBar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Reviewing applications...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(p.writer); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}

func (p *ReviewPrompter) updateProgress() {
	if p.progressBar != nil {
		if err := p.progressBar.Add(1); err != nil {
			slog.Warn("Failed to update progress bar", "error", err)
		}
	}
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
