package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/csc-gandhinagar/stipend-flow/internal/classify"
	"github.com/csc-gandhinagar/stipend-flow/internal/cli"
	"github.com/csc-gandhinagar/stipend-flow/internal/common"
	"github.com/csc-gandhinagar/stipend-flow/internal/ingest"
	"github.com/csc-gandhinagar/stipend-flow/internal/model"
)

func ingestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <file>",
		Short: "Ingest an application sheet and classify applicants",
		Long: `Ingest reads an application sheet (CSV, XLSX or XLS), classifies each
applicant from the Birth Place column, and stores the working set.

Applicants born within Gujarat are approved automatically; applicants
flagged as Review need a manual decision (see 'stipend review').`,
		Args: cobra.ExactArgs(1),
		RunE: runIngest,
	}

	cmd.Flags().Bool("replace", false, "Replace any existing session")
	cmd.Flags().Bool("append", false, "Append rows to the existing session as Approved")
	cmd.Flags().Bool("experience", false, "Treat the sheet as an experience roster and compute marks")
	cmd.Flags().Bool("dry-run", false, "Parse and classify without saving")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := args[0]

	replace, _ := cmd.Flags().GetBool("replace")
	appendRows, _ := cmd.Flags().GetBool("append")
	experience, _ := cmd.Flags().GetBool("experience")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if appendRows && (replace || experience) {
		return fmt.Errorf("--append cannot be combined with --replace or --experience")
	}

	result, err := ingest.Parse(path)
	if err != nil {
		return err
	}
	common.LogInfo("Parsed application sheet", common.Fields{
		"file":    path,
		"rows":    len(result.Rows),
		"columns": len(result.Headers),
	})

	store, cleanup, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	if appendRows {
		session, err := store.LoadSession(ctx)
		if err != nil {
			return err
		}
		added := classify.AppendRecords(session, result.Rows)
		if dryRun {
			printSummary(cmd, session.Applicants, fmt.Sprintf("Dry run: would append %d applicants", added))
			return nil
		}
		if err := saveSession(ctx, store, session); err != nil {
			return err
		}
		printSummary(cmd, session.Applicants, fmt.Sprintf("Appended %d applicants from %s", added, path))
		return nil
	}

	if !replace && !dryRun {
		exists, err := store.HasSession(ctx)
		if err != nil {
			return err
		}
		if exists {
			return common.NewUserError(
				"a session already exists; re-run with --replace to start over or --append to add rows",
				common.ErrSessionExists)
		}
	}

	var session model.Session
	if experience {
		session, err = classify.ProcessExperienceRecords(result.Headers, result.Rows)
		if err != nil {
			return err
		}
	} else {
		session = classify.ProcessRecords(result.Headers, result.Rows)
	}

	if dryRun {
		printSummary(cmd, session.Applicants, fmt.Sprintf("Dry run: parsed %d applicants from %s", len(session.Applicants), path))
		return nil
	}

	if err := saveSession(ctx, store, &session); err != nil {
		return err
	}
	printSummary(cmd, session.Applicants, fmt.Sprintf("Ingested %d applicants from %s", len(session.Applicants), path))
	return nil
}

func printSummary(cmd *cobra.Command, ws model.WorkingSet, headline string) {
	counts := ws.Counts()

	var b strings.Builder
	b.WriteString(cli.FormatSuccess(headline) + "\n")
	for _, s := range []model.Status{model.StatusApproved, model.StatusReview, model.StatusRejected, model.StatusPending} {
		if counts[s] == 0 {
			continue
		}
		label := fmt.Sprintf("%s: %d", s, counts[s])
		b.WriteString("  " + cli.StatusStyle(string(s)).Render(label) + "\n")
	}

	if _, err := fmt.Fprint(cmd.OutOrStdout(), b.String()); err != nil {
		common.LogError(err, "failed to write ingest summary", nil)
	}
}
