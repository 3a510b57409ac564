package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/csc-gandhinagar/stipend-flow/internal/cli"
	"github.com/csc-gandhinagar/stipend-flow/internal/common"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the current session",
	Long: `Reset deletes the stored working set entirely: applicants, statuses,
attendance data and custom fields. This is a destructive operation.`,
	RunE: runReset,
}

var resetForce bool

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolVarP(&resetForce, "force", "f", false, "Skip confirmation prompt")
}

func runReset(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	session, store, cleanup, err := loadSession(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNoSession) {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "No session found. Nothing to reset.")
			return err
		}
		return err
	}
	defer cleanup()

	if !resetForce {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(),
			"This will delete %d applicants and all attendance data.\n\nAre you sure you want to continue? [y/N]: ",
			len(session.Applicants)); err != nil {
			return err
		}

		var response string
		// A bare newline means "no"; scan errors are treated the same.
		_, _ = fmt.Fscanln(cmd.InOrStdin(), &response)
		if response != "y" && response != "Y" {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Reset canceled.")
			return err
		}
	}

	if err := store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(
		fmt.Sprintf("Deleted %d applicants. Run 'stipend ingest' to start over.", len(session.Applicants))))
	return err
}
