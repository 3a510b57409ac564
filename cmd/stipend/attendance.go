package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/csc-gandhinagar/stipend-flow/internal/attendance"
	"github.com/csc-gandhinagar/stipend-flow/internal/cli"
	"github.com/csc-gandhinagar/stipend-flow/internal/ingest"
)

func attendanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attendance",
		Short: "Record or merge monthly attendance",
	}

	cmd.AddCommand(attendanceSetCmd())
	cmd.AddCommand(attendanceApplyTotalCmd())
	cmd.AddCommand(attendanceMergeCmd())

	return cmd
}

func attendanceSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set one month's attendance for every applicant",
		Long: `Set writes the same total and attended day counts to every applicant
for the given month and recomputes percentages and stipend amounts.`,
		RunE: runAttendanceSet,
	}

	cmd.Flags().String("month", "", "Month the attendance applies to (e.g. Jan, January, 1)")
	cmd.Flags().String("total", "", "Total working days in the month")
	cmd.Flags().String("attended", "", "Days attended")
	_ = cmd.MarkFlagRequired("month")
	_ = cmd.MarkFlagRequired("total")
	_ = cmd.MarkFlagRequired("attended")

	return cmd
}

func runAttendanceSet(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	month, _ := cmd.Flags().GetString("month")
	total, _ := cmd.Flags().GetString("total")
	attended, _ := cmd.Flags().GetString("attended")

	session, store, cleanup, err := loadSession(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	updated, err := attendance.SetForAll(session.Applicants, month, total, attended)
	if err != nil {
		return err
	}
	session.Applicants = updated

	if err := saveSession(ctx, store, session); err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(
		fmt.Sprintf("Set attendance %s/%s for %d applicants", attended, total, len(updated))))
	return err
}

func attendanceApplyTotalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply-total",
		Short: "Apply a working-day total to applicants with attended days",
		Long: `Apply-total fills in the total working days for applicants that already
have attended days recorded for the month, then recomputes percentages
and stipend amounts. Applicants without attended data are skipped.`,
		RunE: runAttendanceApplyTotal,
	}

	cmd.Flags().String("month", "", "Month the total applies to")
	cmd.Flags().String("total", "", "Total working days in the month")
	_ = cmd.MarkFlagRequired("month")
	_ = cmd.MarkFlagRequired("total")

	return cmd
}

func runAttendanceApplyTotal(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	month, _ := cmd.Flags().GetString("month")
	total, _ := cmd.Flags().GetString("total")

	session, store, cleanup, err := loadSession(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	updated, count, err := attendance.ApplyTotalToAll(session.Applicants, month, total)
	if err != nil {
		return err
	}
	session.Applicants = updated

	if err := saveSession(ctx, store, session); err != nil {
		return err
	}

	skipped := len(updated) - count
	msg := fmt.Sprintf("Applied total %s to %d applicants", total, count)
	if skipped > 0 {
		msg += fmt.Sprintf(" (%d without attended data skipped)", skipped)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(msg))
	return err
}

func attendanceMergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge <file>",
		Short: "Merge an attendance muster sheet by roll number",
		Long: `Merge reads an attendance sheet, resolves its month, total and attended
columns, and merges the values into matching applicants by roll number.
Stipend percentages and amounts are recomputed for merged rows.`,
		Args: cobra.ExactArgs(1),
		RunE: runAttendanceMerge,
	}
}

func runAttendanceMerge(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := args[0]

	result, err := ingest.Parse(path)
	if err != nil {
		return err
	}

	session, store, cleanup, err := loadSession(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	updated, matched := attendance.MergeFile(session.Applicants, result.Rows)
	if matched == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning(
			"No rows matched; check that roll numbers in the sheet match the session"))
		return err
	}
	session.Applicants = updated

	if err := saveSession(ctx, store, session); err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(
		fmt.Sprintf("Merged attendance for %d of %d applicants from %s", matched, len(updated), path)))
	return err
}
