package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/csc-gandhinagar/stipend-flow/internal/attendance"
	"github.com/csc-gandhinagar/stipend-flow/internal/cli"
	"github.com/csc-gandhinagar/stipend-flow/internal/common"
)

func fieldCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "field",
		Short: "Add or edit applicant fields",
	}

	cmd.AddCommand(fieldAddCmd())
	cmd.AddCommand(fieldSetCmd())

	return cmd
}

func fieldAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> [value]",
		Short: "Add a column to every applicant",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runFieldAdd,
	}
}

func runFieldAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	name := args[0]
	value := ""
	if len(args) == 2 {
		value = args[1]
	}

	session, store, cleanup, err := loadSession(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	updated, err := attendance.AddFieldAll(session.Applicants, name, value)
	if err != nil {
		return err
	}
	session.Applicants = updated

	if err := saveSession(ctx, store, session); err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(
		fmt.Sprintf("Added field %q to %d applicants", name, len(updated))))
	return err
}

func fieldSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <id> <key> <value>",
		Short: "Set one field on one applicant",
		Long: `Set writes a single cell. When the field is a monthly Total or Attended
count, the month's percentage and stipend amount are recomputed.`,
		Args: cobra.ExactArgs(3),
		RunE: runFieldSet,
	}
}

func runFieldSet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return common.NewUserError(
			fmt.Sprintf("%q is not a valid applicant id", args[0]), common.ErrNotFound)
	}
	key, value := args[1], args[2]

	session, store, cleanup, err := loadSession(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	updated, err := attendance.SetField(session.Applicants, id, key, value)
	if err != nil {
		return err
	}
	session.Applicants = updated

	if err := saveSession(ctx, store, session); err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(
		fmt.Sprintf("Set %q = %q on applicant %d", key, value, id)))
	return err
}
