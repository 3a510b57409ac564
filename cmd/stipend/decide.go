package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/csc-gandhinagar/stipend-flow/internal/cli"
	"github.com/csc-gandhinagar/stipend-flow/internal/common"
	"github.com/csc-gandhinagar/stipend-flow/internal/model"
)

func approveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approve <id>",
		Short: "Approve a single applicant awaiting review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecide(cmd, args[0], model.StatusApproved)
		},
	}
	cmd.Flags().String("remark", "", "Optional remark recorded with the decision")
	return cmd
}

func rejectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reject <id>",
		Short: "Reject a single applicant awaiting review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecide(cmd, args[0], model.StatusRejected)
		},
	}
	cmd.Flags().String("remark", "", "Optional remark recorded with the decision")
	return cmd
}

func runDecide(cmd *cobra.Command, rawID string, status model.Status) error {
	ctx := cmd.Context()

	id, err := strconv.Atoi(rawID)
	if err != nil {
		return common.NewUserError(
			fmt.Sprintf("%q is not a valid applicant id", rawID), common.ErrNotFound)
	}
	remark, _ := cmd.Flags().GetString("remark")

	session, store, cleanup, err := loadSession(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	updated, err := applyDecisions(session.Applicants, []cli.Decision{
		{ID: id, Status: status, Remark: remark},
	})
	if err != nil {
		return err
	}
	session.Applicants = updated

	if err := saveSession(ctx, store, session); err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(
		fmt.Sprintf("Applicant %d marked %s", id, status)))
	return err
}
