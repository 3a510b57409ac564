package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/csc-gandhinagar/stipend-flow/internal/cli"
	"github.com/csc-gandhinagar/stipend-flow/internal/common"
	"github.com/csc-gandhinagar/stipend-flow/internal/model"
	"github.com/csc-gandhinagar/stipend-flow/internal/tui"
)

// remarkKey is the column review remarks are written to; the noting
// report reads it back when listing pending applications.
const remarkKey = "ReviewReason"

func reviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Walk the queue of applications awaiting a decision",
		Long: `Review presents each applicant flagged for manual review and records
approve or reject decisions. Skipped applicants stay in the queue.`,
		RunE: runReview,
	}

	cmd.Flags().Bool("tui", false, "Use the full-screen review interface")

	return cmd
}

func runReview(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	session, store, cleanup, err := loadSession(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	queue := session.Applicants.WithStatus(model.StatusReview)
	if len(queue) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("No applications awaiting review"))
		return err
	}

	var decisions []cli.Decision
	useTUI, _ := cmd.Flags().GetBool("tui")
	if useTUI {
		decisions, err = tui.Run(queue)
	} else {
		handler := cli.NewInterruptHandler(cmd.OutOrStdout())
		ctx = handler.HandleInterrupts(ctx, true)
		prompter := cli.NewReviewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
		decisions, err = prompter.ReviewQueue(ctx, queue)
	}
	if err != nil && err != context.Canceled {
		return err
	}

	if len(decisions) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), cli.SubtleStyle.Render("No decisions recorded"))
		return err
	}

	updated, err := applyDecisions(session.Applicants, decisions)
	if err != nil {
		return err
	}
	session.Applicants = updated

	// Decisions made before an interrupt are still persisted.
	if err := saveSession(context.WithoutCancel(ctx), store, session); err != nil {
		return err
	}

	remaining := len(updated.WithStatus(model.StatusReview))
	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(
		fmt.Sprintf("Recorded %d decisions, %d still awaiting review", len(decisions), remaining)))
	return err
}

// applyDecisions returns a new working set with the reviewer's decisions
// applied. The input set is left untouched.
func applyDecisions(ws model.WorkingSet, decisions []cli.Decision) (model.WorkingSet, error) {
	next := ws.Clone()
	for _, d := range decisions {
		a := next.ByID(d.ID)
		if a == nil {
			return nil, common.NewUserError(
				fmt.Sprintf("applicant %d not found", d.ID), common.ErrNotFound)
		}
		if !model.CanTransition(a.Status, d.Status) {
			return nil, common.NewUserError(
				fmt.Sprintf("applicant %d is %s and cannot move to %s", d.ID, a.Status, d.Status),
				common.ErrNotReviewable)
		}
		a.Status = d.Status
		if d.Remark != "" {
			a.Set(remarkKey, d.Remark)
		}
	}
	return next, nil
}
