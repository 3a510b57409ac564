package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/csc-gandhinagar/stipend-flow/internal/cli"
	"github.com/csc-gandhinagar/stipend-flow/internal/model"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current session's review counts",
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	session, _, cleanup, err := loadSession(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	counts := session.Applicants.Counts()

	var b strings.Builder
	for _, s := range []model.Status{model.StatusApproved, model.StatusReview, model.StatusRejected, model.StatusPending} {
		if counts[s] == 0 && s == model.StatusPending {
			continue
		}
		label := fmt.Sprintf("%-10s %d", s, counts[s])
		b.WriteString(cli.StatusStyle(string(s)).Render(label) + "\n")
	}
	b.WriteString(cli.SubtleStyle.Render(fmt.Sprintf("%-10s %d", "Total", len(session.Applicants))))

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBox("Session Status", b.String()))
	return err
}
