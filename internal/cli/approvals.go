package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rsfire/erp/internal/services"
	appErr "github.com/rsfire/erp/pkg/errors"
)

func newApprovalsCmd(load Loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "approvals",
		Aliases: []string{"approval"},
		Short:   "Manage project completion requests",
	}

	cmd.AddCommand(
		newApprovalsListCmd(load),
		newApprovalsRequestCmd(load),
		newApprovalsDecisionCmd(load, services.DecisionAccept),
		newApprovalsDecisionCmd(load, services.DecisionReject),
	)
	return cmd
}

func newApprovalsListCmd(load Loader) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List pending completion requests",
		Args:  cobra.NoArgs,
		RunE:  withServices(load, runApprovalsList),
	}
}

func newApprovalsRequestCmd(load Loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "request <projectId>",
		Short: "Request completion of a project on behalf of an employee",
		Args:  cobra.ExactArgs(1),
		RunE:  withServices(load, runApprovalsRequest),
	}
	cmd.Flags().Int64("employee", 0, "Requesting employee id")
	_ = cmd.MarkFlagRequired("employee")
	return cmd
}

func newApprovalsDecisionCmd(load Loader, decision services.Decision) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(decision) + " <projectId>",
		Short: strings.ToUpper(string(decision[:1])) + string(decision[1:]) + " the pending completion request of a project",
		Args:  cobra.ExactArgs(1),
		RunE: withServices(load, func(cmd *cobra.Command, args []string, svc *Services) error {
			return runApprovalsDecision(cmd, args, svc, decision)
		}),
	}
	cmd.Flags().String("by", "", "Decision maker")
	cmd.Flags().String("note", "", "Decision note")
	return cmd
}

func runApprovalsList(cmd *cobra.Command, args []string, svc *Services) error {
	items, err := svc.Approvals.ListPendingNotifications(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(items) == 0 {
		fmt.Fprintln(out, "No pending approvals.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PROJECT\tNAME\tREQUESTED BY\tREQUESTED AT\tAPPROVAL")
	for _, n := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", n.ProjectID, n.ProjectName, n.EmployeeName, n.RequestedAt.Format("2006-01-02 15:04"), n.ApprovalID)
	}
	return tw.Flush()
}

func runApprovalsRequest(cmd *cobra.Command, args []string, svc *Services) error {
	projectID, err := parseProjectID(args[0])
	if err != nil {
		return err
	}
	employeeID, _ := cmd.Flags().GetInt64("employee")

	a, err := svc.Approvals.RequestCompletion(cmd.Context(), projectID, employeeID)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Completion of project %d requested (approval %s).\n", projectID, a.ID)
	return nil
}

func runApprovalsDecision(cmd *cobra.Command, args []string, svc *Services, decision services.Decision) error {
	projectID, err := parseProjectID(args[0])
	if err != nil {
		return err
	}
	by, _ := cmd.Flags().GetString("by")
	note, _ := cmd.Flags().GetString("note")

	res, err := svc.Approvals.Resolve(cmd.Context(), projectID, services.ResolveInput{
		Decision:  decision,
		DecidedBy: strings.TrimSpace(by),
		Note:      strings.TrimSpace(note),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if res.Outcome == services.OutcomeAlreadyHandled {
		fmt.Fprintf(out, "Project %d was already handled.\n", projectID)
		return nil
	}
	verb := "accepted, project completed"
	if decision == services.DecisionReject {
		verb = "rejected"
	}
	fmt.Fprintf(out, "Approval %s for project %d %s.\n", res.ApprovalID, projectID, verb)
	return nil
}

func parseProjectID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErr.Newf(appErr.CodeInvalid, "project id must be a positive integer, got %q", s)
	}
	return id, nil
}
