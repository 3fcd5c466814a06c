package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rsfire/erp/internal/models"
)

func newProjectsCmd(load Loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "Inspect projects",
	}
	list := &cobra.Command{
		Use:   "list",
		Short: "List projects by status",
		Args:  cobra.NoArgs,
		RunE:  withServices(load, runProjectsList),
	}
	list.Flags().String("status", "", "Only show projects with this status (active|completed)")
	cmd.AddCommand(list)
	return cmd
}

func runProjectsList(cmd *cobra.Command, args []string, svc *Services) error {
	status, _ := cmd.Flags().GetString("status")
	switch status {
	case "", models.ProjectStatusActive, models.ProjectStatusCompleted:
	default:
		return fmt.Errorf("--status must be %s or %s", models.ProjectStatusActive, models.ProjectStatusCompleted)
	}

	list, err := svc.Projects.ListProjects(cmd.Context())
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PROJECT\tNAME\tSTATUS\tTEAM")
	write := func(ps []models.Project) {
		for _, p := range ps {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", p.ProjectID, p.Name, p.Status, p.AssignedTeamID)
		}
	}
	if status != models.ProjectStatusCompleted {
		write(list.ActiveProjects)
	}
	if status != models.ProjectStatusActive {
		write(list.CompletedProjects)
	}
	return tw.Flush()
}
