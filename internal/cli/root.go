package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rsfire/erp/internal/services"
)

// Services is what the commands need from the backend.
type Services struct {
	Approvals services.ApprovalService
	Projects  services.ProjectService
}

// Loader builds the services for one command run. The returned func releases them.
type Loader func(ctx context.Context) (*Services, func(), error)

// NewRootCmd creates the erpctl root command.
func NewRootCmd(load Loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "erpctl",
		Short:         "erpctl - ERP admin tool",
		Long:          `erpctl lists and resolves project completion requests against the ERP database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		newApprovalsCmd(load),
		newProjectsCmd(load),
	)
	return cmd
}

func withServices(load Loader, run func(cmd *cobra.Command, args []string, svc *Services) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		svc, release, err := load(cmd.Context())
		if err != nil {
			return err
		}
		defer release()
		return run(cmd, args, svc)
	}
}
