package commands

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewWhoAmICommand creates the whoami command
func NewWhoAmICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Display the authenticated identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := createClient(ctx, cmd)
			if err != nil {
				return err
			}

			profile, err := client.Profile().WhoAmI(ctx)
			if err != nil {
				return fmt.Errorf("failed to get profile: %w", err)
			}

			endpoints := client.Endpoints()

			return writeOutput(cmd.OutOrStdout(), profile, func(table *tablewriter.Table) error {
				table.Header("Property", "Value")
				_ = table.Append("User", orNotAvailable(profile.Name))
				_ = table.Append("Email", orNotAvailable(profile.Email))
				_ = table.Append("Organization", orNotAvailable(profile.OrgName))
				_ = table.Append("Organization ID", orNotAvailable(profile.OrgID))
				_ = table.Append("Scopes", orNotAvailable(strings.Join(profile.Scopes, "\n")))
				_ = table.Append("API", endpoints.API)
				_ = table.Append("Intel", endpoints.Intel)

				return nil
			})
		},
	}
}
