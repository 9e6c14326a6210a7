package commands

import (
	"fmt"
	"strings"

	"github.com/fivetwenty-io/threatresponse/internal/client"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewCallCommand creates the call command.
func NewCallCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "call ROUTE [ARG...]",
		Short: "Invoke an API operation by route name",
		Long: `Invoke any API operation by its dotted route name. See "ctr routes" for the
list of routes.

Arguments starting with '{' or '[' are decoded as JSON or YAML documents,
"@file" loads a JSON or YAML document from a file, and any other argument is
passed as a string.`,
		Example: `  ctr call profile.whoami
  ctr call enrich.deliberate.observables '[{"type":"ip","value":"1.2.3.4"}]'
  ctr call intel.judgement.get judgement-123
  ctr call intel.indicator.create @indicator.yml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			route := args[0]

			payload := make([]any, 0, len(args)-1)

			for _, arg := range args[1:] {
				value, err := parsePayload(arg)
				if err != nil {
					return err
				}

				payload = append(payload, value)
			}

			ctx := cmd.Context()

			cli, err := createClient(ctx, cmd)
			if err != nil {
				return err
			}

			result, err := cli.Call(ctx, route, payload...)
			if err != nil {
				return fmt.Errorf("failed to call %s: %w", route, err)
			}

			return writeOutput(cmd.OutOrStdout(), result, nil)
		},
	}
}

// NewRoutesCommand creates the routes command.
func NewRoutesCommand() *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the routes accepted by 'ctr call'",
		Long:  "List every built-in route name. No credentials are needed.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			routes := make([]string, 0)

			for _, route := range client.BuiltinRoutes().Routes() {
				if strings.HasPrefix(route, prefix) {
					routes = append(routes, route)
				}
			}

			return writeOutput(cmd.OutOrStdout(), routes, func(table *tablewriter.Table) error {
				table.Header("Route", "Group")

				for _, route := range routes {
					group, _, _ := strings.Cut(route, ".")
					_ = table.Append(route, group)
				}

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "only list routes starting with this prefix")

	return cmd
}
