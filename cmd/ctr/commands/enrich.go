package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/fivetwenty-io/threatresponse/pkg/ctr"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewEnrichCommand creates the enrich command group.
func NewEnrichCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Enrich observables through the integration modules",
		Long:  "Query the configured integration modules about observables given as type:value pairs",
	}

	cmd.AddCommand(newEnrichObserveCommand())
	cmd.AddCommand(newEnrichDeliberateCommand())
	cmd.AddCommand(newEnrichReferCommand())
	cmd.AddCommand(newEnrichHealthCommand())

	return cmd
}

func newEnrichObserveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "observe TYPE:VALUE...",
		Short:   "Collect sightings and judgements for observables",
		Example: "  ctr enrich observe ip:1.2.3.4 domain:cisco.com",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnrich(cmd, args, ctr.EnrichClient.Observe)
		},
	}
}

func newEnrichDeliberateCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "deliberate TYPE:VALUE...",
		Short:   "Ask the modules for verdicts on observables",
		Example: "  ctr enrich deliberate sha256:8a1b...",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnrich(cmd, args, ctr.EnrichClient.Deliberate)
		},
	}
}

func newEnrichReferCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "refer TYPE:VALUE...",
		Short: "List pivot links for observables",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			observables, err := parseObservables(args)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			client, err := createClient(ctx, cmd)
			if err != nil {
				return err
			}

			refer, err := client.Enrich().Refer(ctx, observables)
			if err != nil {
				return fmt.Errorf("failed to refer observables: %w", err)
			}

			return writeOutput(cmd.OutOrStdout(), refer, func(table *tablewriter.Table) error {
				table.Header("Module", "Title", "URL")

				for _, link := range refer.Data {
					_ = table.Append(link.Module, link.Title, link.URL)
				}

				errorsTable(table, refer.Errors)

				return nil
			})
		},
	}
}

func newEnrichHealthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the health of the integration modules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := createClient(ctx, cmd)
			if err != nil {
				return err
			}

			health, err := client.Enrich().Health(ctx)
			if err != nil {
				return fmt.Errorf("failed to check module health: %w", err)
			}

			return writeOutput(cmd.OutOrStdout(), health, moduleResultsTable(health))
		},
	}
}

type enrichFunc func(ctr.EnrichClient, context.Context, []ctr.Observable) (*ctr.EnrichResponse, error)

func runEnrich(cmd *cobra.Command, args []string, enrich enrichFunc) error {
	observables, err := parseObservables(args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	client, err := createClient(ctx, cmd)
	if err != nil {
		return err
	}

	result, err := enrich(client.Enrich(), ctx, observables)
	if err != nil {
		return fmt.Errorf("failed to enrich observables: %w", err)
	}

	return writeOutput(cmd.OutOrStdout(), result, moduleResultsTable(result))
}

// moduleResultsTable lists the sections each module returned with their
// document counts.
func moduleResultsTable(result *ctr.EnrichResponse) func(*tablewriter.Table) error {
	return func(table *tablewriter.Table) error {
		table.Header("Module", "Section", "Documents")

		for _, module := range result.Data {
			sections := make([]string, 0, len(module.Data))
			for section := range module.Data {
				sections = append(sections, section)
			}

			sort.Strings(sections)

			if len(sections) == 0 {
				_ = table.Append(module.Module, NotAvailable, "0")
			}

			for _, section := range sections {
				_ = table.Append(module.Module, section, sectionCount(module.Data[section]))
			}
		}

		errorsTable(table, result.Errors)

		return nil
	}
}

// sectionCount returns the "count" field of a CTIM bundle section, or the
// section rendered compactly when it has none.
func sectionCount(section interface{}) string {
	if doc, ok := section.(map[string]interface{}); ok {
		if count, ok := doc["count"]; ok {
			return fmt.Sprint(count)
		}
	}

	return strings.TrimSpace(compactJSON(section))
}
