package commands

import (
	"fmt"
	"strings"

	"github.com/fivetwenty-io/threatresponse/pkg/ctr"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect TEXT... | -",
		Short: "Extract observables from text",
		Long:  "Extract observables such as IP addresses, domains and file hashes from free text. Pass '-' to read the text from stdin.",
		Example: `  ctr inspect "connections from 1.2.3.4 to cisco.com"
  cat report.txt | ctr inspect -`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			client, err := createClient(ctx, cmd)
			if err != nil {
				return err
			}

			observables, err := client.Inspect().Inspect(ctx, text)
			if err != nil {
				return fmt.Errorf("failed to inspect text: %w", err)
			}

			return writeOutput(cmd.OutOrStdout(), observables, observablesTable(observables))
		},
	}
}

func observablesTable(observables []ctr.Observable) func(*tablewriter.Table) error {
	return func(table *tablewriter.Table) error {
		table.Header("Type", "Value")

		for _, observable := range observables {
			_ = table.Append(observable.Type, observable.Value)
		}

		return nil
	}
}

func errorsTable(table *tablewriter.Table, errs []ctr.ErrorDetail) {
	for _, detail := range errs {
		_ = table.Append(orNotAvailable(detail.Module), "error", strings.TrimSpace(detail.Code+" "+detail.Message))
	}
}
