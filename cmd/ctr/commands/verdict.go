package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/fivetwenty-io/threatresponse/pkg/ctr"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NewVerdictCommand creates the verdict command.
func NewVerdictCommand() *cobra.Command {
	var fromText bool

	cmd := &cobra.Command{
		Use:   "verdict TYPE:VALUE... | --text TEXT... | --text -",
		Short: "Show module verdicts for observables",
		Long: `Ask every module for its verdict on the given observables.

With --text the arguments are free text: observables are extracted with
inspect first.`,
		Example: `  ctr verdict ip:1.2.3.4 domain:cisco.com
  ctr verdict --text "beacon to 1.2.3.4 seen on host-1"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var (
				result *ctr.VerdictResult
				err    error
			)

			if fromText {
				text, textErr := readText(cmd.InOrStdin(), args)
				if textErr != nil {
					return textErr
				}

				client, clientErr := createClient(ctx, cmd)
				if clientErr != nil {
					return clientErr
				}

				result, err = client.Commands().VerdictText(ctx, text)
			} else {
				observables, parseErr := parseObservables(args)
				if parseErr != nil {
					return parseErr
				}

				client, clientErr := createClient(ctx, cmd)
				if clientErr != nil {
					return clientErr
				}

				result, err = client.Commands().Verdict(ctx, observables)
			}

			if err != nil {
				return fmt.Errorf("failed to get verdicts: %w", err)
			}

			return writeOutput(cmd.OutOrStdout(), result, verdictTable(result))
		},
	}

	cmd.Flags().BoolVar(&fromText, "text", false, "treat the arguments as free text to inspect")

	return cmd
}

func verdictTable(result *ctr.VerdictResult) func(*tablewriter.Table) error {
	title := cases.Title(language.English)

	return func(table *tablewriter.Table) error {
		table.Header("Module", "Observable", "Disposition", "Valid Until")

		for _, verdict := range result.Verdicts {
			validUntil := NotAvailable
			if verdict.ValidUntil != nil {
				validUntil = verdict.ValidUntil.Format(time.RFC3339)
			}

			_ = table.Append(
				verdict.Module,
				verdict.ObservableType+":"+verdict.ObservableValue,
				title.String(verdict.DispositionName),
				validUntil,
			)
		}

		for _, detail := range result.Errors {
			_ = table.Append(orNotAvailable(detail.Module), NotAvailable, "Error", strings.TrimSpace(detail.Message))
		}

		return nil
	}
}

// NewTargetsCommand creates the targets command.
func NewTargetsCommand() *cobra.Command {
	var fromText bool

	cmd := &cobra.Command{
		Use:   "targets TYPE:VALUE... | --text TEXT... | --text -",
		Short: "Show the assets on which observables were sighted",
		Long: `List the targets (hosts, endpoints) on which the modules observed sightings
of the given observables.

With --text the arguments are free text: observables are extracted with
inspect first.`,
		Example: "  ctr targets sha256:8a1b...",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var (
				result *ctr.TargetsResult
				err    error
			)

			if fromText {
				text, textErr := readText(cmd.InOrStdin(), args)
				if textErr != nil {
					return textErr
				}

				client, clientErr := createClient(ctx, cmd)
				if clientErr != nil {
					return clientErr
				}

				result, err = client.Commands().TargetsText(ctx, text)
			} else {
				observables, parseErr := parseObservables(args)
				if parseErr != nil {
					return parseErr
				}

				client, clientErr := createClient(ctx, cmd)
				if clientErr != nil {
					return clientErr
				}

				result, err = client.Commands().Targets(ctx, observables)
			}

			if err != nil {
				return fmt.Errorf("failed to get targets: %w", err)
			}

			return writeOutput(cmd.OutOrStdout(), result, targetsTable(result))
		},
	}

	cmd.Flags().BoolVar(&fromText, "text", false, "treat the arguments as free text to inspect")

	return cmd
}

func targetsTable(result *ctr.TargetsResult) func(*tablewriter.Table) error {
	return func(table *tablewriter.Table) error {
		table.Header("Module", "Type", "Observables", "OS")

		for _, module := range result.Modules {
			for _, target := range module.Targets {
				observables := make([]string, 0, len(target.Observables))
				for _, observable := range target.Observables {
					observables = append(observables, observable.Type+":"+observable.Value)
				}

				_ = table.Append(module.Module, target.Type, strings.Join(observables, "\n"), orNotAvailable(target.OS))
			}
		}

		for _, detail := range result.Errors {
			_ = table.Append(orNotAvailable(detail.Module), "error", strings.TrimSpace(detail.Message), NotAvailable)
		}

		return nil
	}
}
