package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/deepceutix/datagen/internal/domain"
	"github.com/deepceutix/datagen/internal/ports"
	"github.com/deepceutix/datagen/internal/util"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs",
	Long: `List recorded runs, newest first.

Examples:
  datagen runs                    # last 20 runs
  datagen runs --kind generate    # only model generations
  datagen runs --target pk -n 5   # last five pk runs`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

var (
	runsKind   string
	runsTarget string
	runsLimit  int
)

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.Flags().StringVar(&runsKind, "kind", "", "Filter by kind (scenario, generate)")
	runsCmd.Flags().StringVar(&runsTarget, "target", "", "Filter by scenario or model name")
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "Maximum number of runs")
}

func runRuns(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	app, err := NewAppContext(ctx)
	if err != nil {
		return err
	}
	defer app.Close(ctx)

	opts := ports.ListRunsOptions{Limit: runsLimit}
	if runsKind != "" {
		kind := domain.RunKind(runsKind)
		opts.Kind = &kind
	}
	if runsTarget != "" {
		opts.Target = &runsTarget
	}

	runs, err := app.Service.Runs(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tTARGET\tSTATUS\tSTARTED\tDURATION\tDATA\tERROR")
	for _, r := range runs {
		data := "-"
		if r.DataExported {
			data = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Kind, r.Target, r.Status,
			util.FormatDateTime(r.StartedAt), util.FormatDurationMs(r.DurationMs), data,
			util.Truncate(r.Error, 40))
	}
	return tw.Flush()
}
