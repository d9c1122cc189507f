package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/deepceutix/datagen/internal/domain"
	"github.com/deepceutix/datagen/internal/ports"
	"github.com/deepceutix/datagen/internal/scenario"
	"github.com/deepceutix/datagen/internal/sidecar"
)

var runCmd = &cobra.Command{
	Use:   "run <scenario>...",
	Short: "Run one or more scenarios",
	Long: `Run built-in scenarios, store plot.png and data.json, and print the
summary and tables.

Examples:
  datagen run pk                     # one-compartment PK profile
  datagen run pk --seed 7 --noise    # reproducible noisy run
  datagen run ftir xrd --out ./out   # copy artifacts to ./out/<scenario>/`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

var (
	runSeed   int64
	runNoise  bool
	runPoints int
	runOut    string
)

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Int64Var(&runSeed, "seed", 42, "Random seed")
	runCmd.Flags().BoolVar(&runNoise, "noise", false, "Add measurement noise")
	runCmd.Flags().IntVar(&runPoints, "points", 0, "Number of points, 2 to 10000 (0 = scenario default)")
	runCmd.Flags().StringVarP(&runOut, "out", "o", "", "Directory to copy plot.png and data.json into")
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	p := scenario.Params{Seed: runSeed, Noise: runNoise, Points: runPoints}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("--points: %w", err)
	}

	app, err := NewAppContext(ctx)
	if err != nil {
		return err
	}
	defer app.Close(ctx)

	outcomes, err := app.Service.RunScenarios(ctx, uniqueNames(args), p)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	failed := 0
	for _, out := range outcomes {
		printOutcome(w, out)
		if out.Run.Status == domain.RunStatusFailed {
			failed++
			continue
		}
		if runOut != "" {
			dir := runOut
			if len(outcomes) > 1 {
				dir = filepath.Join(runOut, out.Run.Target)
			}
			if err := copyArtifacts(ctx, app, out, dir); err != nil {
				return err
			}
			fmt.Fprintf(w, "Artifacts written to %s\n", dir)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d runs failed", failed, len(outcomes))
	}
	return nil
}

func printOutcome(w io.Writer, out *scenario.Outcome) {
	run := out.Run
	fmt.Fprintf(w, "== %s (run %s, %s)\n", run.Target, run.ID, run.Status)
	if run.Error != "" {
		fmt.Fprintf(w, "error: %s\n", run.Error)
	}
	for _, line := range run.Summary {
		fmt.Fprintln(w, line)
	}
	if out.Result == nil {
		return
	}
	for i := range out.Result.Tables {
		fmt.Fprintln(w)
		fmt.Fprint(w, out.Result.Tables[i].Markdown())
	}
	fmt.Fprintln(w)
}

// copyArtifacts writes the stored plot and the declared series to dir.
func copyArtifacts(ctx context.Context, app *AppContext, out *scenario.Outcome, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := copyArtifact(ctx, app.Artifacts, domain.PlotKey(out.Run.ID), filepath.Join(dir, "plot.png")); err != nil {
		return err
	}
	sidecar.Export(app.Logger, filepath.Join(dir, sidecar.FileName), out.Result.Data)
	return nil
}

func copyArtifact(ctx context.Context, store ports.ArtifactStore, key, dst string) error {
	_, body, err := store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to read artifact %s: %w", key, err)
	}
	defer body.Close()

	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}
	return f.Close()
}

// uniqueNames drops repeated scenario names, keeping first occurrences. Runs
// with equal params are identical and would share an output directory.
func uniqueNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
