package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/deepceutix/datagen/internal/logging"
	"github.com/deepceutix/datagen/internal/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Extract chart, tables and code from a saved model answer",
	Long: `Parse a saved model answer and print the structured result as JSON.
Use "-" to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

var parseLabel string

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVar(&parseLabel, "label", "model", "Chart label when the answer carries none")
}

func runParse(cmd *cobra.Command, args []string) error {
	var (
		text []byte
		err  error
	)
	if args[0] == "-" {
		text, err = io.ReadAll(cmd.InOrStdin())
	} else {
		text, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	p := parser.New(logging.New(cmd.ErrOrStderr(), logging.LevelDebug))
	res := p.Parse(string(text), parseLabel)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
