package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Ask a language model for data and parse the answer",
	Long: `Send a prompt to a model and print the explanation, tables and code.
A chart found in the answer is stored as plot.png and data.json.

Models: gemini, claude, deepseek, llama, qwen2.5, gpt-oss-20b.

Examples:
  datagen generate --model gemini --prompt "Dissolution profile of a 500 mg IR tablet as JSON x/y"`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

var (
	generateModel  string
	generatePrompt string
)

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&generateModel, "model", "m", "gemini", "Model name")
	generateCmd.Flags().StringVarP(&generatePrompt, "prompt", "p", "", "Prompt text")
	_ = generateCmd.MarkFlagRequired("prompt")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	app, err := NewAppContext(ctx)
	if err != nil {
		return err
	}
	defer app.Close(ctx)

	res, err := app.Service.Generate(ctx, generatePrompt, generateModel)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "== %s (run %s)\n\n", res.Run.Target, res.Run.ID)
	fmt.Fprintln(w, res.Response.Explanation)
	for i := range res.Response.Tables {
		fmt.Fprintln(w)
		fmt.Fprint(w, res.Response.Tables[i].Markdown())
	}
	if res.Response.Code != "" {
		fmt.Fprintf(w, "\n```\n%s\n```\n", res.Response.Code)
	}
	if c := res.Response.Chart; c != nil {
		fmt.Fprintf(w, "\nChart %q with %d points stored under %s/\n", c.Label, c.Len(), res.Run.ID)
	}
	return nil
}
