package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "datagen",
	Short: "Synthetic pharmaceutical data and chart generator",
	Long: `datagen simulates pharmaceutical datasets and renders them as charts.

Run built-in scenarios (pharmacokinetics, FTIR, XRD, DSC/TGA, dissolution,
particle size, patient tables), ask a language model for data, and serve
the results over HTTP.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
