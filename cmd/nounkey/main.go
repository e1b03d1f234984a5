package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/knowledge-engine/nounkey/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "nounkey",
		Short: "Normalize noun store keys",
		Long: `nounkey splits keys like "2nd Person" into a base key and a
zero-based index, and builds such keys back from their parts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(cli.ParseCmd())
	rootCmd.AddCommand(cli.BuildCmd())
	rootCmd.AddCommand(cli.OrdinalCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.New(color.FgRed).Sprint("Error: "+err.Error()))
		os.Exit(1)
	}
}
