package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "recipecatalog",
	Short:        "Recipe catalog website and digest bot",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, loadFixturesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
