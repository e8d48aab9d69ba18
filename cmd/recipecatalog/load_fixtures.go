package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"recipe-catalog/internal/config"
	"recipe-catalog/internal/fixture"
	"recipe-catalog/internal/repository"
)

var loadFixturesCmd = &cobra.Command{
	Use:   "load-fixtures <file.yaml>",
	Short: "Load categories and recipes from a YAML fixture file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		file, err := fixture.ReadFile(args[0])
		if err != nil {
			return err
		}

		db, err := repository.NewDB(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}

		res, err := fixture.Apply(cmd.Context(), db, file)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "loaded %d categories and %d recipes into %s\n", res.Categories, res.Recipes, cfg.DatabaseURL)
		return nil
	},
}
