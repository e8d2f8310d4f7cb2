package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ringgitlab/duit/internal/intent"
)

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the intent catalog",
	}
	cmd.AddCommand(catalogSeedCmd())
	cmd.AddCommand(catalogListCmd())
	return cmd
}

func catalogSeedCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write the default intent catalog",
		RunE: func(_ *cobra.Command, _ []string) error {
			path, err := intentsPath()
			if err != nil {
				return err
			}
			// Check the file directly: LoadCatalog writes a default catalog
			// when the file is missing, which would defeat the check.
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("catalog already exists at %s (use --force to overwrite)", path)
				}
			}
			if err := intent.SaveCatalog(path, intent.DefaultCatalog()); err != nil {
				return err
			}
			slog.Info("Default intent catalog written", "path", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing catalog")
	return cmd
}

func catalogListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog intents and their pattern counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := intentsPath()
			if err != nil {
				return err
			}
			catalog, err := intent.LoadCatalog(path)
			if err != nil {
				return err
			}
			for _, in := range catalog.Intents {
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %d patterns, %d responses\n",
					in.Tag, len(in.Patterns), len(in.Responses.All()))
			}
			return nil
		},
	}
}
