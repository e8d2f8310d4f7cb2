package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ringgitlab/duit/internal/category"
	"github.com/ringgitlab/duit/internal/dialogue"
	"github.com/ringgitlab/duit/internal/extract"
	"github.com/ringgitlab/duit/internal/intent"
	"github.com/ringgitlab/duit/internal/respond"
	"github.com/ringgitlab/duit/internal/storage"
	"github.com/ringgitlab/duit/internal/tui"
)

func chatCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long:  "Opens the chat UI. Type expenses in plain words and duit will track them.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			path, err := dbPath()
			if err != nil {
				return err
			}
			store, err := storage.NewSQLiteStorage(path)
			if err != nil {
				return fmt.Errorf("failed to open storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			if err := store.Migrate(ctx); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}

			catalogPath, err := intentsPath()
			if err != nil {
				return err
			}
			catalog, err := intent.LoadCatalog(catalogPath)
			if err != nil {
				return fmt.Errorf("failed to load intent catalog: %w", err)
			}

			categorizer := category.NewCategorizer()
			machine := dialogue.NewMachine(
				store,
				extract.NewExtractor(categorizer),
				categorizer,
				intent.NewClassifier(catalog),
				respond.NewFormatter(store),
			)

			return tui.Run(ctx, machine, userID)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "me", "user identifier scoping this session")
	return cmd
}
