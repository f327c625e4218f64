package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/DjordjeVuckovic/media-catalog/internal/auth"
	"github.com/DjordjeVuckovic/media-catalog/internal/catalog"
	"github.com/DjordjeVuckovic/media-catalog/internal/search"
	"github.com/DjordjeVuckovic/media-catalog/internal/seed"
	"github.com/DjordjeVuckovic/media-catalog/internal/storage"
	"github.com/DjordjeVuckovic/media-catalog/internal/storage/factory"
	"github.com/DjordjeVuckovic/media-catalog/internal/tui"
	"github.com/DjordjeVuckovic/media-catalog/internal/validate"
	"github.com/DjordjeVuckovic/media-catalog/pkg/config/env"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Operate a media catalog from the terminal",
		Long:          `catalogctl seeds the catalog store, hashes administrator passwords and opens a terminal search browser.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if err := env.LoadDotEnv(os.Getenv("ENV"), "cmd/catalogctl/.env"); err != nil {
				slog.Debug("Skipping .env ...", "error", err)
			}
		},
	}

	root.AddCommand(newSeedCmd(), newHashPasswordCmd(), newBrowseCmd())
	return root
}

func newSeedCmd() *cobra.Command {
	var batchSize int

	cmd := &cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Load entries and trending items from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open seed file: %w", err)
			}
			defer f.Close()

			file, err := seed.NewYAMLLoader(f).Load()
			if err != nil {
				return err
			}

			ds, closeStore, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			im := seed.NewImporter(ds, validate.New(),
				seed.WithBaseDir(filepath.Dir(path)),
				seed.WithBatchSize(batchSize),
			)
			stats, err := im.Run(cmd.Context(), file)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries and %d trending items\n", stats.Entries, stats.Trending)
			return nil
		},
	}

	cmd.Flags().IntVar(&batchSize, "batch-size", seed.DefaultBatchSize, "documents per bulk request")
	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
		Long:  `Hashes --password, or the first line of standard input when the flag is not set.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && !errors.Is(err, io.EOF) {
					return fmt.Errorf("failed to read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}

			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "password to hash")
	return cmd
}

func newBrowseCmd() *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Open the terminal search browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The UI owns the terminal, so logs go to a file or nowhere.
			var logOut io.Writer = io.Discard
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
				if err != nil {
					return fmt.Errorf("failed to open log file: %w", err)
				}
				defer f.Close()
				logOut = f
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelDebug})))

			searchCfg, err := search.LoadEnv()
			if err != nil {
				return err
			}

			ds, closeStore, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			b := tui.NewBrowser(
				search.NewFetcher(ds),
				search.NewTrendingProvider(ds),
				catalog.NewEntryService(ds, validate.New()),
				search.WithConfig(searchCfg),
			)
			defer b.Close()

			if _, err := tea.NewProgram(b, tea.WithAltScreen()).Run(); err != nil {
				return fmt.Errorf("failed to run the terminal user interface: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file")
	return cmd
}

func openStore(ctx context.Context) (storage.DataSource, func(), error) {
	cfg, err := factory.LoadEnv()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load storage configuration: %w", err)
	}
	return factory.NewDataSource(ctx, cfg)
}
