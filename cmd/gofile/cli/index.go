package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mwantia/gofile/internal/config"
	"github.com/mwantia/gofile/internal/indexer"
	"github.com/mwantia/gofile/pkg/db/migrations"
	"github.com/mwantia/gofile/pkg/db/models"
	"github.com/mwantia/gofile/pkg/db/store"
	"github.com/spf13/cobra"
)

func NewIndexCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Manage the reference index",
		Long:  "Manage the local reference index and scan, list, label or remove entries.",
	}

	cmd.AddCommand(newIndexScanCommand())
	cmd.AddCommand(newIndexListCommand())
	cmd.AddCommand(newIndexRemoveCommand())
	cmd.AddCommand(newIndexTagCommand())
	cmd.AddCommand(newIndexStatusCommand())

	return cmd
}

func newIndexScanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scan <dir>",
		Short: "Index a directory tree",
		Long:  "Walks the directory tree and indexes a file reference for every regular file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			result, err := indexer.NewIndexer(cfg).Scan(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Indexed %d files, skipped %d\n", result.Indexed, result.Skipped)
			return nil
		},
	}
}

func newIndexListCommand() *cobra.Command {
	var longFormat bool
	var label string
	var limit int
	var offset int

	cmd := &cobra.Command{
		Use:   "ls [prefix]",
		Short: "List indexed references",
		Long:  "List indexed references, optionally filtered by a name prefix or a label.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			st, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}

			var refs []models.Reference
			if label != "" {
				key, value, err := parseLabel(label)
				if err != nil {
					return err
				}
				refs, err = st.FindByLabel(cmd.Context(), key, value, limit, offset)
				if err != nil {
					return err
				}
			} else {
				refs, err = st.ListReferences(cmd.Context(), prefix, limit, offset)
				if err != nil {
					return err
				}
			}

			for _, ref := range refs {
				if longFormat {
					fmt.Printf("%-44s %-32s %-24s %10s  %s\n",
						ref.CacheKey, ref.Name, valueOrDash(ref.MimeType),
						humanize.IBytes(uint64(ref.FileSize)), ref.FileHash)
				} else {
					fmt.Println(ref.Name)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&longFormat, "long", "l", false, "Display long format")
	cmd.Flags().StringVar(&label, "label", "", "Filter by label (key=value)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of entries")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of entries to skip")

	return cmd
}

func newIndexRemoveCommand() *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "rm <cache-key>",
		Short: "Remove an indexed reference",
		Long:  "Removes the reference with the given cache key from the index, including its labels.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return fmt.Errorf("removal needs confirmation, re-run with --yes")
			}

			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			st, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.DeleteReference(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Printf("Removed %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirm, "yes", false, "Confirm the removal")

	return cmd
}

func newIndexTagCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tag <cache-key> <key=value>",
		Short: "Attach a label to an indexed reference",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value, err := parseLabel(args[1])
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			st, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.AddLabel(cmd.Context(), args[0], key, value); err != nil {
				return err
			}

			fmt.Printf("Labeled %s with %s=%s\n", args[0], key, value)
			return nil
		},
	}
}

func newIndexStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show index health and schema status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			st, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Health(cmd.Context()); err != nil {
				return fmt.Errorf("index is not healthy: %w", err)
			}
			fmt.Printf("Index %s is healthy\n", cfg.Index.SQLite.Path)

			statuses, err := migrations.NewMigrator(st.DB()).Status(cmd.Context())
			if err != nil {
				return err
			}
			for _, status := range statuses {
				state := "pending"
				if status.Applied {
					state = "applied"
				}
				fmt.Printf("  migration %d (%s): %s\n", status.Version, status.Description, state)
			}
			return nil
		},
	}
}

func openStore(ctx context.Context, cfg *config.BaseConfig) (*store.SQLiteStore, error) {
	st, err := store.NewSQLiteStore(store.SQLiteConfig{
		Path: cfg.Index.SQLite.Path,
	})
	if err != nil {
		return nil, err
	}

	if err := st.Connect(ctx); err != nil {
		st.Close()
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}

	return st, nil
}

func parseLabel(raw string) (string, string, error) {
	key, value, found := strings.Cut(raw, "=")
	if !found || key == "" {
		return "", "", fmt.Errorf("invalid label %q, expected key=value", raw)
	}
	return key, value, nil
}
