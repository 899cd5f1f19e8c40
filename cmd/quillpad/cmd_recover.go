package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/dshills/quillpad/internal/app"
	"github.com/dshills/quillpad/internal/config"
	"github.com/dshills/quillpad/internal/document"
	"github.com/dshills/quillpad/internal/recovery"
)

// newRecoverCmd creates the recover subcommand.
func newRecoverCmd() *cobra.Command {
	var (
		clearAll bool
		restore  string
	)

	cmd := &cobra.Command{
		Use:   "recover",
		Short: "List, restore or clear crash-recovery copies",
		Long: `List the documents kept by crash recovery.

  quillpad recover                 list recovery copies
  quillpad recover --restore DIR   save every copy; untitled ones go to DIR
  quillpad recover --clear         delete every copy`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := newLogger(cfg)
			defer log.Close()

			store, err := recovery.Open(cfg.RecoveryPath(), log.Logger)
			if err != nil {
				return err
			}
			defer store.Close()

			switch {
			case clearAll:
				if err := store.ClearAll(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), goodFormat("recovery copies cleared"))
				return nil
			case restore != "":
				return restoreAll(ctx, cmd, cfg, store, restore, log.Logger)
			default:
				return listEntries(ctx, cmd, store)
			}
		},
	}

	cmd.Flags().BoolVar(&clearAll, "clear", false, "delete every recovery copy")
	cmd.Flags().StringVar(&restore, "restore", "", "save recovered documents, writing untitled ones to this directory")
	cmd.MarkFlagsMutuallyExclusive("clear", "restore")
	return cmd
}

func listEntries(ctx context.Context, cmd *cobra.Command, store *recovery.Store) error {
	entries, err := store.ReadAll(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, mutedFormat("no recovery copies"))
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, titleFormat("DOCUMENT\tFORMAT\tCHARS\tSAVED"))
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n",
			e.Title(),
			e.Format,
			utf8.RuneCountInString(e.Content),
			mutedFormat(e.SavedAt.Local().Format("2006-01-02 15:04:05")))
	}
	return tw.Flush()
}

// dirPicker answers save dialogs with numbered files in a directory.
type dirPicker struct {
	dir string
	n   int
}

func (p *dirPicker) OpenPath(ctx context.Context) (string, error) {
	return "", app.ErrCanceled
}

func (p *dirPicker) SavePath(ctx context.Context, suggested string) (string, error) {
	for {
		p.n++
		path := filepath.Join(p.dir, fmt.Sprintf("recovered-%d%s", p.n, document.FormatPlain.Extension()))
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
	}
}

// restoreAll reopens every recovery copy and saves it. Copies of named
// files overwrite those files.
func restoreAll(ctx context.Context, cmd *cobra.Command, cfg *config.Config, store *recovery.Store, dir string, log *slog.Logger) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	a := app.New(
		app.WithConfig(cfg),
		app.WithRecovery(store),
		app.WithPicker(&dirPicker{dir: dir}),
		app.WithLogger(log),
	)
	defer a.Shutdown(ctx)

	docs, err := a.Recover(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(docs) == 0 {
		fmt.Fprintln(out, mutedFormat("nothing to restore"))
		return nil
	}

	failed := 0
	for _, doc := range docs {
		if err := a.Save(ctx, doc.ID); err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", errorFormat("failed:"), err)
			continue
		}
		fmt.Fprintf(out, "%s %s\n", goodFormat("restored"), doc.Path())
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents could not be restored", failed, len(docs))
	}
	return nil
}
