package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// debounceInterval coalesces editor save bursts into one reclassification.
const debounceInterval = 200 * time.Millisecond

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Reclassify and reprint a SQL file whenever it changes",
		Long: `Watch keeps the catalog session open, loads schema metadata lazily in
the background, and re-runs classification each time the file is written.
Identifiers that were unresolved on the first pass light up on later passes
as catalog data arrives.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			cfg := getConfig(cmd.Context())

			sess, err := openSession(cfg)
			if err != nil {
				return err
			}
			defer sess.Close()

			ctx := cmd.Context()
			if sess.Conn != nil {
				// Databases and schemas up front, objects and columns lazily
				// as classification requests them.
				if err := sess.Loader.Prime(ctx); err != nil {
					return err
				}
				if sess.Conn.Database == "" {
					if names := sess.Catalog.DatabaseNames(); len(names) > 0 {
						sess.Conn.Database = names[0]
					}
				}
				go sess.Loader.Run(ctx)
			}

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}
			defer watcher.Close()

			// Watch the directory, not the file: editors replace files on
			// save and the old inode's watch dies with it.
			dir := filepath.Dir(path)
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("watch %s: %w", dir, err)
			}

			run := func() {
				data, err := os.ReadFile(path)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "read %s: %v\n", path, err)
					return
				}
				classified := classifyBuffer(string(data), sess, cfg.Highlight.ToSemantic())
				render(cmd.OutOrStdout(), classified, !cfg.NoColor)
			}
			run()

			target := filepath.Clean(path)
			var timer *time.Timer
			pending := make(chan struct{}, 1)
			for {
				select {
				case <-ctx.Done():
					return nil
				case event, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if filepath.Clean(event.Name) != target {
						continue
					}
					if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
						continue
					}
					if timer != nil {
						timer.Stop()
					}
					timer = time.AfterFunc(debounceInterval, func() {
						select {
						case pending <- struct{}{}:
						default:
						}
					})
				case <-pending:
					run()
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					fmt.Fprintf(cmd.ErrOrStderr(), "watch error: %v\n", err)
				}
			}
		},
	}
	return cmd
}
