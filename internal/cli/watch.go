package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/interpretive-systems/contrast/diffs"
	"github.com/interpretive-systems/contrast/internal/watch"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the stats line again whenever the working tree changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			if s.root == "" {
				return fmt.Errorf("not a git repo: %s", s.repoPath)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runWatch(ctx, cmd, s)
		},
	}
	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, s *session) error {
	r := s.retriever()
	out := cmd.OutOrStdout()
	var last *diffs.Stats

	refresh := func() {
		id := uuid.NewString()
		s.log.Debug("refresh started", "refresh", id, "root", s.root)
		_, stats, err := r.GetDiffs(s.root)
		if err != nil {
			// Keep the previous output; the next change retries.
			s.log.Warn("refresh failed", "refresh", id, "error", err)
			return
		}
		if last != nil && *last == stats {
			s.log.Debug("refresh unchanged", "refresh", id)
			return
		}
		last = &stats
		fmt.Fprintf(out, "%s  %s\n", time.Now().Format("15:04:05"), s.printer.Stats(stats))
	}

	refresh()
	w := watch.New(s.root, s.cfg.Debounce(), s.log)
	return w.Run(ctx, refresh)
}
