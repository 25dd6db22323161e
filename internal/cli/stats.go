package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/interpretive-systems/contrast/internal/gitx"
)

func newStatsCmd() *cobra.Command {
	var summary bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the number of changed files, insertions and deletions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			_, stats, err := s.retriever().GetDiffs(s.target())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !summary {
				_, err = fmt.Fprintln(out, s.printer.Stats(stats))
				return err
			}
			return s.printer.Summary(out, s.root, headSummary(s), stats)
		},
	}
	cmd.Flags().BoolVar(&summary, "summary", false, "Also print the repository root and HEAD commit")
	return cmd
}

// headSummary describes HEAD for the summary heading, or "" when it cannot
// be read; the cause is logged.
func headSummary(s *session) string {
	repo, err := gitx.Open(s.target())
	if err != nil {
		s.log.Debug("HEAD summary unavailable", "path", s.target(), "error", err)
		return ""
	}
	commit, err := repo.LastCommitSummary()
	if err != nil {
		s.log.Debug("HEAD summary unavailable", "path", s.target(), "error", err)
		return ""
	}
	return commit
}
