package cli

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/interpretive-systems/contrast/diffs"
)

type showOutput struct {
	Diffs []diffs.Diff `json:"diffs"`
	Stats diffs.Stats  `json:"stats"`
}

func newShowCmd() *cobra.Command {
	var (
		asJSON     bool
		sideBySide bool
	)
	cmd := &cobra.Command{
		Use:   "show [file...]",
		Short: "Print the diff of every changed file, or only the given ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			ds, stats, err := s.retriever().GetDiffs(s.target())
			if err != nil {
				return err
			}
			if len(args) > 0 {
				ds = filterDiffs(ds, args)
				stats = diffs.Aggregate(ds)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(showOutput{Diffs: ds, Stats: stats})
			}

			s.printer.SideBySide = s.sideBySide
			if cmd.Flags().Changed("side-by-side") {
				s.printer.SideBySide = sideBySide
			}
			if err := s.printer.Diffs(out, ds); err != nil {
				return err
			}
			if len(ds) > 0 {
				if _, err := out.Write([]byte("\n")); err != nil {
					return err
				}
			}
			_, err = out.Write([]byte(s.printer.Stats(stats) + "\n"))
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print diffs and stats as JSON")
	cmd.Flags().BoolVarP(&sideBySide, "side-by-side", "s", false, "Lay out old and new lines in two columns")
	return cmd
}

// filterDiffs keeps the diffs whose current or previous name equals one of
// the given paths or lies below one of them.
func filterDiffs(ds []diffs.Diff, paths []string) []diffs.Diff {
	out := make([]diffs.Diff, 0, len(ds))
	for _, d := range ds {
		for _, p := range paths {
			p = strings.TrimSuffix(filepath.ToSlash(filepath.Clean(p)), "/")
			if p == "." || matchPath(d.FileName, p) || (d.OldFileName != "" && matchPath(d.OldFileName, p)) {
				out = append(out, d)
				break
			}
		}
	}
	return out
}

func matchPath(name, p string) bool {
	return name == p || strings.HasPrefix(name, p+"/")
}
