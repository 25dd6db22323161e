package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/interpretive-systems/contrast/internal/gitx"
	"github.com/interpretive-systems/contrast/internal/prefs"
)

func newPrefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "List repository preferences stored in git config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := gitx.RepoRoot(mustGetStringFlag(cmd, "repo"))
			if err != nil {
				return fmt.Errorf("not a git repo: %w", err)
			}
			out := cmd.OutOrStdout()
			for _, key := range prefs.Keys {
				v, ok := prefs.Get(root, key)
				if !ok {
					v = "(unset)"
				}
				if _, err := fmt.Fprintf(out, "%s=%s\n", key, v); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a preference in the repository's git config",
		Long:  "Keys: contextLines, untracked, renames, sideBySide, theme (the contrast. prefix is optional).",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := gitx.RepoRoot(mustGetStringFlag(cmd, "repo"))
			if err != nil {
				return fmt.Errorf("not a git repo: %w", err)
			}
			key := args[0]
			if !strings.HasPrefix(key, "contrast.") {
				key = "contrast." + key
			}
			return prefs.Save(root, key, args[1])
		},
	})
	return cmd
}
