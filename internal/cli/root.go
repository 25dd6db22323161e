package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/interpretive-systems/contrast/diffs"
	"github.com/interpretive-systems/contrast/internal/config"
	"github.com/interpretive-systems/contrast/internal/gitx"
	"github.com/interpretive-systems/contrast/internal/logging"
	"github.com/interpretive-systems/contrast/internal/prefs"
	"github.com/interpretive-systems/contrast/internal/render"
)

func Execute() error {
	if err := newRootCmd().Execute(); err != nil {
		return fmt.Errorf("execute: %w", err)
	}
	return nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "contrast",
		Short:         "Compare a git working tree with HEAD",
		Long:          "Contrast: list the changes between the last commit and the working tree, with per-file lines, hunk headers and totals.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringP("repo", "r", ".", "Path to repository (default: current dir)")
	pf.IntP("context", "U", gitx.DefaultContextLines, "Number of context lines around each change")
	pf.Bool("untracked", false, "Include untracked, non-ignored files")
	pf.Bool("renames", false, "Detect renamed files")
	pf.String("color", "auto", "Colorize output: auto, always or never")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	pf.String("log-format", "", "Log format: text or json")

	root.AddCommand(newStatsCmd())
	root.AddCommand(newShowCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newPrefsCmd())
	return root
}

// session is everything a subcommand needs after config, prefs and flags
// have been layered.
type session struct {
	repoPath   string
	root       string // empty when repoPath is not inside a work tree
	cfg        config.Config
	prefs      prefs.Prefs
	opts       diffs.Options
	log        logging.Logger
	printer    *render.Printer
	sideBySide bool
}

func newSession(cmd *cobra.Command) (*session, error) {
	s := &session{repoPath: mustGetStringFlag(cmd, "repo")}

	global, err := config.LoadGlobal()
	if err != nil {
		return nil, fmt.Errorf("loading global config: %w", err)
	}
	var project *config.Config
	if root, err := gitx.RepoRoot(s.repoPath); err == nil {
		s.root = root
		project, err = config.LoadProject(root)
		if err != nil {
			return nil, fmt.Errorf("loading project config: %w", err)
		}
		s.prefs = prefs.Load(root)
	}
	s.cfg = config.Merge(global, project, prefsLayer(s.prefs), flagsLayer(cmd))
	s.sideBySide = s.prefs.SideSet && s.prefs.SideBySide

	s.opts = diffs.Options{
		ContextLines:     *s.cfg.ContextLines,
		IncludeUntracked: *s.cfg.IncludeUntracked,
		DetectRenames:    *s.cfg.DetectRenames,
	}

	level, err := logging.ParseLevel(s.cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	s.log, err = logging.New(cmd.ErrOrStderr(), s.cfg.LogFormat, level)
	if err != nil {
		return nil, err
	}

	out := cmd.OutOrStdout()
	color, err := useColor(mustGetStringFlag(cmd, "color"), out)
	if err != nil {
		return nil, err
	}
	s.printer = render.NewPrinter(s.cfg.RenderTheme(), color)
	s.printer.Width = terminalWidth(out)
	return s, nil
}

func (s *session) retriever() *diffs.Retriever {
	return diffs.NewRetriever(s.opts, s.log)
}

// target is the path handed to the engine: the resolved root when known so
// that file names are always root-relative.
func (s *session) target() string {
	if s.root != "" {
		return s.root
	}
	return s.repoPath
}

func prefsLayer(p prefs.Prefs) *config.Config {
	c := &config.Config{Theme: p.Theme}
	if p.ContextSet {
		n := p.ContextLines
		c.ContextLines = &n
	}
	if p.UntrackedSet {
		b := p.Untracked
		c.IncludeUntracked = &b
	}
	if p.RenamesSet {
		b := p.Renames
		c.DetectRenames = &b
	}
	return c
}

// flagsLayer turns explicitly set flags into the topmost config layer.
func flagsLayer(cmd *cobra.Command) *config.Config {
	c := &config.Config{}
	f := cmd.Flags()
	if f.Changed("context") {
		if n, err := f.GetInt("context"); err == nil && n >= 0 {
			c.ContextLines = &n
		}
	}
	if f.Changed("untracked") {
		if b, err := f.GetBool("untracked"); err == nil {
			c.IncludeUntracked = &b
		}
	}
	if f.Changed("renames") {
		if b, err := f.GetBool("renames"); err == nil {
			c.DetectRenames = &b
		}
	}
	if f.Changed("log-level") {
		c.LogLevel = mustGetStringFlag(cmd, "log-level")
	}
	if f.Changed("log-format") {
		c.LogFormat = mustGetStringFlag(cmd, "log-format")
	}
	return c
}

func useColor(mode string, out io.Writer) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "", "auto":
		if os.Getenv("NO_COLOR") != "" {
			return false, nil
		}
		f, ok := out.(*os.File)
		return ok && term.IsTerminal(f.Fd()), nil
	default:
		return false, fmt.Errorf("invalid --color %q (want auto, always or never)", mode)
	}
}

func terminalWidth(out io.Writer) int {
	if f, ok := out.(*os.File); ok && term.IsTerminal(f.Fd()) {
		if w, _, err := term.GetSize(f.Fd()); err == nil && w > 0 {
			return w
		}
	}
	return render.DefaultWidth
}

func mustGetStringFlag(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, "flag error:", err)
		os.Exit(2)
	}
	return v
}
