package prefs

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Prefs represents per-repository preferences persisted in git config.
type Prefs struct {
	ContextLines int
	ContextSet   bool
	Untracked    bool
	UntrackedSet bool
	Renames      bool
	RenamesSet   bool
	SideBySide   bool
	SideSet      bool
	Theme        string
}

const (
	KeyContextLines = "contrast.contextLines"
	KeyUntracked    = "contrast.untracked"
	KeyRenames      = "contrast.renames"
	KeySideBySide   = "contrast.sideBySide"
	KeyTheme        = "contrast.theme"
)

// Keys lists every preference key in display order.
var Keys = []string{KeyContextLines, KeyUntracked, KeyRenames, KeySideBySide, KeyTheme}

// Load reads preferences from git config. Unset or malformed keys are left unset.
func Load(repoRoot string) Prefs {
	var p Prefs
	if s, ok := get(repoRoot, KeyContextLines); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && n >= 0 {
			p.ContextSet = true
			p.ContextLines = n
		}
	}
	if s, ok := get(repoRoot, KeyUntracked); ok {
		p.UntrackedSet = true
		p.Untracked = parseBool(s)
	}
	if s, ok := get(repoRoot, KeyRenames); ok {
		p.RenamesSet = true
		p.Renames = parseBool(s)
	}
	if s, ok := get(repoRoot, KeySideBySide); ok {
		p.SideSet = true
		p.SideBySide = parseBool(s)
	}
	if s, ok := get(repoRoot, KeyTheme); ok {
		p.Theme = s
	}
	return p
}

// Save validates value for key and writes it to the repository's local config.
func Save(repoRoot, key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case KeyContextLines:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid context lines: %q", value)
		}
		value = strconv.Itoa(n)
	case KeyUntracked, KeyRenames, KeySideBySide:
		b, ok := lookupBool(value)
		if !ok {
			return fmt.Errorf("invalid boolean for %s: %q", key, value)
		}
		value = boolStr(b)
	case KeyTheme:
		if value != "dark" && value != "light" {
			return fmt.Errorf("invalid theme: %q", value)
		}
	default:
		return fmt.Errorf("unknown preference %q", key)
	}
	return set(repoRoot, key, value)
}

// Get returns the raw configured value of key, if any.
func Get(repoRoot, key string) (string, bool) {
	return get(repoRoot, key)
}

func get(repoRoot, key string) (string, bool) {
	cmd := exec.Command("git", "-C", repoRoot, "config", "--get", key)
	b, err := cmd.Output()
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(b)), true
}

func set(repoRoot, key, value string) error {
	cmd := exec.Command("git", "-C", repoRoot, "config", "--local", key, value)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git config %s: %w: %s", key, err, string(out))
	}
	return nil
}

func parseBool(s string) bool {
	b, _ := lookupBool(s)
	return b
}

// lookupBool accepts git's boolean spellings.
func lookupBool(s string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	default:
		return false, false
	}
}

func boolStr(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
