package gitx

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

var (
	// ErrNotRepository is returned when a path is not inside a git work tree.
	ErrNotRepository = errors.New("not a git repository")
	// ErrNoCommits is returned when HEAD does not point at a commit yet.
	ErrNoCommits = errors.New("repository has no commits")
)

// GitRunner executes a git command in workDir and returns its stdout.
// Tests substitute canned output.
type GitRunner func(workDir string, args ...string) (string, error)

// defaultGitRunner runs git as a real subprocess. Optional locks are disabled
// so that read commands never rewrite the index.
func defaultGitRunner(workDir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = workDir
	cmd.Env = append(os.Environ(), "GIT_OPTIONAL_LOCKS=0")
	out, err := cmd.Output()
	return string(out), err
}

// Repository is an opened, validated work tree with a resolved HEAD commit.
type Repository struct {
	Root string
	Head plumbing.Hash

	repo *git.Repository
}

// Open opens the repository containing path and resolves HEAD. It fails
// for non-repositories, bare repositories and repositories without commits.
func Open(path string) (*Repository, error) {
	if strings.TrimSpace(path) == "" {
		path = "."
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory: %w", path, ErrNotRepository)
	}
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotRepository)
		}
		return nil, fmt.Errorf("open repository %s: %w", path, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("worktree: %w", err)
	}
	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, fmt.Errorf("%s: %w", path, ErrNoCommits)
		}
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}
	return &Repository{Root: wt.Filesystem.Root(), Head: head.Hash(), repo: repo}, nil
}

// RepoRoot resolves the work tree root from a given path (or current dir).
func RepoRoot(path string) (string, error) {
	r, err := Open(path)
	if err != nil {
		return "", err
	}
	return r.Root, nil
}

// LastCommitSummary returns short hash and subject of the HEAD commit.
func (r *Repository) LastCommitSummary() (string, error) {
	c, err := r.repo.CommitObject(r.Head)
	if err != nil {
		return "", fmt.Errorf("read HEAD commit: %w", err)
	}
	subject := strings.TrimSpace(strings.SplitN(c.Message, "\n", 2)[0])
	return strings.TrimSpace(c.Hash.String()[:7] + " " + subject), nil
}

// isExitCode reports whether err is an *exec.ExitError with the given code.
func isExitCode(err error, code int) bool {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode() == code
	}
	return false
}

// gitError decorates a failed git invocation with its subcommand and stderr.
func gitError(args []string, err error) error {
	sub := "<no-args>"
	if len(args) > 0 {
		sub = args[0]
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if msg := strings.TrimSpace(string(exitErr.Stderr)); msg != "" {
			return fmt.Errorf("git %s: %w: %s", sub, err, msg)
		}
	}
	return fmt.Errorf("git %s: %w", sub, err)
}
