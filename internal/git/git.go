// Package git wraps the git command line.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"commando/internal/debug"
)

// ErrNoStagedChanges is returned by Commit when nothing is staged.
var ErrNoStagedChanges = errors.New("no staged changes found")

// Repo runs git in Dir. The zero value uses the working directory.
type Repo struct {
	Dir string
}

func (r Repo) command(ctx context.Context, args ...string) *exec.Cmd {
	debug.Log("git", "args", args)
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.Dir
	return cmd
}

// output runs git and returns trimmed stdout. Stderr is folded into the
// error.
func (r Repo) output(ctx context.Context, what string, args ...string) (string, error) {
	var stderr bytes.Buffer
	cmd := r.command(ctx, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to %s: %w\nOutput: %s", what, err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(string(out)), nil
}

func (r Repo) run(ctx context.Context, what string, args ...string) error {
	output, err := r.command(ctx, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to %s: %w\nOutput: %s", what, err, strings.TrimSpace(string(output)))
	}
	return nil
}

func (r Repo) IsGitRepo(ctx context.Context) bool {
	return r.command(ctx, "rev-parse", "--git-dir").Run() == nil
}

// HasStagedChanges reports whether the index differs from HEAD.
func (r Repo) HasStagedChanges(ctx context.Context) bool {
	return r.command(ctx, "diff", "--cached", "--quiet").Run() != nil
}

// StagedFiles lists the paths staged for the next commit.
func (r Repo) StagedFiles(ctx context.Context) ([]string, error) {
	out, err := r.output(ctx, "list staged files", "diff", "--cached", "--name-only")
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

func (r Repo) GetCurrentBranch(ctx context.Context) (string, error) {
	return r.output(ctx, "get current branch", "branch", "--show-current")
}

type CommitInfo struct {
	Hash    string
	Message string
	Author  string
	Date    string
}

// GetRecentCommits returns up to n commits from HEAD, newest first.
func (r Repo) GetRecentCommits(ctx context.Context, n int) ([]CommitInfo, error) {
	if n <= 0 {
		n = 5
	}

	format := "%H|%s|%an|%ad"
	out, err := r.output(ctx, "get recent commits", "log", "-n", fmt.Sprintf("%d", n), "--format="+format)
	if err != nil {
		return nil, err
	}

	var commits []CommitInfo
	for _, line := range strings.Split(out, "\n") {
		parts := strings.SplitN(line, "|", 4)
		if len(parts) < 4 {
			continue
		}
		commits = append(commits, CommitInfo{
			Hash:    parts[0],
			Message: parts[1],
			Author:  parts[2],
			Date:    parts[3],
		})
	}
	return commits, nil
}

// GetRecentCommitMessages returns the subjects of the last n commits.
func (r Repo) GetRecentCommitMessages(ctx context.Context, n int) ([]string, error) {
	commits, err := r.GetRecentCommits(ctx, n)
	if err != nil {
		return nil, err
	}
	messages := make([]string, 0, len(commits))
	for _, c := range commits {
		messages = append(messages, c.Message)
	}
	return messages, nil
}

// AddAll stages all changes in the repository (modified, deleted, and untracked files)
func (r Repo) AddAll(ctx context.Context) error {
	return r.run(ctx, "add files", "add", "-A")
}

type CommitOptions struct {
	Amend    bool
	NoVerify bool
	SignOff  bool
}

// CommitResult identifies the commit that was created.
type CommitResult struct {
	SHA     string
	Summary string
}

// Commit records message, passed on stdin so multi-line messages keep
// their exact layout.
func (r Repo) Commit(ctx context.Context, message string, opts CommitOptions) (*CommitResult, error) {
	if !opts.Amend && !r.HasStagedChanges(ctx) {
		return nil, ErrNoStagedChanges
	}

	args := []string{"commit", "--cleanup=whitespace", "-F", "-"}
	if opts.Amend {
		args = append(args, "--amend")
	}
	if opts.NoVerify {
		args = append(args, "--no-verify")
	}
	if opts.SignOff {
		args = append(args, "--signoff")
	}

	cmd := r.command(ctx, args...)
	cmd.Stdin = strings.NewReader(message)
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w\nOutput: %s", err, strings.TrimSpace(string(output)))
	}

	sha, err := r.output(ctx, "read commit id", "rev-parse", "HEAD")
	if err != nil {
		return nil, err
	}
	summary, err := r.output(ctx, "read commit summary", "log", "-1", "--format=%s")
	if err != nil {
		return nil, err
	}
	return &CommitResult{SHA: sha, Summary: summary}, nil
}

// Push pushes the current branch to its upstream remote
func (r Repo) Push(ctx context.Context) error {
	return r.run(ctx, "push", "push")
}
