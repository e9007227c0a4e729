// Package app runs one commit: resolve a message from the chosen source,
// validate it, preview it, confirm and hand it to git.
package app

import (
	"context"
	"errors"
	"fmt"

	"commando/internal/commit"
	"commando/internal/debug"
	"commando/internal/git"
)

var (
	ErrNotARepo      = errors.New("not a git repository")
	ErrNothingStaged = errors.New("no staged changes found. Run 'git add' first or enable auto_add in config")
	ErrCancelled     = errors.New("commit cancelled")
)

// StagingChecker reports repository state before a message is collected.
type StagingChecker interface {
	IsGitRepo(ctx context.Context) bool
	HasStagedChanges(ctx context.Context) bool
}

// Source produces the message to commit.
type Source interface {
	Resolve(ctx context.Context) (*commit.Message, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (*commit.Message, error)

func (f SourceFunc) Resolve(ctx context.Context) (*commit.Message, error) { return f(ctx) }

// Executor records a commit.
type Executor interface {
	Commit(ctx context.Context, message string, opts git.CommitOptions) (*git.CommitResult, error)
}

// Remote stages and publishes changes around the commit.
type Remote interface {
	AddAll(ctx context.Context) error
	Push(ctx context.Context) error
}

// UI shows progress and asks the user to confirm.
type UI interface {
	Preview(m *commit.Message)
	Confirm(question string) (bool, error)
	Report(res *git.CommitResult)
	Info(format string, args ...any)
}

type Options struct {
	// DryRun previews the message without committing.
	DryRun bool
	// AssumeYes skips the confirmation prompt.
	AssumeYes bool
	AutoAdd   bool
	AutoPush  bool
	Commit    git.CommitOptions
}

// Controller wires the ports together. Remote may be nil when AutoAdd and
// AutoPush are off.
type Controller struct {
	Repo     StagingChecker
	Source   Source
	Executor Executor
	Remote   Remote
	UI       UI
	Options  Options
}

// Run performs the whole flow. It returns nil and no error for a dry run.
func (c *Controller) Run(ctx context.Context) (*git.CommitResult, error) {
	if !c.Repo.IsGitRepo(ctx) {
		return nil, ErrNotARepo
	}

	if c.Options.AutoAdd && !c.Options.DryRun {
		c.UI.Info("Auto-adding all changes...")
		if err := c.Remote.AddAll(ctx); err != nil {
			return nil, fmt.Errorf("failed to auto-add changes: %w", err)
		}
	}

	if !c.Options.DryRun && !c.Options.Commit.Amend && !c.Repo.HasStagedChanges(ctx) {
		return nil, ErrNothingStaged
	}

	m, err := c.Source.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid commit message:\n%w", err)
	}
	debug.Log("message resolved", "header", m.Header(), "breaking", m.IsBreaking())

	c.UI.Preview(m)
	if c.Options.DryRun {
		c.UI.Info("Dry run, nothing committed.")
		return nil, nil
	}

	if !c.Options.AssumeYes {
		question := "Commit"
		if c.Options.AutoPush {
			question = "Commit and push"
		}
		ok, err := c.UI.Confirm(question)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrCancelled
		}
	}

	res, err := c.Executor.Commit(ctx, m.String(), c.Options.Commit)
	if err != nil {
		return nil, err
	}
	c.UI.Report(res)

	if c.Options.AutoPush {
		c.UI.Info("Auto-pushing to remote...")
		if err := c.Remote.Push(ctx); err != nil {
			return res, fmt.Errorf("commit succeeded but push failed: %w", err)
		}
		c.UI.Info("Changes pushed successfully!")
	}
	return res, nil
}
