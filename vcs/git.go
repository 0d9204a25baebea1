// Package vcs reads the source revision that benchmark rows are tagged
// with.
package vcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrRevisionResolution is returned when the revision or working tree
// state cannot be determined.
var ErrRevisionResolution = errors.New("resolve source revision")

// Revision identifies the measured source state.
type Revision struct {
	Commit string
	Dirty  bool
}

// Resolver supplies the current Revision.
type Resolver interface {
	Resolve(ctx context.Context) (Revision, error)
}

// Fixed is a Resolver that always returns itself.
type Fixed Revision

// Resolve implements Resolver.
func (f Fixed) Resolve(context.Context) (Revision, error) {
	return Revision(f), nil
}

// Git resolves revisions by running the git binary in a directory.
type Git struct {
	dir string
}

// NewGit creates a Git resolver for the repository containing dir.
func NewGit(dir string) *Git {
	return &Git{dir: dir}
}

// Resolve returns the HEAD commit hash and whether the working tree has
// uncommitted changes, untracked files included.
func (g *Git) Resolve(ctx context.Context) (Revision, error) {
	commit, err := g.run(ctx, "rev-parse", "HEAD")
	if err != nil {
		return Revision{}, err
	}

	commit = strings.TrimSpace(commit)
	if !isHex(commit) {
		return Revision{}, fmt.Errorf("%w: unexpected commit %q", ErrRevisionResolution, commit)
	}

	status, err := g.run(ctx, "status", "--porcelain")
	if err != nil {
		return Revision{}, err
	}

	return Revision{
		Commit: commit,
		Dirty:  strings.TrimSpace(status) != "",
	}, nil
}

func (g *Git) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: git %s: %w: %s",
			ErrRevisionResolution, strings.Join(args, " "), err,
			strings.TrimSpace(stderr.String()),
		)
	}

	return stdout.String(), nil
}

func isHex(s string) bool {
	if s == "" {
		return false
	}

	for _, c := range s {
		if !strings.ContainsRune("0123456789abcdef", c) {
			return false
		}
	}

	return true
}
