package vcs

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found in PATH")
	}
}

func git(t *testing.T, dir string, args ...string) {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=hashbench", "GIT_AUTHOR_EMAIL=hashbench@example.com",
		"GIT_COMMITTER_NAME=hashbench", "GIT_COMMITTER_EMAIL=hashbench@example.com",
		"GIT_CONFIG_NOSYSTEM=1",
	)

	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
}

func TestGitResolve(t *testing.T) {
	requireGit(t)

	dir := t.TempDir()
	git(t, dir, "init", "-q")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))
	git(t, dir, "add", "a.txt")
	git(t, dir, "-c", "commit.gpgsign=false", "commit", "-q", "-m", "initial")

	g := NewGit(dir)

	clean, err := g.Resolve(context.Background())
	require.NoError(t, err)

	if len(clean.Commit) != 40 && len(clean.Commit) != 64 {
		t.Errorf("commit %q is not a full hex object name", clean.Commit)
	}
	if clean.Dirty {
		t.Error("fresh commit reported as dirty")
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("changed"), 0o644))

	dirty, err := g.Resolve(context.Background())
	require.NoError(t, err)

	if !dirty.Dirty {
		t.Error("modified tree reported as clean")
	}
	if dirty.Commit != clean.Commit {
		t.Errorf("commit changed from %s to %s without a new commit", clean.Commit, dirty.Commit)
	}
}

func TestGitResolveOutsideRepository(t *testing.T) {
	requireGit(t)

	dir := t.TempDir()
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(dir))

	_, err := NewGit(dir).Resolve(context.Background())
	if !errors.Is(err, ErrRevisionResolution) {
		t.Fatalf("error = %v, want ErrRevisionResolution", err)
	}
}

func TestGitResolveEmptyRepository(t *testing.T) {
	requireGit(t)

	dir := t.TempDir()
	git(t, dir, "init", "-q")

	_, err := NewGit(dir).Resolve(context.Background())
	if !errors.Is(err, ErrRevisionResolution) {
		t.Fatalf("error = %v, want ErrRevisionResolution", err)
	}
}

func TestFixed(t *testing.T) {
	want := Revision{Commit: "abc123", Dirty: true}

	got, err := Fixed(want).Resolve(context.Background())
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestIsHex(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", false},
		{"0123456789abcdef", true},
		{"HEAD", false},
		{"abc xyz", false},
	}

	for _, tt := range tests {
		if got := isHex(tt.input); got != tt.want {
			t.Errorf("isHex(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
