package main

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/weiihann/hashbench/engine"
	"github.com/weiihann/hashbench/harness"
	"github.com/weiihann/hashbench/history"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	root := newRootCmd(logger, new(slog.LevelVar))

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), err
}

func TestListCommand(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if !strings.HasPrefix(lines[len(lines)-1], engine.FastHashName) {
		t.Errorf("last line = %q, want the fast hash", lines[len(lines)-1])
	}
	if !strings.Contains(out, "SHA1\n") {
		t.Error("expected SHA1 in list output")
	}
}

func TestReportCommand(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), history.DefaultPath)
	require.NoError(t, history.EnsureInitialized(logPath))
	require.NoError(t, history.Append(logPath, history.Run{
		Name: "SHA1", Commit: "abc", MemTimeSeconds: 2, FileTimeSeconds: 4, Iterations: 2,
	}))
	require.NoError(t, history.Append(logPath, history.Run{
		Name: "SeaHash", Commit: "abc", MemTimeSeconds: 1, FileTimeSeconds: 3, Iterations: 2,
	}))

	out, err := execute(t, "report", "--log", logPath)
	require.NoError(t, err)

	if !strings.Contains(out, "| SHA1 |") || !strings.Contains(out, "| SeaHash |") {
		t.Errorf("report missing rows:\n%s", out)
	}

	out, err = execute(t, "report", "--log", logPath, "--name", "seahash", "--json")
	require.NoError(t, err)

	if strings.Contains(out, "SHA1") || !strings.Contains(out, `"name": "SeaHash"`) {
		t.Errorf("filtered JSON report = %s", out)
	}
}

func TestReportCommandMissingLog(t *testing.T) {
	_, err := execute(t, "report", "--log", filepath.Join(t.TempDir(), "none.csv"))
	if err == nil {
		t.Error("expected error for a missing log")
	}
}

func TestRunCommandRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	common := []string{
		"--data", filepath.Join(dir, "test.bin"),
		"--log", filepath.Join(dir, "log.csv"),
		"--size", "64",
	}

	_, err := execute(t, append([]string{"run", "--select", "nope"}, common...)...)
	if !errors.Is(err, engine.ErrInvalidSelection) {
		t.Errorf("error = %v, want ErrInvalidSelection", err)
	}

	_, err = execute(t, append([]string{"run", "--iterations", "0"}, common...)...)
	if !errors.Is(err, harness.ErrInvalidIterationCount) {
		t.Errorf("error = %v, want ErrInvalidIterationCount", err)
	}
}
