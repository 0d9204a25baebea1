// Package report formats logged benchmark runs into comparison tables.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/weiihann/hashbench/history"
)

// Options controls report rendering.
type Options struct {
	// DataSize is the dataset size in bytes, used for throughput. Zero
	// omits throughput.
	DataSize int64
}

// Generate writes a markdown comparison table for the given runs.
func Generate(w io.Writer, runs []history.Run, opts Options) error {
	if len(runs) == 0 {
		return fmt.Errorf("no runs to report")
	}

	commits := distinctCommits(runs)
	fastest := findFastest(runs)

	fmt.Fprintln(w, "## Hash Benchmark History")
	fmt.Fprintln(w)

	if len(commits) == 1 {
		fmt.Fprintf(w, "Revision: `%s`\n", shortCommit(commits[0]))
	} else {
		fmt.Fprintf(w, "Revisions: **%d**\n", len(commits))

		for _, c := range commits {
			fmt.Fprintf(w, "  - %s\n", shortCommit(c))
		}
	}

	fmt.Fprintln(w)

	fmt.Fprintln(w, "| Algorithm | Commit | In-Memory | File | Overhead "+
		"| Throughput | Speedup | Runs |")
	fmt.Fprintln(w, "|-----------|--------|-----------|------|----------"+
		"|------------|---------|------|")

	for _, r := range runs {
		speedup := 1.0
		if fastest > 0 && r.MeanMemSeconds() > 0 {
			speedup = r.MeanMemSeconds() / fastest
		}

		commit := shortCommit(r.Commit)
		if r.Dirty {
			commit += "+dirty"
		}

		fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s | %.2fx | %d |\n",
			r.Name,
			commit,
			formatSeconds(r.MeanMemSeconds()),
			formatSeconds(r.MeanFileSeconds()),
			formatRatio(r.Overhead()),
			formatThroughput(opts.DataSize, r.MeanMemSeconds()),
			speedup,
			r.Iterations,
		)
	}

	return nil
}

// GenerateJSON writes runs as JSON to w.
func GenerateJSON(w io.Writer, runs []history.Run) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(runs)
}

// FilterName keeps the runs of one algorithm, matched case-insensitively.
func FilterName(runs []history.Run, name string) []history.Run {
	var out []history.Run

	for _, r := range runs {
		if strings.EqualFold(r.Name, name) {
			out = append(out, r)
		}
	}

	return out
}

// Latest keeps the last logged run of each algorithm, in order of each
// algorithm's first appearance.
func Latest(runs []history.Run) []history.Run {
	index := make(map[string]int)
	var out []history.Run

	for _, r := range runs {
		if i, ok := index[r.Name]; ok {
			out[i] = r
			continue
		}

		index[r.Name] = len(out)
		out = append(out, r)
	}

	return out
}

func distinctCommits(runs []history.Run) []string {
	seen := make(map[string]bool)
	var commits []string

	for _, r := range runs {
		if !seen[r.Commit] {
			seen[r.Commit] = true
			commits = append(commits, r.Commit)
		}
	}

	return commits
}

func findFastest(runs []history.Run) float64 {
	fastest := math.Inf(1)
	for _, r := range runs {
		if m := r.MeanMemSeconds(); m > 0 && m < fastest {
			fastest = m
		}
	}

	if math.IsInf(fastest, 1) {
		return 0
	}

	return fastest
}

func shortCommit(c string) string {
	if len(c) > 12 {
		return c[:12]
	}

	return c
}

func formatSeconds(s float64) string {
	if s < 1 {
		return fmt.Sprintf("%.1fms", s*1000)
	}

	return fmt.Sprintf("%.2fs", s)
}

func formatRatio(r float64) string {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return "-"
	}

	return fmt.Sprintf("%.2fx", r)
}

func formatThroughput(size int64, seconds float64) string {
	if size <= 0 || seconds <= 0 {
		return "-"
	}

	return formatBytes(uint64(float64(size)/seconds)) + "/s"
}

func formatBytes(b uint64) string {
	if b == 0 {
		return "-"
	}

	units := []string{"B", "KB", "MB", "GB", "TB"}
	size := float64(b)
	unit := 0

	for size >= 1024 && unit < len(units)-1 {
		size /= 1024
		unit++
	}

	formatted := fmt.Sprintf("%.1f", size)
	formatted = strings.TrimRight(formatted, "0")
	formatted = strings.TrimRight(formatted, ".")

	return formatted + " " + units[unit]
}
