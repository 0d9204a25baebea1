// Package history keeps the append-only CSV log of benchmark runs, one row
// per algorithm per session, tagged with the source revision it measured.
package history

import (
	"fmt"
	"strconv"
)

// DefaultPath is the result log in the working directory.
const DefaultPath = "bench_history_v2.csv"

// Header is the fixed column order of the result log.
var Header = []string{
	"name",
	"commit",
	"dirty",
	"1GB in-memory time (s)",
	"1GB file time (s)",
	"number of runs",
}

// Run is one measured algorithm. Both times are totals over Iterations
// repetitions; divide by Iterations for a mean.
type Run struct {
	Name            string  `json:"name"`
	Commit          string  `json:"commit"`
	Dirty           bool    `json:"dirty"`
	MemTimeSeconds  float64 `json:"mem_time_seconds"`
	FileTimeSeconds float64 `json:"file_time_seconds"`
	Iterations      int     `json:"iterations"`
}

// MeanMemSeconds returns the average in-memory time per iteration.
func (r Run) MeanMemSeconds() float64 {
	if r.Iterations <= 0 {
		return 0
	}

	return r.MemTimeSeconds / float64(r.Iterations)
}

// MeanFileSeconds returns the average file time per iteration.
func (r Run) MeanFileSeconds() float64 {
	if r.Iterations <= 0 {
		return 0
	}

	return r.FileTimeSeconds / float64(r.Iterations)
}

// Overhead is the streaming overhead multiplier, file time over in-memory
// time.
func (r Run) Overhead() float64 {
	return r.FileTimeSeconds / r.MemTimeSeconds
}

func (r Run) record() []string {
	return []string{
		r.Name,
		r.Commit,
		strconv.FormatBool(r.Dirty),
		strconv.FormatFloat(r.MemTimeSeconds, 'f', -1, 64),
		strconv.FormatFloat(r.FileTimeSeconds, 'f', -1, 64),
		strconv.Itoa(r.Iterations),
	}
}

func parseRecord(rec []string) (Run, error) {
	if len(rec) != len(Header) {
		return Run{}, fmt.Errorf("want %d fields, got %d", len(Header), len(rec))
	}

	// ParseBool also accepts the True/False spelling of older logs.
	dirty, err := strconv.ParseBool(rec[2])
	if err != nil {
		return Run{}, fmt.Errorf("dirty: %w", err)
	}

	mem, err := strconv.ParseFloat(rec[3], 64)
	if err != nil {
		return Run{}, fmt.Errorf("in-memory time: %w", err)
	}

	file, err := strconv.ParseFloat(rec[4], 64)
	if err != nil {
		return Run{}, fmt.Errorf("file time: %w", err)
	}

	iterations, err := strconv.Atoi(rec[5])
	if err != nil {
		return Run{}, fmt.Errorf("number of runs: %w", err)
	}

	return Run{
		Name:            rec[0],
		Commit:          rec[1],
		Dirty:           dirty,
		MemTimeSeconds:  mem,
		FileTimeSeconds: file,
		Iterations:      iterations,
	}, nil
}
