// Package harness times hash workloads and drives a benchmark session from
// revision lookup through the appended result rows.
package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/weiihann/hashbench/dataset"
	"github.com/weiihann/hashbench/engine"
	"github.com/weiihann/hashbench/history"
	"github.com/weiihann/hashbench/vcs"
	"github.com/weiihann/hashbench/workload"
)

// Config holds parameters for a single benchmark session.
type Config struct {
	Selection  engine.Selection
	Iterations int
	DataPath   string
	DataSize   int64
	LogPath    string
	ChunkSize  int
	// Rand overrides the dataset random source.
	Rand io.Reader
}

// Summary is what a session measured. Runs includes rows whose recording
// failed; RecordFailures counts them.
type Summary struct {
	Runs           []history.Run
	RecordFailures int
}

// Driver runs benchmark sessions. Everything runs sequentially on the
// calling goroutine so timings of different algorithms stay comparable.
type Driver struct {
	registry *engine.Registry
	resolver vcs.Resolver
	out      io.Writer
	logger   *slog.Logger
}

// NewDriver creates a Driver. Per-algorithm reports are written to out.
func NewDriver(
	registry *engine.Registry,
	resolver vcs.Resolver,
	out io.Writer,
	logger *slog.Logger,
) *Driver {
	return &Driver{
		registry: registry,
		resolver: resolver,
		out:      out,
		logger:   logger,
	}
}

// Run benchmarks every selected algorithm against the in-memory and the
// file-streamed dataset and appends one row per algorithm to the log.
// Failing to record a row is logged and skipped; every other failure ends
// the session.
func (d *Driver) Run(ctx context.Context, cfg Config) (*Summary, error) {
	if cfg.Iterations <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidIterationCount, cfg.Iterations)
	}

	logPath := cfg.LogPath
	if logPath == "" {
		logPath = history.DefaultPath
	}

	algorithms, err := d.registry.Algorithms(cfg.Selection)
	if err != nil {
		return nil, err
	}

	rev, err := d.resolver.Resolve(ctx)
	if err != nil {
		if !errors.Is(err, vcs.ErrRevisionResolution) {
			err = fmt.Errorf("%w: %w", vcs.ErrRevisionResolution, err)
		}

		return nil, err
	}

	d.logger.InfoContext(ctx, "starting benchmark",
		slog.String("selection", string(cfg.Selection)),
		slog.Int("algorithms", len(algorithms)),
		slog.Int("iterations", cfg.Iterations),
		slog.String("commit", rev.Commit),
		slog.Bool("dirty", rev.Dirty),
	)

	if err := history.EnsureInitialized(logPath); err != nil {
		return nil, err
	}

	ds, err := dataset.NewProvisioner(dataset.Config{
		Path: cfg.DataPath,
		Size: cfg.DataSize,
		Rand: cfg.Rand,
	}, d.logger).Provision()
	if err != nil {
		return nil, err
	}

	summary := &Summary{Runs: make([]history.Run, 0, len(algorithms))}

	for _, alg := range algorithms {
		run, err := d.measure(ctx, alg, ds, rev, cfg)
		if err != nil {
			return summary, fmt.Errorf("measure %s: %w", alg.Name, err)
		}

		summary.Runs = append(summary.Runs, run)

		if err := history.Append(logPath, run); err != nil {
			summary.RecordFailures++
			d.logger.ErrorContext(ctx, "failed to record result",
				slog.String("algorithm", alg.Name),
				slog.String("error", err.Error()),
			)
		}

		fmt.Fprintf(d.out, "%s: in-memory %.6fs, file %.6fs, file/in-memory %.2fx\n",
			run.Name, run.MemTimeSeconds, run.FileTimeSeconds, run.Overhead(),
		)
	}

	d.logger.InfoContext(ctx, "benchmark complete",
		slog.Int("measured", len(summary.Runs)),
		slog.Int("record_failures", summary.RecordFailures),
	)

	return summary, nil
}

func (d *Driver) measure(
	ctx context.Context,
	alg engine.Descriptor,
	ds *dataset.Dataset,
	rev vcs.Revision,
	cfg Config,
) (history.Run, error) {
	logger := d.logger.With(slog.String("algorithm", alg.Name))
	logger.InfoContext(ctx, "measuring")

	memWork, err := workload.Build(alg.New, workload.InMemoryBuffer(ds.Buffer))
	if err != nil {
		return history.Run{}, err
	}

	memTime, err := TimeRepeated(memWork, cfg.Iterations)
	if err != nil {
		return history.Run{}, fmt.Errorf("in-memory: %w", err)
	}

	fileWork, err := workload.Build(alg.New, workload.FilePath(ds.Path),
		workload.WithChunkSize(cfg.ChunkSize),
	)
	if err != nil {
		return history.Run{}, err
	}

	fileTime, err := TimeRepeated(fileWork, cfg.Iterations)
	if err != nil {
		return history.Run{}, fmt.Errorf("file: %w", err)
	}

	logger.InfoContext(ctx, "measured",
		slog.Duration("mem_time", memTime),
		slog.Duration("file_time", fileTime),
	)

	return history.Run{
		Name:            alg.Name,
		Commit:          rev.Commit,
		Dirty:           rev.Dirty,
		MemTimeSeconds:  memTime.Seconds(),
		FileTimeSeconds: fileTime.Seconds(),
		Iterations:      cfg.Iterations,
	}, nil
}
