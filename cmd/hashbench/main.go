// Package main provides the CLI entry point for hashbench, a hash function
// throughput benchmark that logs results per source revision.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/weiihann/hashbench/dataset"
	"github.com/weiihann/hashbench/engine"
	"github.com/weiihann/hashbench/harness"
	"github.com/weiihann/hashbench/history"
	"github.com/weiihann/hashbench/report"
	"github.com/weiihann/hashbench/vcs"
	"github.com/weiihann/hashbench/workload"
)

func main() {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	root := newRootCmd(logger, level)
	if err := root.Execute(); err != nil {
		logger.Error("hashbench failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger, level *slog.LevelVar) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "hashbench",
		Short: "Hash function throughput benchmark",
		Long: `Hashbench measures how fast each hash function digests the same random
dataset held in memory and streamed from disk, and appends the timings to a
CSV history tagged with the current git revision.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if verbose {
				level.Set(slog.LevelDebug)
			}
		},
	}

	root.PersistentFlags().BoolVar(&verbose, "verbose", false,
		"Enable debug logging")

	root.AddCommand(newRunCmd(logger))
	root.AddCommand(newListCmd())
	root.AddCommand(newReportCmd())

	return root
}

type runConfig struct {
	selection  string
	iterations int
	size       int64
	dataPath   string
	logPath    string
	chunkSize  int
	repoDir    string
}

func newRunCmd(logger *slog.Logger) *cobra.Command {
	var cfg runConfig

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Benchmark hash functions and append the results",
		Long: `Provision the test dataset (reusing test.bin when its size matches), time
each selected hash function in memory and from disk, and append one row per
function to the result log.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBenchmark(cmd.Context(), logger, cmd.OutOrStdout(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfg.selection, "select", "s", string(engine.SelectAll),
		"Algorithms to run: all, sea, sha1, or any name from 'hashbench list'")
	flags.IntVarP(&cfg.iterations, "iterations", "n", 3,
		"Repetitions per workload")
	flags.Int64Var(&cfg.size, "size", dataset.DefaultSize,
		"Test dataset size in bytes")
	flags.StringVar(&cfg.dataPath, "data", dataset.DefaultPath,
		"Path of the test dataset file")
	flags.StringVar(&cfg.logPath, "log", history.DefaultPath,
		"Path of the CSV result log")
	flags.IntVar(&cfg.chunkSize, "chunk-size", workload.DefaultChunkSize,
		"Read size in bytes when streaming the dataset file")
	flags.StringVar(&cfg.repoDir, "repo", ".",
		"Directory whose git revision tags the results")

	return cmd
}

func runBenchmark(
	ctx context.Context,
	logger *slog.Logger,
	out io.Writer,
	cfg runConfig,
) error {
	driver := harness.NewDriver(
		engine.Default(),
		vcs.NewGit(cfg.repoDir),
		out,
		logger,
	)

	summary, err := driver.Run(ctx, harness.Config{
		Selection:  engine.Selection(cfg.selection),
		Iterations: cfg.iterations,
		DataPath:   cfg.dataPath,
		DataSize:   cfg.size,
		LogPath:    cfg.logPath,
		ChunkSize:  cfg.chunkSize,
	})
	if err != nil {
		return err
	}

	if summary.RecordFailures > 0 {
		logger.WarnContext(ctx, "some results were not recorded",
			slog.Int("failed", summary.RecordFailures),
			slog.String("log", cfg.logPath),
		)
	}

	return nil
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available hash functions in benchmark order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry := engine.Default()
			out := cmd.OutOrStdout()

			for _, name := range registry.Names() {
				if name == engine.FastHashName {
					fmt.Fprintf(out, "%s (fast hash, --select %s)\n", name, engine.SelectFastHash)
					continue
				}

				fmt.Fprintln(out, name)
			}

			return nil
		},
	}
}

func newReportCmd() *cobra.Command {
	var (
		logPath    string
		name       string
		size       int64
		latest     bool
		outputJSON bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize the result log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runs, err := history.Read(logPath)
			if err != nil {
				return fmt.Errorf("read result log: %w", err)
			}

			if name != "" {
				runs = report.FilterName(runs, name)
			}
			if latest {
				runs = report.Latest(runs)
			}

			if outputJSON {
				if err := report.GenerateJSON(cmd.OutOrStdout(), runs); err != nil {
					return fmt.Errorf("generate JSON report: %w", err)
				}

				return nil
			}

			if err := report.Generate(cmd.OutOrStdout(), runs, report.Options{
				DataSize: size,
			}); err != nil {
				return fmt.Errorf("generate report: %w", err)
			}

			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&logPath, "log", history.DefaultPath,
		"Path of the CSV result log")
	flags.StringVar(&name, "name", "",
		"Only report this algorithm")
	flags.Int64Var(&size, "size", dataset.DefaultSize,
		"Dataset size the runs were measured with, for throughput")
	flags.BoolVar(&latest, "latest", false,
		"Only report the most recent run of each algorithm")
	flags.BoolVar(&outputJSON, "json", false,
		"Output runs as JSON instead of a table")

	return cmd
}
