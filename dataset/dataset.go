// Package dataset provisions the random test blob that every workload
// hashes, both in memory and from its on-disk copy.
package dataset

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

const (
	// DefaultSize is the benchmark dataset size, 1 GiB.
	DefaultSize int64 = 1 << 30
	// DefaultPath is the canonical dataset file in the working directory.
	DefaultPath = "test.bin"
)

// ErrProvisioning wraps any I/O failure while reading or writing the
// dataset.
var ErrProvisioning = errors.New("provision test data")

// Dataset is the in-memory buffer and the path of a byte-identical copy.
type Dataset struct {
	Buffer []byte
	Path   string
	// Reused reports whether an existing file was read instead of
	// generating new data.
	Reused bool
}

// Config controls dataset provisioning.
type Config struct {
	Path string
	Size int64
	// Rand is the byte source for new data. Defaults to crypto/rand.
	Rand io.Reader
}

// Provisioner produces or reuses a dataset from a Config.
type Provisioner struct {
	cfg    Config
	logger *slog.Logger
}

// NewProvisioner creates a Provisioner. Empty Path and nil Rand take
// their defaults.
func NewProvisioner(cfg Config, logger *slog.Logger) *Provisioner {
	if cfg.Path == "" {
		cfg.Path = DefaultPath
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.Reader
	}

	return &Provisioner{
		cfg:    cfg,
		logger: logger.With(slog.String("path", cfg.Path)),
	}
}

// Provision returns the dataset. A file at the configured path whose size
// matches exactly is reused without checking its content; anything else is
// replaced with freshly generated bytes.
func (p *Provisioner) Provision() (*Dataset, error) {
	size := p.cfg.Size
	if size < 0 {
		return nil, fmt.Errorf("%w: negative size %d", ErrProvisioning, size)
	}

	info, err := os.Stat(p.cfg.Path)
	switch {
	case err == nil && info.Mode().IsRegular() && info.Size() == size:
		p.logger.Info("found prepared test file", slog.Int64("size", size))

		buf, err := os.ReadFile(p.cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", ErrProvisioning, p.cfg.Path, err)
		}

		return &Dataset{Buffer: buf, Path: p.cfg.Path, Reused: true}, nil

	case err != nil && !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("%w: stat %s: %w", ErrProvisioning, p.cfg.Path, err)
	}

	p.logger.Info("preparing test data, this might take a while",
		slog.Int64("size", size),
	)

	buf, err := p.generate(size)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(p.cfg.Path, buf, 0o644); err != nil {
		return nil, fmt.Errorf("%w: write %s: %w", ErrProvisioning, p.cfg.Path, err)
	}

	p.logger.Info("finished preparing test data")

	return &Dataset{Buffer: buf, Path: p.cfg.Path}, nil
}

func (p *Provisioner) generate(size int64) ([]byte, error) {
	buf := make([]byte, size)
	if _, err := io.ReadFull(p.cfg.Rand, buf); err != nil {
		return nil, fmt.Errorf("%w: generate %d random bytes: %w", ErrProvisioning, size, err)
	}

	return buf, nil
}
