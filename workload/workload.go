// Package workload turns an engine factory and a data source into a timed
// unit of work. An in-memory source is hashed in a single update; a file
// source is streamed through the engine in fixed-size chunks so it never
// sits in memory as a whole.
package workload

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/weiihann/hashbench/engine"
)

// DefaultChunkSize is the read size for file sources, 256 KiB.
const DefaultChunkSize = 256 * 1024

// ErrUnsupportedSource is returned when a workload is built over a source
// that is neither an InMemoryBuffer nor a FilePath.
var ErrUnsupportedSource = errors.New("unsupported workload source")

// Source is the data a workload hashes. The supported variants are
// InMemoryBuffer and FilePath.
type Source interface {
	Kind() string
}

// InMemoryBuffer hashes a buffer that is already resident in memory.
type InMemoryBuffer []byte

// Kind implements Source.
func (InMemoryBuffer) Kind() string { return "in-memory" }

// FilePath hashes the contents of a file, streamed from disk.
type FilePath string

// Kind implements Source.
func (FilePath) Kind() string { return "file" }

// Func is a zero-argument unit of work.
type Func func() error

// Option configures Build and Digest.
type Option func(*options)

type options struct {
	chunkSize int
}

// WithChunkSize sets the read size for file sources. Non-positive values
// keep the default.
func WithChunkSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.chunkSize = n
		}
	}
}

// Build returns a unit of work that creates a fresh engine, feeds it the
// whole source and discards the digest. The source is checked here, not
// when the work runs.
func Build(newEngine engine.Factory, src Source, opts ...Option) (Func, error) {
	hashFn, err := compile(newEngine, src, opts)
	if err != nil {
		return nil, err
	}

	return func() error {
		_, err := hashFn()
		return err
	}, nil
}

// Digest hashes the source once and returns the digest that a workload
// built over the same arguments computes and throws away.
func Digest(newEngine engine.Factory, src Source, opts ...Option) ([]byte, error) {
	hashFn, err := compile(newEngine, src, opts)
	if err != nil {
		return nil, err
	}

	return hashFn()
}

func compile(newEngine engine.Factory, src Source, opts []Option) (func() ([]byte, error), error) {
	if newEngine == nil {
		return nil, errors.New("nil engine factory")
	}

	o := options{chunkSize: DefaultChunkSize}
	for _, opt := range opts {
		opt(&o)
	}

	switch s := src.(type) {
	case InMemoryBuffer:
		return func() ([]byte, error) {
			e := newEngine()
			e.Update(s)

			return e.Finalize(), nil
		}, nil

	case FilePath:
		path := string(s)
		chunkSize := o.chunkSize

		return func() ([]byte, error) {
			return hashFile(newEngine(), path, chunkSize)
		}, nil

	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedSource, src)
	}
}

func hashFile(e engine.Engine, path string, chunkSize int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, chunkSize)

	for {
		n, err := f.Read(buf)
		if n > 0 {
			e.Update(buf[:n])
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	return e.Finalize(), nil
}
