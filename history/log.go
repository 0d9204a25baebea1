package history

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// ErrRecording wraps failures to initialize or append to the result log.
var ErrRecording = errors.New("record benchmark result")

// EnsureInitialized creates the log with its header row if no file exists
// at path. An existing file is left untouched.
func EnsureInitialized(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrRecording, path, err)
	}

	if err := writeRecord(f, Header); err != nil {
		f.Close()
		return fmt.Errorf("%w: write header to %s: %w", ErrRecording, path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrRecording, path, err)
	}

	return nil
}

// Append writes exactly one row for run to the end of the log.
func Append(path string, run Run) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", ErrRecording, path, err)
	}

	if err := writeRecord(f, run.record()); err != nil {
		f.Close()
		return fmt.Errorf("%w: append %s to %s: %w", ErrRecording, run.Name, path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrRecording, path, err)
	}

	return nil
}

func writeRecord(w io.Writer, rec []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(rec); err != nil {
		return err
	}

	cw.Flush()

	return cw.Error()
}

// Read returns every row of the log in file order. The header row must
// match Header.
func Read(path string) ([]Run, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return parse(f)
}

func parse(r io.Reader) ([]Run, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty log: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	for i, col := range Header {
		if header[i] != col {
			return nil, fmt.Errorf("header column %d = %q, want %q", i, header[i], col)
		}
	}

	var runs []Run

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		run, err := parseRecord(rec)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		runs = append(runs, run)
	}

	return runs, nil
}
