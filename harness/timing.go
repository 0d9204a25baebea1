package harness

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidIterationCount is returned for a non-positive iteration count.
var ErrInvalidIterationCount = errors.New("iteration count must be positive")

// TimeRepeated runs work sequentially iterations times and returns the
// wall-clock span from just before the first call to just after the last.
// Nothing is discarded or averaged. An error from work stops the loop.
func TimeRepeated(work func() error, iterations int) (time.Duration, error) {
	if iterations <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidIterationCount, iterations)
	}

	start := time.Now()

	for i := 0; i < iterations; i++ {
		if err := work(); err != nil {
			return 0, fmt.Errorf("iteration %d: %w", i+1, err)
		}
	}

	return time.Since(start), nil
}
