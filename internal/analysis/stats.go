package analysis

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrTooFewSamples indicates that too little of the trajectory is left
// after the equilibration cut.
var ErrTooFewSamples = errors.New("analysis: too few samples")

type Summary struct {
	Samples int
	Mean    float64
	StdDev  float64
	Min     float64
	Max     float64
	// StdErr is the block-averaged standard error of Mean; Blocks is the
	// number of blocks it was computed from.
	StdErr float64
	Blocks int
}

// Summarize describes trajectory[skip:]. blocks is the number of blocks used
// for the standard error.
func Summarize(trajectory []float64, skip, blocks int) (Summary, error) {
	xs, err := production(trajectory, skip, 2)
	if err != nil {
		return Summary{}, err
	}

	mean, std := stat.MeanStdDev(xs, nil)
	s := Summary{
		Samples: len(xs),
		Mean:    mean,
		StdDev:  std,
		Min:     floats.Min(xs),
		Max:     floats.Max(xs),
	}

	if blocks > len(xs) {
		blocks = len(xs)
	}
	s.StdErr, err = BlockAverage(xs, 0, blocks)
	if err != nil {
		return Summary{}, err
	}
	s.Blocks = blocks
	return s, nil
}

// BlockAverage splits trajectory[skip:] into blocks equal-length blocks,
// dropping the remainder at the end, and returns the standard error of the
// block means.
func BlockAverage(trajectory []float64, skip, blocks int) (float64, error) {
	if blocks < 2 {
		return 0, fmt.Errorf("%w: need at least 2 blocks, got %d", ErrTooFewSamples, blocks)
	}
	xs, err := production(trajectory, skip, blocks)
	if err != nil {
		return 0, err
	}

	size := len(xs) / blocks
	means := make([]float64, blocks)
	for b := range means {
		means[b] = stat.Mean(xs[b*size:(b+1)*size], nil)
	}

	return stat.StdDev(means, nil) / math.Sqrt(float64(blocks)), nil
}

// CumulativeMean returns the running average of trajectory[skip:].
func CumulativeMean(trajectory []float64, skip int) []float64 {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(trajectory) {
		return []float64{}
	}

	sums := floats.CumSum(make([]float64, len(trajectory)-skip), trajectory[skip:])
	for i := range sums {
		sums[i] /= float64(i + 1)
	}
	return sums
}

// Autocorrelation returns the Pearson correlation between trajectory[skip:]
// and itself shifted by lag.
func Autocorrelation(trajectory []float64, skip, lag int) (float64, error) {
	if lag < 0 {
		return 0, fmt.Errorf("analysis: negative lag %d", lag)
	}
	xs, err := production(trajectory, skip, lag+2)
	if err != nil {
		return 0, err
	}
	return stat.Correlation(xs[:len(xs)-lag], xs[lag:], nil), nil
}

func production(trajectory []float64, skip, need int) ([]float64, error) {
	if skip < 0 {
		skip = 0
	}
	n := len(trajectory) - skip
	if n < need {
		return nil, fmt.Errorf("%w: %d left after skipping %d, need %d", ErrTooFewSamples, max(n, 0), skip, need)
	}
	return trajectory[skip:], nil
}
