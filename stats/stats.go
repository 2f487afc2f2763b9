package stats

import (
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/aybabtme/uniplot/histogram"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	Epsilon = 1e-6
)

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Summary keeps every sample pushed to it. Self-play runs are small enough
// that exact quantiles are affordable.
type Summary struct {
	Name    string
	samples []float64
	sorted  []float64
}

func NewSummary(name string) *Summary {
	return &Summary{Name: name}
}

func (s *Summary) Push(val float64) {
	s.samples = append(s.samples, val)
	s.sorted = nil
}

func (s *Summary) Count() int {
	return len(s.samples)
}

func (s *Summary) Samples() []float64 {
	return s.samples
}

func (s *Summary) Mean() float64 {
	if len(s.samples) == 0 {
		return 0
	}
	return stat.Mean(s.samples, nil)
}

// StdDev is the sample standard deviation.
func (s *Summary) StdDev() float64 {
	if len(s.samples) < 2 {
		return 0
	}
	return stat.StdDev(s.samples, nil)
}

// StandardError returns the standard error of the mean.
func (s *Summary) StandardError() float64 {
	if len(s.samples) == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(len(s.samples)))
}

// ConfidenceInterval returns the half-width of the two-tailed interval
// around the mean at the given confidence percentage.
func (s *Summary) ConfidenceInterval(pct float64) float64 {
	return ZVal(pct) * s.StandardError()
}

// Quantile returns the empirical p-quantile, 0 <= p <= 1.
func (s *Summary) Quantile(p float64) float64 {
	if len(s.samples) == 0 {
		return 0
	}
	if s.sorted == nil {
		s.sorted = slices.Clone(s.samples)
		slices.Sort(s.sorted)
	}
	return stat.Quantile(p, stat.Empirical, s.sorted, nil)
}

func (s *Summary) Min() float64 {
	if len(s.samples) == 0 {
		return 0
	}
	return floats.Min(s.samples)
}

func (s *Summary) Max() float64 {
	if len(s.samples) == 0 {
		return 0
	}
	return floats.Max(s.samples)
}

func (s *Summary) String() string {
	return fmt.Sprintf("%s: n=%d mean=%.2f sd=%.2f min=%.0f median=%.0f max=%.0f",
		s.Name, s.Count(), s.Mean(), s.StdDev(), s.Min(), s.Quantile(0.5), s.Max())
}

// Histogram draws the samples as a text histogram with the given number of
// bins, bars scaled to at most width characters.
func (s *Summary) Histogram(w io.Writer, bins, width int) error {
	if len(s.samples) == 0 {
		_, err := fmt.Fprintf(w, "%s: no samples\n", s.Name)
		return err
	}
	return histogram.Fprint(w, histogram.Hist(bins, s.samples), histogram.Linear(width))
}
