package engine

import (
	"fmt"
	"math"
)

// Cascade chains resampling passes so that ratios beyond the single-pass
// limits can be reached. Every pass uses the same ratio, which lies within
// [1/256, 256].
type Cascade struct {
	ratio  float64
	stages []*Resampler
}

// NewCascade designs the passes for an overall output/input ratio. Any finite
// positive ratio is accepted.
func NewCascade(ratio float64, quality Quality) (*Cascade, error) {
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) || ratio <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRatio, ratio)
	}

	factors := splitRatio(ratio)
	c := &Cascade{ratio: ratio, stages: make([]*Resampler, len(factors))}
	for i, f := range factors {
		r, err := NewResampler(f, quality)
		if err != nil {
			return nil, fmt.Errorf("pass %d of %d: %w", i+1, len(factors), err)
		}
		c.stages[i] = r
	}

	return c, nil
}

// Ratio returns the overall output/input ratio.
func (c *Cascade) Ratio() float64 { return c.ratio }

// Stages returns the number of passes.
func (c *Cascade) Stages() int { return len(c.stages) }

// Pass returns the resampler for pass i.
func (c *Cascade) Pass(i int) *Resampler { return c.stages[i] }

// Process runs input through every pass in order.
func (c *Cascade) Process(input []float64) []float64 {
	out := input
	for _, r := range c.stages {
		out = r.Process(out)
	}
	return out
}

// splitRatio returns the fewest equal factors, each within single-pass
// limits, whose product is ratio.
func splitRatio(ratio float64) []float64 {
	passes := int(math.Ceil(math.Abs(math.Log(ratio)) / math.Log(maxRatio)))
	if passes <= 1 {
		return []float64{ratio}
	}

	// Rounding in Pow must not push a pass past the limits.
	f := min(max(math.Pow(ratio, 1/float64(passes)), minRatio), maxRatio)
	factors := make([]float64, passes)
	for i := range factors {
		factors[i] = f
	}
	return factors
}
