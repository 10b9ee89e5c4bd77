package schema

import "fmt"

// GradeBand is one entry of an ordered grade scale. A score belongs to
// the band when it is >= Min and below the Min of the band above it, so
// bands are closed-open and boundary values map to the higher band.
type GradeBand struct {
	Letter string  `json:"letter"`
	Min    float64 `json:"min"`
}

// GradeScale is an ordered set of bands, highest first, that partitions
// [0,100] with no gaps or overlaps. The lowest band must start at 0 so
// Classify is total over the domain.
type GradeScale []GradeBand

// DefaultGradeScale returns the standard five-band scale. Operators can
// retune the thresholds through the `scale:` section of the config file
// without touching aggregation logic.
func DefaultGradeScale() GradeScale {
	return GradeScale{
		{Letter: "A", Min: 80},
		{Letter: "B", Min: 70},
		{Letter: "C", Min: 60},
		{Letter: "D", Min: 50},
		{Letter: "F", Min: 0},
	}
}

// Validate checks that the scale is non-empty, strictly descending,
// within [0,100], and anchored at 0.
func (gs GradeScale) Validate() error {
	if len(gs) == 0 {
		return fmt.Errorf("grade scale must have at least one band")
	}
	prev := 101.0
	for _, b := range gs {
		if b.Letter == "" {
			return fmt.Errorf("grade band at min %.1f has no letter", b.Min)
		}
		if b.Min < 0 || b.Min > 100 {
			return fmt.Errorf("grade band %s has min %.1f outside [0,100]", b.Letter, b.Min)
		}
		if b.Min >= prev {
			return fmt.Errorf("grade band %s (min %.1f) is not below the band above it", b.Letter, b.Min)
		}
		prev = b.Min
	}
	if gs[len(gs)-1].Min != 0 {
		return fmt.Errorf("lowest grade band must start at 0, got %.1f", gs[len(gs)-1].Min)
	}
	return nil
}

// Classify maps a normalized score to a letter grade. It is a total
// function over [0,100] for a valid scale; out-of-range inputs are
// clamped to the nearest band.
func (gs GradeScale) Classify(score float64) string {
	for _, b := range gs {
		if score >= b.Min {
			return b.Letter
		}
	}
	// score < 0 after a caller bug; the lowest band still applies
	return gs[len(gs)-1].Letter
}
