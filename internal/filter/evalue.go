package filter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkarolyi/genefam/internal/model"
)

// EValueFilter accepts or rejects assignments based on per-source
// E-value thresholds with a fallback default.
type EValueFilter struct {
	Default    float64
	Thresholds map[string]float64
}

// NewEValueFilter returns a filter that accepts everything.
func NewEValueFilter() *EValueFilter {
	return &EValueFilter{
		Default:    math.Inf(1),
		Thresholds: make(map[string]float64),
	}
}

// SetThreshold sets the E-value threshold for one data source.
func (f *EValueFilter) SetThreshold(source string, threshold float64) {
	f.Thresholds[source] = threshold
}

// Accepts reports whether the assignment passes the filter. An
// assignment without a known E-value always passes; the thresholds
// only apply where the source reported one.
func (f *EValueFilter) Accepts(a model.Assignment) bool {
	if !a.HasEValue {
		return true
	}
	threshold, ok := f.Thresholds[a.Source]
	if !ok {
		threshold = f.Default
	}
	return a.EValue <= threshold
}

// ParseEValueFilter builds a filter from a semicolon-separated list of
// source=threshold pairs; a bare number sets the default threshold.
// For instance "HMMPfam=0.001;HMMSmart=0.005;0.007".
func ParseEValueFilter(description string) (*EValueFilter, error) {
	result := NewEValueFilter()
	for _, part := range strings.Split(description, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if source, value, found := strings.Cut(part, "="); found {
			threshold, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid E-value threshold %q for source %s: %w", value, source, err)
			}
			result.SetThreshold(strings.TrimSpace(source), threshold)
			continue
		}
		threshold, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid default E-value threshold %q: %w", part, err)
		}
		result.Default = threshold
	}
	return result, nil
}
