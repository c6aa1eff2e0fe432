package lighting

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidPattern is returned for unknown pattern names and for explicit
// patterns that are not a permutation of the key indices.
var ErrInvalidPattern = errors.New("invalid load pattern")

// DefaultPattern is used when no pattern is configured.
const DefaultPattern = "simple"

var patterns = map[string][]int{
	"simple":   {0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	"diagonal": {0, 4, 1, 8, 5, 2, 12, 9, 6, 3, 13, 10, 7, 14, 11, 15},
	"spiral":   {9, 5, 6, 10, 14, 13, 12, 8, 4, 0, 1, 2, 3, 7, 11, 15},
}

// Pattern returns a copy of a named load pattern.
func Pattern(name string) ([]int, error) {
	p, ok := patterns[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown pattern %q", ErrInvalidPattern, name)
	}
	return slices.Clone(p), nil
}

// PatternNames returns the named patterns, sorted.
func PatternNames() []string {
	names := make([]string, 0, len(patterns))
	for n := range patterns {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// ValidatePattern checks that p visits every key index exactly once.
func ValidatePattern(p []int) error {
	if len(p) != NumPixels {
		return fmt.Errorf("%w: need %d indices, got %d", ErrInvalidPattern, NumPixels, len(p))
	}
	var seen [NumPixels]bool
	for _, idx := range p {
		if idx < 0 || idx >= NumPixels {
			return fmt.Errorf("%w: index %d out of range", ErrInvalidPattern, idx)
		}
		if seen[idx] {
			return fmt.Errorf("%w: index %d repeated", ErrInvalidPattern, idx)
		}
		seen[idx] = true
	}
	return nil
}
