package ast

import (
	"fmt"

	"fortio.org/safecast"
)

// TokenRange is a half-open range [Start, End) of indices into File.Tokens.
type TokenRange struct {
	Start uint32
	End   uint32
}

func (r TokenRange) Len() int {
	if r.End <= r.Start {
		return 0
	}
	return int(r.End - r.Start)
}

func (r TokenRange) Empty() bool {
	return r.End <= r.Start
}

// Contains reports whether other lies entirely inside r.
func (r TokenRange) Contains(other TokenRange) bool {
	return other.Start >= r.Start && other.End <= r.End
}

// Overlaps reports whether the two ranges share at least one token.
func (r TokenRange) Overlaps(other TokenRange) bool {
	return r.Start < other.End && other.Start < r.End
}

// RangeOf builds a TokenRange from slice indices.
func RangeOf(start, end int) TokenRange {
	s, err := safecast.Conv[uint32](start)
	if err != nil {
		panic(fmt.Errorf("token index overflow: %w", err))
	}
	e, err := safecast.Conv[uint32](end)
	if err != nil {
		panic(fmt.Errorf("token index overflow: %w", err))
	}
	return TokenRange{Start: s, End: e}
}
