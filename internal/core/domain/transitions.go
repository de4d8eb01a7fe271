package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when a status change is not allowed by the
// entity's transition table. The caller must treat it as a no-op.
var ErrInvalidTransition = errors.New("invalid status transition")

// canTransition checks a transition table. Self-transitions are never allowed.
func canTransition[S comparable](table map[S][]S, from, to S) bool {
	for _, next := range table[from] {
		if next == to {
			return true
		}
	}
	return false
}

func invalidTransitionErr[S comparable](from, to S) error {
	return fmt.Errorf("%w: %v -> %v", ErrInvalidTransition, from, to)
}
