package store

import (
	"time"

	"x402-gate/domain/interfaces"
)

// systemClock implements the Clock interface on the wall clock.
type systemClock struct{}

// NewSystemClock creates the production clock.
func NewSystemClock() interfaces.Clock {
	return systemClock{}
}

// Now returns the current time.
func (systemClock) Now() time.Time {
	return time.Now()
}
