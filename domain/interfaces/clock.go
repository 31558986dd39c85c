package interfaces

import "time"

// Clock abstracts wall-clock time for components that enforce deadlines, so
// tests can simulate expiry instead of sleeping.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}
