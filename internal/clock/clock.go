// Package clock supplies the single injectable time source the defaults
// engine uses to stamp the athena.generated label. Keeping it behind an
// interface is what lets the emitter's determinism contract hold for
// every other byte while still recording a real compile date.
package clock

import "time"

// Clock returns the current time for the purpose of enrichment.
type Clock interface {
	Now() time.Time
}

// System is the production Clock, backed by time.Now.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed is a Clock that always returns the same instant, for golden-output
// tests that need byte-for-byte determinism on athena.generated.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time { return f.At }
