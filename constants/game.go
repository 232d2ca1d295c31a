package constants

import "time"

// Game Loop Timing Constants
const (
	// TickInterval is the gravity cadence, six ticks per second
	TickInterval = time.Second / 6

	// EventBufferSize is the capacity of the driver's iteration channel
	EventBufferSize = 64
)
