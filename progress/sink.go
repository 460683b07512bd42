// Package progress provides the sinks through which pipeline stages report
// their progress. Every sink is safe for concurrent use.
package progress

// Sink receives progress updates from a running stage.
type Sink interface {
	// Advance the completed amount by the given (possibly fractional)
	// number of units.
	Advance(amount float64)

	// Replace the stage description shown next to the progress row.
	SetDescription(stage string)

	// Register a nested unit of work with its own total and return the
	// sink that tracks it.
	AddSubtask(label string, total float64) Sink
}

type nopSink struct{}

// Nop is a sink that discards every update.
var Nop Sink = nopSink{}

func (nopSink) Advance(float64)                   {}
func (nopSink) SetDescription(string)             {}
func (n nopSink) AddSubtask(string, float64) Sink { return n }
