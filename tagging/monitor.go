package tagging

import "time"

// Refinement outcomes reported to a Monitor.
const (
	OutcomeRefined  = "refined"
	OutcomeFallback = "fallback"
)

// Monitor observes tagging. Implementations must be safe for concurrent use.
type Monitor interface {
	// Tagged is called once per tagged grant with the number of tags
	// assigned and the total time taken, refinement included.
	Tagged(tags int, elapsed time.Duration)
	// Refined is called after every refinement attempt.
	Refined(outcome string)
}

type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (noopMonitor) Tagged(_ int, _ time.Duration) {}
func (noopMonitor) Refined(_ string)              {}
