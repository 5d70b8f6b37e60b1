// Package progress abstracts live scan progress reporting behind a minimal
// capability interface so the scan engine never depends on a concrete
// renderer.
package progress

// Reporter receives progress updates from a scan. Implementations must be
// safe for concurrent use: workers advance the reporter in parallel.
type Reporter interface {
	// Start begins a task with a known total number of units.
	Start(total int, description string)
	// Advance records n completed units.
	Advance(n int)
	// SetDescription replaces the current status text.
	SetDescription(desc string)
	// Finish completes the task and releases any terminal state.
	Finish()
}

// Nop discards all progress updates. Useful for library callers and tests.
type Nop struct{}

func (Nop) Start(int, string)     {}
func (Nop) Advance(int)           {}
func (Nop) SetDescription(string) {}
func (Nop) Finish()               {}
