package pipeline

import (
	"fmt"
	"io"
	"sync"
)

// ProgressEvent is a single progress notification emitted during a search.
// Fraction is monotonically non-decreasing across a run, in [0, 1].
type ProgressEvent struct {
	Message  string
	Fraction float64
}

// ProgressFunc receives progress events. Implementations must be safe for
// concurrent use; the orchestrator serializes calls itself.
type ProgressFunc func(ProgressEvent)

// LineWriter returns a ProgressFunc that writes one line per event in the
// form "PROGRESS: <message> | <fraction>".
func LineWriter(w io.Writer) ProgressFunc {
	var mu sync.Mutex
	return func(ev ProgressEvent) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(w, "PROGRESS: %s | %.2f\n", ev.Message, ev.Fraction)
	}
}

// progressTracker clamps fractions so reported progress never moves
// backwards, even when source completions race.
type progressTracker struct {
	mu   sync.Mutex
	last float64
	fn   ProgressFunc
}

func newProgressTracker(fn ProgressFunc) *progressTracker {
	return &progressTracker{fn: fn}
}

func (t *progressTracker) emit(message string, fraction float64) {
	if t.fn == nil {
		return
	}

	t.mu.Lock()
	if fraction < t.last {
		fraction = t.last
	}
	if fraction > 1 {
		fraction = 1
	}
	t.last = fraction
	t.mu.Unlock()

	t.fn(ProgressEvent{Message: message, Fraction: fraction})
}
