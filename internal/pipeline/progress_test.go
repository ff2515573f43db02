package pipeline

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineWriterFormat(t *testing.T) {
	var buf bytes.Buffer
	fn := LineWriter(&buf)

	fn(ProgressEvent{Message: "Searching 3 sources", Fraction: 0.2})
	fn(ProgressEvent{Message: "Search complete", Fraction: 1.0})

	assert.Equal(t, "PROGRESS: Searching 3 sources | 0.20\nPROGRESS: Search complete | 1.00\n", buf.String())
}

func TestProgressTrackerClampsBackwardMoves(t *testing.T) {
	var got []float64
	tracker := newProgressTracker(func(ev ProgressEvent) {
		got = append(got, ev.Fraction)
	})

	tracker.emit("a", 0.5)
	tracker.emit("b", 0.3) // raced completion, must not regress
	tracker.emit("c", 0.9)
	tracker.emit("d", 1.4) // never exceeds 1.0

	assert.Equal(t, []float64{0.5, 0.5, 0.9, 1.0}, got)
}

func TestProgressTrackerNilCallback(t *testing.T) {
	tracker := newProgressTracker(nil)
	assert.NotPanics(t, func() { tracker.emit("a", 0.5) })
}
