package review

import "github.com/halcyon-ops/aiscope/internal/tracking"

// windowCapacity bounds the rolling acceptance history. Oldest entries are
// evicted first.
const windowCapacity = 10

// eventWindow is a fixed-capacity FIFO ring over recent acceptance events.
// Memory stays bounded under sustained load; no post-hoc trimming.
type eventWindow struct {
	buf   [windowCapacity]tracking.TrackingEvent
	start int
	count int
}

// push appends ev, evicting the oldest entry when full.
func (w *eventWindow) push(ev tracking.TrackingEvent) {
	if w.count < windowCapacity {
		w.buf[(w.start+w.count)%windowCapacity] = ev
		w.count++
		return
	}
	w.buf[w.start] = ev
	w.start = (w.start + 1) % windowCapacity
}

// events returns the window contents oldest first.
func (w *eventWindow) events() []tracking.TrackingEvent {
	out := make([]tracking.TrackingEvent, 0, w.count)
	for i := 0; i < w.count; i++ {
		out = append(out, w.buf[(w.start+i)%windowCapacity])
	}
	return out
}

func (w *eventWindow) len() int {
	return w.count
}

func (w *eventWindow) reset() {
	w.start = 0
	w.count = 0
}
