// Package toc tracks which heading of a rendered article is "active" for
// table-of-contents highlighting. It is a pure state machine: the embedding UI
// feeds it viewport-intersection batches and scroll ticks, and reads back the
// active heading id. No DOM types leak in here, which keeps it testable.
package toc

import (
	"sync"

	"github.com/blog-content-api/internal/models"
)

const (
	// ScrollProbeOffset is added to the raw scroll position before the
	// fallback scan, compensating for the fixed header.
	ScrollProbeOffset = 150

	// HeaderClearance is how far above a heading a jump-to-anchor scroll
	// lands, so the heading is not hidden under the header.
	HeaderClearance = 100
)

// ObserverConfig describes how the embedding UI should configure its viewport
// intersection watcher: ignore the top 20% and bottom 70% of the viewport so
// only a narrow band near the top counts as "visible".
type ObserverConfig struct {
	RootMarginTop    float64
	RootMarginBottom float64
	Thresholds       []float64
}

// DefaultObserverConfig returns the watcher settings the tracker is tuned for.
func DefaultObserverConfig() ObserverConfig {
	return ObserverConfig{
		RootMarginTop:    0.20,
		RootMarginBottom: 0.70,
		Thresholds:       []float64{0, 0.25, 0.5, 0.75, 1},
	}
}

// Intersection is one entry of a viewport-intersection notification batch.
type Intersection struct {
	HeadingID    string
	Ratio        float64
	Intersecting bool
}

// Heading is an anchor plus its vertical offset in the rendered document.
type Heading struct {
	Anchor models.HeadingAnchor
	Top    float64
}

// Tracker maintains the active heading for one rendered article. Both input
// signals funnel into a single set-active write, so whichever fires last in a
// turn wins; there is no torn state to guard against. After Detach all events
// are ignored, which is the correctness requirement for teardown: a late
// callback must not target anchors that no longer exist.
type Tracker struct {
	mu       sync.Mutex
	headings []Heading
	active   string
	detached bool
}

// NewTracker creates a tracker for the given headings in document order and
// bootstraps the first heading as active when at least one exists.
func NewTracker(headings []Heading) *Tracker {
	t := &Tracker{headings: headings}
	if len(headings) > 0 {
		t.active = headings[0].Anchor.Slug
	}
	return t
}

// ActiveHeading returns the currently active heading id, or "" when the
// tracker has no headings.
func (t *Tracker) ActiveHeading() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// ObserveIntersections processes one batch of intersection notifications.
// Among the currently-intersecting anchors the one with the highest ratio
// wins; on equal ratios the first seen in batch order is kept, so identical
// input ordering gives identical results.
func (t *Tracker) ObserveIntersections(batch []Intersection) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.detached {
		return
	}

	var best string
	var bestRatio float64
	for _, entry := range batch {
		if entry.Intersecting && entry.Ratio > bestRatio {
			bestRatio = entry.Ratio
			best = entry.HeadingID
		}
	}
	if best != "" {
		t.active = best
	}
}

// ObserveScroll runs the scroll-position fallback: probe at offset+150 and
// scan headings from last to first, activating the first one whose top is at
// or above the probe. Runs on every scroll event and once on mount; it exists
// because intersection notifications can be sparse, and it may overwrite the
// intersection signal's result.
func (t *Tracker) ObserveScroll(scrollOffset float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.detached {
		return
	}

	probe := scrollOffset + ScrollProbeOffset
	for i := len(t.headings) - 1; i >= 0; i-- {
		if t.headings[i].Top <= probe {
			t.active = t.headings[i].Anchor.Slug
			return
		}
	}
}

// UpdateOffsets refreshes heading positions after a relayout.
func (t *Tracker) UpdateOffsets(tops map[string]float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.detached {
		return
	}
	for i := range t.headings {
		if top, ok := tops[t.headings[i].Anchor.Slug]; ok {
			t.headings[i].Top = top
		}
	}
}

// JumpTarget computes the scroll offset for a smooth jump to the given
// heading: its current bounding position plus the scroll offset, minus the
// fixed header clearance. The second return is false for unknown ids.
func (t *Tracker) JumpTarget(headingID string, scrollOffset float64) (float64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, h := range t.headings {
		if h.Anchor.Slug == headingID {
			boundingTop := h.Top - scrollOffset
			return boundingTop + scrollOffset - HeaderClearance, true
		}
	}
	return 0, false
}

// Detach tears the tracker down. Must be called before the heading list is
// destroyed or replaced; every subsequent event is a no-op.
func (t *Tracker) Detach() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.detached = true
}
