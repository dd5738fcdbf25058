package toc

import (
	"testing"

	"github.com/blog-content-api/internal/models"
)

func testHeadings() []Heading {
	return []Heading{
		{Anchor: models.HeadingAnchor{Text: "Intro", Slug: "intro"}, Top: 0},
		{Anchor: models.HeadingAnchor{Text: "Setup", Slug: "setup"}, Top: 800},
		{Anchor: models.HeadingAnchor{Text: "Deploy", Slug: "deploy"}, Top: 1600},
	}
}

func TestNewTrackerBootstrapsFirstHeading(t *testing.T) {
	tr := NewTracker(testHeadings())
	if got := tr.ActiveHeading(); got != "intro" {
		t.Errorf("ActiveHeading after init = %q, want intro", got)
	}

	empty := NewTracker(nil)
	if got := empty.ActiveHeading(); got != "" {
		t.Errorf("ActiveHeading with no headings = %q, want empty", got)
	}
}

func TestObserveIntersections(t *testing.T) {
	tr := NewTracker(testHeadings())

	tr.ObserveIntersections([]Intersection{
		{HeadingID: "intro", Ratio: 0.25, Intersecting: true},
		{HeadingID: "setup", Ratio: 0.75, Intersecting: true},
		{HeadingID: "deploy", Ratio: 1.0, Intersecting: false},
	})
	if got := tr.ActiveHeading(); got != "setup" {
		t.Errorf("ActiveHeading = %q, want setup (highest intersecting ratio)", got)
	}

	// Equal ratios: the first entry in batch order wins, so identical input
	// always gives identical output.
	tr.ObserveIntersections([]Intersection{
		{HeadingID: "deploy", Ratio: 0.5, Intersecting: true},
		{HeadingID: "intro", Ratio: 0.5, Intersecting: true},
	})
	if got := tr.ActiveHeading(); got != "deploy" {
		t.Errorf("ActiveHeading = %q, want deploy (first seen on tie)", got)
	}

	// A batch with nothing intersecting leaves the active heading alone.
	tr.ObserveIntersections([]Intersection{
		{HeadingID: "intro", Ratio: 0, Intersecting: false},
	})
	if got := tr.ActiveHeading(); got != "deploy" {
		t.Errorf("ActiveHeading = %q, want deploy retained", got)
	}
}

func TestObserveScroll(t *testing.T) {
	tr := NewTracker(testHeadings())

	// Probe lands at scroll+150: 750+150=900 is past "setup" (800) but not
	// "deploy" (1600).
	tr.ObserveScroll(750)
	if got := tr.ActiveHeading(); got != "setup" {
		t.Errorf("ActiveHeading at scroll 750 = %q, want setup", got)
	}

	tr.ObserveScroll(0)
	if got := tr.ActiveHeading(); got != "intro" {
		t.Errorf("ActiveHeading at scroll 0 = %q, want intro", got)
	}

	tr.ObserveScroll(5000)
	if got := tr.ActiveHeading(); got != "deploy" {
		t.Errorf("ActiveHeading at scroll 5000 = %q, want deploy", got)
	}
}

func TestObserveScrollAboveAllHeadings(t *testing.T) {
	headings := testHeadings()
	for i := range headings {
		headings[i].Top += 1000
	}
	tr := NewTracker(headings)

	// No heading is at or above the probe; the bootstrap selection stays.
	tr.ObserveScroll(0)
	if got := tr.ActiveHeading(); got != "intro" {
		t.Errorf("ActiveHeading = %q, want intro retained", got)
	}
}

func TestScrollOverridesIntersection(t *testing.T) {
	tr := NewTracker(testHeadings())

	tr.ObserveIntersections([]Intersection{{HeadingID: "deploy", Ratio: 1, Intersecting: true}})
	tr.ObserveScroll(0)
	if got := tr.ActiveHeading(); got != "intro" {
		t.Errorf("ActiveHeading = %q, want intro (last signal wins)", got)
	}
}

func TestUpdateOffsets(t *testing.T) {
	tr := NewTracker(testHeadings())

	tr.UpdateOffsets(map[string]float64{"setup": 200})
	tr.ObserveScroll(100)
	if got := tr.ActiveHeading(); got != "setup" {
		t.Errorf("ActiveHeading after relayout = %q, want setup", got)
	}
}

func TestJumpTarget(t *testing.T) {
	tr := NewTracker(testHeadings())

	target, ok := tr.JumpTarget("setup", 200)
	if !ok {
		t.Fatal("JumpTarget for known heading returned ok=false")
	}
	if target != 700 {
		t.Errorf("JumpTarget = %v, want 700 (top 800 minus header clearance)", target)
	}

	if _, ok := tr.JumpTarget("missing", 0); ok {
		t.Error("JumpTarget for unknown heading returned ok=true")
	}
}

func TestDetachIgnoresLateEvents(t *testing.T) {
	tr := NewTracker(testHeadings())
	tr.Detach()

	tr.ObserveIntersections([]Intersection{{HeadingID: "deploy", Ratio: 1, Intersecting: true}})
	tr.ObserveScroll(5000)
	tr.UpdateOffsets(map[string]float64{"intro": 9999})

	if got := tr.ActiveHeading(); got != "intro" {
		t.Errorf("ActiveHeading after detach = %q, want intro unchanged", got)
	}
}
