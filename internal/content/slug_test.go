package content

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Getting Started", "getting-started"},
		{"punctuation dropped", "Getting Started!", "getting-started"},
		{"colon and double space", "Step  2: Deploy", "step-2-deploy"},
		{"existing hyphens kept", "Already-Hyphenated Title", "already-hyphenated-title"},
		{"hyphen runs collapsed", "Rollup -- Part 2", "rollup-part-2"},
		{"non-ascii dropped", "Café Culture", "caf-culture"},
		{"tabs and newlines as whitespace", "a\tb\nc", "a-b-c"},
		{"empty", "", ""},
		{"only punctuation", "?!&", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSlugifyDeterministic(t *testing.T) {
	in := "The Same Heading, Twice"
	if Slugify(in) != Slugify(in) {
		t.Error("Slugify is not deterministic for identical input")
	}
}

func TestExtractHeadings(t *testing.T) {
	markdown := "## Introduction\n\nSome text.\n\n### Not a TOC entry\n\n## Wrapping Up!\n\nMore text."

	anchors := ExtractHeadings(markdown)
	if len(anchors) != 2 {
		t.Fatalf("Expected 2 anchors, got %d", len(anchors))
	}

	if anchors[0].Text != "Introduction" || anchors[0].Slug != "introduction" {
		t.Errorf("First anchor = %+v, want {Introduction introduction}", anchors[0])
	}
	if anchors[1].Text != "Wrapping Up!" || anchors[1].Slug != "wrapping-up" {
		t.Errorf("Second anchor = %+v, want {Wrapping Up! wrapping-up}", anchors[1])
	}
}

func TestExtractHeadingsNone(t *testing.T) {
	anchors := ExtractHeadings("Just a paragraph.\n\nAnother one.")
	if len(anchors) != 0 {
		t.Errorf("Expected no anchors, got %d", len(anchors))
	}
}
