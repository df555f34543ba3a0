// Copyright (c) 2025 Friday AI
// SPDX-License-Identifier: MIT

package gemini

import "testing"

func TestAggregatorConcatenatesDeltas(t *testing.T) {
	agg := NewAggregator()
	deltas := []string{"The answer", " is", " forty-two."}

	var snap Snapshot
	for _, d := range deltas {
		snap = agg.Fold(Fragment{TextDelta: d})
	}

	want := "The answer is forty-two."
	if snap.Text != want {
		t.Errorf("Text = %q, want %q", snap.Text, want)
	}
}

func TestAggregatorSnapshotGrowsMonotonically(t *testing.T) {
	agg := NewAggregator()
	var prev string
	for _, d := range []string{"a", "b", "", "c", "d"} {
		snap := agg.Fold(Fragment{TextDelta: d})
		if len(snap.Text) < len(prev) || snap.Text[:len(prev)] != prev {
			t.Fatalf("snapshot %q does not extend previous %q", snap.Text, prev)
		}
		prev = snap.Text
	}
}

func TestAggregatorDeduplicatesCitations(t *testing.T) {
	agg := NewAggregator()

	agg.Fold(Fragment{
		TextDelta: "first",
		Citations: []Citation{
			{URI: "https://example.com/a", Title: "First Title"},
			{URI: "https://example.com/b", Title: "B"},
		},
	})
	snap := agg.Fold(Fragment{
		TextDelta: "second",
		Citations: []Citation{
			{URI: "https://example.com/a", Title: "Different Title"},
			{URI: "https://example.com/c", Title: "C"},
		},
	})

	if len(snap.Sources) != 3 {
		t.Fatalf("got %d sources, want 3", len(snap.Sources))
	}

	// First-seen order, first-seen title.
	wantOrder := []Citation{
		{URI: "https://example.com/a", Title: "First Title"},
		{URI: "https://example.com/b", Title: "B"},
		{URI: "https://example.com/c", Title: "C"},
	}
	for i, want := range wantOrder {
		if snap.Sources[i] != want {
			t.Errorf("sources[%d] = %+v, want %+v", i, snap.Sources[i], want)
		}
	}
}

func TestAggregatorSkipsEmptyURIs(t *testing.T) {
	agg := NewAggregator()
	snap := agg.Fold(Fragment{
		Citations: []Citation{{URI: "", Title: "orphan"}},
	})
	if len(snap.Sources) != 0 {
		t.Errorf("got %d sources, want 0", len(snap.Sources))
	}
}

func TestAggregatorSnapshotIsolation(t *testing.T) {
	agg := NewAggregator()
	snap1 := agg.Fold(Fragment{
		TextDelta: "x",
		Citations: []Citation{{URI: "https://example.com/a", Title: "A"}},
	})
	agg.Fold(Fragment{
		Citations: []Citation{{URI: "https://example.com/b", Title: "B"}},
	})

	// The earlier snapshot must not see the later citation.
	if len(snap1.Sources) != 1 {
		t.Errorf("earlier snapshot mutated: %+v", snap1.Sources)
	}
}

func TestAggregatorHasContent(t *testing.T) {
	agg := NewAggregator()
	if agg.HasContent() {
		t.Error("empty aggregator reports content")
	}
	agg.Fold(Fragment{Citations: []Citation{{URI: "https://example.com/a"}}})
	if agg.HasContent() {
		t.Error("citation-only fragment should not count as content")
	}
	agg.Fold(Fragment{TextDelta: "hi"})
	if !agg.HasContent() {
		t.Error("expected content after text delta")
	}
}
