// Copyright (c) 2025 Friday AI
// SPDX-License-Identifier: MIT

package gemini

import "strings"

// =============================================================================
// AGGREGATOR
// =============================================================================

// Citation identifies a web source backing part of an answer.
type Citation struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// Snapshot is the cumulative state of a streamed answer: all text received
// so far plus the deduplicated citation list, in first-seen order.
type Snapshot struct {
	Text    string
	Sources []Citation
}

// Aggregator folds stream fragments into cumulative snapshots. Text deltas
// are concatenated in arrival order; citations are deduplicated by URI with
// the first-seen title winning. One aggregator serves one assistant turn.
type Aggregator struct {
	text    strings.Builder
	sources []Citation
	seen    map[string]bool
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		seen: make(map[string]bool),
	}
}

// Fold applies one fragment and returns the updated snapshot.
func (a *Aggregator) Fold(frag Fragment) Snapshot {
	a.text.WriteString(frag.TextDelta)
	for _, cit := range frag.Citations {
		if cit.URI == "" || a.seen[cit.URI] {
			continue
		}
		a.seen[cit.URI] = true
		a.sources = append(a.sources, cit)
	}
	return a.Snapshot()
}

// Snapshot returns the current cumulative state. The sources slice is
// copied so callers can hold it across further folds.
func (a *Aggregator) Snapshot() Snapshot {
	sources := make([]Citation, len(a.sources))
	copy(sources, a.sources)
	return Snapshot{
		Text:    a.text.String(),
		Sources: sources,
	}
}

// Text returns the accumulated text.
func (a *Aggregator) Text() string {
	return a.text.String()
}

// HasContent returns true once any text has arrived.
func (a *Aggregator) HasContent() bool {
	return a.text.Len() > 0
}
