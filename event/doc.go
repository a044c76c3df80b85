// SPDX-License-Identifier: EPL-2.0

// Package event models note-event documents and the operations that prepare
// them for rendering: sequential merging and program remapping.
//
// # Documents
//
// A Document is a set of named instrument tracks, each carrying notes,
// controller events and pitch bends with times in seconds. Notes with
// velocity 0 are silence markers rather than sounding notes.
//
// # Merging
//
// Merge lays documents out one after another on a single timeline:
//
//	merged, err := event.Merge(docs, []float64{0.5, -0.25}, 0, 1.0)
//
// The per-pair gaps may be negative, which overlaps neighbouring documents.
// Same-named instruments are unified, and every output track ends with a
// trailing silence marker pair so renderers produce the full duration.
//
// # Program Remapping
//
// ReplacePrograms selects and reprograms instruments before rendering:
//
//	wanted := map[string]int{"lead": 0, "bass": 33}
//	doc = event.ReplacePrograms(doc, wanted)
//
// Instruments missing from the mapping are dropped.
package event
