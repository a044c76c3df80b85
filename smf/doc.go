// SPDX-License-Identifier: EPL-2.0

// Package smf persists event documents as Standard MIDI Files.
//
// It uses gitlab.com/gomidi/midi/v2/smf for the wire format. Documents keep
// event times in seconds; this package converts them to ticks at a fixed
// tempo of 120 BPM and 960 ticks per quarter note on write and honors the
// first tempo event on read, so files produced by other tools load with
// correct timings as long as they do not change tempo mid-file.
//
//	doc, err := smf.ReadFile("one.mid")
//	...
//	err = smf.WriteFile("merged.mid", merged)
package smf
