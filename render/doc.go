// SPDX-License-Identifier: EPL-2.0

// Package render turns merged note-event documents into sample timelines.
//
// Two renderers are provided:
//
//   - FluidSynth shells out to the fluidsynth binary with a SoundFont and
//     reads back the WAV it writes.
//   - SoundFont synthesizes in-process with github.com/sinshu/go-meltysynth,
//     which needs no external programs.
//
// Both satisfy the Renderer interface. A renderer whose Programs method
// returns a non-nil mapping expects the caller to run
// event.ReplacePrograms with it first; that both assigns General MIDI
// programs and drops instruments the renderer is not meant to play.
package render
