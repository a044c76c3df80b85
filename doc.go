// SPDX-License-Identifier: EPL-2.0

// Package mixdown assembles multi-channel audio renders from note-event
// documents and raw audio files.
//
// A mixing project is a list of inputs. MIDI-like inputs are sequences of
// note-event documents that get merged onto one timeline (with configurable
// gaps, which may be negative for overlaps) and synthesized by a renderer;
// audio inputs are WAV/MP3/Ogg/AIFF files decoded directly. Every input
// yields a 2-channel timeline with a start offset, and the mixer sums the
// timelines into one or more output buses.
//
// # Quick Start
//
//	docs := make([]event.Document, 0, len(paths))
//	for _, path := range paths {
//	    doc, err := smf.ReadFile(path)
//	    ...
//	    docs = append(docs, doc)
//	}
//
//	font, err := render.LoadSoundFont("strings.sf2")
//	...
//	project, err := mixdown.NewProject([]mixdown.Input{
//	    mixdown.MIDIInput{
//	        Documents: docs,
//	        Gaps:      []float64{0.5, -0.25},
//	        Renderer:  render.SoundFont{Font: font},
//	    },
//	    mixdown.AudioInput{Path: "drums.wav", Start: 2.0},
//	}, 48000)
//	...
//	err = project.MixToFile("out.wav", nil, 0, 1.0, nil)
//
// # Buses
//
// Mix groups tracks into independent 2-channel buses that are stacked into
// one result, so a 2-group mix produces 4 channels. Tracks left out of every
// group are dropped from the output.
//
// # Renderers
//
// Rendering is delegated to the render package: FluidSynth invokes an
// external synthesizer binary, SoundFont synthesizes in-process with
// go-meltysynth. Renderers that report a program mapping get their documents
// remapped (and filtered) with event.ReplacePrograms first.
//
// # Errors
//
// Contract violations — wrong gap or gain counts, out-of-range group
// indices, empty or unnamed documents, frame rate mismatches — surface as
// wrapped sentinel errors from the event, timeline and format packages.
// Nothing is silently truncated; the only silent drops are the two
// documented policies (unmapped instruments in ReplacePrograms, ungrouped
// tracks in Mix).
package mixdown
