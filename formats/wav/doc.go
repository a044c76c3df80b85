// SPDX-License-Identifier: EPL-2.0

// Package wav reads WAV files into 2-channel timelines and writes mixed
// buses back out as 16-bit PCM.
//
// It uses the github.com/go-audio library for robust WAV file handling.
//
// Reading enforces the ingestion contract: the file's frame rate must match
// the expected one, mono content is duplicated to stereo, and integer PCM is
// normalized to float64 in [-1, 1] according to its bit depth.
//
// Writing accepts any number of equal-length channels, so both a single
// stereo bus and a stack of buses produced by timeline.Mix can be saved
// directly:
//
//	out, _ := timeline.Mix(plan)
//	err := wav.WriteFile("mix.wav", 48000, out)
package wav
