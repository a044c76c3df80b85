// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files into 2-channel timelines.
//
// This package uses github.com/hajimehoshi/go-mp3, which always produces
// 16-bit stereo output, so no mono duplication is needed. The expected
// frame rate contract is enforced the same way as for WAV ingestion.
package mp3
