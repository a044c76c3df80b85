// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files into 2-channel timelines.
//
// This package uses github.com/go-audio/aiff to decode AIFF files. Integer
// PCM is normalized to float64 by bit depth, mono content is duplicated to
// stereo, and the expected frame rate contract is enforced the same way as
// for WAV ingestion.
package aiff
