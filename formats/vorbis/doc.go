// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files into 2-channel timelines.
//
// This package uses github.com/jfreymuth/oggvorbis, which produces float32
// samples directly, so no PCM normalization is needed. Mono streams are
// duplicated to stereo and the expected frame rate contract is enforced the
// same way as for WAV ingestion.
package vorbis
