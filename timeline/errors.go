// SPDX-License-Identifier: EPL-2.0

package timeline

import "errors"

var (
	ErrGainCount          = errors.New("gains count must match tracks count")
	ErrIndexOutOfRange    = errors.New("track index out of range")
	ErrNegativeStart      = errors.New("track start time must not be negative")
	ErrSampleRateMismatch = errors.New("sample rate differs from expected")
)
