// SPDX-License-Identifier: EPL-2.0

package event

import "errors"

var (
	ErrGapCount          = errors.New("gaps count must be one less than documents count")
	ErrEmptyDocument     = errors.New("document has no sounding notes")
	ErrUnnamedInstrument = errors.New("instrument name must not be empty")
)
