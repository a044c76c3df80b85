// SPDX-License-Identifier: EPL-2.0

package mixdown

import "errors"

var (
	ErrUnknownFormat = errors.New("no decoder registered for file extension")
	ErrNilRenderer   = errors.New("renderer must not be nil")
)
