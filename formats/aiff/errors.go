package aiff

import "errors"

var (
	ErrNotAiffFile     = errors.New("not an AIFF file")
	ErrTooManyChannels = errors.New("only mono and stereo AIFF files are supported")
)
