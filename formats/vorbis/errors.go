package vorbis

import "errors"

var (
	ErrTooManyChannels = errors.New("only mono and stereo vorbis streams are supported")
)
