package wav

import "errors"

var (
	ErrNotWavFile            = errors.New("not a WAV file")
	ErrTooManyChannels       = errors.New("only mono and stereo WAV files are supported")
	ErrNoChannels            = errors.New("at least one output channel is required")
	ErrChannelLengthMismatch = errors.New("all output channels must have the same length")
)
