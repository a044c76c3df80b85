package smf

import "errors"

var (
	ErrTimeFormat = errors.New("only metric (ticks per quarter note) time format is supported")
)
