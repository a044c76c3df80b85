package render

import "errors"

var (
	ErrNilSoundFont = errors.New("soundfont is not loaded")
)
