// SPDX-License-Identifier: EPL-2.0

package render

import (
	"github.com/ik5/mixdown/event"
	"github.com/ik5/mixdown/timeline"
)

// Renderer converts a merged note-event document into a 2-channel sample
// timeline at the requested frame rate.
type Renderer interface {
	Render(document event.Document, frameRate int) (timeline.Timeline, error)

	// Programs reports the instrument-name-to-program mapping that must be
	// applied with event.ReplacePrograms before Render is called. A nil
	// mapping means the document passes through untouched and no
	// instruments are dropped.
	Programs() map[string]int
}
