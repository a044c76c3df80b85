// SPDX-License-Identifier: EPL-2.0

package mixdown

import (
	"fmt"
	"io"

	"github.com/ik5/mixdown/event"
	"github.com/ik5/mixdown/formats/wav"
	"github.com/ik5/mixdown/render"
	"github.com/ik5/mixdown/timeline"
)

// Input is one source of a project track. Inputs are independent of each
// other, so callers may run CreateTrack for different inputs concurrently
// and only need to gather the results before mixing.
type Input interface {
	CreateTrack(frameRate int) (timeline.Timeline, error)
}

// MIDIInput builds a track from note-event documents: the documents are
// merged sequentially with the given gaps, optionally program-remapped for
// the renderer, and synthesized. Start places the rendered timeline within
// the mix.
type MIDIInput struct {
	Documents       []event.Document
	Gaps            []float64
	OpeningSilence  float64
	TrailingSilence float64
	Renderer        render.Renderer
	Start           float64
}

func (in MIDIInput) CreateTrack(frameRate int) (timeline.Timeline, error) {
	if in.Renderer == nil {
		return timeline.Timeline{}, ErrNilRenderer
	}
	merged, err := event.Merge(in.Documents, in.Gaps, in.OpeningSilence, in.TrailingSilence)
	if err != nil {
		return timeline.Timeline{}, err
	}
	if programs := in.Renderer.Programs(); programs != nil {
		merged = event.ReplacePrograms(merged, programs)
	}

	track, err := in.Renderer.Render(merged, frameRate)
	if err != nil {
		return timeline.Timeline{}, err
	}
	track.Start = in.Start
	return track, nil
}

// AudioInput builds a track from a raw audio file (any registered format).
type AudioInput struct {
	Path  string
	Start float64
}

func (in AudioInput) CreateTrack(frameRate int) (timeline.Timeline, error) {
	track, err := DecodeFile(in.Path, frameRate)
	if err != nil {
		return timeline.Timeline{}, err
	}
	track.Start = in.Start
	return track, nil
}

// Project materializes a set of inputs at one frame rate and mixes them
// into output buses.
type Project struct {
	FrameRate int
	Tracks    []timeline.Timeline
}

// NewProject creates every input track up front. Input errors abort the
// whole project; there is no partial result.
func NewProject(inputs []Input, frameRate int) (*Project, error) {
	tracks := make([]timeline.Timeline, 0, len(inputs))
	for i, input := range inputs {
		track, err := input.CreateTrack(frameRate)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		tracks = append(tracks, track)
	}
	return &Project{FrameRate: frameRate, Tracks: tracks}, nil
}

// Mix combines the project tracks into one 2-channel bus per group; see
// timeline.Mix for the plan semantics. Nil gains mean unity gain and nil
// groups mean a single bus with every track.
func (p *Project) Mix(gains []float64, openingSilence, trailingSilence float64, groups [][]int) ([][]float64, error) {
	return timeline.Mix(timeline.MixPlan{
		Tracks:          p.Tracks,
		Gains:           gains,
		Groups:          groups,
		OpeningSilence:  openingSilence,
		TrailingSilence: trailingSilence,
		FrameRate:       p.FrameRate,
	})
}

// MixToWAV mixes the project and writes the stacked buses as a 16-bit PCM
// WAV stream.
func (p *Project) MixToWAV(w io.WriteSeeker, gains []float64, openingSilence, trailingSilence float64, groups [][]int) error {
	out, err := p.Mix(gains, openingSilence, trailingSilence, groups)
	if err != nil {
		return err
	}
	return wav.Write(w, p.FrameRate, out)
}

// MixToFile mixes the project and writes the result to a WAV file at path.
func (p *Project) MixToFile(path string, gains []float64, openingSilence, trailingSilence float64, groups [][]int) error {
	out, err := p.Mix(gains, openingSilence, trailingSilence, groups)
	if err != nil {
		return err
	}
	return wav.WriteFile(path, p.FrameRate, out)
}
