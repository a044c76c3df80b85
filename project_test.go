// SPDX-License-Identifier: EPL-2.0

package mixdown_test

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/ik5/mixdown"
	"github.com/ik5/mixdown/event"
	"github.com/ik5/mixdown/formats/wav"
	"github.com/ik5/mixdown/internal/mixtest"
	"github.com/ik5/mixdown/timeline"
)

// stubRenderer records what it was asked to render and hands back a fixed
// timeline.
type stubRenderer struct {
	programs map[string]int
	track    timeline.Timeline
	err      error

	rendered  event.Document
	frameRate int
}

func (s *stubRenderer) Programs() map[string]int { return s.programs }

func (s *stubRenderer) Render(document event.Document, frameRate int) (timeline.Timeline, error) {
	s.rendered = document
	s.frameRate = frameRate
	return s.track, s.err
}

func TestMIDIInput_CreateTrack(t *testing.T) {
	t.Parallel()

	stub := &stubRenderer{track: mixtest.ConstantTimeline(100, 0.5, 0)}
	in := mixdown.MIDIInput{
		Documents: []event.Document{
			mixtest.Document("piano", mixtest.Note(0, 1, 60, 80)),
		},
		Renderer: stub,
		Start:    1.5,
	}

	track, err := in.CreateTrack(48000)
	if err != nil {
		t.Fatalf("CreateTrack() error = %v", err)
	}
	if track.Start != 1.5 {
		t.Errorf("track.Start = %v, want 1.5", track.Start)
	}
	if stub.frameRate != 48000 {
		t.Errorf("renderer frame rate = %d, want 48000", stub.frameRate)
	}
	if len(stub.rendered) != 1 || stub.rendered[0].Name != "piano" {
		t.Errorf("renderer got document %+v, want one piano instrument", stub.rendered)
	}
}

func TestMIDIInput_NilRenderer(t *testing.T) {
	t.Parallel()

	in := mixdown.MIDIInput{
		Documents: []event.Document{mixtest.Document("piano", mixtest.Note(0, 1, 60, 80))},
	}
	_, err := in.CreateTrack(48000)
	if !errors.Is(err, mixdown.ErrNilRenderer) {
		t.Errorf("CreateTrack() error = %v, want %v", err, mixdown.ErrNilRenderer)
	}
}

func TestMIDIInput_RemapsForRenderer(t *testing.T) {
	t.Parallel()

	stub := &stubRenderer{programs: map[string]int{"piano": 24}}
	in := mixdown.MIDIInput{
		Documents: []event.Document{
			{
				mixtest.Instrument("piano", mixtest.Note(0, 1, 60, 80)),
				mixtest.Instrument("whistle", mixtest.Note(0, 1, 72, 80)),
			},
		},
		Renderer: stub,
	}

	if _, err := in.CreateTrack(48000); err != nil {
		t.Fatalf("CreateTrack() error = %v", err)
	}
	if len(stub.rendered) != 1 {
		t.Fatalf("renderer got %d instruments, want 1 (unmapped dropped)", len(stub.rendered))
	}
	if got := stub.rendered[0]; got.Name != "piano" || got.Program != 24 {
		t.Errorf("rendered instrument = %q program %d, want piano/24", got.Name, got.Program)
	}
}

func TestMIDIInput_NoRemapWithoutPrograms(t *testing.T) {
	t.Parallel()

	stub := &stubRenderer{}
	in := mixdown.MIDIInput{
		Documents: []event.Document{mixtest.Document("whistle", mixtest.Note(0, 1, 72, 80))},
		Renderer:  stub,
	}

	if _, err := in.CreateTrack(48000); err != nil {
		t.Fatalf("CreateTrack() error = %v", err)
	}
	if len(stub.rendered) != 1 {
		t.Errorf("renderer got %d instruments, want 1 (no remap applied)", len(stub.rendered))
	}
}

func TestMIDIInput_MergeErrorPropagates(t *testing.T) {
	t.Parallel()

	in := mixdown.MIDIInput{
		Documents: []event.Document{
			mixtest.Document("a", mixtest.Note(0, 1, 60, 80)),
			mixtest.Document("b", mixtest.Note(0, 1, 60, 80)),
		},
		Gaps:     []float64{1, 2}, // one too many
		Renderer: &stubRenderer{},
	}
	_, err := in.CreateTrack(48000)
	if !errors.Is(err, event.ErrGapCount) {
		t.Errorf("CreateTrack() error = %v, want %v", err, event.ErrGapCount)
	}
}

func TestAudioInput_CreateTrack(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "loop.wav")
	src := mixtest.ConstantTimeline(200, 0.25, 0)
	if err := wav.WriteFile(path, 44100, src.Samples[:]); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	in := mixdown.AudioInput{Path: path, Start: 0.5}
	track, err := in.CreateTrack(44100)
	if err != nil {
		t.Fatalf("CreateTrack() error = %v", err)
	}
	if track.Start != 0.5 {
		t.Errorf("track.Start = %v, want 0.5", track.Start)
	}
	if track.Len() != 200 {
		t.Errorf("track.Len() = %d, want 200", track.Len())
	}
}

func TestAudioInput_UnknownFormat(t *testing.T) {
	t.Parallel()

	in := mixdown.AudioInput{Path: "loop.flac"}
	_, err := in.CreateTrack(44100)
	if !errors.Is(err, mixdown.ErrUnknownFormat) {
		t.Errorf("CreateTrack() error = %v, want %v", err, mixdown.ErrUnknownFormat)
	}
}

func TestNewProject_FailFast(t *testing.T) {
	t.Parallel()

	boom := errors.New("render failed")
	inputs := []mixdown.Input{
		mixdown.MIDIInput{
			Documents: []event.Document{mixtest.Document("a", mixtest.Note(0, 1, 60, 80))},
			Renderer:  &stubRenderer{track: mixtest.ConstantTimeline(10, 1, 0)},
		},
		mixdown.MIDIInput{
			Documents: []event.Document{mixtest.Document("b", mixtest.Note(0, 1, 60, 80))},
			Renderer:  &stubRenderer{err: boom},
		},
	}

	_, err := mixdown.NewProject(inputs, 48000)
	if !errors.Is(err, boom) {
		t.Fatalf("NewProject() error = %v, want wrapped %v", err, boom)
	}
}

func TestProject_Mix(t *testing.T) {
	t.Parallel()

	project := &mixdown.Project{
		FrameRate: 1000,
		Tracks: []timeline.Timeline{
			mixtest.ConstantTimeline(1000, 0.5, 0),
			mixtest.ConstantTimeline(1000, 0.25, 0.5),
		},
	}

	out, err := project.Mix(nil, 0, 0, nil)
	if err != nil {
		t.Fatalf("Mix() error = %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("Mix() produced %d channels, want 2", len(out))
	}
	if len(out[0]) != 1500 {
		t.Fatalf("bus length = %d, want 1500", len(out[0]))
	}
	if got := out[0][250]; math.Abs(got-0.5) > 1e-12 {
		t.Errorf("sample 250 = %v, want 0.5", got)
	}
	if got := out[0][750]; math.Abs(got-0.75) > 1e-12 {
		t.Errorf("sample 750 = %v, want 0.75", got)
	}
	if got := out[0][1250]; math.Abs(got-0.25) > 1e-12 {
		t.Errorf("sample 1250 = %v, want 0.25", got)
	}
}

func TestProject_MixToFile(t *testing.T) {
	t.Parallel()

	project := &mixdown.Project{
		FrameRate: 8000,
		Tracks:    []timeline.Timeline{mixtest.ConstantTimeline(800, 0.5, 0)},
	}

	path := filepath.Join(t.TempDir(), "mix.wav")
	if err := project.MixToFile(path, nil, 0, 0, nil); err != nil {
		t.Fatalf("MixToFile() error = %v", err)
	}

	got, err := wav.ReadFile(path, 8000)
	if err != nil {
		t.Fatalf("reading mix: %v", err)
	}
	if got.Len() != 800 {
		t.Errorf("mixed file has %d frames, want 800", got.Len())
	}
	if math.Abs(got.Samples[0][100]-0.5) > 2.0/32767 {
		t.Errorf("sample 100 = %v, want ≈0.5", got.Samples[0][100])
	}
}

func TestRegisterFormat_Custom(t *testing.T) {
	stub := mixtest.RampTimeline(8, 0)
	mixdown.RegisterFormat("stub", func(path string, expectedFrameRate int) (timeline.Timeline, error) {
		return stub, nil
	})

	got, err := mixdown.DecodeFile("anything.STUB", 44100)
	if err != nil {
		t.Fatalf("DecodeFile() error = %v", err)
	}
	if got.Len() != 8 {
		t.Errorf("decoded Len() = %d, want 8", got.Len())
	}
}
