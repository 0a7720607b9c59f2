package render

import (
	"io"
	"testing"

	"ShrimpVision/internal/annotator/geometry"
	"ShrimpVision/internal/annotator/schema"
	"ShrimpVision/internal/annotator/session"
	"ShrimpVision/internal/classes"
	"ShrimpVision/internal/entity"

	"github.com/sirupsen/logrus"
)

func testTransformer() *geometry.Transformer {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return geometry.NewTransformer(logger)
}

func TestRenderLabelSequence(t *testing.T) {
	registry := schema.NewRegistry(classes.Catalog())

	boxes := []session.Box{
		{ID: "a", TypeID: "shrimp", Rect: entity.NormalizedBox{X: 0.1, Y: 0.1, Width: 0.1, Height: 0.1}},
		{ID: "b", TypeID: "shrimp", Rect: entity.NormalizedBox{X: 0.3, Y: 0.3, Width: 0.1, Height: 0.1}},
		{ID: "c", TypeID: "shrimp_adult", Rect: entity.NormalizedBox{X: 0.5, Y: 0.5, Width: 0.1, Height: 0.1}},
	}

	instructions := Render(boxes, nil, registry, testTransformer(), 100, 100)

	wantLabels := []string{"Shrimp 1", "Shrimp 2", "Adult 1"}
	if len(instructions) != len(wantLabels) {
		t.Fatalf("len(instructions) = %d, want %d", len(instructions), len(wantLabels))
	}
	for i, want := range wantLabels {
		if got := instructions[i].Label; got != want {
			t.Errorf("instructions[%d].Label = %q, want %q", i, got, want)
		}
	}
}

func TestRenderSequenceRestartsPerCall(t *testing.T) {
	registry := schema.NewRegistry(classes.Catalog())

	boxes := []session.Box{
		{ID: "a", TypeID: "shrimp", Rect: entity.NormalizedBox{X: 0.1, Y: 0.1, Width: 0.1, Height: 0.1}},
	}

	// Numbering is derived from the current set, not from draw history.
	for i := 0; i < 2; i++ {
		instructions := Render(boxes, nil, registry, testTransformer(), 100, 100)
		if got := instructions[0].Label; got != "Shrimp 1" {
			t.Errorf("render %d: Label = %q, want %q", i, got, "Shrimp 1")
		}
	}
}

func TestRenderCandidateOnTop(t *testing.T) {
	registry := schema.NewRegistry(classes.Catalog())

	boxes := []session.Box{
		{ID: "a", TypeID: "shrimp", Rect: entity.NormalizedBox{X: 0.1, Y: 0.1, Width: 0.2, Height: 0.2}},
	}
	candidate := &session.Box{
		TypeID: "shrimp",
		Rect:   entity.NormalizedBox{X: 0.4, Y: 0.4, Width: 0.2, Height: 0.2},
	}

	instructions := Render(boxes, candidate, registry, testTransformer(), 100, 100)

	if len(instructions) != 2 {
		t.Fatalf("len(instructions) = %d, want 2", len(instructions))
	}

	last := instructions[len(instructions)-1]
	if last.Label != "" {
		t.Errorf("candidate Label = %q, want empty", last.Label)
	}
	if last.FillColor != candidateFill {
		t.Errorf("candidate FillColor = %q, want %q", last.FillColor, candidateFill)
	}
}

func TestRenderResolvesPixels(t *testing.T) {
	registry := schema.NewRegistry(classes.Catalog())

	boxes := []session.Box{
		{ID: "a", TypeID: "shrimp", Rect: entity.NormalizedBox{X: 0.25, Y: 0.25, Width: 0.5, Height: 0.5}},
	}

	instructions := Render(boxes, nil, registry, testTransformer(), 400, 200)

	want := geometry.PixelRect{X: 100, Y: 50, Width: 200, Height: 100}
	if got := instructions[0].Rect; got != want {
		t.Errorf("instructions[0].Rect = %+v, want %+v", got, want)
	}
}

func TestRenderColors(t *testing.T) {
	registry := schema.NewRegistry(classes.Catalog())

	boxes := []session.Box{
		{ID: "a", TypeID: "shrimp_dead", Rect: entity.NormalizedBox{X: 0.1, Y: 0.1, Width: 0.1, Height: 0.1}},
	}

	instructions := Render(boxes, nil, registry, testTransformer(), 100, 100)

	if got := instructions[0].StrokeColor; got != "#EF4444" {
		t.Errorf("StrokeColor = %q, want %q", got, "#EF4444")
	}
	if got := instructions[0].FillColor; got != "#EF444426" {
		t.Errorf("FillColor = %q, want %q", got, "#EF444426")
	}
}

func TestRenderEmpty(t *testing.T) {
	registry := schema.NewRegistry(classes.Catalog())

	if got := Render(nil, nil, registry, testTransformer(), 100, 100); len(got) != 0 {
		t.Errorf("Render(nil, nil) produced %d instructions, want 0", len(got))
	}
}
