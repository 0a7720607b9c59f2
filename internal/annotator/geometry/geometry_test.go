package geometry

import (
	"io"
	"math"
	"testing"

	"ShrimpVision/internal/entity"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestToNormalized(t *testing.T) {
	tr := NewTransformer(testLogger())

	tests := []struct {
		name         string
		px, py       float64
		cw, ch       float64
		wantX, wantY float64
	}{
		{name: "center", px: 100, py: 50, cw: 200, ch: 100, wantX: 0.5, wantY: 0.5},
		{name: "origin", px: 0, py: 0, cw: 200, ch: 100, wantX: 0, wantY: 0},
		{name: "bottom right corner", px: 200, py: 100, cw: 200, ch: 100, wantX: 1, wantY: 1},
		{name: "pointer outside right edge clamps", px: 250, py: 50, cw: 200, ch: 100, wantX: 1, wantY: 0.5},
		{name: "negative pointer clamps to zero", px: -10, py: -5, cw: 200, ch: 100, wantX: 0, wantY: 0},
		{name: "zero width canvas", px: 100, py: 50, cw: 0, ch: 100, wantX: 0, wantY: 0},
		{name: "zero height canvas", px: 100, py: 50, cw: 200, ch: 0, wantX: 0, wantY: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotX, gotY := tr.ToNormalized(tt.px, tt.py, tt.cw, tt.ch)
			if gotX != tt.wantX || gotY != tt.wantY {
				t.Errorf("ToNormalized(%v, %v, %v, %v) = (%v, %v), want (%v, %v)",
					tt.px, tt.py, tt.cw, tt.ch, gotX, gotY, tt.wantX, tt.wantY)
			}
			if math.IsNaN(gotX) || math.IsInf(gotX, 0) || math.IsNaN(gotY) || math.IsInf(gotY, 0) {
				t.Errorf("ToNormalized produced a non-finite value: (%v, %v)", gotX, gotY)
			}
		})
	}
}

func TestToPixels(t *testing.T) {
	tr := NewTransformer(testLogger())

	box := entity.NormalizedBox{X: 0.25, Y: 0.25, Width: 0.5, Height: 0.5}
	got := tr.ToPixels(box, 400, 200)

	want := PixelRect{X: 100, Y: 50, Width: 200, Height: 100}
	if got != want {
		t.Errorf("ToPixels(%+v, 400, 200) = %+v, want %+v", box, got, want)
	}
}

func TestToPixelsDegenerateCanvas(t *testing.T) {
	tr := NewTransformer(testLogger())

	got := tr.ToPixels(entity.NormalizedBox{X: 0.5, Y: 0.5, Width: 0.1, Height: 0.1}, 0, 0)
	if got != (PixelRect{}) {
		t.Errorf("ToPixels with zero canvas = %+v, want zero rect", got)
	}
}

func TestRoundTrip(t *testing.T) {
	tr := NewTransformer(testLogger())

	const cw, ch = 1920, 1080
	const tolerance = 1e-9

	points := []struct{ px, py float64 }{
		{0, 0},
		{960, 540},
		{1920, 1080},
		{123.456, 789.123},
	}

	for _, p := range points {
		nx, ny := tr.ToNormalized(p.px, p.py, cw, ch)
		rect := tr.ToPixels(entity.NormalizedBox{X: nx, Y: ny}, cw, ch)

		if math.Abs(rect.X-p.px) > tolerance || math.Abs(rect.Y-p.py) > tolerance {
			t.Errorf("round trip of (%v, %v) = (%v, %v)", p.px, p.py, rect.X, rect.Y)
		}
	}
}

func TestNormalizeCorners(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 float64
		want           entity.NormalizedBox
	}{
		{
			name: "forward drag",
			x1:   0.25, y1: 0.25, x2: 0.5, y2: 0.5,
			want: entity.NormalizedBox{X: 0.25, Y: 0.25, Width: 0.25, Height: 0.25},
		},
		{
			name: "reverse drag yields identical box",
			x1:   0.5, y1: 0.5, x2: 0.25, y2: 0.25,
			want: entity.NormalizedBox{X: 0.25, Y: 0.25, Width: 0.25, Height: 0.25},
		},
		{
			name: "up right drag",
			x1:   0.25, y1: 0.5, x2: 0.5, y2: 0.25,
			want: entity.NormalizedBox{X: 0.25, Y: 0.25, Width: 0.25, Height: 0.25},
		},
		{
			name: "corners outside image clamp",
			x1:   -0.5, y1: 0.5, x2: 1.5, y2: 0.25,
			want: entity.NormalizedBox{X: 0, Y: 0.25, Width: 1, Height: 0.25},
		},
		{
			name: "degenerate click",
			x1:   0.4, y1: 0.4, x2: 0.4, y2: 0.4,
			want: entity.NormalizedBox{X: 0.4, Y: 0.4, Width: 0, Height: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeCorners(tt.x1, tt.y1, tt.x2, tt.y2)
			if got != tt.want {
				t.Errorf("NormalizeCorners(%v, %v, %v, %v) = %+v, want %+v",
					tt.x1, tt.y1, tt.x2, tt.y2, got, tt.want)
			}
		})
	}
}

// A drag from pixel (100,100) to (50,50) on a 200x200 canvas must come out
// as the same box a forward drag would produce.
func TestReverseDragFromPixels(t *testing.T) {
	tr := NewTransformer(testLogger())

	x1, y1 := tr.ToNormalized(100, 100, 200, 200)
	x2, y2 := tr.ToNormalized(50, 50, 200, 200)

	got := NormalizeCorners(x1, y1, x2, y2)
	want := entity.NormalizedBox{X: 0.25, Y: 0.25, Width: 0.25, Height: 0.25}
	if got != want {
		t.Errorf("reverse drag box = %+v, want %+v", got, want)
	}
}
