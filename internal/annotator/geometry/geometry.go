// Package geometry converts between device pixel coordinates and the
// normalized [0,1] box representation annotations are stored in. It is the
// single place this mapping happens; nothing else divides or multiplies by
// canvas dimensions.
package geometry

import (
	"ShrimpVision/internal/entity"

	"github.com/sirupsen/logrus"
)

// PixelRect is a box resolved against a concrete canvas size.
type PixelRect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

type Transformer struct {
	log *logrus.Logger
}

func NewTransformer(log *logrus.Logger) *Transformer {
	return &Transformer{log: log}
}

// ToNormalized maps a pointer position to normalized coordinates. Zero canvas
// dimensions would divide by zero, so they yield (0,0) with a diagnostic
// instead of letting NaN/Inf reach stored state.
func (t *Transformer) ToNormalized(pointerX, pointerY, canvasWidth, canvasHeight float64) (float64, float64) {
	if canvasWidth <= 0 || canvasHeight <= 0 {
		if t.log != nil {
			t.log.WithFields(logrus.Fields{
				"canvas_width":  canvasWidth,
				"canvas_height": canvasHeight,
			}).Warn("ToNormalized called with degenerate canvas dimensions")
		}
		return 0, 0
	}

	return clamp01(pointerX / canvasWidth), clamp01(pointerY / canvasHeight)
}

// ToPixels resolves a normalized box against the current canvas size. It is
// re-queried on every render so boxes stay aligned after viewport resizes.
func (t *Transformer) ToPixels(box entity.NormalizedBox, canvasWidth, canvasHeight float64) PixelRect {
	if canvasWidth <= 0 || canvasHeight <= 0 {
		if t.log != nil {
			t.log.WithFields(logrus.Fields{
				"canvas_width":  canvasWidth,
				"canvas_height": canvasHeight,
			}).Warn("ToPixels called with degenerate canvas dimensions")
		}
		return PixelRect{}
	}

	return PixelRect{
		X:      box.X * canvasWidth,
		Y:      box.Y * canvasHeight,
		Width:  box.Width * canvasWidth,
		Height: box.Height * canvasHeight,
	}
}

// NormalizeCorners builds a top-left anchored box from two opposite corners in
// normalized space, regardless of drag direction, clamped to the image.
func NormalizeCorners(x1, y1, x2, y2 float64) entity.NormalizedBox {
	x1, y1 = clamp01(x1), clamp01(y1)
	x2, y2 = clamp01(x2), clamp01(y2)

	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}

	return entity.NormalizedBox{
		X:      x1,
		Y:      y1,
		Width:  x2 - x1,
		Height: y2 - y1,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
