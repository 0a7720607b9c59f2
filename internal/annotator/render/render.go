// Package render turns the session's box set into an ordered list of draw
// instructions. It is a pure function of its inputs so the UI layer can replay
// it against any canvas and tests can assert on the exact output.
package render

import (
	"ShrimpVision/internal/annotator/geometry"
	"ShrimpVision/internal/annotator/schema"
	"ShrimpVision/internal/annotator/session"
	"fmt"
)

// Instruction is one rectangle to draw, already resolved to pixels.
type Instruction struct {
	Rect        geometry.PixelRect
	StrokeColor string
	FillColor   string
	Label       string
}

// candidateFill marks the in-progress box visually distinct from committed ones.
const candidateFill = "rgba(255,255,255,0.15)"

// Render produces the draw list for one frame. Committed boxes come first in
// insertion order; the in-progress candidate, when present, is appended last
// so it always stays visible on top. Labels carry a 1-based sequence number
// among boxes of the same type in this image, e.g. "Shrimp 2".
func Render(
	boxes []session.Box,
	candidate *session.Box,
	registry *schema.Registry,
	transform *geometry.Transformer,
	canvasWidth, canvasHeight float64,
) []Instruction {
	instructions := make([]Instruction, 0, len(boxes)+1)
	perType := make(map[string]int, len(boxes))

	for _, b := range boxes {
		perType[b.TypeID]++
		color := registry.DisplayColorFor(b.TypeID)

		instructions = append(instructions, Instruction{
			Rect:        transform.ToPixels(b.Rect, canvasWidth, canvasHeight),
			StrokeColor: color,
			FillColor:   withAlpha(color),
			Label:       fmt.Sprintf("%s %d", registry.DisplayNameFor(b.TypeID), perType[b.TypeID]),
		})
	}

	if candidate != nil {
		instructions = append(instructions, Instruction{
			Rect:        transform.ToPixels(candidate.Rect, canvasWidth, canvasHeight),
			StrokeColor: registry.DisplayColorFor(candidate.TypeID),
			FillColor:   candidateFill,
			Label:       "",
		})
	}

	return instructions
}

// withAlpha derives a translucent fill from a #RRGGBB stroke color.
func withAlpha(hex string) string {
	if len(hex) == 7 && hex[0] == '#' {
		return hex + "26"
	}
	return hex
}
