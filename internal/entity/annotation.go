package entity

// NormalizedBox is a bounding rectangle expressed as fractions of the image
// width/height, so it is independent of the resolution the canvas renders at.
// X,Y is the top-left corner; all four values live in [0,1].
type NormalizedBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// BoundingBox is one labeled region of an image. Label is the type's stable
// string name (not its numeric id) so annotations survive registry changes.
type BoundingBox struct {
	NormalizedBox
	ID         string   `json:"-"`
	Label      string   `json:"label"`
	ClassID    int      `json:"class_id,omitempty"`
	Color      string   `json:"color,omitempty"`
	Attributes []string `json:"attributes,omitempty"`
	Confidence float64  `json:"confidence"`
}

// Annotation is the persisted label set for a single image. TotalShrimp is
// derived, always len(BoundingBoxes).
type Annotation struct {
	ImageID       string        `json:"image_id"`
	ImageFilename string        `json:"image_filename"`
	ImageWidth    int           `json:"image_width"`
	ImageHeight   int           `json:"image_height"`
	BoundingBoxes []BoundingBox `json:"bounding_boxes"`
	TotalShrimp   int           `json:"total_shrimp"`
}

type AnnotationStats struct {
	TotalImages        int     `json:"total_images"`
	AnnotatedImages    int     `json:"annotated_images"`
	AnnotationProgress float64 `json:"annotation_progress"`
	TotalShrimp        int     `json:"total_shrimp"`
	TotalBoundingBoxes int     `json:"total_bounding_boxes"`
	AvgShrimpPerImage  float64 `json:"avg_shrimp_per_image"`
}
