package annotation

import "ShrimpVision/internal/entity"

type BoundingBoxRequest struct {
	X          float64  `json:"x" validate:"min=0,max=1"`
	Y          float64  `json:"y" validate:"min=0,max=1"`
	Width      float64  `json:"width" validate:"min=0,max=1"`
	Height     float64  `json:"height" validate:"min=0,max=1"`
	Label      string   `json:"label" validate:"required"`
	ClassID    int      `json:"class_id"`
	Color      string   `json:"color"`
	Attributes []string `json:"attributes"`
	Confidence float64  `json:"confidence"`
}

type SaveAnnotationRequest struct {
	ImageID       string               `json:"image_id" validate:"required"`
	ImageFilename string               `json:"image_filename" validate:"required"`
	ImageWidth    int                  `json:"image_width" validate:"required,min=1"`
	ImageHeight   int                  `json:"image_height" validate:"required,min=1"`
	BoundingBoxes []BoundingBoxRequest `json:"bounding_boxes" validate:"dive"`
	TotalShrimp   int                  `json:"total_shrimp"`
}

type SaveAllRequest struct {
	Annotations []SaveAnnotationRequest `json:"annotations" validate:"required,dive"`
}

type SaveResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	TotalShrimp   int    `json:"total_shrimp"`
	BoundingBoxes int    `json:"bounding_boxes"`
}

type SaveAllResponse struct {
	Success    bool     `json:"success"`
	SavedCount int      `json:"saved_count"`
	TotalCount int      `json:"total_count"`
	Errors     []string `json:"errors"`
}

type GetResponse struct {
	Success    bool               `json:"success"`
	Annotation *entity.Annotation `json:"annotation"`
	Message    string             `json:"message,omitempty"`
}

type ListResponse struct {
	Success     bool                `json:"success"`
	Annotations []entity.Annotation `json:"annotations"`
	Total       int                 `json:"total"`
}

type StatsResponse struct {
	Success bool                   `json:"success"`
	Stats   entity.AnnotationStats `json:"stats"`
}
