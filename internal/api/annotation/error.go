package annotation

import (
	"ShrimpVision/pkg/response"
	"net/http"
)

var (
	ErrAnnotationNotFound = response.NewError(http.StatusNotFound, "annotation not found")
	ErrUnknownLabel       = response.NewError(http.StatusBadRequest, "unknown type, color or attribute id")
	ErrBoxOutOfBounds     = response.NewError(http.StatusBadRequest, "bounding box outside normalized range")
)
