package inference

import (
	"ShrimpVision/pkg/response"
	"net/http"
)

var (
	ErrNoModelAvailable = response.NewError(http.StatusNotFound, "no trained model found")
	ErrNoFilesProvided  = response.NewError(http.StatusBadRequest, "no images provided")
)