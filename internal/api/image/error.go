package image

import (
	"ShrimpVision/pkg/response"
	"net/http"
)

var (
	ErrImageNotFound      = response.NewError(http.StatusNotFound, "image not found")
	ErrNoFilesProvided    = response.NewError(http.StatusBadRequest, "no files provided")
	ErrInvalidImageFile   = response.NewError(http.StatusBadRequest, "invalid image file")
	ErrFailedToUploadFile = response.NewError(http.StatusInternalServerError, "failed to upload file")
)
