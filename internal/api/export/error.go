package export

import (
	"ShrimpVision/pkg/response"
	"net/http"
)

var (
	ErrNothingToExport     = response.NewError(http.StatusNotFound, "nothing to export")
	ErrUnknownExportFormat = response.NewError(http.StatusBadRequest, "unknown export format, use json or yolo")
	ErrModelNotFound       = response.NewError(http.StatusNotFound, "model not found")
)