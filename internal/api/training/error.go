package training

import (
	"ShrimpVision/pkg/response"
	"net/http"
)

var (
	ErrTrainingInProgress   = response.NewError(http.StatusBadRequest, "training is already in progress")
	ErrNotEnoughAnnotations = response.NewError(http.StatusBadRequest, "at least 5 annotated images are required to start training")
	ErrNoTrainingInProgress = response.NewError(http.StatusBadRequest, "no training in progress")
)
