package inferenceService

import (
	"ShrimpVision/internal/api/inference"
	contextPkg "ShrimpVision/pkg/context"
	"ShrimpVision/pkg/trainer"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultConfidence = 0.5

func (s *inferenceService) Predict(ctx context.Context, file *multipart.FileHeader, modelName string, confidence float64) (*inference.PredictResponse, error) {
	if file == nil {
		return nil, inference.ErrNoFilesProvided
	}

	data, err := s.readFile(ctx, file)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	prediction, err := s.predictor.Predict(ctx, data, file.Filename, modelName, normalizeConfidence(confidence))
	if err != nil {
		if errors.Is(err, trainer.ErrNoModelAvailable) {
			return nil, inference.ErrNoModelAvailable
		}
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"filename":   file.Filename,
			"error":      err.Error(),
		}).Error("Inference failed")
		return nil, err
	}

	return &inference.PredictResponse{
		Success:        true,
		TotalShrimp:    prediction.TotalShrimp,
		Detections:     prediction.Detections,
		ModelUsed:      prediction.ModelUsed,
		ProcessingTime: time.Since(started).Seconds(),
	}, nil
}

// BatchPredict collects per-file errors the way the batch annotation save
// does; one bad image does not abort the rest. A missing model aborts the
// whole batch, nothing could succeed without one.
func (s *inferenceService) BatchPredict(ctx context.Context, files []*multipart.FileHeader, modelName string, confidence float64) (*inference.BatchResponse, error) {
	if len(files) == 0 {
		return nil, inference.ErrNoFilesProvided
	}

	resp := &inference.BatchResponse{
		Success: true,
		Results: []inference.BatchResult{},
		Errors:  []string{},
	}

	for _, file := range files {
		result, err := s.Predict(ctx, file, modelName, confidence)
		if err != nil {
			if errors.Is(err, inference.ErrNoModelAvailable) {
				return nil, err
			}
			resp.Errors = append(resp.Errors, fmt.Sprintf("%s: %s", file.Filename, err.Error()))
			continue
		}

		resp.Results = append(resp.Results, inference.BatchResult{
			Filename:       file.Filename,
			Success:        true,
			TotalShrimp:    result.TotalShrimp,
			Detections:     result.Detections,
			ProcessingTime: result.ProcessingTime,
		})
	}

	resp.TotalProcessed = len(resp.Results)
	resp.TotalErrors = len(resp.Errors)
	return resp, nil
}

func (s *inferenceService) AvailableModels(ctx context.Context) (*inference.ModelsResponse, error) {
	models, err := s.predictor.AvailableModels(ctx)
	if err != nil {
		if errors.Is(err, trainer.ErrNoModelAvailable) {
			return nil, inference.ErrNoModelAvailable
		}
		return nil, err
	}
	if models == nil {
		models = []trainer.ModelInfo{}
	}

	return &inference.ModelsResponse{Success: true, Models: models}, nil
}

func (s *inferenceService) readFile(ctx context.Context, file *multipart.FileHeader) ([]byte, error) {
	if err := s.utils.ValidateImageFile(file); err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"filename":   file.Filename,
			"error":      err.Error(),
		}).Error("Failed to open uploaded file")
		return nil, err
	}
	defer src.Close()

	return io.ReadAll(src)
}

func normalizeConfidence(confidence float64) float64 {
	if confidence <= 0 || confidence > 1 {
		return defaultConfidence
	}
	return confidence
}