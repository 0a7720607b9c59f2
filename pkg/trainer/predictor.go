package trainer

import (
	"context"
	"errors"
)

// ErrNoModelAvailable is returned by Predict and AvailableModels when no
// trained model exists to run inference with.
var ErrNoModelAvailable = errors.New("no trained model available")

// Detection is one predicted box, normalized to the image dimensions like a
// stored annotation box.
type Detection struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Confidence float64 `json:"confidence"`
	Label      string  `json:"label"`
	ClassID    int     `json:"class_id"`
}

// Prediction is the result of one inference pass over a single image.
type Prediction struct {
	TotalShrimp int         `json:"total_shrimp"`
	Detections  []Detection `json:"detections"`
	ModelUsed   string      `json:"model_used"`
}

// ModelInfo describes one trained model file, newest first in listings.
type ModelInfo struct {
	Name     string  `json:"name"`
	SizeMB   float64 `json:"size_mb"`
	Modified int64   `json:"modified"`
}

// IPredictor runs detection with a trained model. An empty modelName selects
// the most recently trained model; confidence filters detections below the
// threshold.
type IPredictor interface {
	Predict(ctx context.Context, image []byte, filename string, modelName string, confidence float64) (Prediction, error)
	AvailableModels(ctx context.Context) ([]ModelInfo, error)
}