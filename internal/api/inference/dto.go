package inference

import "ShrimpVision/pkg/trainer"

// PredictResponse is the result of running the current model over one image.
type PredictResponse struct {
	Success        bool                `json:"success"`
	TotalShrimp    int                 `json:"total_shrimp"`
	Detections     []trainer.Detection `json:"detections"`
	ModelUsed      string              `json:"model_used,omitempty"`
	ProcessingTime float64             `json:"processing_time"`
}

type BatchResult struct {
	Filename       string              `json:"filename"`
	Success        bool                `json:"success"`
	TotalShrimp    int                 `json:"total_shrimp"`
	Detections     []trainer.Detection `json:"detections"`
	ProcessingTime float64             `json:"processing_time"`
}

type BatchResponse struct {
	Success        bool          `json:"success"`
	Results        []BatchResult `json:"results"`
	Errors         []string      `json:"errors"`
	TotalProcessed int           `json:"total_processed"`
	TotalErrors    int           `json:"total_errors"`
}

type ModelsResponse struct {
	Success bool                `json:"success"`
	Models  []trainer.ModelInfo `json:"models"`
}