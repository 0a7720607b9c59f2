package trainer

import (
	"context"
)

// Config carries the tunables for one training run.
type Config struct {
	ModelType    string  `json:"model_type"`
	Epochs       int     `json:"epochs"`
	BatchSize    int     `json:"batch_size"`
	ImageSize    int     `json:"image_size"`
	LearningRate float64 `json:"learning_rate"`
	TrainSplit   float64 `json:"train_split"`
	ValSplit     float64 `json:"val_split"`
}

// Progress is one epoch report from a running trainer.
type Progress struct {
	Epoch    int
	Loss     float64
	Accuracy float64
}

type ProgressFunc func(Progress)

// ITrainer runs the actual model training. Prepare assembles the dataset,
// Train blocks until the run finishes or ctx is cancelled. Implementations
// must call onProgress once per completed epoch.
type ITrainer interface {
	Prepare(ctx context.Context) error
	Train(ctx context.Context, config Config, onProgress ProgressFunc) (modelPath string, err error)
}
