package trainer

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Simulated mimics a training run without touching a model. It is the
// default when no trainer sidecar URL is configured, and what the tests use
// with a short epoch duration.
type Simulated struct {
	epochDuration time.Duration
	modelDir      string
	now           func() time.Time
}

func NewSimulated(epochDuration time.Duration, modelDir string) *Simulated {
	return &Simulated{
		epochDuration: epochDuration,
		modelDir:      modelDir,
		now:           time.Now,
	}
}

func (s *Simulated) Prepare(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.epochDuration):
		return nil
	}
}

func (s *Simulated) Train(ctx context.Context, config Config, onProgress ProgressFunc) (string, error) {
	loss := 2.5
	accuracy := 0.30

	for epoch := 1; epoch <= config.Epochs; epoch++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(s.epochDuration):
		}

		loss *= 0.92
		accuracy += (0.95 - accuracy) * 0.15

		if onProgress != nil {
			onProgress(Progress{Epoch: epoch, Loss: loss, Accuracy: accuracy})
		}
	}

	name := fmt.Sprintf("%s_%s.pt", config.ModelType, s.now().Format("20060102_150405"))
	return filepath.Join(s.modelDir, name), nil
}

// Predict fabricates a deterministic detection set from the image content,
// so repeated calls on the same image agree. It still requires a trained
// model file to exist, matching the real engine's contract.
func (s *Simulated) Predict(ctx context.Context, image []byte, filename string, modelName string, confidence float64) (Prediction, error) {
	if err := ctx.Err(); err != nil {
		return Prediction{}, err
	}

	model, err := s.resolveModel(modelName)
	if err != nil {
		return Prediction{}, err
	}

	digest := fnv.New64a()
	digest.Write(image)
	seed := digest.Sum64()

	count := int(seed%5) + 1
	detections := make([]Detection, 0, count)
	for i := 0; i < count; i++ {
		cell := float64(i)
		det := Detection{
			X:          math.Mod(0.08+cell*0.19, 0.8),
			Y:          math.Mod(0.12+cell*0.23, 0.8),
			Width:      0.10,
			Height:     0.08,
			Confidence: 0.95 - cell*0.07,
			Label:      "shrimp",
			ClassID:    0,
		}
		if det.Confidence >= confidence {
			detections = append(detections, det)
		}
	}

	return Prediction{
		TotalShrimp: len(detections),
		Detections:  detections,
		ModelUsed:   model,
	}, nil
}

// AvailableModels lists the trained model files in the model directory,
// newest first.
func (s *Simulated) AvailableModels(ctx context.Context) ([]ModelInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.modelDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []ModelInfo{}, nil
		}
		return nil, err
	}

	models := make([]ModelInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".pt") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		models = append(models, ModelInfo{
			Name:     entry.Name(),
			SizeMB:   math.Round(float64(info.Size())/(1024*1024)*100) / 100,
			Modified: info.ModTime().Unix(),
		})
	}

	sort.Slice(models, func(i, j int) bool { return models[i].Modified > models[j].Modified })
	return models, nil
}

func (s *Simulated) resolveModel(modelName string) (string, error) {
	if modelName != "" {
		if _, err := os.Stat(filepath.Join(s.modelDir, filepath.Base(modelName))); err != nil {
			return "", ErrNoModelAvailable
		}
		return filepath.Base(modelName), nil
	}

	models, err := s.AvailableModels(context.Background())
	if err != nil {
		return "", err
	}
	if len(models) == 0 {
		return "", ErrNoModelAvailable
	}
	return models[0].Name, nil
}
