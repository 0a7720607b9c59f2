package trainer

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// HTTPTrainer delegates the run to an external trainer sidecar. The sidecar
// exposes POST /prepare, POST /train and GET /progress; Train polls the
// progress endpoint and relays new epochs to the callback.
type HTTPTrainer struct {
	baseURL      string
	client       *http.Client
	pollInterval time.Duration
}

func NewHTTPTrainer(baseURL string) *HTTPTrainer {
	return &HTTPTrainer{
		baseURL:      baseURL,
		client:       &http.Client{Timeout: 30 * time.Second},
		pollInterval: 2 * time.Second,
	}
}

type progressResponse struct {
	Epoch     int     `json:"epoch"`
	Loss      float64 `json:"loss"`
	Accuracy  float64 `json:"accuracy"`
	Done      bool    `json:"done"`
	ModelPath string  `json:"model_path"`
	Error     string  `json:"error"`
}

func (t *HTTPTrainer) Prepare(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/prepare", nil)
	if err != nil {
		return err
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("trainer prepare request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("trainer prepare failed with status %d", resp.StatusCode)
	}
	return nil
}

func (t *HTTPTrainer) Train(ctx context.Context, config Config, onProgress ProgressFunc) (string, error) {
	payload, err := jsoniter.Marshal(config)
	if err != nil {
		return "", fmt.Errorf("encode trainer config: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/train", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("trainer start request: %w", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("trainer start failed with status %d", resp.StatusCode)
	}

	ticker := time.NewTicker(t.pollInterval)
	defer ticker.Stop()

	lastEpoch := 0
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}

		progress, err := t.fetchProgress(ctx)
		if err != nil {
			// A missed poll is not a failed run, the next tick retries.
			continue
		}

		if progress.Epoch > lastEpoch && onProgress != nil {
			onProgress(Progress{
				Epoch:    progress.Epoch,
				Loss:     progress.Loss,
				Accuracy: progress.Accuracy,
			})
			lastEpoch = progress.Epoch
		}

		if progress.Done {
			if progress.Error != "" {
				return "", fmt.Errorf("trainer run failed: %s", progress.Error)
			}
			return progress.ModelPath, nil
		}
	}
}

type predictRequest struct {
	Filename            string  `json:"filename"`
	ModelName           string  `json:"model_name,omitempty"`
	ConfidenceThreshold float64 `json:"confidence_threshold"`
	Image               string  `json:"image"`
}

type predictResponse struct {
	Prediction
	Error string `json:"error"`
}

// Predict forwards the image to the sidecar's POST /predict. The image
// travels base64-encoded inside the JSON payload.
func (t *HTTPTrainer) Predict(ctx context.Context, image []byte, filename string, modelName string, confidence float64) (Prediction, error) {
	payload, err := jsoniter.Marshal(predictRequest{
		Filename:            filename,
		ModelName:           modelName,
		ConfidenceThreshold: confidence,
		Image:               base64.StdEncoding.EncodeToString(image),
	})
	if err != nil {
		return Prediction{}, fmt.Errorf("encode predict request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/predict", bytes.NewReader(payload))
	if err != nil {
		return Prediction{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return Prediction{}, fmt.Errorf("predict request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Prediction{}, ErrNoModelAvailable
	}
	if resp.StatusCode != http.StatusOK {
		return Prediction{}, fmt.Errorf("predict failed with status %d", resp.StatusCode)
	}

	var body predictResponse
	if err := jsoniter.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Prediction{}, fmt.Errorf("decode predict response: %w", err)
	}
	if body.Error != "" {
		return Prediction{}, fmt.Errorf("predict failed: %s", body.Error)
	}

	return body.Prediction, nil
}

// AvailableModels asks the sidecar for its trained model inventory.
func (t *HTTPTrainer) AvailableModels(ctx context.Context) ([]ModelInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"/models", nil)
	if err != nil {
		return nil, err
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("models request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("models fetch failed with status %d", resp.StatusCode)
	}

	var body struct {
		Models []ModelInfo `json:"models"`
	}
	if err := jsoniter.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode models response: %w", err)
	}
	return body.Models, nil
}

func (t *HTTPTrainer) fetchProgress(ctx context.Context) (progressResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"/progress", nil)
	if err != nil {
		return progressResponse{}, err
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return progressResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return progressResponse{}, fmt.Errorf("progress fetch failed with status %d", resp.StatusCode)
	}

	var body progressResponse
	if err := jsoniter.NewDecoder(resp.Body).Decode(&body); err != nil {
		return progressResponse{}, fmt.Errorf("decode progress response: %w", err)
	}
	return body, nil
}
