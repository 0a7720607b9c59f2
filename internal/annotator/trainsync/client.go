package trainsync

import (
	"ShrimpVision/internal/entity"
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// HTTPController talks to the training endpoints of a Shrimp Vision backend.
// It is the production JobController; tests substitute their own.
type HTTPController struct {
	baseURL string
	client  *http.Client
}

func NewHTTPController(baseURL string) *HTTPController {
	return &HTTPController{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type startResponse struct {
	Success bool                  `json:"success"`
	Status  entity.TrainingStatus `json:"status"`
}

type statusResponse struct {
	Success bool                  `json:"success"`
	Status  entity.TrainingStatus `json:"status"`
}

type stopResponse struct {
	Success bool `json:"success"`
}

func (c *HTTPController) Start(ctx context.Context, config Config) (StartResult, error) {
	payload, err := jsoniter.Marshal(config)
	if err != nil {
		return StartResult{}, fmt.Errorf("encode training config: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/training/start", bytes.NewReader(payload))
	if err != nil {
		return StartResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return StartResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return StartResult{}, fmt.Errorf("training start failed with status %d", resp.StatusCode)
	}

	var body startResponse
	if err := jsoniter.NewDecoder(resp.Body).Decode(&body); err != nil {
		return StartResult{}, fmt.Errorf("decode start response: %w", err)
	}

	return StartResult{Success: body.Success, InitialStatus: body.Status}, nil
}

func (c *HTTPController) Stop(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/training/stop", nil)
	if err != nil {
		return false, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("training stop failed with status %d", resp.StatusCode)
	}

	var body stopResponse
	if err := jsoniter.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, err
	}
	return body.Success, nil
}

func (c *HTTPController) Status(ctx context.Context) (entity.TrainingStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/training/status", nil)
	if err != nil {
		return entity.TrainingStatus{}, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return entity.TrainingStatus{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return entity.TrainingStatus{}, fmt.Errorf("status fetch failed with status %d", resp.StatusCode)
	}

	var body statusResponse
	if err := jsoniter.NewDecoder(resp.Body).Decode(&body); err != nil {
		return entity.TrainingStatus{}, fmt.Errorf("decode status response: %w", err)
	}
	return body.Status, nil
}
