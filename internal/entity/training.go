package entity

// TrainingState is the lifecycle of a background training job. Completed and
// Failed are terminal; the job never leaves them on its own.
type TrainingState string

const (
	TrainingIdle      TrainingState = "idle"
	TrainingPreparing TrainingState = "preparing"
	TrainingRunning   TrainingState = "training"
	TrainingCompleted TrainingState = "completed"
	TrainingFailed    TrainingState = "failed"
)

func (s TrainingState) Terminal() bool {
	return s == TrainingCompleted || s == TrainingFailed
}

// TrainingStatus is the job runner's snapshot consumed by the status endpoint
// and the websocket broadcast. Field names match the persisted wire format.
type TrainingStatus struct {
	Status       TrainingState `json:"status"`
	Progress     float64       `json:"progress"`
	CurrentEpoch int           `json:"current_epoch"`
	TotalEpochs  int           `json:"total_epochs"`
	Loss         *float64      `json:"loss"`
	Accuracy     *float64      `json:"accuracy"`
	Message      string        `json:"message"`
	ModelPath    string        `json:"model_path,omitempty"`
}
