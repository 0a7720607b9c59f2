// Package trainsync keeps a client-side view of the background training job
// in step with the server. It polls the status endpoint on a fixed cadence
// while the training panel is visible, derives the idle/preparing/training/
// completed/failed state machine and maintains a de-duplicated, bounded log
// history for the UI.
package trainsync

import (
	"ShrimpVision/internal/entity"
	"ShrimpVision/pkg/response"
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultInterval is the polling cadence while the panel is visible.
	DefaultInterval = 2 * time.Second
	// HistoryLimit bounds the log history; older entries are dropped.
	HistoryLimit = 100
	// FailureThreshold is how many consecutive poll failures are swallowed
	// before the degraded condition becomes user visible.
	FailureThreshold = 5
)

var ErrAlreadyRunning = response.NewError(http.StatusBadRequest, "training already in progress")

// Config is the training request forwarded to the job controller.
type Config struct {
	ModelType    string  `json:"model_type"`
	Epochs       int     `json:"epochs"`
	BatchSize    int     `json:"batch_size"`
	ImageSize    int     `json:"image_size"`
	LearningRate float64 `json:"learning_rate"`
	TrainSplit   float64 `json:"train_split"`
	ValSplit     float64 `json:"val_split"`
}

// StartResult mirrors the job controller's start response.
type StartResult struct {
	Success       bool
	InitialStatus entity.TrainingStatus
}

// JobController is the external job runner the synchronizer talks to.
type JobController interface {
	Start(ctx context.Context, config Config) (StartResult, error)
	Stop(ctx context.Context) (bool, error)
	Status(ctx context.Context) (entity.TrainingStatus, error)
}

type Synchronizer struct {
	log        *logrus.Logger
	controller JobController
	interval   time.Duration

	mu         sync.Mutex
	visible    bool
	generation int
	cancelPoll context.CancelFunc

	status    entity.TrainingStatus
	prevState entity.TrainingState
	prevEpoch int
	history   []string
	failures  int
	degraded  bool
}

func New(log *logrus.Logger, controller JobController, interval time.Duration) *Synchronizer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Synchronizer{
		log:        log,
		controller: controller,
		interval:   interval,
		status:     idleStatus(),
		prevState:  entity.TrainingIdle,
	}
}

func idleStatus() entity.TrainingStatus {
	return entity.TrainingStatus{Status: entity.TrainingIdle, Message: "Ready to train"}
}

// Start asks the job controller to begin a run and applies the initial status
// it reports. Polling begins immediately when the panel is visible.
func (s *Synchronizer) Start(ctx context.Context, config Config) error {
	s.mu.Lock()
	if s.status.Status == entity.TrainingPreparing || s.status.Status == entity.TrainingRunning {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	s.mu.Unlock()

	result, err := s.controller.Start(ctx, config)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.history = nil
	s.prevState = entity.TrainingIdle
	s.prevEpoch = 0
	s.failures = 0
	s.degraded = false
	s.applyLocked(s.generation, result.InitialStatus)
	visible := s.visible
	s.mu.Unlock()

	if visible {
		s.startPolling()
	}
	return nil
}

// Stop forwards the stop request; the next applied status reflects the result.
func (s *Synchronizer) Stop(ctx context.Context) error {
	_, err := s.controller.Stop(ctx)
	return err
}

// Show marks the panel visible and starts the polling loop unless the job is
// already in a terminal state.
func (s *Synchronizer) Show() {
	s.mu.Lock()
	if s.visible {
		s.mu.Unlock()
		return
	}
	s.visible = true
	terminal := s.status.Status.Terminal()
	s.mu.Unlock()

	if !terminal {
		s.startPolling()
	}
}

// Hide stops polling immediately. Bumping the generation discards any
// response that belongs to the superseded poll cycle.
func (s *Synchronizer) Hide() {
	s.mu.Lock()
	s.visible = false
	s.generation++
	cancel := s.cancelPoll
	s.cancelPoll = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Dismiss returns the synchronizer to idle after a terminal state, clearing
// the run's history. It does not restart anything.
func (s *Synchronizer) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.status.Status.Terminal() {
		return
	}
	s.status = idleStatus()
	s.prevState = entity.TrainingIdle
	s.prevEpoch = 0
	s.history = nil
	s.failures = 0
	s.degraded = false
}

// Status returns the cached read-only snapshot.
func (s *Synchronizer) Status() entity.TrainingStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// History returns a copy of the bounded log history, oldest first.
func (s *Synchronizer) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}

// Degraded reports whether transient poll failures have persisted long enough
// to be shown to the user.
func (s *Synchronizer) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

func (s *Synchronizer) startPolling() {
	s.mu.Lock()
	if s.cancelPoll != nil {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancelPoll = cancel
	gen := s.generation
	s.mu.Unlock()

	go s.pollLoop(ctx, gen)
}

// pollLoop issues one request per tick, synchronously, so at most one request
// is ever outstanding and responses are applied in issuance order.
func (s *Synchronizer) pollLoop(ctx context.Context, gen int) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.pollOnce(ctx, gen) {
				return
			}
		}
	}
}

// pollOnce fetches and applies one status. Returns true when polling should
// stop (terminal state observed or the cycle was superseded).
func (s *Synchronizer) pollOnce(ctx context.Context, gen int) bool {
	reqCtx, cancel := context.WithTimeout(ctx, s.interval)
	status, err := s.controller.Status(reqCtx)
	cancel()

	if err != nil {
		return s.recordFailure(gen, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		// Response from a superseded cycle, e.g. the panel was hidden
		// while the request was in flight.
		return true
	}

	s.applyLocked(gen, status)

	if status.Status.Terminal() {
		if s.cancelPoll != nil {
			s.cancelPoll()
			s.cancelPoll = nil
		}
		return true
	}
	return false
}

// recordFailure treats a failed poll as transient: the previous displayed
// status is retained and the state machine does not move. Only a run of
// FailureThreshold consecutive failures becomes user visible.
func (s *Synchronizer) recordFailure(gen int, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return true
	}

	s.failures++
	if s.failures >= FailureThreshold {
		s.degraded = true
	}

	if s.log != nil {
		s.log.WithFields(logrus.Fields{
			"error":                err.Error(),
			"consecutive_failures": s.failures,
		}).Debug("Training status poll failed, retrying on next tick")
	}
	return false
}

func (s *Synchronizer) applyLocked(gen int, status entity.TrainingStatus) {
	if gen != s.generation {
		return
	}

	s.failures = 0
	s.degraded = false

	stateChanged := status.Status != s.prevState
	epochChanged := status.CurrentEpoch != s.prevEpoch

	if stateChanged || epochChanged {
		line := formatLine(status)
		if n := len(s.history); n == 0 || s.history[n-1] != line {
			s.history = append(s.history, line)
			if len(s.history) > HistoryLimit {
				s.history = s.history[len(s.history)-HistoryLimit:]
			}
		}
	}

	s.prevState = status.Status
	s.prevEpoch = status.CurrentEpoch
	s.status = status
}

func formatLine(status entity.TrainingStatus) string {
	if status.Status == entity.TrainingRunning && status.CurrentEpoch > 0 {
		return fmt.Sprintf("%s epoch %d/%d: %s", status.Status, status.CurrentEpoch, status.TotalEpochs, status.Message)
	}
	return fmt.Sprintf("%s: %s", status.Status, status.Message)
}
