package trainingService

import (
	"ShrimpVision/internal/api/training"
	"ShrimpVision/internal/entity"
	"ShrimpVision/pkg/log"
	"ShrimpVision/pkg/trainer"
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	statusSnapshotKey = "training:status"
	minAnnotatedCount = 5
)

func (s *trainingService) StartTraining(ctx context.Context, req training.StartRequest) (*training.StartResponse, error) {
	repo, err := s.annotationRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	count, err := repo.Annotations.CountAnnotations(ctx)
	if err != nil {
		s.log.WithFields(log.Fields{
			"error": err.Error(),
		}).Error("Failed to count annotations before training")
		return nil, err
	}

	if count < minAnnotatedCount {
		return nil, training.ErrNotEnoughAnnotations
	}

	config := applyDefaults(req)

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil, training.ErrTrainingInProgress
	}

	runCtx, cancel := context.WithCancel(context.Background())
	s.running = true
	s.cancelRun = cancel
	s.status = entity.TrainingStatus{
		Status:      entity.TrainingPreparing,
		Progress:    10,
		TotalEpochs: config.Epochs,
		Message:     "Preparing dataset",
	}
	initial := s.status
	s.mu.Unlock()

	s.publish(initial)

	s.log.WithFields(log.Fields{
		"model_type": config.ModelType,
		"epochs":     config.Epochs,
		"images":     count,
	}).Info("Training run started")

	go s.run(runCtx, config)

	return &training.StartResponse{
		Success: true,
		Message: fmt.Sprintf("Training started with %d annotated images", count),
		Status:  initial,
	}, nil
}

func (s *trainingService) StopTraining(ctx context.Context) (*training.StopResponse, error) {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil, training.ErrNoTrainingInProgress
	}
	cancel := s.cancelRun
	s.mu.Unlock()

	cancel()

	return &training.StopResponse{
		Success: true,
		Message: "Training stop requested",
	}, nil
}

func (s *trainingService) Status(ctx context.Context) (entity.TrainingStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, nil
}

// Subscribe registers a websocket listener. The returned channel receives
// every status change until the cancel func is called; slow listeners miss
// updates instead of blocking the runner.
func (s *trainingService) Subscribe() (<-chan entity.TrainingStatus, func()) {
	ch := make(chan entity.TrainingStatus, 8)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	current := s.status
	s.mu.Unlock()

	ch <- current

	cancel := func() {
		s.mu.Lock()
		delete(s.subscribers, ch)
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *trainingService) run(ctx context.Context, config trainer.Config) {
	if err := s.trainer.Prepare(ctx); err != nil {
		s.finish(ctx, entity.TrainingStatus{}, fmt.Errorf("dataset preparation failed: %w", err))
		return
	}

	s.setStatus(func(st *entity.TrainingStatus) {
		st.Status = entity.TrainingPreparing
		st.Progress = 20
		st.Message = "Dataset ready"
	})

	s.setStatus(func(st *entity.TrainingStatus) {
		st.Status = entity.TrainingRunning
		st.Progress = 25
		st.Message = "Training started"
	})

	modelPath, err := s.trainer.Train(ctx, config, func(p trainer.Progress) {
		s.setStatus(func(st *entity.TrainingStatus) {
			st.Status = entity.TrainingRunning
			st.CurrentEpoch = p.Epoch
			st.Progress = epochProgress(p.Epoch, config.Epochs)
			loss, accuracy := p.Loss, p.Accuracy
			st.Loss = &loss
			st.Accuracy = &accuracy
			st.Message = fmt.Sprintf("Epoch %d/%d", p.Epoch, config.Epochs)
		})
	})

	s.finish(ctx, entity.TrainingStatus{ModelPath: modelPath}, err)
}

func (s *trainingService) finish(ctx context.Context, result entity.TrainingStatus, err error) {
	s.mu.Lock()
	s.running = false
	s.cancelRun = nil

	switch {
	case err == nil:
		s.status.Status = entity.TrainingCompleted
		s.status.Progress = 100
		s.status.CurrentEpoch = s.status.TotalEpochs
		s.status.Message = "Training completed successfully"
		s.status.ModelPath = result.ModelPath
	case errors.Is(err, context.Canceled):
		s.status = entity.TrainingStatus{
			Status:  entity.TrainingIdle,
			Message: "Training stopped by user",
		}
	default:
		s.status.Status = entity.TrainingFailed
		s.status.Message = err.Error()
	}
	snapshot := s.status
	s.mu.Unlock()

	if err != nil && !errors.Is(err, context.Canceled) {
		s.log.WithFields(log.Fields{
			"error": err.Error(),
		}).Error("Training run failed")
	} else {
		s.log.WithFields(log.Fields{
			"status":     snapshot.Status,
			"model_path": snapshot.ModelPath,
		}).Info("Training run finished")
	}

	s.publish(snapshot)
}

func (s *trainingService) setStatus(mutate func(*entity.TrainingStatus)) {
	s.mu.Lock()
	mutate(&s.status)
	snapshot := s.status
	s.mu.Unlock()

	s.publish(snapshot)
}

// publish mirrors the snapshot to Redis and fans it out to subscribers.
func (s *trainingService) publish(snapshot entity.TrainingStatus) {
	c, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := s.redisServer.SetJSON(c, statusSnapshotKey, snapshot, 0); err != nil {
		s.log.WithFields(log.Fields{
			"error": err.Error(),
		}).Warn("Failed to persist training status snapshot")
	}

	s.mu.Lock()
	for ch := range s.subscribers {
		select {
		case ch <- snapshot:
		default:
		}
	}
	s.mu.Unlock()
}

// restoreSnapshot reloads the last persisted status. A run does not survive
// a process restart, so an in-flight snapshot is demoted to failed.
func (s *trainingService) restoreSnapshot() {
	c, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var snapshot entity.TrainingStatus
	if err := s.redisServer.GetJSON(c, statusSnapshotKey, &snapshot); err != nil {
		return
	}

	if snapshot.Status == entity.TrainingPreparing || snapshot.Status == entity.TrainingRunning {
		snapshot.Status = entity.TrainingFailed
		snapshot.Message = "Training interrupted by server restart"
	}

	s.mu.Lock()
	s.status = snapshot
	s.mu.Unlock()
}

func applyDefaults(req training.StartRequest) trainer.Config {
	config := trainer.Config{
		ModelType:    req.ModelType,
		Epochs:       req.Epochs,
		BatchSize:    req.BatchSize,
		ImageSize:    req.ImageSize,
		LearningRate: req.LearningRate,
		TrainSplit:   req.TrainSplit,
		ValSplit:     req.ValSplit,
	}

	if config.ModelType == "" {
		config.ModelType = "yolov8n"
	}
	if config.Epochs == 0 {
		config.Epochs = 50
	}
	if config.BatchSize == 0 {
		config.BatchSize = 16
	}
	if config.ImageSize == 0 {
		config.ImageSize = 640
	}
	if config.LearningRate == 0 {
		config.LearningRate = 0.01
	}
	if config.TrainSplit == 0 {
		config.TrainSplit = 0.8
	}
	if config.ValSplit == 0 {
		config.ValSplit = 0.2
	}
	return config
}

// epochProgress maps epoch completion onto the 25-95 band; the tail is
// reserved for the completed transition.
func epochProgress(epoch, total int) float64 {
	if total <= 0 {
		return 25
	}
	p := 25 + 70*float64(epoch)/float64(total)
	if p > 95 {
		p = 95
	}
	return p
}
