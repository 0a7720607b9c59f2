package trainingService

import (
	annotationRepository "ShrimpVision/internal/api/annotation/repository"
	"ShrimpVision/internal/api/training"
	"ShrimpVision/internal/entity"
	"ShrimpVision/pkg/redis"
	"ShrimpVision/pkg/trainer"
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

type ITrainingService interface {
	StartTraining(ctx context.Context, req training.StartRequest) (*training.StartResponse, error)
	StopTraining(ctx context.Context) (*training.StopResponse, error)
	Status(ctx context.Context) (entity.TrainingStatus, error)
	Subscribe() (<-chan entity.TrainingStatus, func())
}

type trainingService struct {
	log            *logrus.Logger
	annotationRepo annotationRepository.Repository
	trainer        trainer.ITrainer
	redisServer    redis.IRedis

	mu          sync.Mutex
	status      entity.TrainingStatus
	running     bool
	cancelRun   context.CancelFunc
	subscribers map[chan entity.TrainingStatus]struct{}
}

func NewTrainingService(
	log *logrus.Logger,
	annotationRepo annotationRepository.Repository,
	tr trainer.ITrainer,
	redisServer redis.IRedis,
) ITrainingService {
	s := &trainingService{
		log:            log,
		annotationRepo: annotationRepo,
		trainer:        tr,
		redisServer:    redisServer,
		status:         entity.TrainingStatus{Status: entity.TrainingIdle},
		subscribers:    make(map[chan entity.TrainingStatus]struct{}),
	}
	s.restoreSnapshot()
	return s
}
