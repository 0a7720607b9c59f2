package annotationService

import (
	"ShrimpVision/internal/api/annotation"
	annotationRepository "ShrimpVision/internal/api/annotation/repository"
	imageRepository "ShrimpVision/internal/api/image/repository"
	"ShrimpVision/internal/entity"
	"ShrimpVision/pkg/redis"
	"context"

	"github.com/sirupsen/logrus"
)

type IAnnotationService interface {
	SaveAnnotation(ctx context.Context, req annotation.SaveAnnotationRequest) (*annotation.SaveResponse, error)
	SaveAll(ctx context.Context, req annotation.SaveAllRequest) (*annotation.SaveAllResponse, error)
	GetAnnotation(ctx context.Context, imageID string) (*entity.Annotation, error)
	ListAnnotations(ctx context.Context) ([]entity.Annotation, error)
	DeleteAnnotation(ctx context.Context, imageID string) error
	Stats(ctx context.Context) (entity.AnnotationStats, error)
	AnnotatedImageCount(ctx context.Context) (int, error)
}

type annotationService struct {
	log            *logrus.Logger
	annotationRepo annotationRepository.Repository
	imageRepo      imageRepository.Repository
	redisServer    redis.IRedis
}

func NewAnnotationService(
	log *logrus.Logger,
	annotationRepo annotationRepository.Repository,
	imageRepo imageRepository.Repository,
	redisServer redis.IRedis,
) IAnnotationService {
	return &annotationService{
		log:            log,
		annotationRepo: annotationRepo,
		imageRepo:      imageRepo,
		redisServer:    redisServer,
	}
}
