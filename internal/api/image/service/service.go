package imageService

import (
	"ShrimpVision/internal/api/image"
	imageRepository "ShrimpVision/internal/api/image/repository"
	annotationRepository "ShrimpVision/internal/api/annotation/repository"
	"ShrimpVision/internal/entity"
	"ShrimpVision/pkg/s3"
	"ShrimpVision/pkg/utils"
	"context"
	"mime/multipart"

	"github.com/sirupsen/logrus"
)

// IImageService owns uploaded image objects and their metadata. List also
// satisfies the annotator session's ImageLister collaborator contract.
type IImageService interface {
	UploadImages(ctx context.Context, files []*multipart.FileHeader) (*image.UploadResponse, error)
	List(ctx context.Context) ([]entity.ImageAsset, error)
	DeleteImage(ctx context.Context, id string) error
}

type imageService struct {
	log            *logrus.Logger
	imageRepo      imageRepository.Repository
	annotationRepo annotationRepository.Repository
	s3Client       s3.ItfS3
	utils          utils.IUtils
}

func NewImageService(
	log *logrus.Logger,
	imageRepo imageRepository.Repository,
	annotationRepo annotationRepository.Repository,
	s3Client s3.ItfS3,
	u utils.IUtils,
) IImageService {
	return &imageService{
		log:            log,
		imageRepo:      imageRepo,
		annotationRepo: annotationRepo,
		s3Client:       s3Client,
		utils:          u,
	}
}
