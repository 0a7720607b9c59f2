package exportService

import (
	annotationRepository "ShrimpVision/internal/api/annotation/repository"
	"ShrimpVision/internal/api/export"
	imageRepository "ShrimpVision/internal/api/image/repository"
	"ShrimpVision/pkg/s3"
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// IExportService packages annotations, images and trained models into zip
// archives for download.
type IExportService interface {
	ExportDataset(ctx context.Context, req export.DatasetRequest) (*export.Archive, error)
	ExportAnnotations(ctx context.Context, format string) (*export.Archive, error)
	ExportImages(ctx context.Context) (*export.Archive, error)
	ExportSummary(ctx context.Context) (*export.SummaryResponse, error)
	ModelFile(ctx context.Context, name string) (*export.Archive, error)
}

type exportService struct {
	log            *logrus.Logger
	annotationRepo annotationRepository.Repository
	imageRepo      imageRepository.Repository
	s3Client       s3.ItfS3
	modelDir       string
	now            func() time.Time
}

func NewExportService(
	log *logrus.Logger,
	annotationRepo annotationRepository.Repository,
	imageRepo imageRepository.Repository,
	s3Client s3.ItfS3,
	modelDir string,
) IExportService {
	return &exportService{
		log:            log,
		annotationRepo: annotationRepo,
		imageRepo:      imageRepo,
		s3Client:       s3Client,
		modelDir:       modelDir,
		now:            time.Now,
	}
}