package inferenceService

import (
	"ShrimpVision/internal/api/inference"
	"ShrimpVision/pkg/trainer"
	"ShrimpVision/pkg/utils"
	"context"
	"mime/multipart"

	"github.com/sirupsen/logrus"
)

// IInferenceService runs the trained model over uploaded images to count
// shrimp without persisting anything.
type IInferenceService interface {
	Predict(ctx context.Context, file *multipart.FileHeader, modelName string, confidence float64) (*inference.PredictResponse, error)
	BatchPredict(ctx context.Context, files []*multipart.FileHeader, modelName string, confidence float64) (*inference.BatchResponse, error)
	AvailableModels(ctx context.Context) (*inference.ModelsResponse, error)
}

type inferenceService struct {
	log       *logrus.Logger
	predictor trainer.IPredictor
	utils     utils.IUtils
}

func NewInferenceService(
	log *logrus.Logger,
	predictor trainer.IPredictor,
	u utils.IUtils,
) IInferenceService {
	return &inferenceService{
		log:       log,
		predictor: predictor,
		utils:     u,
	}
}