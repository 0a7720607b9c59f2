package inferenceHandler

import (
	inferenceService "ShrimpVision/internal/api/inference/service"
	"ShrimpVision/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type InferenceHandler struct {
	log              *logrus.Logger
	validator        *validator.Validate
	middleware       middleware.Middleware
	inferenceService inferenceService.IInferenceService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	is inferenceService.IInferenceService,
) *InferenceHandler {
	return &InferenceHandler{
		log:              log,
		validator:        validate,
		middleware:       middleware,
		inferenceService: is,
	}
}

func (h *InferenceHandler) Start(srv fiber.Router) {
	infer := srv.Group("/inference")

	infer.Post("/predict", h.Predict)
	infer.Post("/batch-predict", h.BatchPredict)
	infer.Get("/models/available", h.AvailableModels)
}