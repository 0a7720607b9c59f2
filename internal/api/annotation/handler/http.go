package annotationHandler

import (
	annotationService "ShrimpVision/internal/api/annotation/service"
	"ShrimpVision/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AnnotationHandler struct {
	log               *logrus.Logger
	validator         *validator.Validate
	middleware        middleware.Middleware
	annotationService annotationService.IAnnotationService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	as annotationService.IAnnotationService,
) *AnnotationHandler {
	return &AnnotationHandler{
		log:               log,
		validator:         validate,
		middleware:        middleware,
		annotationService: as,
	}
}

func (h *AnnotationHandler) Start(srv fiber.Router) {
	annotations := srv.Group("/annotations")

	annotations.Post("/", h.SaveAnnotation)
	annotations.Post("/batch", h.SaveAll)

	// Registered before the parameterized route so "stats" is not taken
	// for an image id.
	annotations.Get("/stats/summary", h.Stats)

	annotations.Get("", h.ListAnnotations)
	annotations.Get("/:imageId", h.GetAnnotation)
	annotations.Delete("/:imageId", h.DeleteAnnotation)
}
