package imageHandler

import (
	imageService "ShrimpVision/internal/api/image/service"
	"ShrimpVision/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ImageHandler struct {
	log          *logrus.Logger
	validator    *validator.Validate
	middleware   middleware.Middleware
	imageService imageService.IImageService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	is imageService.IImageService,
) *ImageHandler {
	return &ImageHandler{
		log:          log,
		validator:    validate,
		middleware:   middleware,
		imageService: is,
	}
}

func (h *ImageHandler) Start(srv fiber.Router) {
	images := srv.Group("/images")

	images.Post("/", h.middleware.NewRateLimiter, h.UploadImages)
	images.Get("", h.ListImages)
	images.Delete("/:id", h.DeleteImage)
}
