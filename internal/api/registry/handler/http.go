package registryHandler

import (
	registryService "ShrimpVision/internal/api/registry/service"
	"ShrimpVision/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type RegistryHandler struct {
	log             *logrus.Logger
	middleware      middleware.Middleware
	registryService registryService.IRegistryService
}

func New(
	log *logrus.Logger,
	middleware middleware.Middleware,
	rs registryService.IRegistryService,
) *RegistryHandler {
	return &RegistryHandler{
		log:             log,
		middleware:      middleware,
		registryService: rs,
	}
}

func (h *RegistryHandler) Start(srv fiber.Router) {
	srv.Get("/classes", h.GetClasses)
}
