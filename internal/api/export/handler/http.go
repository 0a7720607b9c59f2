package exportHandler

import (
	exportService "ShrimpVision/internal/api/export/service"
	"ShrimpVision/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ExportHandler struct {
	log           *logrus.Logger
	validator     *validator.Validate
	middleware    middleware.Middleware
	exportService exportService.IExportService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	es exportService.IExportService,
) *ExportHandler {
	return &ExportHandler{
		log:           log,
		validator:     validate,
		middleware:    middleware,
		exportService: es,
	}
}

func (h *ExportHandler) Start(srv fiber.Router) {
	exports := srv.Group("/export")

	exports.Post("/dataset", h.ExportDataset)
	exports.Get("/annotations", h.ExportAnnotations)
	exports.Get("/images", h.ExportImages)
	exports.Get("/summary", h.ExportSummary)
	exports.Get("/model/:name", h.DownloadModel)
}