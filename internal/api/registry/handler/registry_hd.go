package registryHandler

import (
	"ShrimpVision/internal/api/registry"
	contextPkg "ShrimpVision/pkg/context"
	"ShrimpVision/pkg/handlerUtil"
	"ShrimpVision/pkg/log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *RegistryHandler) GetClasses(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing get classes request")

	catalog, err := h.registryService.GetClasses(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_classes")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, registry.CatalogResponse{
			Success:    true,
			Types:      catalog.Types,
			Colors:     catalog.Colors,
			Attributes: catalog.Attributes,
		})
	}
}
