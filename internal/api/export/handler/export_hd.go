package exportHandler

import (
	"ShrimpVision/internal/api/export"
	contextPkg "ShrimpVision/pkg/context"
	"ShrimpVision/pkg/handlerUtil"
	"ShrimpVision/pkg/log"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *ExportHandler) ExportDataset(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 60*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing dataset export request")

	// Sections default to included; the body only narrows the selection.
	req := export.DatasetRequest{
		IncludeImages:      true,
		IncludeAnnotations: true,
		IncludeModels:      true,
	}
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
		}
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	archive, err := h.exportService.ExportDataset(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "export_dataset")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return sendArchive(ctx, archive)
	}
}

func (h *ExportHandler) ExportAnnotations(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing annotation export request")

	archive, err := h.exportService.ExportAnnotations(c, ctx.Query("format", "json"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "export_annotations")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return sendArchive(ctx, archive)
	}
}

func (h *ExportHandler) ExportImages(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 60*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing image export request")

	archive, err := h.exportService.ExportImages(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "export_images")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return sendArchive(ctx, archive)
	}
}

func (h *ExportHandler) ExportSummary(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing export summary request")

	summary, err := h.exportService.ExportSummary(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "export_summary")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, summary)
	}
}

func (h *ExportHandler) DownloadModel(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing model download request")

	name := ctx.Params("name")
	if name == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("model name is required"), ctx.Path())
	}

	archive, err := h.exportService.ModelFile(c, name)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "download_model")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return sendArchive(ctx, archive)
	}
}

func sendArchive(ctx *fiber.Ctx, archive *export.Archive) error {
	ctx.Set(fiber.HeaderContentType, archive.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+archive.Filename+`"`)
	return ctx.Send(archive.Data)
}