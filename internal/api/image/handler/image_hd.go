package imageHandler

import (
	"ShrimpVision/internal/api/image"
	contextPkg "ShrimpVision/pkg/context"
	"ShrimpVision/pkg/handlerUtil"
	"ShrimpVision/pkg/log"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *ImageHandler) UploadImages(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 60*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing image upload request")

	form, err := ctx.MultipartForm()
	if err != nil {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("multipart form with files is required"), ctx.Path())
	}

	files := form.File["files"]
	result, err := h.imageService.UploadImages(c, files)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "upload_images")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func (h *ImageHandler) ListImages(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing list images request")

	images, err := h.imageService.List(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_images")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, image.ListResponse{
			Success: true,
			Images:  images,
			Total:   len(images),
		})
	}
}

func (h *ImageHandler) DeleteImage(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing delete image request")

	id := ctx.Params("id")
	if id == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("image ID is required"), ctx.Path())
	}

	if err := h.imageService.DeleteImage(c, id); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "delete_image")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"success": true,
			"message": "Image " + id + " deleted successfully",
		})
	}
}
