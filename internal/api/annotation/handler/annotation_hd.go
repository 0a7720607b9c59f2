package annotationHandler

import (
	"ShrimpVision/internal/api/annotation"
	contextPkg "ShrimpVision/pkg/context"
	"ShrimpVision/pkg/handlerUtil"
	"ShrimpVision/pkg/log"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *AnnotationHandler) SaveAnnotation(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing save annotation request")

	var req annotation.SaveAnnotationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	result, err := h.annotationService.SaveAnnotation(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "save_annotation")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func (h *AnnotationHandler) SaveAll(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing batch save annotations request")

	var req annotation.SaveAllRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	result, err := h.annotationService.SaveAll(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "save_all_annotations")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func (h *AnnotationHandler) GetAnnotation(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing get annotation request")

	imageID := ctx.Params("imageId")
	if imageID == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("image ID is required"), ctx.Path())
	}

	result, err := h.annotationService.GetAnnotation(c, imageID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_annotation")
	}

	resp := annotation.GetResponse{Success: true, Annotation: result}
	if result == nil {
		resp.Message = "No annotation found for this image"
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, resp)
	}
}

func (h *AnnotationHandler) ListAnnotations(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing list annotations request")

	annotations, err := h.annotationService.ListAnnotations(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_annotations")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, annotation.ListResponse{
			Success:     true,
			Annotations: annotations,
			Total:       len(annotations),
		})
	}
}

func (h *AnnotationHandler) DeleteAnnotation(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing delete annotation request")

	imageID := ctx.Params("imageId")
	if imageID == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("image ID is required"), ctx.Path())
	}

	if err := h.annotationService.DeleteAnnotation(c, imageID); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "delete_annotation")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"success": true,
			"message": "Annotation for image " + imageID + " deleted successfully",
		})
	}
}

func (h *AnnotationHandler) Stats(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing annotation stats request")

	stats, err := h.annotationService.Stats(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "annotation_stats")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, annotation.StatsResponse{
			Success: true,
			Stats:   stats,
		})
	}
}
