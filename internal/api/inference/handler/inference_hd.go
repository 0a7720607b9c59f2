package inferenceHandler

import (
	contextPkg "ShrimpVision/pkg/context"
	"ShrimpVision/pkg/handlerUtil"
	"ShrimpVision/pkg/log"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *InferenceHandler) Predict(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 60*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing predict request")

	file, err := ctx.FormFile("image")
	if err != nil {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("multipart image field is required"), ctx.Path())
	}

	confidence, err := confidenceThreshold(ctx)
	if err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	result, err := h.inferenceService.Predict(c, file, modelName(ctx), confidence)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "predict")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func (h *InferenceHandler) BatchPredict(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 120*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing batch predict request")

	form, err := ctx.MultipartForm()
	if err != nil {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("multipart form with images is required"), ctx.Path())
	}

	confidence, err := confidenceThreshold(ctx)
	if err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	result, err := h.inferenceService.BatchPredict(c, form.File["images"], modelName(ctx), confidence)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "batch_predict")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func (h *InferenceHandler) AvailableModels(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing available models request")

	result, err := h.inferenceService.AvailableModels(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "available_models")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func modelName(ctx *fiber.Ctx) string {
	if name := ctx.FormValue("model_name"); name != "" {
		return name
	}
	return ctx.Query("model_name")
}

func confidenceThreshold(ctx *fiber.Ctx) (float64, error) {
	raw := ctx.FormValue("confidence_threshold")
	if raw == "" {
		raw = ctx.Query("confidence_threshold")
	}
	if raw == "" {
		return 0.5, nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.New("confidence_threshold must be a number")
	}
	return value, nil
}