package handlerUtil

import (
	"ShrimpVision/internal/api/annotation"
	"ShrimpVision/internal/api/export"
	"ShrimpVision/internal/api/image"
	"ShrimpVision/internal/api/inference"
	"ShrimpVision/internal/api/training"
	"ShrimpVision/pkg/log"
	"ShrimpVision/pkg/response"
	"ShrimpVision/pkg/utils"
	"errors"

	"github.com/gofiber/fiber/v2"
	fiberUtils "github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	// Image domain errors
	if errors.Is(err, image.ErrImageNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Image not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Image not found",
			"code":    "IMAGE_NOT_FOUND",
		})
	}

	if errors.Is(err, image.ErrNoFilesProvided) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("No files provided")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "No files provided",
			"code":    "NO_FILES_PROVIDED",
		})
	}

	if errors.Is(err, utils.ErrInvalidFileType) || errors.Is(err, image.ErrInvalidImageFile) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Invalid image file")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid file type. Only images are allowed.",
		})
	}

	if errors.Is(err, utils.ErrFileTooLarge) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("File too large")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File too large. Maximum size is 50MB.",
		})
	}

	if errors.Is(err, image.ErrFailedToUploadFile) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Failed to upload file")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload file",
		})
	}

	// Annotation domain errors
	if errors.Is(err, annotation.ErrAnnotationNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Annotation not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Annotation not found",
			"code":    "ANNOTATION_NOT_FOUND",
		})
	}

	if errors.Is(err, annotation.ErrUnknownLabel) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Unknown label")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Unknown type, color or attribute id",
			"code":    "UNKNOWN_LABEL",
		})
	}

	if errors.Is(err, annotation.ErrBoxOutOfBounds) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Bounding box out of bounds")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Bounding box outside normalized range",
			"code":    "BOX_OUT_OF_BOUNDS",
		})
	}

	// Training domain errors
	if errors.Is(err, training.ErrTrainingInProgress) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Training already in progress")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Training is already in progress",
			"code":    "TRAINING_IN_PROGRESS",
		})
	}

	if errors.Is(err, training.ErrNotEnoughAnnotations) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Not enough annotated images")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "At least 5 annotated images are required to start training",
			"code":    "NOT_ENOUGH_ANNOTATIONS",
		})
	}

	if errors.Is(err, training.ErrNoTrainingInProgress) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("No training in progress")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "No training in progress",
			"code":    "NO_TRAINING_IN_PROGRESS",
		})
	}

	// Export domain errors
	if errors.Is(err, export.ErrNothingToExport) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Nothing to export")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Nothing to export",
			"code":    "NOTHING_TO_EXPORT",
		})
	}

	if errors.Is(err, export.ErrUnknownExportFormat) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Unknown export format")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid format. Use 'json' or 'yolo'",
			"code":    "UNKNOWN_EXPORT_FORMAT",
		})
	}

	if errors.Is(err, export.ErrModelNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Model not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Model not found",
			"code":    "MODEL_NOT_FOUND",
		})
	}

	// Inference domain errors
	if errors.Is(err, inference.ErrNoModelAvailable) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("No trained model available")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "No trained model found",
			"code":    "NO_TRAINED_MODEL",
		})
	}

	if errors.Is(err, inference.ErrNoFilesProvided) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("No images provided for inference")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "No images provided",
			"code":    "NO_IMAGES_PROVIDED",
		})
	}

	var respErr *response.Error
	if errors.As(err, &respErr) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"code":       respErr.Code,
			"path":       path,
			"operation":  operation,
		}).Warn("Operation failed with error response")
		return c.Status(respErr.Code).JSON(fiber.Map{"error": err.Error()})
	}

	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}).Error("Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "An unexpected error occurred",
	})
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Validation failed: " + err.Error(),
		"code":  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(fiberUtils.StatusMessage(fiber.StatusRequestTimeout))
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
