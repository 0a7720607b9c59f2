package trainingHandler

import (
	trainingService "ShrimpVision/internal/api/training/service"
	"ShrimpVision/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type TrainingHandler struct {
	log             *logrus.Logger
	validator       *validator.Validate
	middleware      middleware.Middleware
	trainingService trainingService.ITrainingService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	ts trainingService.ITrainingService,
) *TrainingHandler {
	return &TrainingHandler{
		log:             log,
		validator:       validate,
		middleware:      middleware,
		trainingService: ts,
	}
}

func (h *TrainingHandler) Start(srv fiber.Router) {
	training := srv.Group("/training")

	training.Post("/start", h.StartTraining)
	training.Get("/status", h.TrainingStatus)
	training.Post("/stop", h.StopTraining)
}

// StartWebsocket registers the status push endpoint. It is mounted outside
// the versioned API group, on /ws/training.
func (h *TrainingHandler) StartWebsocket(app fiber.Router) {
	ws := app.Group("/ws")

	ws.Use("/training", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	ws.Get("/training", websocket.New(h.handleTrainingWebSocket))
}
