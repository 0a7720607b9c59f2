package config

import (
	"ShrimpVision/database/postgres"
	annotationHandler "ShrimpVision/internal/api/annotation/handler"
	annotationRepository "ShrimpVision/internal/api/annotation/repository"
	annotationService "ShrimpVision/internal/api/annotation/service"
	exportHandler "ShrimpVision/internal/api/export/handler"
	exportService "ShrimpVision/internal/api/export/service"
	imageHandler "ShrimpVision/internal/api/image/handler"
	imageRepository "ShrimpVision/internal/api/image/repository"
	imageService "ShrimpVision/internal/api/image/service"
	inferenceHandler "ShrimpVision/internal/api/inference/handler"
	inferenceService "ShrimpVision/internal/api/inference/service"
	registryHandler "ShrimpVision/internal/api/registry/handler"
	registryService "ShrimpVision/internal/api/registry/service"
	trainingHandler "ShrimpVision/internal/api/training/handler"
	trainingService "ShrimpVision/internal/api/training/service"
	"ShrimpVision/internal/middleware"
	"ShrimpVision/pkg/redis"
	"ShrimpVision/pkg/s3"
	"ShrimpVision/pkg/trainer"
	"ShrimpVision/pkg/utils"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine       *fiber.App
	db           *sqlx.DB
	log          *logrus.Logger
	middleware   middleware.Middleware
	validator    *validator.Validate
	utils        utils.IUtils
	handlers     []handler
	redisServer  redis.IRedis
	s3Client     s3.ItfS3
	modelTrainer trainer.ITrainer
	predictor    trainer.IPredictor
	modelDir     string
	wsHandler    *trainingHandler.TrainingHandler
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithS3Client() ServerOption {
	return func(s *Server) error {
		client, err := s3.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize S3 client: %v", err)
			}
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		s.s3Client = client
		return nil
	}
}

func WithTrainer() ServerOption {
	return func(s *Server) error {
		s.modelDir = os.Getenv("MODEL_DIR")
		if s.modelDir == "" {
			s.modelDir = "models"
		}

		if sidecarURL := os.Getenv("TRAINER_URL"); sidecarURL != "" {
			sidecar := trainer.NewHTTPTrainer(sidecarURL)
			s.modelTrainer = sidecar
			s.predictor = sidecar
			return nil
		}

		simulated := trainer.NewSimulated(5*time.Second, s.modelDir)
		s.modelTrainer = simulated
		s.predictor = simulated
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Class Registry
	registryServices := registryService.NewRegistryService(s.log)
	registryHandlers := registryHandler.New(s.log, s.middleware, registryServices)

	// Image Domain
	imageRepo := imageRepository.New(s.db, s.log)
	annotationRepo := annotationRepository.New(s.db, s.log)
	imageServices := imageService.NewImageService(s.log, imageRepo, annotationRepo, s.s3Client, s.utils)
	imageHandlers := imageHandler.New(s.log, s.validator, s.middleware, imageServices)

	// Annotation Domain
	annotationServices := annotationService.NewAnnotationService(s.log, annotationRepo, imageRepo, s.redisServer)
	annotationHandlers := annotationHandler.New(s.log, s.validator, s.middleware, annotationServices)

	// Training Domain
	trainingServices := trainingService.NewTrainingService(s.log, annotationRepo, s.modelTrainer, s.redisServer)
	trainingHandlers := trainingHandler.New(s.log, s.validator, s.middleware, trainingServices)
	s.wsHandler = trainingHandlers

	// Export Domain
	exportServices := exportService.NewExportService(s.log, annotationRepo, imageRepo, s.s3Client, s.modelDir)
	exportHandlers := exportHandler.New(s.log, s.validator, s.middleware, exportServices)

	// Inference Domain
	inferenceServices := inferenceService.NewInferenceService(s.log, s.predictor, s.utils)
	inferenceHandlers := inferenceHandler.New(s.log, s.validator, s.middleware, inferenceServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers,
		registryHandlers, imageHandlers, annotationHandlers,
		trainingHandlers, exportHandlers, inferenceHandlers)
}

func (s *Server) Run() error {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())

	router := s.engine.Group("/api/v1")

	for _, h := range s.handlers {
		h.Start(router)
	}

	if s.wsHandler != nil {
		s.wsHandler.StartWebsocket(s.engine)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
