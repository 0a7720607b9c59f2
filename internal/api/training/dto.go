package training

import "ShrimpVision/internal/entity"

type StartRequest struct {
	ModelType    string  `json:"model_type" validate:"omitempty,oneof=yolov8n yolov8s yolov8m"`
	Epochs       int     `json:"epochs" validate:"omitempty,min=1,max=1000"`
	BatchSize    int     `json:"batch_size" validate:"omitempty,min=1,max=128"`
	ImageSize    int     `json:"image_size" validate:"omitempty,min=64,max=2048"`
	LearningRate float64 `json:"learning_rate" validate:"omitempty,gt=0,lt=1"`
	TrainSplit   float64 `json:"train_split" validate:"omitempty,gt=0,lt=1"`
	ValSplit     float64 `json:"val_split" validate:"omitempty,gte=0,lt=1"`
}

type StartResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Status  entity.TrainingStatus `json:"status"`
}

type StatusResponse struct {
	Success bool                  `json:"success"`
	Status  entity.TrainingStatus `json:"status"`
}

type StopResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
