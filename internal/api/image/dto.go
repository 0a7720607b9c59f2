package image

import "ShrimpVision/internal/entity"

type UploadedFile struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	Size         int64  `json:"size"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Format       string `json:"format"`
	Path         string `json:"path"`
}

type UploadResponse struct {
	Success       bool           `json:"success"`
	Uploaded      []UploadedFile `json:"uploaded"`
	Errors        []string       `json:"errors"`
	TotalUploaded int            `json:"total_uploaded"`
	TotalErrors   int            `json:"total_errors"`
}

type ListResponse struct {
	Success bool                `json:"success"`
	Images  []entity.ImageAsset `json:"images"`
	Total   int                 `json:"total"`
}
