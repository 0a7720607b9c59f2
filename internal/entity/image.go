package entity

import "time"

// ImageAsset is the metadata for one uploaded image. The object itself lives
// in S3; Path is the serving URL the UI loads the image from.
type ImageAsset struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name,omitempty"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	Format       string    `json:"format,omitempty"`
	Size         int64     `json:"size,omitempty"`
	Path         string    `json:"path"`
	UploadedAt   time.Time `json:"-"`
}
