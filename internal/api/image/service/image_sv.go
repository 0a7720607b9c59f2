package imageService

import (
	"ShrimpVision/internal/api/image"
	"ShrimpVision/internal/entity"
	contextPkg "ShrimpVision/pkg/context"
	"bytes"
	"context"
	"fmt"
	stdimage "image"
	"io"
	"mime/multipart"
	"time"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
)

const thumbnailWidth = 320

var contentTypes = map[string]string{
	".jpg": "image/jpeg", ".jpeg": "image/jpeg", ".png": "image/png",
	".bmp": "image/bmp", ".tiff": "image/tiff", ".tif": "image/tiff",
	".webp": "image/webp", ".gif": "image/gif",
	".heic": "image/heic", ".heif": "image/heif",
}

// UploadImages stores each file in S3 with a generated ULID name, decodes its
// dimensions and records the metadata. Per-file failures are collected, not
// fatal; the response mirrors the original upload contract.
func (s *imageService) UploadImages(ctx context.Context, files []*multipart.FileHeader) (*image.UploadResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if len(files) == 0 {
		return nil, image.ErrNoFilesProvided
	}

	resp := &image.UploadResponse{Success: true, Uploaded: []image.UploadedFile{}, Errors: []string{}}

	for _, file := range files {
		uploaded, err := s.uploadOne(ctx, file)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"filename":   file.Filename,
				"error":      err.Error(),
			}).Warn("Image upload rejected")
			resp.Errors = append(resp.Errors, fmt.Sprintf("%s: %s", file.Filename, err.Error()))
			continue
		}
		resp.Uploaded = append(resp.Uploaded, uploaded)
	}

	resp.TotalUploaded = len(resp.Uploaded)
	resp.TotalErrors = len(resp.Errors)
	return resp, nil
}

func (s *imageService) uploadOne(ctx context.Context, file *multipart.FileHeader) (image.UploadedFile, error) {
	if err := s.utils.ValidateImageFile(file); err != nil {
		return image.UploadedFile{}, err
	}
	ext, _ := s.utils.ImageExtension(file.Filename)

	src, err := file.Open()
	if err != nil {
		return image.UploadedFile{}, image.ErrInvalidImageFile
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return image.UploadedFile{}, image.ErrInvalidImageFile
	}

	decoded, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return image.UploadedFile{}, image.ErrInvalidImageFile
	}
	bounds := decoded.Bounds()

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return image.UploadedFile{}, err
	}
	filename := id + ext

	location, err := s.s3Client.UploadBytes("uploads/"+filename, data, contentTypes[ext])
	if err != nil {
		return image.UploadedFile{}, image.ErrFailedToUploadFile
	}

	// Thumbnail failures are not worth failing the upload over; the UI falls
	// back to the full image.
	if err := s.uploadThumbnail(decoded, id); err != nil {
		s.log.WithFields(logrus.Fields{
			"image_id": id,
			"error":    err.Error(),
		}).Warn("Thumbnail generation failed")
	}

	asset := entity.ImageAsset{
		ID:           id,
		Filename:     filename,
		OriginalName: file.Filename,
		Width:        bounds.Dx(),
		Height:       bounds.Dy(),
		Format:       ext[1:],
		Size:         int64(len(data)),
		Path:         location,
		UploadedAt:   time.Now(),
	}

	repo, err := s.imageRepo.NewClient(false)
	if err != nil {
		return image.UploadedFile{}, err
	}
	if err := repo.Images.CreateImage(ctx, asset); err != nil {
		return image.UploadedFile{}, err
	}

	return image.UploadedFile{
		ID:           asset.ID,
		Filename:     asset.Filename,
		OriginalName: asset.OriginalName,
		Size:         asset.Size,
		Width:        asset.Width,
		Height:       asset.Height,
		Format:       asset.Format,
		Path:         asset.Path,
	}, nil
}

func (s *imageService) uploadThumbnail(decoded stdimage.Image, id string) error {
	thumb := imaging.Resize(decoded, thumbnailWidth, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return err
	}

	_, err := s.s3Client.UploadBytes("thumbs/"+id+".jpg", buf.Bytes(), "image/jpeg")
	return err
}

// List returns every uploaded image's metadata in upload order.
func (s *imageService) List(ctx context.Context) ([]entity.ImageAsset, error) {
	repo, err := s.imageRepo.NewClient(false)
	if err != nil {
		return nil, err
	}
	return repo.Images.GetAllImages(ctx)
}

// DeleteImage removes the object, its thumbnail, its metadata row and any
// annotation attached to the image.
func (s *imageService) DeleteImage(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.imageRepo.NewClient(false)
	if err != nil {
		return err
	}

	asset, err := repo.Images.GetImageByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.s3Client.DeleteFile("uploads/" + asset.Filename); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"image_id":   id,
			"error":      err.Error(),
		}).Warn("Failed to delete image object, continuing with metadata delete")
	}
	if err := s.s3Client.DeleteFile("thumbs/" + id + ".jpg"); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"image_id":   id,
			"error":      err.Error(),
		}).Debug("No thumbnail to delete")
	}

	if err := repo.Images.DeleteImage(ctx, id); err != nil {
		return err
	}

	annotations, err := s.annotationRepo.NewClient(false)
	if err != nil {
		return err
	}
	if err := annotations.Annotations.DeleteAnnotation(ctx, id); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"image_id":   id,
		}).Debug("No annotation attached to deleted image")
	}

	return nil
}
