package annotationService

import (
	"ShrimpVision/internal/api/annotation"
	"ShrimpVision/internal/classes"
	"ShrimpVision/internal/entity"
	contextPkg "ShrimpVision/pkg/context"
	"ShrimpVision/pkg/redis"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	statsCacheKey = "annotations:stats"
	statsCacheTTL = 30 * time.Second
)

// SaveAnnotation validates and persists the label set for one image,
// superseding any previous annotation for that image. TotalShrimp is derived
// from the box count, never trusted from the request.
func (s *annotationService) SaveAnnotation(ctx context.Context, req annotation.SaveAnnotationRequest) (*annotation.SaveResponse, error) {
	record, err := s.buildRecord(ctx, req)
	if err != nil {
		return nil, err
	}

	repo, err := s.annotationRepo.NewClient(false)
	if err != nil {
		return nil, err
	}
	if err := repo.Annotations.UpsertAnnotation(ctx, record); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)

	return &annotation.SaveResponse{
		Success:       true,
		Message:       fmt.Sprintf("Annotation saved for %s", record.ImageFilename),
		TotalShrimp:   record.TotalShrimp,
		BoundingBoxes: len(record.BoundingBoxes),
	}, nil
}

// SaveAll persists a batch, collecting per-item errors the way the single
// save surfaces them; one bad annotation does not abort the rest.
func (s *annotationService) SaveAll(ctx context.Context, req annotation.SaveAllRequest) (*annotation.SaveAllResponse, error) {
	resp := &annotation.SaveAllResponse{
		Success:    true,
		TotalCount: len(req.Annotations),
		Errors:     []string{},
	}

	for _, item := range req.Annotations {
		if _, err := s.SaveAnnotation(ctx, item); err != nil {
			resp.Errors = append(resp.Errors, fmt.Sprintf("failed to save %s: %s", item.ImageFilename, err.Error()))
			continue
		}
		resp.SavedCount++
	}

	return resp, nil
}

// GetAnnotation returns nil (not an error) when the image has no annotation,
// matching the persistence collaborator contract the session relies on.
func (s *annotationService) GetAnnotation(ctx context.Context, imageID string) (*entity.Annotation, error) {
	repo, err := s.annotationRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	record, err := repo.Annotations.GetAnnotationByImageID(ctx, imageID)
	if err != nil {
		if errors.Is(err, annotation.ErrAnnotationNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &record, nil
}

func (s *annotationService) ListAnnotations(ctx context.Context) ([]entity.Annotation, error) {
	repo, err := s.annotationRepo.NewClient(false)
	if err != nil {
		return nil, err
	}
	return repo.Annotations.GetAllAnnotations(ctx)
}

func (s *annotationService) DeleteAnnotation(ctx context.Context, imageID string) error {
	repo, err := s.annotationRepo.NewClient(false)
	if err != nil {
		return err
	}
	if err := repo.Annotations.DeleteAnnotation(ctx, imageID); err != nil {
		return err
	}

	s.invalidateStats(ctx)
	return nil
}

// Stats aggregates annotation progress, cached briefly in Redis because the
// dashboard polls it alongside the training status.
func (s *annotationService) Stats(ctx context.Context) (entity.AnnotationStats, error) {
	var cached entity.AnnotationStats
	if err := s.redisServer.GetJSON(ctx, statsCacheKey, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, redis.ErrCacheMiss) {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Warn("Stats cache read failed, recomputing")
	}

	stats, err := s.computeStats(ctx)
	if err != nil {
		return entity.AnnotationStats{}, err
	}

	if err := s.redisServer.SetJSON(ctx, statsCacheKey, stats, statsCacheTTL); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Warn("Stats cache write failed")
	}

	return stats, nil
}

func (s *annotationService) AnnotatedImageCount(ctx context.Context) (int, error) {
	repo, err := s.annotationRepo.NewClient(false)
	if err != nil {
		return 0, err
	}
	return repo.Annotations.CountAnnotations(ctx)
}

func (s *annotationService) computeStats(ctx context.Context) (entity.AnnotationStats, error) {
	images, err := s.imageRepo.NewClient(false)
	if err != nil {
		return entity.AnnotationStats{}, err
	}
	annotations, err := s.annotationRepo.NewClient(false)
	if err != nil {
		return entity.AnnotationStats{}, err
	}

	totalImages, err := images.Images.CountImages(ctx)
	if err != nil {
		return entity.AnnotationStats{}, err
	}

	annotated, err := annotations.Annotations.CountAnnotations(ctx)
	if err != nil {
		return entity.AnnotationStats{}, err
	}

	totalShrimp, totalBoxes, err := annotations.Annotations.SumTotals(ctx)
	if err != nil {
		return entity.AnnotationStats{}, err
	}

	stats := entity.AnnotationStats{
		TotalImages:        totalImages,
		AnnotatedImages:    annotated,
		TotalShrimp:        totalShrimp,
		TotalBoundingBoxes: totalBoxes,
	}
	if totalImages > 0 {
		stats.AnnotationProgress = float64(annotated) / float64(totalImages) * 100
	}
	if annotated > 0 {
		stats.AvgShrimpPerImage = float64(totalShrimp) / float64(annotated)
	}

	return stats, nil
}

// buildRecord checks the image exists, validates every attribute tuple
// against the vocabulary and normalizes derived fields.
func (s *annotationService) buildRecord(ctx context.Context, req annotation.SaveAnnotationRequest) (entity.Annotation, error) {
	images, err := s.imageRepo.NewClient(false)
	if err != nil {
		return entity.Annotation{}, err
	}
	if _, err := images.Images.GetImageByID(ctx, req.ImageID); err != nil {
		return entity.Annotation{}, err
	}

	boxes := make([]entity.BoundingBox, 0, len(req.BoundingBoxes))
	for _, b := range req.BoundingBoxes {
		if !classes.IsValidType(b.Label) {
			return entity.Annotation{}, annotation.ErrUnknownLabel
		}
		if b.Color != "" && !classes.IsValidColor(b.Color) {
			return entity.Annotation{}, annotation.ErrUnknownLabel
		}
		for _, attr := range b.Attributes {
			if !classes.IsValidAttribute(attr) {
				return entity.Annotation{}, annotation.ErrUnknownLabel
			}
		}
		if b.X+b.Width > 1 || b.Y+b.Height > 1 {
			return entity.Annotation{}, annotation.ErrBoxOutOfBounds
		}

		descriptor, _ := classes.ByName(b.Label)
		confidence := b.Confidence
		if confidence == 0 {
			confidence = 1.0
		}

		boxes = append(boxes, entity.BoundingBox{
			NormalizedBox: entity.NormalizedBox{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height},
			Label:         b.Label,
			ClassID:       descriptor.ID,
			Color:         b.Color,
			Attributes:    b.Attributes,
			Confidence:    confidence,
		})
	}

	return entity.Annotation{
		ImageID:       req.ImageID,
		ImageFilename: req.ImageFilename,
		ImageWidth:    req.ImageWidth,
		ImageHeight:   req.ImageHeight,
		BoundingBoxes: boxes,
		TotalShrimp:   len(boxes),
	}, nil
}

func (s *annotationService) invalidateStats(ctx context.Context) {
	if err := s.redisServer.Delete(ctx, statsCacheKey); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Warn("Failed to invalidate stats cache")
	}
}
