package exportService

import (
	"ShrimpVision/internal/api/export"
	"ShrimpVision/internal/entity"
	contextPkg "ShrimpVision/pkg/context"
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

const timestampLayout = "20060102_150405"

type datasetMetadata struct {
	ExportTimestamp  string                `json:"export_timestamp"`
	ExportConfig     export.DatasetRequest `json:"export_config"`
	TotalImages      int                   `json:"total_images"`
	TotalAnnotations int                   `json:"total_annotations"`
	TotalModels      int                   `json:"total_models"`
}

// ExportDataset builds the full archive: image objects, annotation labels in
// the requested format, trained model files and a metadata manifest.
func (s *exportService) ExportDataset(ctx context.Context, req export.DatasetRequest) (*export.Archive, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if req.Format == "" {
		req.Format = "yolo"
	}
	if req.Format != "json" && req.Format != "yolo" {
		return nil, export.ErrUnknownExportFormat
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	meta := datasetMetadata{
		ExportTimestamp: s.now().Format(timestampLayout),
		ExportConfig:    req,
	}

	if req.IncludeImages {
		count, err := s.addImages(ctx, zw, "images/")
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to add images to dataset archive")
			return nil, err
		}
		meta.TotalImages = count
	}

	if req.IncludeAnnotations {
		count, err := s.addAnnotations(ctx, zw, req.Format)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to add annotations to dataset archive")
			return nil, err
		}
		meta.TotalAnnotations = count
	}

	if req.IncludeModels {
		count, err := s.addModels(zw)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to add models to dataset archive")
			return nil, err
		}
		meta.TotalModels = count
	}

	if err := writeJSONEntry(zw, "metadata.json", meta); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}

	return &export.Archive{
		Filename:    fmt.Sprintf("shrimp_dataset_%s.zip", meta.ExportTimestamp),
		ContentType: "application/zip",
		Data:        buf.Bytes(),
	}, nil
}

// ExportAnnotations packages every stored annotation. The json format keeps
// one file per image plus a combined all_annotations.json; yolo writes one
// labels/<imageID>.txt per image with class-id and center coordinates.
func (s *exportService) ExportAnnotations(ctx context.Context, format string) (*export.Archive, error) {
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "yolo" {
		return nil, export.ErrUnknownExportFormat
	}

	annotations, err := s.allAnnotations(ctx)
	if err != nil {
		return nil, err
	}
	if len(annotations) == 0 {
		return nil, export.ErrNothingToExport
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	filename := fmt.Sprintf("annotations_%s.zip", s.now().Format(timestampLayout))
	if format == "yolo" {
		filename = fmt.Sprintf("annotations_yolo_%s.zip", s.now().Format(timestampLayout))
		for _, a := range annotations {
			if err := writeYOLOEntry(zw, a); err != nil {
				return nil, err
			}
		}
	} else {
		for _, a := range annotations {
			if err := writeJSONEntry(zw, "annotations/"+a.ImageID+".json", a); err != nil {
				return nil, err
			}
		}
		if err := writeJSONEntry(zw, "all_annotations.json", annotations); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}

	return &export.Archive{Filename: filename, ContentType: "application/zip", Data: buf.Bytes()}, nil
}

func (s *exportService) ExportImages(ctx context.Context) (*export.Archive, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	count, err := s.addImages(ctx, zw, "images/")
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, export.ErrNothingToExport
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}

	return &export.Archive{
		Filename:    fmt.Sprintf("images_%s.zip", s.now().Format(timestampLayout)),
		ContentType: "application/zip",
		Data:        buf.Bytes(),
	}, nil
}

func (s *exportService) ExportSummary(ctx context.Context) (*export.SummaryResponse, error) {
	images, err := s.allImages(ctx)
	if err != nil {
		return nil, err
	}
	annotations, err := s.allAnnotations(ctx)
	if err != nil {
		return nil, err
	}

	var imageBytes int64
	for _, img := range images {
		imageBytes += img.Size
	}

	summary := export.Summary{
		Images: export.SectionSummary{
			Count:       len(images),
			TotalSizeMB: roundMB(imageBytes),
			Available:   len(images) > 0,
		},
		Annotations: export.SectionSummary{
			Count:     len(annotations),
			Available: len(annotations) > 0,
		},
	}

	models, modelBytes := s.modelFiles()
	summary.Models = export.SectionSummary{
		Count:       len(models),
		TotalSizeMB: roundMB(modelBytes),
		Available:   len(models) > 0,
	}

	return &export.SummaryResponse{Success: true, Summary: summary}, nil
}

// ModelFile serves one trained model for download. The name is reduced to
// its base so a crafted path cannot escape the model directory.
func (s *exportService) ModelFile(ctx context.Context, name string) (*export.Archive, error) {
	base := filepath.Base(name)
	if base != name || !strings.HasSuffix(base, ".pt") {
		return nil, export.ErrModelNotFound
	}

	data, err := os.ReadFile(filepath.Join(s.modelDir, base))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, export.ErrModelNotFound
		}
		return nil, err
	}

	return &export.Archive{
		Filename:    base,
		ContentType: "application/octet-stream",
		Data:        data,
	}, nil
}

func (s *exportService) addImages(ctx context.Context, zw *zip.Writer, prefix string) (int, error) {
	images, err := s.allImages(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, img := range images {
		data, err := s.s3Client.DownloadFile(img.Path)
		if err != nil {
			// One missing object should not sink the whole archive.
			s.log.WithFields(logrus.Fields{
				"image_id": img.ID,
				"error":    err.Error(),
			}).Warn("Skipping image missing from storage")
			continue
		}

		w, err := zw.Create(prefix + img.Filename)
		if err != nil {
			return count, err
		}
		if _, err := w.Write(data); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}

func (s *exportService) addAnnotations(ctx context.Context, zw *zip.Writer, format string) (int, error) {
	annotations, err := s.allAnnotations(ctx)
	if err != nil {
		return 0, err
	}

	for _, a := range annotations {
		if format == "yolo" {
			if err := writeYOLOEntry(zw, a); err != nil {
				return 0, err
			}
			continue
		}
		if err := writeJSONEntry(zw, "annotations/"+a.ImageID+".json", a); err != nil {
			return 0, err
		}
	}

	return len(annotations), nil
}

func (s *exportService) addModels(zw *zip.Writer) (int, error) {
	models, _ := s.modelFiles()

	count := 0
	for _, name := range models {
		data, err := os.ReadFile(filepath.Join(s.modelDir, name))
		if err != nil {
			continue
		}
		w, err := zw.Create("models/" + name)
		if err != nil {
			return count, err
		}
		if _, err := w.Write(data); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}

func (s *exportService) allAnnotations(ctx context.Context) ([]entity.Annotation, error) {
	repo, err := s.annotationRepo.NewClient(false)
	if err != nil {
		return nil, err
	}
	return repo.Annotations.GetAllAnnotations(ctx)
}

func (s *exportService) allImages(ctx context.Context) ([]entity.ImageAsset, error) {
	repo, err := s.imageRepo.NewClient(false)
	if err != nil {
		return nil, err
	}
	return repo.Images.GetAllImages(ctx)
}

func (s *exportService) modelFiles() ([]string, int64) {
	entries, err := os.ReadDir(s.modelDir)
	if err != nil {
		return nil, 0
	}

	var names []string
	var total int64
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".pt") {
			continue
		}
		names = append(names, entry.Name())
		if info, err := entry.Info(); err == nil {
			total += info.Size()
		}
	}
	return names, total
}

func writeJSONEntry(zw *zip.Writer, name string, v interface{}) error {
	data, err := jsoniter.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// writeYOLOEntry emits one label line per box: class id followed by the
// normalized center coordinates and dimensions.
func writeYOLOEntry(zw *zip.Writer, a entity.Annotation) error {
	lines := make([]string, 0, len(a.BoundingBoxes))
	for _, box := range a.BoundingBoxes {
		xCenter := box.X + box.Width/2
		yCenter := box.Y + box.Height/2
		lines = append(lines, fmt.Sprintf("%d %.6f %.6f %.6f %.6f",
			box.ClassID, xCenter, yCenter, box.Width, box.Height))
	}

	w, err := zw.Create("labels/" + a.ImageID + ".txt")
	if err != nil {
		return err
	}
	_, err = w.Write([]byte(strings.Join(lines, "\n")))
	return err
}

func roundMB(size int64) float64 {
	return math.Round(float64(size)/(1024*1024)*100) / 100
}