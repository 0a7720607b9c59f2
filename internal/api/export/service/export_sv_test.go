package exportService

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	annotationRepository "ShrimpVision/internal/api/annotation/repository"
	"ShrimpVision/internal/api/export"
	imageRepository "ShrimpVision/internal/api/image/repository"
	"ShrimpVision/internal/entity"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

type fakeAnnotationData struct {
	annotations []entity.Annotation
}

func (f *fakeAnnotationData) UpsertAnnotation(ctx context.Context, annotation entity.Annotation) error {
	return nil
}

func (f *fakeAnnotationData) GetAnnotationByImageID(ctx context.Context, imageID string) (entity.Annotation, error) {
	return entity.Annotation{}, nil
}

func (f *fakeAnnotationData) GetAllAnnotations(ctx context.Context) ([]entity.Annotation, error) {
	return f.annotations, nil
}

func (f *fakeAnnotationData) DeleteAnnotation(ctx context.Context, imageID string) error {
	return nil
}

func (f *fakeAnnotationData) CountAnnotations(ctx context.Context) (int, error) {
	return len(f.annotations), nil
}

func (f *fakeAnnotationData) SumTotals(ctx context.Context) (int, int, error) {
	return 0, 0, nil
}

type fakeAnnotationRepo struct {
	data *fakeAnnotationData
}

func (f *fakeAnnotationRepo) NewClient(tx bool) (annotationRepository.Client, error) {
	return annotationRepository.Client{
		Annotations: f.data,
		Commit:      func() error { return nil },
		Rollback:    func() error { return nil },
	}, nil
}

type fakeImageData struct {
	images []entity.ImageAsset
}

func (f *fakeImageData) CreateImage(ctx context.Context, img entity.ImageAsset) error {
	return nil
}

func (f *fakeImageData) GetImageByID(ctx context.Context, id string) (entity.ImageAsset, error) {
	return entity.ImageAsset{}, nil
}

func (f *fakeImageData) GetAllImages(ctx context.Context) ([]entity.ImageAsset, error) {
	return f.images, nil
}

func (f *fakeImageData) DeleteImage(ctx context.Context, id string) error {
	return nil
}

func (f *fakeImageData) CountImages(ctx context.Context) (int, error) {
	return len(f.images), nil
}

type fakeImageRepo struct {
	data *fakeImageData
}

func (f *fakeImageRepo) NewClient(tx bool) (imageRepository.Client, error) {
	return imageRepository.Client{
		Images:   f.data,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

type fakeS3 struct {
	objects map[string][]byte
}

func (f *fakeS3) UploadBytes(key string, data []byte, contentType string) (string, error) {
	return key, nil
}

func (f *fakeS3) DownloadFile(fileUrl string) ([]byte, error) {
	data, ok := f.objects[fileUrl]
	if !ok {
		return nil, errors.New("object not found")
	}
	return data, nil
}

func (f *fakeS3) PresignUrl(fileName string) (string, error) {
	return fileName, nil
}

func (f *fakeS3) DeleteFile(fileName string) error {
	return nil
}

func testAnnotations() []entity.Annotation {
	return []entity.Annotation{
		{
			ImageID:       "img-1",
			ImageFilename: "tank_a.jpg",
			ImageWidth:    1920,
			ImageHeight:   1080,
			BoundingBoxes: []entity.BoundingBox{
				{
					NormalizedBox: entity.NormalizedBox{X: 0.25, Y: 0.25, Width: 0.5, Height: 0.5},
					Label:         "shrimp",
					ClassID:       0,
					Confidence:    1.0,
				},
				{
					NormalizedBox: entity.NormalizedBox{X: 0.1, Y: 0.2, Width: 0.1, Height: 0.1},
					Label:         "shrimp_adult",
					ClassID:       1,
					Confidence:    1.0,
				},
			},
			TotalShrimp: 2,
		},
		{
			ImageID:       "img-2",
			ImageFilename: "tank_b.jpg",
			ImageWidth:    1280,
			ImageHeight:   720,
			BoundingBoxes: []entity.BoundingBox{
				{
					NormalizedBox: entity.NormalizedBox{X: 0.4, Y: 0.4, Width: 0.2, Height: 0.2},
					Label:         "shrimp",
					Confidence:    1.0,
				},
			},
			TotalShrimp: 1,
		},
	}
}

func newTestService(t *testing.T, annotations []entity.Annotation, images []entity.ImageAsset, objects map[string][]byte) *exportService {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return &exportService{
		log:            logger,
		annotationRepo: &fakeAnnotationRepo{data: &fakeAnnotationData{annotations: annotations}},
		imageRepo:      &fakeImageRepo{data: &fakeImageData{images: images}},
		s3Client:       &fakeS3{objects: objects},
		modelDir:       t.TempDir(),
		now:            func() time.Time { return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC) },
	}
}

func openArchive(t *testing.T, archive *export.Archive) map[string][]byte {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(archive.Data), int64(len(archive.Data)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}

	entries := make(map[string][]byte, len(zr.File))
	for _, file := range zr.File {
		rc, err := file.Open()
		if err != nil {
			t.Fatalf("open entry %s: %v", file.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read entry %s: %v", file.Name, err)
		}
		entries[file.Name] = data
	}
	return entries
}

func TestExportAnnotationsYOLO(t *testing.T) {
	s := newTestService(t, testAnnotations(), nil, nil)

	archive, err := s.ExportAnnotations(context.Background(), "yolo")
	if err != nil {
		t.Fatalf("ExportAnnotations: %v", err)
	}
	if archive.Filename != "annotations_yolo_20260314_093000.zip" {
		t.Errorf("Filename = %q", archive.Filename)
	}

	entries := openArchive(t, archive)

	got := string(entries["labels/img-1.txt"])
	want := "0 0.500000 0.500000 0.500000 0.500000\n1 0.150000 0.250000 0.100000 0.100000"
	if got != want {
		t.Errorf("labels/img-1.txt:\n got  %q\n want %q", got, want)
	}

	if _, ok := entries["labels/img-2.txt"]; !ok {
		t.Error("labels/img-2.txt missing from archive")
	}
}

func TestExportAnnotationsJSON(t *testing.T) {
	s := newTestService(t, testAnnotations(), nil, nil)

	archive, err := s.ExportAnnotations(context.Background(), "json")
	if err != nil {
		t.Fatalf("ExportAnnotations: %v", err)
	}

	entries := openArchive(t, archive)

	if _, ok := entries["annotations/img-1.json"]; !ok {
		t.Error("annotations/img-1.json missing from archive")
	}

	var combined []entity.Annotation
	if err := jsoniter.Unmarshal(entries["all_annotations.json"], &combined); err != nil {
		t.Fatalf("decode all_annotations.json: %v", err)
	}
	if len(combined) != 2 {
		t.Errorf("combined annotations = %d, want 2", len(combined))
	}
	if combined[0].TotalShrimp != 2 {
		t.Errorf("combined[0].TotalShrimp = %d, want 2", combined[0].TotalShrimp)
	}
}

func TestExportAnnotationsValidation(t *testing.T) {
	s := newTestService(t, testAnnotations(), nil, nil)

	if _, err := s.ExportAnnotations(context.Background(), "coco"); !errors.Is(err, export.ErrUnknownExportFormat) {
		t.Errorf("unknown format error = %v, want ErrUnknownExportFormat", err)
	}

	empty := newTestService(t, nil, nil, nil)
	if _, err := empty.ExportAnnotations(context.Background(), "json"); !errors.Is(err, export.ErrNothingToExport) {
		t.Errorf("empty export error = %v, want ErrNothingToExport", err)
	}
}

func TestExportDataset(t *testing.T) {
	images := []entity.ImageAsset{
		{ID: "img-1", Filename: "tank_a.jpg", Path: "images/tank_a.jpg", Size: 4},
		{ID: "img-2", Filename: "tank_b.jpg", Path: "images/tank_b.jpg", Size: 4},
	}
	objects := map[string][]byte{
		"images/tank_a.jpg": []byte("aaaa"),
		// tank_b is missing from storage on purpose.
	}

	s := newTestService(t, testAnnotations(), images, objects)
	if err := os.WriteFile(filepath.Join(s.modelDir, "yolov8n_best.pt"), []byte("weights"), 0o644); err != nil {
		t.Fatalf("write model: %v", err)
	}

	archive, err := s.ExportDataset(context.Background(), export.DatasetRequest{
		IncludeImages:      true,
		IncludeAnnotations: true,
		IncludeModels:      true,
	})
	if err != nil {
		t.Fatalf("ExportDataset: %v", err)
	}
	if archive.Filename != "shrimp_dataset_20260314_093000.zip" {
		t.Errorf("Filename = %q", archive.Filename)
	}

	entries := openArchive(t, archive)

	if string(entries["images/tank_a.jpg"]) != "aaaa" {
		t.Error("images/tank_a.jpg missing or wrong content")
	}
	if _, ok := entries["images/tank_b.jpg"]; ok {
		t.Error("image missing from storage should be skipped, not written empty")
	}
	if _, ok := entries["labels/img-1.txt"]; !ok {
		t.Error("labels/img-1.txt missing from dataset archive")
	}
	if string(entries["models/yolov8n_best.pt"]) != "weights" {
		t.Error("models/yolov8n_best.pt missing or wrong content")
	}

	var meta datasetMetadata
	if err := jsoniter.Unmarshal(entries["metadata.json"], &meta); err != nil {
		t.Fatalf("decode metadata.json: %v", err)
	}
	if meta.TotalImages != 1 || meta.TotalAnnotations != 2 || meta.TotalModels != 1 {
		t.Errorf("metadata counts = (%d, %d, %d), want (1, 2, 1)",
			meta.TotalImages, meta.TotalAnnotations, meta.TotalModels)
	}
	if meta.ExportConfig.Format != "yolo" {
		t.Errorf("metadata format = %q, want yolo default", meta.ExportConfig.Format)
	}
}

func TestExportImagesEmpty(t *testing.T) {
	s := newTestService(t, nil, nil, nil)

	if _, err := s.ExportImages(context.Background()); !errors.Is(err, export.ErrNothingToExport) {
		t.Errorf("ExportImages = %v, want ErrNothingToExport", err)
	}
}

func TestExportSummary(t *testing.T) {
	images := []entity.ImageAsset{
		{ID: "img-1", Filename: "tank_a.jpg", Size: 1024 * 1024},
		{ID: "img-2", Filename: "tank_b.jpg", Size: 512 * 1024},
	}

	s := newTestService(t, testAnnotations(), images, nil)
	if err := os.WriteFile(filepath.Join(s.modelDir, "yolov8n_best.pt"), []byte("weights"), 0o644); err != nil {
		t.Fatalf("write model: %v", err)
	}

	resp, err := s.ExportSummary(context.Background())
	if err != nil {
		t.Fatalf("ExportSummary: %v", err)
	}

	if resp.Summary.Images.Count != 2 || !resp.Summary.Images.Available {
		t.Errorf("images summary = %+v", resp.Summary.Images)
	}
	if resp.Summary.Images.TotalSizeMB != 1.5 {
		t.Errorf("images size = %v MB, want 1.5", resp.Summary.Images.TotalSizeMB)
	}
	if resp.Summary.Annotations.Count != 2 {
		t.Errorf("annotations count = %d, want 2", resp.Summary.Annotations.Count)
	}
	if resp.Summary.Models.Count != 1 || !resp.Summary.Models.Available {
		t.Errorf("models summary = %+v", resp.Summary.Models)
	}
}

func TestModelFile(t *testing.T) {
	s := newTestService(t, nil, nil, nil)
	if err := os.WriteFile(filepath.Join(s.modelDir, "yolov8n_best.pt"), []byte("weights"), 0o644); err != nil {
		t.Fatalf("write model: %v", err)
	}

	archive, err := s.ModelFile(context.Background(), "yolov8n_best.pt")
	if err != nil {
		t.Fatalf("ModelFile: %v", err)
	}
	if string(archive.Data) != "weights" {
		t.Errorf("model content = %q", archive.Data)
	}
	if archive.ContentType != "application/octet-stream" {
		t.Errorf("ContentType = %q", archive.ContentType)
	}

	for _, name := range []string{"../secrets.pt", "missing.pt", "notes.txt"} {
		if _, err := s.ModelFile(context.Background(), name); !errors.Is(err, export.ErrModelNotFound) {
			t.Errorf("ModelFile(%q) = %v, want ErrModelNotFound", name, err)
		}
	}
}