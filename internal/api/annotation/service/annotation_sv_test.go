package annotationService

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"ShrimpVision/internal/api/annotation"
	annotationRepository "ShrimpVision/internal/api/annotation/repository"
	"ShrimpVision/internal/api/image"
	imageRepository "ShrimpVision/internal/api/image/repository"
	"ShrimpVision/internal/entity"
	redisPkg "ShrimpVision/pkg/redis"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

type fakeAnnotationData struct {
	records map[string]entity.Annotation
}

func newFakeAnnotationData() *fakeAnnotationData {
	return &fakeAnnotationData{records: make(map[string]entity.Annotation)}
}

func (f *fakeAnnotationData) UpsertAnnotation(ctx context.Context, a entity.Annotation) error {
	f.records[a.ImageID] = a
	return nil
}

func (f *fakeAnnotationData) GetAnnotationByImageID(ctx context.Context, imageID string) (entity.Annotation, error) {
	record, ok := f.records[imageID]
	if !ok {
		return entity.Annotation{}, annotation.ErrAnnotationNotFound
	}
	return record, nil
}

func (f *fakeAnnotationData) GetAllAnnotations(ctx context.Context) ([]entity.Annotation, error) {
	out := make([]entity.Annotation, 0, len(f.records))
	for _, record := range f.records {
		out = append(out, record)
	}
	return out, nil
}

func (f *fakeAnnotationData) DeleteAnnotation(ctx context.Context, imageID string) error {
	if _, ok := f.records[imageID]; !ok {
		return annotation.ErrAnnotationNotFound
	}
	delete(f.records, imageID)
	return nil
}

func (f *fakeAnnotationData) CountAnnotations(ctx context.Context) (int, error) {
	return len(f.records), nil
}

func (f *fakeAnnotationData) SumTotals(ctx context.Context) (int, int, error) {
	shrimp, boxes := 0, 0
	for _, record := range f.records {
		shrimp += record.TotalShrimp
		boxes += len(record.BoundingBoxes)
	}
	return shrimp, boxes, nil
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
	images map[string]entity.ImageAsset
}

func (f *fakeImageData) CreateImage(ctx context.Context, img entity.ImageAsset) error {
	f.images[img.ID] = img
	return nil
}

func (f *fakeImageData) GetImageByID(ctx context.Context, id string) (entity.ImageAsset, error) {
	img, ok := f.images[id]
	if !ok {
		return entity.ImageAsset{}, image.ErrImageNotFound
	}
	return img, nil
}

func (f *fakeImageData) GetAllImages(ctx context.Context) ([]entity.ImageAsset, error) {
	out := make([]entity.ImageAsset, 0, len(f.images))
	for _, img := range f.images {
		out = append(out, img)
	}
	return out, nil
}

func (f *fakeImageData) DeleteImage(ctx context.Context, id string) error {
	delete(f.images, id)
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

type fakeRedis struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string][]byte)}
}

func (f *fakeRedis) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	payload, err := jsoniter.Marshal(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = payload
	return nil
}

func (f *fakeRedis) GetJSON(ctx context.Context, key string, dest interface{}) error {
	f.mu.Lock()
	payload, ok := f.data[key]
	f.mu.Unlock()
	if !ok {
		return redisPkg.ErrCacheMiss
	}
	return jsoniter.Unmarshal(payload, dest)
}

func (f *fakeRedis) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

type fixture struct {
	service     IAnnotationService
	annotations *fakeAnnotationData
	images      *fakeImageData
	redis       *fakeRedis
}

func newFixture(t *testing.T, images ...entity.ImageAsset) *fixture {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	imageData := &fakeImageData{images: make(map[string]entity.ImageAsset)}
	for _, img := range images {
		imageData.images[img.ID] = img
	}
	annotationData := newFakeAnnotationData()
	redisServer := newFakeRedis()

	return &fixture{
		service: NewAnnotationService(
			logger,
			&fakeAnnotationRepo{data: annotationData},
			&fakeImageRepo{data: imageData},
			redisServer,
		),
		annotations: annotationData,
		images:      imageData,
		redis:       redisServer,
	}
}

func validRequest() annotation.SaveAnnotationRequest {
	return annotation.SaveAnnotationRequest{
		ImageID:       "img-1",
		ImageFilename: "tank_a.jpg",
		ImageWidth:    1920,
		ImageHeight:   1080,
		BoundingBoxes: []annotation.BoundingBoxRequest{
			{X: 0.1, Y: 0.1, Width: 0.2, Height: 0.2, Label: "shrimp"},
			{X: 0.5, Y: 0.5, Width: 0.3, Height: 0.3, Label: "shrimp_adult", Color: "blue", Attributes: []string{"berried"}},
		},
	}
}

func TestSaveAnnotation(t *testing.T) {
	f := newFixture(t, entity.ImageAsset{ID: "img-1", Filename: "tank_a.jpg"})

	resp, err := f.service.SaveAnnotation(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("SaveAnnotation: %v", err)
	}
	if !resp.Success || resp.TotalShrimp != 2 || resp.BoundingBoxes != 2 {
		t.Errorf("SaveAnnotation response = %+v", resp)
	}

	saved := f.annotations.records["img-1"]
	if saved.TotalShrimp != 2 {
		t.Errorf("saved TotalShrimp = %d, want 2", saved.TotalShrimp)
	}
	if saved.BoundingBoxes[0].Confidence != 1.0 {
		t.Errorf("default Confidence = %v, want 1.0", saved.BoundingBoxes[0].Confidence)
	}
	if saved.BoundingBoxes[1].ClassID != 2 {
		t.Errorf("shrimp_adult ClassID = %d, want 2", saved.BoundingBoxes[1].ClassID)
	}
}

func TestSaveAnnotationValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*annotation.SaveAnnotationRequest)
		wantErr error
	}{
		{
			name:    "unknown image",
			mutate:  func(r *annotation.SaveAnnotationRequest) { r.ImageID = "missing" },
			wantErr: image.ErrImageNotFound,
		},
		{
			name:    "unknown label",
			mutate:  func(r *annotation.SaveAnnotationRequest) { r.BoundingBoxes[0].Label = "lobster" },
			wantErr: annotation.ErrUnknownLabel,
		},
		{
			name:    "unknown color",
			mutate:  func(r *annotation.SaveAnnotationRequest) { r.BoundingBoxes[0].Color = "purple" },
			wantErr: annotation.ErrUnknownLabel,
		},
		{
			name:    "unknown attribute",
			mutate:  func(r *annotation.SaveAnnotationRequest) { r.BoundingBoxes[0].Attributes = []string{"gigantic"} },
			wantErr: annotation.ErrUnknownLabel,
		},
		{
			name: "box exceeds right edge",
			mutate: func(r *annotation.SaveAnnotationRequest) {
				r.BoundingBoxes[0].X = 0.9
				r.BoundingBoxes[0].Width = 0.2
			},
			wantErr: annotation.ErrBoxOutOfBounds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, entity.ImageAsset{ID: "img-1", Filename: "tank_a.jpg"})
			req := validRequest()
			tt.mutate(&req)

			_, err := f.service.SaveAnnotation(context.Background(), req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("SaveAnnotation = %v, want %v", err, tt.wantErr)
			}
			if len(f.annotations.records) != 0 {
				t.Error("invalid annotation was persisted")
			}
		})
	}
}

func TestSaveAllCollectsErrors(t *testing.T) {
	f := newFixture(t, entity.ImageAsset{ID: "img-1", Filename: "tank_a.jpg"})

	bad := validRequest()
	bad.ImageID = "missing"
	bad.ImageFilename = "ghost.jpg"

	resp, err := f.service.SaveAll(context.Background(), annotation.SaveAllRequest{
		Annotations: []annotation.SaveAnnotationRequest{validRequest(), bad},
	})
	if err != nil {
		t.Fatalf("SaveAll: %v", err)
	}

	if resp.SavedCount != 1 || resp.TotalCount != 2 {
		t.Errorf("SaveAll counts = %d/%d, want 1/2", resp.SavedCount, resp.TotalCount)
	}
	if len(resp.Errors) != 1 {
		t.Errorf("SaveAll Errors = %v, want one entry", resp.Errors)
	}
}

func TestGetAnnotationNotFoundReturnsNil(t *testing.T) {
	f := newFixture(t, entity.ImageAsset{ID: "img-1"})

	record, err := f.service.GetAnnotation(context.Background(), "img-1")
	if err != nil {
		t.Fatalf("GetAnnotation = %v, want nil error for missing record", err)
	}
	if record != nil {
		t.Errorf("GetAnnotation = %+v, want nil", record)
	}
}

func TestStatsComputedAndCached(t *testing.T) {
	f := newFixture(t,
		entity.ImageAsset{ID: "img-1", Filename: "tank_a.jpg"},
		entity.ImageAsset{ID: "img-2", Filename: "tank_b.jpg"},
	)

	if _, err := f.service.SaveAnnotation(context.Background(), validRequest()); err != nil {
		t.Fatalf("SaveAnnotation: %v", err)
	}

	stats, err := f.service.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	if stats.TotalImages != 2 || stats.AnnotatedImages != 1 {
		t.Errorf("Stats images = %d/%d, want 1 of 2 annotated", stats.AnnotatedImages, stats.TotalImages)
	}
	if stats.TotalShrimp != 2 || stats.TotalBoundingBoxes != 2 {
		t.Errorf("Stats totals = %+v", stats)
	}
	if stats.AnnotationProgress != 50 {
		t.Errorf("AnnotationProgress = %v, want 50", stats.AnnotationProgress)
	}
	if stats.AvgShrimpPerImage != 2 {
		t.Errorf("AvgShrimpPerImage = %v, want 2", stats.AvgShrimpPerImage)
	}

	// The second read must come from the cache: mutate the underlying data
	// without invalidating and expect the stale cached value.
	f.annotations.records["img-2"] = entity.Annotation{ImageID: "img-2", TotalShrimp: 5}
	cached, err := f.service.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats (cached): %v", err)
	}
	if cached.AnnotatedImages != 1 {
		t.Errorf("cached AnnotatedImages = %d, want 1", cached.AnnotatedImages)
	}
}

func TestDeleteAnnotationInvalidatesStats(t *testing.T) {
	f := newFixture(t, entity.ImageAsset{ID: "img-1", Filename: "tank_a.jpg"})

	if _, err := f.service.SaveAnnotation(context.Background(), validRequest()); err != nil {
		t.Fatalf("SaveAnnotation: %v", err)
	}
	if _, err := f.service.Stats(context.Background()); err != nil {
		t.Fatalf("Stats: %v", err)
	}

	if err := f.service.DeleteAnnotation(context.Background(), "img-1"); err != nil {
		t.Fatalf("DeleteAnnotation: %v", err)
	}

	stats, err := f.service.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats after delete: %v", err)
	}
	if stats.AnnotatedImages != 0 {
		t.Errorf("AnnotatedImages after delete = %d, want 0", stats.AnnotatedImages)
	}

	if err := f.service.DeleteAnnotation(context.Background(), "img-1"); !errors.Is(err, annotation.ErrAnnotationNotFound) {
		t.Errorf("DeleteAnnotation(missing) = %v, want ErrAnnotationNotFound", err)
	}
}
