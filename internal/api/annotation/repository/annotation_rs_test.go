package annotationRepository

import (
	"database/sql"
	"io"
	"reflect"
	"testing"

	"ShrimpVision/internal/entity"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

func testRepo() *annotationsRepository {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &annotationsRepository{log: logger}
}

// Saving encodes the box set into the JSONB column the same way
// UpsertAnnotation does; decoding it back must restore the identical record.
func TestBoxColumnRoundTrip(t *testing.T) {
	stored := entity.Annotation{
		ImageID:       "img-1",
		ImageFilename: "tank_a.jpg",
		ImageWidth:    1920,
		ImageHeight:   1080,
		BoundingBoxes: []entity.BoundingBox{
			{
				NormalizedBox: entity.NormalizedBox{X: 0.25, Y: 0.25, Width: 0.5, Height: 0.5},
				Label:         "shrimp",
				ClassID:       0,
				Color:         "red",
				Attributes:    []string{"berried", "female"},
				Confidence:    1.0,
			},
			{
				NormalizedBox: entity.NormalizedBox{X: 0.1, Y: 0.6, Width: 0.05, Height: 0.08},
				Label:         "shrimp_egg",
				ClassID:       4,
				Confidence:    0.87,
			},
		},
		TotalShrimp: 2,
	}

	boxes, err := jsoniter.Marshal(stored.BoundingBoxes)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	row := AnnotationDB{
		ImageID:       sql.NullString{String: stored.ImageID, Valid: true},
		ImageFilename: sql.NullString{String: stored.ImageFilename, Valid: true},
		ImageWidth:    sql.NullInt64{Int64: int64(stored.ImageWidth), Valid: true},
		ImageHeight:   sql.NullInt64{Int64: int64(stored.ImageHeight), Valid: true},
		Boxes:         boxes,
		TotalShrimp:   sql.NullInt64{Int64: int64(stored.TotalShrimp), Valid: true},
	}

	got, err := testRepo().makeAnnotation("test", row)
	if err != nil {
		t.Fatalf("makeAnnotation: %v", err)
	}

	// Box IDs are session-local and excluded from the wire form, so the
	// reloaded record matches the stored one field for field.
	if !reflect.DeepEqual(got, stored) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, stored)
	}
}

func TestMakeAnnotationEmptyBoxColumn(t *testing.T) {
	row := AnnotationDB{
		ImageID: sql.NullString{String: "img-1", Valid: true},
	}

	got, err := testRepo().makeAnnotation("test", row)
	if err != nil {
		t.Fatalf("makeAnnotation: %v", err)
	}
	if len(got.BoundingBoxes) != 0 {
		t.Errorf("BoundingBoxes = %v, want empty", got.BoundingBoxes)
	}
}

func TestMakeAnnotationCorruptBoxColumn(t *testing.T) {
	row := AnnotationDB{
		ImageID: sql.NullString{String: "img-1", Valid: true},
		Boxes:   []byte("{not json"),
	}

	if _, err := testRepo().makeAnnotation("test", row); err == nil {
		t.Error("makeAnnotation with corrupt column = nil error, want decode failure")
	}
}