package schema

import (
	"context"
	"errors"
	"io"
	"testing"

	"ShrimpVision/internal/classes"
	"ShrimpVision/internal/entity"

	"github.com/sirupsen/logrus"
)

type stubProvider struct {
	catalog entity.ClassCatalog
	err     error
}

func (p *stubProvider) GetClasses(ctx context.Context) (entity.ClassCatalog, error) {
	return p.catalog, p.err
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestLoadUsesProviderCatalog(t *testing.T) {
	r := Load(context.Background(), &stubProvider{catalog: classes.Catalog()}, testLogger())

	if got := r.ClassIDFor("shrimp_adult"); got != 2 {
		t.Errorf("ClassIDFor(shrimp_adult) = %d, want 2", got)
	}
	if got := r.DisplayNameFor("shrimp_juvenile"); got != "Juvenile" {
		t.Errorf("DisplayNameFor(shrimp_juvenile) = %q, want %q", got, "Juvenile")
	}
}

func TestLoadFallsBackOnError(t *testing.T) {
	r := Load(context.Background(), &stubProvider{err: errors.New("connection refused")}, testLogger())

	// The fallback registry still validates the default type.
	if err := r.Validate("shrimp", "", nil); err != nil {
		t.Errorf("Validate(shrimp) after fallback = %v, want nil", err)
	}
	if err := r.Validate("shrimp_adult", "", nil); err == nil {
		t.Error("Validate(shrimp_adult) after fallback = nil, want error")
	}
	if got := r.DisplayColorFor("shrimp"); got != "#10B981" {
		t.Errorf("DisplayColorFor(shrimp) after fallback = %q, want %q", got, "#10B981")
	}
}

func TestLoadFallsBackOnEmptyCatalog(t *testing.T) {
	r := Load(context.Background(), &stubProvider{catalog: entity.ClassCatalog{}}, testLogger())

	if err := r.Validate("shrimp", "", nil); err != nil {
		t.Errorf("Validate(shrimp) after empty catalog = %v, want nil", err)
	}
}

func TestValidate(t *testing.T) {
	r := NewRegistry(classes.Catalog())

	tests := []struct {
		name    string
		typeID  string
		colorID string
		auxIDs  []string
		wantErr bool
	}{
		{name: "type only", typeID: "shrimp"},
		{name: "full tuple", typeID: "shrimp_adult", colorID: "blue", auxIDs: []string{"berried", "female"}},
		{name: "empty color is allowed", typeID: "shrimp_egg", colorID: ""},
		{name: "unknown type", typeID: "lobster", wantErr: true},
		{name: "unknown color", typeID: "shrimp", colorID: "purple", wantErr: true},
		{name: "unknown attribute", typeID: "shrimp", auxIDs: []string{"gigantic"}, wantErr: true},
		{name: "one bad attribute among good", typeID: "shrimp", auxIDs: []string{"healthy", "gigantic"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.Validate(tt.typeID, tt.colorID, tt.auxIDs)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q, %q, %v) = %v, wantErr %v", tt.typeID, tt.colorID, tt.auxIDs, err, tt.wantErr)
			}
			if tt.wantErr && err != nil && !errors.Is(err, ErrInvalidAttribute) {
				t.Errorf("Validate error = %v, want ErrInvalidAttribute", err)
			}
		})
	}
}

func TestDisplayColorForUnknownType(t *testing.T) {
	r := NewRegistry(classes.Catalog())

	if got, want := r.DisplayColorFor("lobster"), classes.Default().DisplayColor; got != want {
		t.Errorf("DisplayColorFor(lobster) = %q, want default %q", got, want)
	}
}

func TestClassIDForUnknownType(t *testing.T) {
	r := NewRegistry(classes.Catalog())

	if got := r.ClassIDFor("lobster"); got != -1 {
		t.Errorf("ClassIDFor(lobster) = %d, want -1", got)
	}
}

func TestDefaultType(t *testing.T) {
	r := NewRegistry(classes.Catalog())

	if got := r.DefaultType().Name; got != "shrimp" {
		t.Errorf("DefaultType().Name = %q, want %q", got, "shrimp")
	}
}
