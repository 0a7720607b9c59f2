// Package schema is the client-side view of the label vocabulary. A Registry
// is fetched once per annotation session and validates every attribute tuple
// before it reaches the box set.
package schema

import (
	"ShrimpVision/internal/classes"
	"ShrimpVision/internal/entity"
	"ShrimpVision/pkg/response"
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
)

var ErrInvalidAttribute = response.NewError(http.StatusBadRequest, "unknown type, color or attribute id")

// ClassProvider is the external collaborator owning the taxonomy.
type ClassProvider interface {
	GetClasses(ctx context.Context) (entity.ClassCatalog, error)
}

// Registry is an immutable snapshot of the vocabulary for one session.
type Registry struct {
	catalog entity.ClassCatalog
}

// Load fetches the catalog once. When the fetch fails the registry falls back
// to the single built-in default type so annotation stays possible; it never
// ends up with an empty, unusable type list.
func Load(ctx context.Context, provider ClassProvider, log *logrus.Logger) *Registry {
	catalog, err := provider.GetClasses(ctx)
	if err != nil || len(catalog.Types) == 0 {
		if log != nil {
			log.WithFields(logrus.Fields{
				"error": errString(err),
			}).Warn("Class catalog fetch failed, falling back to built-in default type")
		}
		def := classes.Default()
		catalog = entity.ClassCatalog{
			Types:      map[string]entity.TypeDescriptor{def.Name: def},
			Colors:     map[string]entity.ColorDescriptor{},
			Attributes: map[string]entity.AttributeDescriptor{},
		}
	}

	return &Registry{catalog: catalog}
}

// NewRegistry wraps an already-loaded catalog, used by tests and the renderer.
func NewRegistry(catalog entity.ClassCatalog) *Registry {
	return &Registry{catalog: catalog}
}

// Validate rejects an attribute tuple when any ID is not in the vocabulary.
// colorID may be empty (optional); auxIDs may be empty.
func (r *Registry) Validate(typeID string, colorID string, auxIDs []string) error {
	if _, ok := r.catalog.Types[typeID]; !ok {
		return ErrInvalidAttribute
	}
	if colorID != "" {
		if _, ok := r.catalog.Colors[colorID]; !ok {
			return ErrInvalidAttribute
		}
	}
	for _, id := range auxIDs {
		if _, ok := r.catalog.Attributes[id]; !ok {
			return ErrInvalidAttribute
		}
	}
	return nil
}

// DisplayColorFor returns the stroke color for a type, or the default type's
// color for unknown ids so the renderer always has something drawable.
func (r *Registry) DisplayColorFor(typeID string) string {
	if t, ok := r.catalog.Types[typeID]; ok {
		return t.DisplayColor
	}
	return classes.Default().DisplayColor
}

func (r *Registry) DisplayNameFor(typeID string) string {
	if t, ok := r.catalog.Types[typeID]; ok {
		return t.DisplayName
	}
	return typeID
}

// ClassIDFor maps a type name to its stable numeric id, -1 when unknown.
func (r *Registry) ClassIDFor(typeID string) int {
	if t, ok := r.catalog.Types[typeID]; ok {
		return t.ID
	}
	return -1
}

// DefaultType is the type preselected when a session starts.
func (r *Registry) DefaultType() entity.TypeDescriptor {
	if t, ok := r.catalog.Types[classes.Default().Name]; ok {
		return t
	}
	for _, t := range r.catalog.Types {
		return t
	}
	return classes.Default()
}

func errString(err error) string {
	if err == nil {
		return "empty catalog"
	}
	return err.Error()
}
