package registryService

import (
	"ShrimpVision/internal/classes"
	"ShrimpVision/internal/entity"
	"context"

	"github.com/sirupsen/logrus"
)

// IRegistryService serves the closed label vocabulary. It also satisfies the
// annotator's schema.ClassProvider collaborator contract.
type IRegistryService interface {
	GetClasses(ctx context.Context) (entity.ClassCatalog, error)
}

type registryService struct {
	log *logrus.Logger
}

func NewRegistryService(log *logrus.Logger) IRegistryService {
	return &registryService{log: log}
}

// GetClasses returns the built-in taxonomy. The catalog is owned here; the
// annotation session holds only IDs so a registry refresh never leaves stale
// descriptor copies behind.
func (s *registryService) GetClasses(_ context.Context) (entity.ClassCatalog, error) {
	return classes.Catalog(), nil
}
