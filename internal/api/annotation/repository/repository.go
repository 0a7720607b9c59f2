package annotationRepository

import (
	"ShrimpVision/internal/entity"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Annotations: &annotationsRepository{q: sqlExecutor, log: r.log},
		Commit:      commitFunc,
		Rollback:    rollbackFunc,
	}, nil
}

type Client struct {
	Annotations interface {
		UpsertAnnotation(ctx context.Context, annotation entity.Annotation) error
		GetAnnotationByImageID(ctx context.Context, imageID string) (entity.Annotation, error)
		GetAllAnnotations(ctx context.Context) ([]entity.Annotation, error)
		DeleteAnnotation(ctx context.Context, imageID string) error
		CountAnnotations(ctx context.Context) (int, error)
		SumTotals(ctx context.Context) (totalShrimp int, totalBoxes int, err error)
	}

	Commit   func() error
	Rollback func() error
}

type annotationsRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
