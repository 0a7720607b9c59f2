package annotationRepository

import (
	"ShrimpVision/internal/api/annotation"
	"ShrimpVision/internal/entity"
	contextPkg "ShrimpVision/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

type AnnotationDB struct {
	ImageID       sql.NullString `db:"image_id"`
	ImageFilename sql.NullString `db:"image_filename"`
	ImageWidth    sql.NullInt64  `db:"image_width"`
	ImageHeight   sql.NullInt64  `db:"image_height"`
	Boxes         []byte         `db:"boxes"`
	TotalShrimp   sql.NullInt64  `db:"total_shrimp"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func (r *annotationsRepository) UpsertAnnotation(ctx context.Context, a entity.Annotation) error {
	requestID := contextPkg.GetRequestID(ctx)

	boxes, err := jsoniter.Marshal(a.BoundingBoxes)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to encode bounding boxes for UpsertAnnotation")
		return err
	}

	argsKV := map[string]interface{}{
		"image_id":       a.ImageID,
		"image_filename": a.ImageFilename,
		"image_width":    a.ImageWidth,
		"image_height":   a.ImageHeight,
		"boxes":          boxes,
		"total_shrimp":   a.TotalShrimp,
		"updated_at":     time.Now(),
	}

	query, args, err := sqlx.Named(queryUpsertAnnotation, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for UpsertAnnotation")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when upserting annotation")
		return err
	}

	return nil
}

func (r *annotationsRepository) GetAnnotationByImageID(ctx context.Context, imageID string) (entity.Annotation, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var row AnnotationDB

	query, args, err := sqlx.Named(queryGetAnnotationByImageID, map[string]interface{}{"image_id": imageID})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAnnotationByImageID named query preparation err")
		return entity.Annotation{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Annotation{}, annotation.ErrAnnotationNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAnnotationByImageID execution err")
		return entity.Annotation{}, err
	}

	return r.makeAnnotation(requestID, row)
}

func (r *annotationsRepository) GetAllAnnotations(ctx context.Context) ([]entity.Annotation, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rows []AnnotationDB

	query, args, err := sqlx.Named(queryGetAllAnnotations, map[string]interface{}{})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAllAnnotations named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAllAnnotations execution err")
		return nil, err
	}

	annotations := make([]entity.Annotation, 0, len(rows))
	for _, row := range rows {
		a, makeErr := r.makeAnnotation(requestID, row)
		if makeErr != nil {
			// One corrupt row should not hide the rest of the listing.
			continue
		}
		annotations = append(annotations, a)
	}

	return annotations, nil
}

func (r *annotationsRepository) DeleteAnnotation(ctx context.Context, imageID string) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryDeleteAnnotation, map[string]interface{}{"image_id": imageID})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteAnnotation named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteAnnotation execution err")
		return err
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return annotation.ErrAnnotationNotFound
	}

	return nil
}

func (r *annotationsRepository) CountAnnotations(ctx context.Context) (int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var total int

	query, args, err := sqlx.Named(queryCountAnnotations, map[string]interface{}{})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountAnnotations named query preparation err")
		return 0, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountAnnotations execution err")
		return 0, err
	}

	return total, nil
}

func (r *annotationsRepository) SumTotals(ctx context.Context) (int, int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var row struct {
		TotalShrimp int `db:"total_shrimp"`
		TotalBoxes  int `db:"total_boxes"`
	}

	query, args, err := sqlx.Named(querySumTotals, map[string]interface{}{})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("SumTotals named query preparation err")
		return 0, 0, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("SumTotals execution err")
		return 0, 0, err
	}

	return row.TotalShrimp, row.TotalBoxes, nil
}

func (r *annotationsRepository) makeAnnotation(requestID string, row AnnotationDB) (entity.Annotation, error) {
	var boxes []entity.BoundingBox
	if len(row.Boxes) > 0 {
		if err := jsoniter.Unmarshal(row.Boxes, &boxes); err != nil {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"image_id":   row.ImageID.String,
				"error":      err.Error(),
			}).Error("Failed to decode stored bounding boxes")
			return entity.Annotation{}, err
		}
	}

	return entity.Annotation{
		ImageID:       row.ImageID.String,
		ImageFilename: row.ImageFilename.String,
		ImageWidth:    int(row.ImageWidth.Int64),
		ImageHeight:   int(row.ImageHeight.Int64),
		BoundingBoxes: boxes,
		TotalShrimp:   int(row.TotalShrimp.Int64),
	}, nil
}
