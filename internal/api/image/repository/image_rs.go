package imageRepository

import (
	"ShrimpVision/internal/api/image"
	"ShrimpVision/internal/entity"
	contextPkg "ShrimpVision/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ImageDB struct {
	ID           sql.NullString `db:"id"`
	Filename     sql.NullString `db:"filename"`
	OriginalName sql.NullString `db:"original_name"`
	Width        sql.NullInt64  `db:"width"`
	Height       sql.NullInt64  `db:"height"`
	Format       sql.NullString `db:"format"`
	Size         sql.NullInt64  `db:"size"`
	Path         sql.NullString `db:"path"`
	UploadedAt   time.Time      `db:"uploaded_at"`
}

func (r *imagesRepository) CreateImage(ctx context.Context, img entity.ImageAsset) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":            img.ID,
		"filename":      img.Filename,
		"original_name": img.OriginalName,
		"width":         img.Width,
		"height":        img.Height,
		"format":        img.Format,
		"size":          img.Size,
		"path":          img.Path,
		"uploaded_at":   img.UploadedAt,
	}

	query, args, err := sqlx.Named(queryCreateImage, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateImage")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating image record")
		return err
	}

	return nil
}

func (r *imagesRepository) GetImageByID(ctx context.Context, id string) (entity.ImageAsset, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var row ImageDB

	query, args, err := sqlx.Named(queryGetImageByID, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetImageByID named query preparation err")
		return entity.ImageAsset{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"image_id":   id,
			}).Warn("GetImageByID no rows found")
			return entity.ImageAsset{}, image.ErrImageNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetImageByID execution err")
		return entity.ImageAsset{}, err
	}

	return r.makeImage(row), nil
}

func (r *imagesRepository) GetAllImages(ctx context.Context) ([]entity.ImageAsset, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rows []ImageDB

	query, args, err := sqlx.Named(queryGetAllImages, map[string]interface{}{})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAllImages named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAllImages execution err")
		return nil, err
	}

	images := make([]entity.ImageAsset, 0, len(rows))
	for _, row := range rows {
		images = append(images, r.makeImage(row))
	}

	return images, nil
}

func (r *imagesRepository) DeleteImage(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryDeleteImage, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteImage named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteImage execution err")
		return err
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return image.ErrImageNotFound
	}

	return nil
}

func (r *imagesRepository) CountImages(ctx context.Context) (int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var total int

	query, args, err := sqlx.Named(queryCountImages, map[string]interface{}{})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountImages named query preparation err")
		return 0, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountImages execution err")
		return 0, err
	}

	return total, nil
}

func (r *imagesRepository) makeImage(row ImageDB) entity.ImageAsset {
	return entity.ImageAsset{
		ID:           row.ID.String,
		Filename:     row.Filename.String,
		OriginalName: row.OriginalName.String,
		Width:        int(row.Width.Int64),
		Height:       int(row.Height.Int64),
		Format:       row.Format.String,
		Size:         row.Size.Int64,
		Path:         row.Path.String,
		UploadedAt:   row.UploadedAt,
	}
}
