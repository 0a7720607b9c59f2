package annotationRepository

const (
	queryUpsertAnnotation = `
		INSERT INTO annotations (
			image_id,
			image_filename,
			image_width,
			image_height,
			boxes,
			total_shrimp,
			updated_at
		) VALUES (
			:image_id,
			:image_filename,
			:image_width,
			:image_height,
			:boxes,
			:total_shrimp,
			:updated_at
		)
		ON CONFLICT (image_id) DO UPDATE SET
			image_filename = EXCLUDED.image_filename,
			image_width = EXCLUDED.image_width,
			image_height = EXCLUDED.image_height,
			boxes = EXCLUDED.boxes,
			total_shrimp = EXCLUDED.total_shrimp,
			updated_at = EXCLUDED.updated_at
	`

	queryGetAnnotationByImageID = `
		SELECT
			image_id,
			image_filename,
			image_width,
			image_height,
			boxes,
			total_shrimp,
			updated_at
		FROM annotations
		WHERE image_id = :image_id
	`

	queryGetAllAnnotations = `
		SELECT
			image_id,
			image_filename,
			image_width,
			image_height,
			boxes,
			total_shrimp,
			updated_at
		FROM annotations
		ORDER BY updated_at ASC
	`

	queryDeleteAnnotation = `
		DELETE FROM annotations
		WHERE image_id = :image_id
	`

	queryCountAnnotations = `
		SELECT COUNT(*)
		FROM annotations
	`

	querySumTotals = `
		SELECT
			COALESCE(SUM(total_shrimp), 0) AS total_shrimp,
			COALESCE(SUM(jsonb_array_length(boxes)), 0) AS total_boxes
		FROM annotations
	`
)
