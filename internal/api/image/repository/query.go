package imageRepository

const (
	queryCreateImage = `
		INSERT INTO images (
			id,
			filename,
			original_name,
			width,
			height,
			format,
			size,
			path,
			uploaded_at
		) VALUES (
			:id,
			:filename,
			:original_name,
			:width,
			:height,
			:format,
			:size,
			:path,
			:uploaded_at
		)
	`

	queryGetImageByID = `
		SELECT
			id,
			filename,
			original_name,
			width,
			height,
			format,
			size,
			path,
			uploaded_at
		FROM images
		WHERE id = :id
	`

	queryGetAllImages = `
		SELECT
			id,
			filename,
			original_name,
			width,
			height,
			format,
			size,
			path,
			uploaded_at
		FROM images
		ORDER BY uploaded_at ASC
	`

	queryDeleteImage = `
		DELETE FROM images
		WHERE id = :id
	`

	queryCountImages = `
		SELECT COUNT(*)
		FROM images
	`
)
