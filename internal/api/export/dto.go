package export

// DatasetRequest selects what goes into the dataset archive. All sections
// default to included; Format picks the annotation layout inside the zip.
type DatasetRequest struct {
	IncludeImages      bool   `json:"include_images"`
	IncludeAnnotations bool   `json:"include_annotations"`
	IncludeModels      bool   `json:"include_models"`
	Format             string `json:"format" validate:"omitempty,oneof=json yolo"`
}

// Archive is one built export, ready to be served as an attachment.
type Archive struct {
	Filename    string
	ContentType string
	Data        []byte
}

type SectionSummary struct {
	Count       int     `json:"count"`
	TotalSizeMB float64 `json:"total_size_mb,omitempty"`
	Available   bool    `json:"available"`
}

type Summary struct {
	Images      SectionSummary `json:"images"`
	Annotations SectionSummary `json:"annotations"`
	Models      SectionSummary `json:"models"`
}

type SummaryResponse struct {
	Success bool    `json:"success"`
	Summary Summary `json:"summary"`
}