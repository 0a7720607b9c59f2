package registry

import "ShrimpVision/internal/entity"

// CatalogResponse is the wire shape of the class registry, keyed maps so the
// UI can look descriptors up by id.
type CatalogResponse struct {
	Success    bool                                  `json:"success"`
	Types      map[string]entity.TypeDescriptor      `json:"types"`
	Colors     map[string]entity.ColorDescriptor     `json:"colors"`
	Attributes map[string]entity.AttributeDescriptor `json:"attributes"`
}
