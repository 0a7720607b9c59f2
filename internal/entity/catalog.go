package entity

// TypeDescriptor is one selectable shrimp type. DisplayColor is the stroke
// color the canvas uses so each type stays visually distinguishable.
type TypeDescriptor struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	DisplayName  string `json:"display_name"`
	DisplayColor string `json:"color"`
	Description  string `json:"description,omitempty"`
}

// ColorDescriptor is an optional coloration tag with its swatch value.
type ColorDescriptor struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Swatch      string `json:"color"`
	Description string `json:"description,omitempty"`
}

// AttributeDescriptor is an auxiliary tag (health, sex, berried status).
type AttributeDescriptor struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description,omitempty"`
}

// ClassCatalog is the full closed vocabulary served to annotation clients.
// Immutable for the duration of a session.
type ClassCatalog struct {
	Types      map[string]TypeDescriptor      `json:"types"`
	Colors     map[string]ColorDescriptor     `json:"colors"`
	Attributes map[string]AttributeDescriptor `json:"attributes"`
}
