// Package classes holds the built-in shrimp taxonomy: the primary types plus
// the color and auxiliary attribute vocabularies used for hierarchical
// tagging. The registry endpoint serves these; IDs are stable across runs
// because exported datasets reference them by numeric id.
package classes

import (
	"sort"

	"ShrimpVision/internal/entity"
)

var ShrimpTypes = map[string]entity.TypeDescriptor{
	"shrimp": {
		ID:           0,
		Name:         "shrimp",
		DisplayName:  "Shrimp",
		DisplayColor: "#10B981",
		Description:  "Regular shrimp",
	},
	"shrimp_juvenile": {
		ID:           1,
		Name:         "shrimp_juvenile",
		DisplayName:  "Juvenile",
		DisplayColor: "#3B82F6",
		Description:  "Young/small shrimp",
	},
	"shrimp_adult": {
		ID:           2,
		Name:         "shrimp_adult",
		DisplayName:  "Adult",
		DisplayColor: "#8B5CF6",
		Description:  "Mature shrimp",
	},
	"shrimp_egg": {
		ID:           3,
		Name:         "shrimp_egg",
		DisplayName:  "Eggs",
		DisplayColor: "#F59E0B",
		Description:  "Shrimp eggs",
	},
	"shrimp_molt": {
		ID:           4,
		Name:         "shrimp_molt",
		DisplayName:  "Molt",
		DisplayColor: "#6B7280",
		Description:  "Molted shell",
	},
	"shrimp_dead": {
		ID:           5,
		Name:         "shrimp_dead",
		DisplayName:  "Dead",
		DisplayColor: "#EF4444",
		Description:  "Dead shrimp",
	},
}

var ColorAttributes = map[string]entity.ColorDescriptor{
	"red":         {Name: "red", DisplayName: "Red", Swatch: "#DC2626", Description: "Red coloration"},
	"blue":        {Name: "blue", DisplayName: "Blue", Swatch: "#2563EB", Description: "Blue coloration"},
	"yellow":      {Name: "yellow", DisplayName: "Yellow", Swatch: "#EAB308", Description: "Yellow/golden coloration"},
	"transparent": {Name: "transparent", DisplayName: "Transparent", Swatch: "#94A3B8", Description: "Clear/transparent"},
	"black":       {Name: "black", DisplayName: "Black", Swatch: "#1F2937", Description: "Black/dark coloration"},
	"orange":      {Name: "orange", DisplayName: "Orange", Swatch: "#EA580C", Description: "Orange coloration"},
	"white":       {Name: "white", DisplayName: "White", Swatch: "#F3F4F6", Description: "White/pale coloration"},
	"green":       {Name: "green", DisplayName: "Green", Swatch: "#16A34A", Description: "Green coloration"},
	"brown":       {Name: "brown", DisplayName: "Brown", Swatch: "#92400E", Description: "Brown coloration"},
}

var AdditionalAttributes = map[string]entity.AttributeDescriptor{
	"berried": {Name: "berried", DisplayName: "Berried", Description: "Carrying eggs"},
	"healthy": {Name: "healthy", DisplayName: "Healthy", Description: "Appears healthy"},
	"sick":    {Name: "sick", DisplayName: "Sick", Description: "Shows signs of illness"},
	"male":    {Name: "male", DisplayName: "Male", Description: "Male shrimp"},
	"female":  {Name: "female", DisplayName: "Female", Description: "Female shrimp"},
}

// Catalog bundles the full vocabulary for the registry endpoint.
func Catalog() entity.ClassCatalog {
	return entity.ClassCatalog{
		Types:      ShrimpTypes,
		Colors:     ColorAttributes,
		Attributes: AdditionalAttributes,
	}
}

// Default returns the fallback type used when the richer taxonomy is
// unavailable. Annotation must stay possible with just this one type.
func Default() entity.TypeDescriptor {
	return ShrimpTypes["shrimp"]
}

func ByName(name string) (entity.TypeDescriptor, bool) {
	t, ok := ShrimpTypes[name]
	return t, ok
}

func ByID(id int) (entity.TypeDescriptor, bool) {
	for _, t := range ShrimpTypes {
		if t.ID == id {
			return t, true
		}
	}
	return entity.TypeDescriptor{}, false
}

func IsValidType(name string) bool {
	_, ok := ShrimpTypes[name]
	return ok
}

func IsValidColor(name string) bool {
	_, ok := ColorAttributes[name]
	return ok
}

func IsValidAttribute(name string) bool {
	_, ok := AdditionalAttributes[name]
	return ok
}

// Names returns the type names ordered by id, the order dataset exports use.
func Names() []string {
	types := make([]entity.TypeDescriptor, 0, len(ShrimpTypes))
	for _, t := range ShrimpTypes {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i].ID < types[j].ID })

	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.Name
	}
	return names
}
