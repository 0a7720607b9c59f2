package classes

import (
	"testing"
)

func TestNamesOrderedByID(t *testing.T) {
	want := []string{"shrimp", "shrimp_juvenile", "shrimp_adult", "shrimp_egg", "shrimp_molt", "shrimp_dead"}

	got := Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestByIDRoundTrip(t *testing.T) {
	for name, descriptor := range ShrimpTypes {
		byID, ok := ByID(descriptor.ID)
		if !ok {
			t.Errorf("ByID(%d) not found for %q", descriptor.ID, name)
			continue
		}
		if byID.Name != name {
			t.Errorf("ByID(%d).Name = %q, want %q", descriptor.ID, byID.Name, name)
		}
	}
}

func TestByName(t *testing.T) {
	tests := []struct {
		name   string
		wantID int
		wantOK bool
	}{
		{name: "shrimp", wantID: 0, wantOK: true},
		{name: "shrimp_dead", wantID: 5, wantOK: true},
		{name: "lobster", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ByName(tt.name)
			if ok != tt.wantOK {
				t.Fatalf("ByName(%q) ok = %v, want %v", tt.name, ok, tt.wantOK)
			}
			if ok && got.ID != tt.wantID {
				t.Errorf("ByName(%q).ID = %d, want %d", tt.name, got.ID, tt.wantID)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	def := Default()
	if def.Name != "shrimp" || def.ID != 0 {
		t.Errorf("Default() = %+v, want the shrimp type with id 0", def)
	}
	if def.DisplayColor != "#10B981" {
		t.Errorf("Default().DisplayColor = %q, want %q", def.DisplayColor, "#10B981")
	}
}

func TestValidity(t *testing.T) {
	if !IsValidType("shrimp_molt") {
		t.Error("IsValidType(shrimp_molt) = false")
	}
	if IsValidType("crab") {
		t.Error("IsValidType(crab) = true")
	}
	if !IsValidColor("transparent") {
		t.Error("IsValidColor(transparent) = false")
	}
	if IsValidColor("purple") {
		t.Error("IsValidColor(purple) = true")
	}
	if !IsValidAttribute("berried") {
		t.Error("IsValidAttribute(berried) = false")
	}
	if IsValidAttribute("gigantic") {
		t.Error("IsValidAttribute(gigantic) = true")
	}
}

func TestCatalogComplete(t *testing.T) {
	catalog := Catalog()

	if got, want := len(catalog.Types), 6; got != want {
		t.Errorf("len(Types) = %d, want %d", got, want)
	}
	if got, want := len(catalog.Colors), 9; got != want {
		t.Errorf("len(Colors) = %d, want %d", got, want)
	}
	if got, want := len(catalog.Attributes), 5; got != want {
		t.Errorf("len(Attributes) = %d, want %d", got, want)
	}
}
