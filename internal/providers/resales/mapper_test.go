package resales

import (
	"encoding/json"
	"testing"

	"inmofeed/internal/models"
)

const samplePropertyJSON = `{
	"reference": "R4521809",
	"title": "Villa in Nueva Andalucia",
	"description": "South-facing villa with sea views.",
	"operation": "sale",
	"status": "Under_Offer",
	"currency": "EUR",
	"price": 1250000.00,
	"original_price": 1395000.00,
	"bedrooms": 4,
	"bathrooms": 3.5,
	"year_built": "2004",
	"type": {"name": "Villa", "subtype": "Detached"},
	"location": {
		"country": "Spain",
		"province": "Malaga",
		"area": "Nueva Andalucia",
		"city": "Marbella",
		"latitude": 36.4927,
		"longitude": -4.9578
	},
	"surface": {"built": 320.5, "plot": 810, "terrace": 45},
	"energy": {"consumption_rating": "C", "consumption_value": 110.4},
	"features": [
		{"category": "Pool", "items": ["Private Pool", "Heated Pool"]},
		{"category": "Views", "items": ["Sea View"]}
	],
	"pictures": [
		{"url": "https://img.example.com/1.jpg", "caption": "Front", "order": 1},
		{"url": "https://img.example.com/2.jpg", "order": 2}
	],
	"created_at": "2024-03-01T10:30:00Z",
	"updated_at": "2024-06-15 09:00:00"
}`

func decodeSample(t *testing.T) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(samplePropertyJSON), &payload); err != nil {
		t.Fatalf("sample payload does not parse: %v", err)
	}
	return payload
}

func TestToNormalizedProperty(t *testing.T) {
	prop := toNormalizedProperty(decodeSample(t))

	if prop.Provider != ProviderName {
		t.Errorf("Provider = %q", prop.Provider)
	}
	if prop.Reference != "R4521809" {
		t.Errorf("Reference = %q", prop.Reference)
	}
	if prop.PropertyType != "Villa" || prop.PropertySubtype != "Detached" {
		t.Errorf("type = %q/%q", prop.PropertyType, prop.PropertySubtype)
	}
	if prop.Price != 125000000 {
		t.Errorf("Price = %d, want 125000000 minor units", prop.Price)
	}
	if prop.OriginalPrice != 139500000 {
		t.Errorf("OriginalPrice = %d", prop.OriginalPrice)
	}
	if !prop.PriceReduced() {
		t.Error("listing with lowered price should report a reduction")
	}
	if prop.ListingType != models.ListingSale {
		t.Errorf("ListingType = %q", prop.ListingType)
	}
	if prop.Status != models.StatusReserved {
		t.Errorf("Status = %q, want under_offer mapped to reserved", prop.Status)
	}
	if prop.Bedrooms != 4 || prop.Bathrooms != 3.5 {
		t.Errorf("rooms = %d/%v", prop.Bedrooms, prop.Bathrooms)
	}
	if prop.YearBuilt != 2004 {
		t.Errorf("YearBuilt = %d, want string-encoded year parsed", prop.YearBuilt)
	}
	if prop.City != "Marbella" || prop.Latitude != 36.4927 {
		t.Errorf("location = %q %v", prop.City, prop.Latitude)
	}
	if prop.BuiltArea != 320.5 || prop.PlotArea != 810 {
		t.Errorf("surface = %v/%v", prop.BuiltArea, prop.PlotArea)
	}
	if prop.Energy.ConsumptionRating != "C" {
		t.Errorf("energy = %+v", prop.Energy)
	}
	if prop.CreatedAt.IsZero() || prop.UpdatedAt.IsZero() {
		t.Error("timestamps should parse from both layouts")
	}
	if prop.FetchedAt.IsZero() {
		t.Error("FetchedAt should be stamped")
	}
}

func TestToNormalizedPropertyFeatures(t *testing.T) {
	prop := toNormalizedProperty(decodeSample(t))

	if len(prop.Features) != 3 {
		t.Fatalf("Features = %v", prop.Features)
	}
	if !prop.HasFeature("sea view") {
		t.Error("flattened feature list should include Sea View")
	}
	if got := prop.FeaturesByCategory["Pool"]; len(got) != 2 {
		t.Errorf("Pool category = %v", got)
	}
}

func TestToNormalizedPropertyImages(t *testing.T) {
	prop := toNormalizedProperty(decodeSample(t))

	if len(prop.Images) != 2 {
		t.Fatalf("Images = %v", prop.Images)
	}
	if prop.MainImage() != "https://img.example.com/1.jpg" {
		t.Errorf("MainImage = %q", prop.MainImage())
	}
	if prop.Images[0].Caption != "Front" {
		t.Errorf("caption = %q", prop.Images[0].Caption)
	}
}

func TestMapListingType(t *testing.T) {
	tests := []struct {
		operation string
		want      string
	}{
		{"sale", models.ListingSale},
		{"rent", models.ListingRental},
		{"Long_Term_Rental", models.ListingRental},
		{"", models.ListingSale},
	}
	for _, tt := range tests {
		if got := mapListingType(tt.operation); got != tt.want {
			t.Errorf("mapListingType(%q) = %q, want %q", tt.operation, got, tt.want)
		}
	}
}

func TestMapStatus(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{"available", models.StatusAvailable},
		{"Reserved", models.StatusReserved},
		{"SOLD", models.StatusSold},
		{"let", models.StatusRented},
		{"off_market", models.StatusUnavailable},
		{"", models.StatusAvailable},
	}
	for _, tt := range tests {
		if got := mapStatus(tt.status); got != tt.want {
			t.Errorf("mapStatus(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		major float64
		want  int64
	}{
		{1250000, 125000000},
		{349999.99, 34999999},
		{0, 0},
		{-5, 0},
	}
	for _, tt := range tests {
		if got := toMinorUnits(tt.major); got != tt.want {
			t.Errorf("toMinorUnits(%v) = %d, want %d", tt.major, got, tt.want)
		}
	}
}

func TestToOptions(t *testing.T) {
	payload := map[string]interface{}{
		"locations": []interface{}{
			map[string]interface{}{"value": "marbella", "label": "Marbella"},
			map[string]interface{}{"value": "estepona"},
			map[string]interface{}{"label": "No Value"},
			"not a map",
		},
	}

	options := toOptions(payload, "locations")
	if len(options) != 2 {
		t.Fatalf("options = %v", options)
	}
	if options[0].Label != "Marbella" {
		t.Errorf("first option = %+v", options[0])
	}
	if options[1].Label != "estepona" {
		t.Errorf("missing label should fall back to value: %+v", options[1])
	}

	if got := toOptions(map[string]interface{}{}, "locations"); len(got) != 0 {
		t.Errorf("missing list should yield empty options, got %v", got)
	}
}
