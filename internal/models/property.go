package models

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Listing types
const (
	ListingSale   = "sale"
	ListingRental = "rental"
)

// Listing statuses
const (
	StatusAvailable   = "available"
	StatusReserved    = "reserved"
	StatusSold        = "sold"
	StatusRented      = "rented"
	StatusUnavailable = "unavailable"
)

// Image describes one listing photo as delivered by the upstream provider.
type Image struct {
	URL      string `json:"url"`
	Caption  string `json:"caption,omitempty"`
	Position int    `json:"position,omitempty"`
}

// EnergyRating holds the certificate values reported upstream.
type EnergyRating struct {
	ConsumptionRating string  `json:"consumption_rating,omitempty"`
	ConsumptionValue  float64 `json:"consumption_value,omitempty"`
	EmissionsRating   string  `json:"emissions_rating,omitempty"`
	EmissionsValue    float64 `json:"emissions_value,omitempty"`
}

// NormalizedProperty is the canonical listing shape every provider maps
// its upstream payload into. Identity is (Provider, Reference); all other
// fields may drift between fetches without changing which listing this is.
type NormalizedProperty struct {
	Provider  string `json:"provider"`
	Reference string `json:"reference"`

	Title           string `json:"title,omitempty"`
	Description     string `json:"description,omitempty"`
	PropertyType    string `json:"property_type,omitempty"`
	PropertySubtype string `json:"property_subtype,omitempty"`

	Country    string  `json:"country,omitempty"`
	Region     string  `json:"region,omitempty"`
	Area       string  `json:"area,omitempty"`
	City       string  `json:"city,omitempty"`
	Address    string  `json:"address,omitempty"`
	PostalCode string  `json:"postal_code,omitempty"`
	Latitude   float64 `json:"latitude,omitempty"`
	Longitude  float64 `json:"longitude,omitempty"`

	ListingType   string `json:"listing_type,omitempty"`
	Status        string `json:"status,omitempty"`
	Price         int64  `json:"price,omitempty"`
	Currency      string `json:"currency,omitempty"`
	OriginalPrice int64  `json:"original_price,omitempty"`
	RentalPeriod  string `json:"rental_period,omitempty"`

	Bedrooms    int     `json:"bedrooms,omitempty"`
	Bathrooms   float64 `json:"bathrooms,omitempty"`
	BuiltArea   float64 `json:"built_area,omitempty"`
	PlotArea    float64 `json:"plot_area,omitempty"`
	TerraceArea float64 `json:"terrace_area,omitempty"`
	YearBuilt   int     `json:"year_built,omitempty"`
	Floors      int     `json:"floors,omitempty"`

	Features           []string            `json:"features,omitempty"`
	FeaturesByCategory map[string][]string `json:"features_by_category,omitempty"`
	Images             []Image             `json:"images,omitempty"`
	Energy             EnergyRating        `json:"energy,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Key returns the identity key for this listing. Two properties with the
// same key are the same listing regardless of other field drift.
func (p *NormalizedProperty) Key() string {
	return p.Provider + ":" + p.Reference
}

// Equal reports whether both properties refer to the same listing.
func (p *NormalizedProperty) Equal(other *NormalizedProperty) bool {
	if other == nil {
		return false
	}
	return p.Provider == other.Provider && p.Reference == other.Reference
}

// PriceReduced reports whether the listing carries a reduction: both
// prices present and the current price strictly below the original.
func (p *NormalizedProperty) PriceReduced() bool {
	return p.Price > 0 && p.OriginalPrice > 0 && p.Price < p.OriginalPrice
}

var pricePrinter = message.NewPrinter(language.English)

// FormattedPrice renders the price as "<currency> <delimited units>",
// e.g. "EUR 1,250,000". Prices are stored in minor currency units.
func (p *NormalizedProperty) FormattedPrice() string {
	if p.Price <= 0 {
		return ""
	}
	return pricePrinter.Sprintf("%s %d", p.Currency, p.Price/100)
}

// PriceInUnits returns the price per square unit of the given area kind
// ("built" or "plot") in minor currency units. The second return value is
// false when the area is zero or unknown.
func (p *NormalizedProperty) PriceInUnits(kind string) (float64, bool) {
	var area float64
	switch kind {
	case "built":
		area = p.BuiltArea
	case "plot":
		area = p.PlotArea
	}
	if area <= 0 || p.Price <= 0 {
		return 0, false
	}
	return float64(p.Price) / area, true
}

// FullLocation joins the non-blank location parts from most to least
// specific, comma separated.
func (p *NormalizedProperty) FullLocation() string {
	return joinParts(p.Address, p.Area, p.City, p.Region, p.Country)
}

// ShortLocation is the area and city only, for list views.
func (p *NormalizedProperty) ShortLocation() string {
	return joinParts(p.Area, p.City)
}

// HasFeature reports whether the listing carries the given feature string.
func (p *NormalizedProperty) HasFeature(feature string) bool {
	for _, f := range p.Features {
		if strings.EqualFold(f, feature) {
			return true
		}
	}
	return false
}

// MainImage returns the URL of the first image, or "" when there are none.
func (p *NormalizedProperty) MainImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}

func joinParts(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			kept = append(kept, strings.TrimSpace(part))
		}
	}
	return strings.Join(kept, ", ")
}
