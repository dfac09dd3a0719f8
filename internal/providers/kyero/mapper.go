package kyero

import (
	"fmt"
	"strings"
	"time"

	"inmofeed/internal/models"
)

// toNormalizedProperty maps one Kyero hit into the canonical shape.
// Kyero prices are integer euros; stored in minor units.
func toNormalizedProperty(item map[string]interface{}) models.NormalizedProperty {
	prop := models.NormalizedProperty{
		Provider:     ProviderName,
		Reference:    str(item, "ref"),
		Title:        str(item, "title"),
		Description:  str(item, "desc"),
		PropertyType: str(item, "type"),
		Country:      str(item, "country"),
		Region:       str(item, "province"),
		City:         str(item, "town"),
		Area:         str(item, "location_detail"),
		PostalCode:   str(item, "postcode"),
		Currency:     currencyOr(item, "EUR"),
		Price:        int64(num(item, "price")) * 100,
		Bedrooms:     int(num(item, "beds")),
		Bathrooms:    num(item, "baths"),
		BuiltArea:    num(item, "surface_area_built"),
		PlotArea:     num(item, "surface_area_plot"),
		Status:       models.StatusAvailable,
		FetchedAt:    time.Now().UTC(),
	}

	if loc, ok := item["location"].(map[string]interface{}); ok {
		prop.Latitude = num(loc, "latitude")
		prop.Longitude = num(loc, "longitude")
	}

	if strings.EqualFold(str(item, "price_freq"), "month") {
		prop.ListingType = models.ListingRental
		prop.RentalPeriod = "month"
	} else {
		prop.ListingType = models.ListingSale
	}

	if features, ok := item["features"].([]interface{}); ok {
		for _, f := range features {
			if s, ok := f.(string); ok && s != "" {
				prop.Features = append(prop.Features, s)
			}
		}
	}

	if images, ok := item["images"].([]interface{}); ok {
		for i, raw := range images {
			img, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			prop.Images = append(prop.Images, models.Image{
				URL:      str(img, "url"),
				Position: i + 1,
			})
		}
	}

	prop.Energy.ConsumptionRating = str(item, "energy_rating")
	return prop
}

func currencyOr(item map[string]interface{}, def string) string {
	if c := str(item, "currency"); c != "" {
		return c
	}
	return def
}

func str(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok && v != nil {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", v)
	}
	return ""
}

func num(m map[string]interface{}, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}
