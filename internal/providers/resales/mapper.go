package resales

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"inmofeed/internal/models"
)

// toNormalizedProperty maps one upstream property payload into the
// canonical shape. Prices come back in major units with decimals and are
// stored in minor units.
func toNormalizedProperty(payload map[string]interface{}) models.NormalizedProperty {
	prop := models.NormalizedProperty{
		Provider:        ProviderName,
		Reference:       getString(payload, "reference"),
		Title:           getString(payload, "title"),
		Description:     getString(payload, "description"),
		PropertyType:    getString(payload, "type.name"),
		PropertySubtype: getString(payload, "type.subtype"),
		Country:         getString(payload, "location.country"),
		Region:          getString(payload, "location.province"),
		Area:            getString(payload, "location.area"),
		City:            getString(payload, "location.city"),
		Address:         getString(payload, "location.address"),
		PostalCode:      getString(payload, "location.postal_code"),
		Latitude:        getFloat(payload, "location.latitude"),
		Longitude:       getFloat(payload, "location.longitude"),
		Currency:        getString(payload, "currency"),
		Price:           toMinorUnits(getFloat(payload, "price")),
		OriginalPrice:   toMinorUnits(getFloat(payload, "original_price")),
		RentalPeriod:    getString(payload, "rental_period"),
		Bedrooms:        getInt(payload, "bedrooms"),
		Bathrooms:       getFloat(payload, "bathrooms"),
		BuiltArea:       getFloat(payload, "surface.built"),
		PlotArea:        getFloat(payload, "surface.plot"),
		TerraceArea:     getFloat(payload, "surface.terrace"),
		YearBuilt:       getInt(payload, "year_built"),
		Floors:          getInt(payload, "floors"),
		Energy: models.EnergyRating{
			ConsumptionRating: getString(payload, "energy.consumption_rating"),
			ConsumptionValue:  getFloat(payload, "energy.consumption_value"),
			EmissionsRating:   getString(payload, "energy.emissions_rating"),
			EmissionsValue:    getFloat(payload, "energy.emissions_value"),
		},
		CreatedAt: getTime(payload, "created_at"),
		UpdatedAt: getTime(payload, "updated_at"),
		FetchedAt: time.Now().UTC(),
	}

	prop.ListingType = mapListingType(getString(payload, "operation"))
	prop.Status = mapStatus(getString(payload, "status"))

	if features, ok := payload["features"].([]interface{}); ok {
		prop.FeaturesByCategory = make(map[string][]string)
		for _, raw := range features {
			group, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			category := getString(group, "category")
			for _, item := range getStringSlice(group, "items") {
				prop.Features = append(prop.Features, item)
				if category != "" {
					prop.FeaturesByCategory[category] = append(prop.FeaturesByCategory[category], item)
				}
			}
		}
	}

	if pictures, ok := payload["pictures"].([]interface{}); ok {
		for _, raw := range pictures {
			pic, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			prop.Images = append(prop.Images, models.Image{
				URL:      getString(pic, "url"),
				Caption:  getString(pic, "caption"),
				Position: getInt(pic, "order"),
			})
		}
	}

	return prop
}

func mapListingType(operation string) string {
	switch strings.ToLower(operation) {
	case "rent", "rental", "long_term_rental", "short_term_rental":
		return models.ListingRental
	default:
		return models.ListingSale
	}
}

func mapStatus(status string) string {
	switch strings.ToLower(status) {
	case "reserved", "under_offer":
		return models.StatusReserved
	case "sold":
		return models.StatusSold
	case "rented", "let":
		return models.StatusRented
	case "withdrawn", "off_market":
		return models.StatusUnavailable
	default:
		return models.StatusAvailable
	}
}

func toMinorUnits(major float64) int64 {
	if major <= 0 {
		return 0
	}
	return int64(major*100 + 0.5)
}

func toOptions(payload map[string]interface{}, listKey string) []models.Option {
	raw, ok := payload[listKey].([]interface{})
	if !ok {
		return []models.Option{}
	}
	options := make([]models.Option, 0, len(raw))
	for _, item := range raw {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		value := getString(entry, "value")
		label := getString(entry, "label")
		if value == "" {
			continue
		}
		if label == "" {
			label = value
		}
		options = append(options, models.Option{Value: value, Label: label})
	}
	return options
}

func getString(m map[string]interface{}, key string) string {
	keys := strings.Split(key, ".")
	current := m
	for _, k := range keys[:len(keys)-1] {
		if next, ok := current[k].(map[string]interface{}); ok {
			current = next
		} else {
			return ""
		}
	}
	if val, ok := current[keys[len(keys)-1]]; ok && val != nil {
		if s, ok := val.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", val)
	}
	return ""
}

func getInt(m map[string]interface{}, key string) int {
	keys := strings.Split(key, ".")
	current := m
	for _, k := range keys[:len(keys)-1] {
		if next, ok := current[k].(map[string]interface{}); ok {
			current = next
		} else {
			return 0
		}
	}
	switch v := current[keys[len(keys)-1]].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return 0
}

func getFloat(m map[string]interface{}, key string) float64 {
	keys := strings.Split(key, ".")
	current := m
	for _, k := range keys[:len(keys)-1] {
		if next, ok := current[k].(map[string]interface{}); ok {
			current = next
		} else {
			return 0
		}
	}
	switch v := current[keys[len(keys)-1]].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return 0
}

func getStringSlice(m map[string]interface{}, key string) []string {
	raw, ok := m[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

func getTime(m map[string]interface{}, key string) time.Time {
	raw := getString(m, key)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
