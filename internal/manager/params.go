package manager

import (
	"strconv"
	"strings"

	"inmofeed/internal/models"
	"inmofeed/internal/tenant"
)

// Keys coerced to integers during normalization.
var intParamKeys = map[string]bool{
	"page":      true,
	"per_page":  true,
	"bedrooms":  true,
	"bathrooms": true,
	"min_price": true,
	"max_price": true,
	"count":     true,
}

// Keys coerced to string slices, split on commas when given as a string.
var listParamKeys = map[string]bool{
	"property_types": true,
	"features":       true,
	"locations":      true,
}

// NormalizeSearchParams produces the canonical search parameter map that
// both the cache key and the provider call are built from. Keys are
// lowercased, values coerced to stable types, tenant defaults filled in,
// and managed property type and feature keys translated to the
// provider's external codes. Blank and zero values are dropped so two
// equivalent requests hash identically.
func NormalizeSearchParams(t *tenant.Tenant, params map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(params)+4)
	for key, value := range params {
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" || value == nil {
			continue
		}
		coerced := coerceParam(key, value)
		if coerced == nil {
			continue
		}
		out[key] = coerced
	}

	if _, ok := out["locale"]; !ok {
		out["locale"] = t.DefaultLocale()
	}
	if _, ok := out["listing_type"]; !ok {
		if t.Search.ListingType != "" {
			out["listing_type"] = t.Search.ListingType
		} else {
			out["listing_type"] = models.ListingSale
		}
	}
	if _, ok := out["sort"]; !ok && t.Search.Sort != "" {
		out["sort"] = t.Search.Sort
	}
	if page, ok := out["page"].(int); !ok || page < 1 {
		out["page"] = 1
	}
	if perPage, ok := out["per_page"].(int); !ok || perPage < 1 {
		out["per_page"] = t.ResultsPerPage()
	}

	mappings := t.KeyMappings()
	for key := range listParamKeys {
		if values, ok := out[key].([]string); ok {
			out[key] = translateKeys(values, mappings)
		}
	}
	return out
}

// NormalizeDetailParams is the lighter variant used for single-listing
// and option-list operations: locale default only, no paging.
func NormalizeDetailParams(t *tenant.Tenant, params map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(params)+1)
	for key, value := range params {
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" || value == nil {
			continue
		}
		coerced := coerceParam(key, value)
		if coerced == nil {
			continue
		}
		out[key] = coerced
	}
	if _, ok := out["locale"]; !ok {
		out["locale"] = t.DefaultLocale()
	}
	return out
}

// coerceParam converts raw request values (query strings, JSON numbers)
// into the canonical type for the key. Returns nil for values that carry
// no information.
func coerceParam(key string, value interface{}) interface{} {
	if intParamKeys[key] {
		if n, ok := toInt(value); ok && n != 0 {
			return n
		}
		return nil
	}
	if listParamKeys[key] {
		if items := toStringSlice(value); len(items) > 0 {
			return items
		}
		return nil
	}

	switch v := value.(type) {
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return nil
		}
		switch strings.ToLower(v) {
		case "true":
			return true
		case "false":
			return false
		}
		return v
	case float64:
		if v == float64(int(v)) {
			return int(v)
		}
		return v
	default:
		return value
	}
}

func toInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n, true
		}
	}
	return 0, false
}

func toStringSlice(value interface{}) []string {
	var raw []string
	switch v := value.(type) {
	case []string:
		raw = v
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
	case string:
		raw = strings.Split(v, ",")
	default:
		return nil
	}

	out := make([]string, 0, len(raw))
	for _, item := range raw {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// translateKeys maps tenant-internal option keys to the provider's
// external codes. Keys without a mapping pass through unchanged.
func translateKeys(keys []string, mappings map[string]string) []string {
	if len(mappings) == 0 {
		return keys
	}
	out := make([]string, len(keys))
	for i, key := range keys {
		if code, ok := mappings[key]; ok {
			out[i] = code
		} else {
			out[i] = key
		}
	}
	return out
}
