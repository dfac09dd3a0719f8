package cache

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"strings"
)

// NormalizeParams produces the canonical form of a parameter map used for
// key hashing: keys lowercased and trimmed, blank or empty values dropped,
// nested maps and slices normalized recursively. Two semantically equal
// maps always normalize to the same value regardless of key order or how
// the caller spelled the keys.
func NormalizeParams(params map[string]interface{}) map[string]interface{} {
	normalized := make(map[string]interface{}, len(params))
	for key, value := range params {
		cleanKey := strings.ToLower(strings.TrimSpace(key))
		if cleanKey == "" {
			continue
		}
		cleanValue, keep := normalizeValue(value)
		if !keep {
			continue
		}
		normalized[cleanKey] = cleanValue
	}
	return normalized
}

func normalizeValue(value interface{}) (interface{}, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil, false
		}
		return trimmed, true
	case map[string]interface{}:
		nested := NormalizeParams(v)
		if len(nested) == 0 {
			return nil, false
		}
		return nested, true
	case map[interface{}]interface{}:
		converted := make(map[string]interface{}, len(v))
		for key, val := range v {
			converted[fmt.Sprintf("%v", key)] = val
		}
		nested := NormalizeParams(converted)
		if len(nested) == 0 {
			return nil, false
		}
		return nested, true
	case []interface{}:
		kept := make([]interface{}, 0, len(v))
		for _, item := range v {
			if cleaned, keep := normalizeValue(item); keep {
				kept = append(kept, cleaned)
			}
		}
		if len(kept) == 0 {
			return nil, false
		}
		return kept, true
	case []string:
		kept := make([]interface{}, 0, len(v))
		for _, item := range v {
			if cleaned, keep := normalizeValue(item); keep {
				kept = append(kept, cleaned)
			}
		}
		if len(kept) == 0 {
			return nil, false
		}
		return kept, true
	default:
		return v, true
	}
}

// hashParams derives a stable digest of the normalized parameter map.
// json.Marshal sorts map keys, so the digest is order-independent.
func hashParams(params map[string]interface{}) string {
	data, err := json.Marshal(NormalizeParams(params))
	if err != nil {
		// Unmarshalable params cannot come from normalized request input;
		// fall back to an empty-map digest rather than failing the fetch.
		data = []byte("{}")
	}
	return fmt.Sprintf("%x", md5.Sum(data))
}
