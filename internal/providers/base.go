package providers

import (
	"fmt"
	"strconv"
	"strings"

	"inmofeed/internal/feederrors"
	"inmofeed/internal/tenant"
	"inmofeed/pkg/logger"
)

// Base carries the state and helpers shared by every provider
// implementation so the concrete integrations stay declarative: tenant,
// validated config map, and a name-prefixed logger.
type Base struct {
	ProviderName string
	Tenant       *tenant.Tenant
	Config       map[string]interface{}
	Log          *logger.Logger
}

// NewBase validates that every required config key is present and
// non-blank, failing fast with a ConfigurationError at construction time
// rather than on first use.
func NewBase(name string, t *tenant.Tenant, config map[string]interface{}, requiredKeys []string) (*Base, error) {
	missing := make([]string, 0)
	for _, key := range requiredKeys {
		value, ok := config[key]
		if !ok || value == nil || strings.TrimSpace(fmt.Sprintf("%v", value)) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, feederrors.NewConfigurationError(name,
			fmt.Sprintf("missing required config keys: %s", strings.Join(missing, ", ")), nil)
	}
	return &Base{
		ProviderName: name,
		Tenant:       t,
		Config:       config,
		Log:          logger.GlobalLogger.WithPrefix(name),
	}, nil
}

func (b *Base) Name() string {
	return b.ProviderName
}

// DisplayName derives a human-facing name from the provider name:
// "resales" becomes "Resales", "some_feed" becomes "Some Feed".
func (b *Base) DisplayName() string {
	words := strings.FieldsFunc(b.ProviderName, func(r rune) bool {
		return r == '_' || r == '-'
	})
	for i, word := range words {
		if word != "" {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}

// ConfigString reads a string config value, "" when absent.
func (b *Base) ConfigString(key string) string {
	if v, ok := b.Config[key]; ok && v != nil {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

// ConfigInt reads an integer config value with a default, tolerating
// string and float encodings the way YAML and form input deliver them.
func (b *Base) ConfigInt(key string, def int) int {
	switch v := b.Config[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

// SupportsLocale reports whether the tenant account covers the locale.
// An empty supported list means no restriction.
func (b *Base) SupportsLocale(locale string) bool {
	supported := b.Tenant.SupportedLocales()
	if len(supported) == 0 {
		return true
	}
	for _, loc := range supported {
		if strings.EqualFold(strings.TrimSpace(loc), locale) {
			return true
		}
	}
	return false
}

// PageSize resolves the page size for a request: explicit per_page param,
// then tenant configuration.
func (b *Base) PageSize(params map[string]interface{}) int {
	switch v := params["per_page"].(type) {
	case int:
		if v > 0 {
			return v
		}
	case float64:
		if v > 0 {
			return int(v)
		}
	}
	return b.Tenant.ResultsPerPage()
}
