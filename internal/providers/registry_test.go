package providers

import (
	"io"
	"testing"

	"inmofeed/internal/tenant"
	"inmofeed/pkg/logger"
)

func init() {
	logger.InitLogger(io.Discard, "ERROR")
}

func stubFactory(t *tenant.Tenant, config map[string]interface{}) (Provider, error) {
	return nil, nil
}

func TestRegistryRoundTrip(t *testing.T) {
	r := NewRegistry()
	r.Register(Definition{Name: "alpha", DisplayName: "Alpha", New: stubFactory})

	def, ok := r.Find("alpha")
	if !ok {
		t.Fatal("registered provider not found")
	}
	if def.DisplayName != "Alpha" {
		t.Errorf("DisplayName = %q", def.DisplayName)
	}

	if _, ok := r.Find("missing"); ok {
		t.Error("unregistered name should not resolve")
	}
}

func TestRegistryOverwrite(t *testing.T) {
	r := NewRegistry()
	r.Register(Definition{Name: "alpha", DisplayName: "First", New: stubFactory})
	r.Register(Definition{Name: "alpha", DisplayName: "Second", New: stubFactory})

	def, ok := r.Find("alpha")
	if !ok {
		t.Fatal("provider lost after re-registration")
	}
	if def.DisplayName != "Second" {
		t.Errorf("DisplayName = %q, want last registration to win", def.DisplayName)
	}
	if got := len(r.List()); got != 1 {
		t.Errorf("List() has %d entries, want 1", got)
	}
}

func TestRegistryRejectsInvalid(t *testing.T) {
	r := NewRegistry()
	r.Register(Definition{Name: "", New: stubFactory})
	r.Register(Definition{Name: "nofactory"})

	if got := len(r.List()); got != 0 {
		t.Errorf("List() has %d entries, want invalid registrations ignored", got)
	}
}

func TestRegistryListSorted(t *testing.T) {
	r := NewRegistry()
	r.Register(Definition{Name: "zeta", New: stubFactory})
	r.Register(Definition{Name: "alpha", New: stubFactory})
	r.Register(Definition{Name: "mid", New: stubFactory})

	names := r.List()
	want := []string{"alpha", "mid", "zeta"}
	for i, name := range want {
		if names[i] != name {
			t.Fatalf("List() = %v, want %v", names, want)
		}
	}
}
