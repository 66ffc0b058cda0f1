package country

import (
	"errors"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCatalog_Lookup(t *testing.T) {
	catalog := NewCatalog(DefaultSlugs)

	tests := []struct {
		input    string
		wantSlug string
	}{
		{input: "Poland", wantSlug: "PL"},
		{input: "Germany", wantSlug: "DE"},
		{input: "Spain", wantSlug: "ES"},
		{input: "France", wantSlug: "FR"},
		{input: "poland", wantSlug: "PL"},
		{input: "  FRANCE  ", wantSlug: "FR"},
		{input: "pl", wantSlug: "PL"},
		{input: "United  Kingdom", wantSlug: "GB"},
		{input: "USA", wantSlug: "US"},
		{input: "holland", wantSlug: "NL"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, err := catalog.Lookup(tt.input)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if c.Slug() != tt.wantSlug {
				t.Errorf("expected slug %q, got %q", tt.wantSlug, c.Slug())
			}
		})
	}

	t.Run("unknown name", func(t *testing.T) {
		_, err := catalog.Lookup("Atlantis")
		if !errors.Is(err, ErrUnknownCountry) {
			t.Errorf("expected ErrUnknownCountry, got %v", err)
		}
	})

	t.Run("code outside catalog", func(t *testing.T) {
		_, err := catalog.Lookup("JP")
		if !errors.Is(err, ErrUnknownCountry) {
			t.Errorf("expected ErrUnknownCountry, got %v", err)
		}
	})
}

func TestNewCatalog(t *testing.T) {
	t.Run("skips invalid and duplicate codes", func(t *testing.T) {
		catalog := NewCatalog([]string{"PL", "pl", "ZZZ", "", "DE"})

		got := catalog.Names()
		want := []string{"Germany", "Poland"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Names() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("names are sorted", func(t *testing.T) {
		catalog := NewCatalog(DefaultSlugs)
		names := catalog.Names()
		if !sort.StringsAreSorted(names) {
			t.Errorf("expected sorted names, got %v", names)
		}
		if len(catalog.Countries()) != len(names) {
			t.Errorf("expected %d countries, got %d", len(names), len(catalog.Countries()))
		}
	})
}
