package country

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// DefaultSlugs lists the countries offered by default. The first four are
// the ones the search page started with; the rest are countries the
// air-quality network reports PM2.5 for.
var DefaultSlugs = []string{
	"PL", "DE", "ES", "FR",
	"AT", "BA", "BE", "BG", "CH", "CL", "CN", "CZ", "DK", "EE", "FI", "GB",
	"GR", "HR", "HU", "IE", "IN", "IT", "LT", "LU", "LV", "MK", "MN", "MX",
	"NL", "NO", "PE", "PT", "RO", "RS", "SE", "SI", "SK", "TH", "TR", "US",
}

// aliases are common names that differ from the CLDR English region name.
var aliases = map[string]string{
	"england":                  "GB",
	"great britain":            "GB",
	"united states of america": "US",
	"usa":                      "US",
	"holland":                  "NL",
	"czech republic":           "CZ",
	"macedonia":                "MK",
	"turkey":                   "TR",
	"bosnia and herzegovina":   "BA",
}

// Catalog resolves free-form country names to countries.
type Catalog struct {
	byKey     map[string]Country
	countries []Country
}

// NewCatalog builds a catalog for the given ISO 3166-1 alpha-2 codes.
// English names come from CLDR. Codes that are not valid regions are skipped.
func NewCatalog(slugs []string) *Catalog {
	c := &Catalog{
		byKey: make(map[string]Country),
	}

	namer := display.English.Regions()
	for _, slug := range slugs {
		region, err := language.ParseRegion(slug)
		if err != nil || !region.IsCountry() {
			continue
		}
		name := namer.Name(region)
		ctry, err := NewCountry(name, region.String())
		if err != nil {
			continue
		}
		if _, dup := c.byKey[c.key(ctry.Slug())]; dup {
			continue
		}
		c.countries = append(c.countries, ctry)
		c.byKey[c.key(ctry.Name())] = ctry
		c.byKey[c.key(ctry.Slug())] = ctry
	}

	for alias, slug := range aliases {
		if ctry, ok := c.byKey[c.key(slug)]; ok {
			if _, taken := c.byKey[c.key(alias)]; !taken {
				c.byKey[c.key(alias)] = ctry
			}
		}
	}

	sort.Slice(c.countries, func(i, j int) bool {
		return c.countries[i].Name() < c.countries[j].Name()
	})

	return c
}

// Lookup finds a country by English name, alias or two-letter code,
// ignoring case and surrounding whitespace.
// Returns ErrUnknownCountry if nothing matches.
func (c *Catalog) Lookup(name string) (Country, error) {
	ctry, ok := c.byKey[c.key(name)]
	if !ok {
		return Country{}, ErrUnknownCountry
	}
	return ctry, nil
}

// Countries returns all known countries sorted by name.
func (c *Catalog) Countries() []Country {
	out := make([]Country, len(c.countries))
	copy(out, c.countries)
	return out
}

// Names returns the known country names sorted alphabetically.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.countries))
	for i, ctry := range c.countries {
		names[i] = ctry.Name()
	}
	return names
}

// key folds case and collapses whitespace. A Caser keeps state, so each call
// gets its own.
func (c *Catalog) key(s string) string {
	return cases.Fold().String(strings.Join(strings.Fields(s), " "))
}
