package city

import "sort"

// DefaultLimit is how many cities a ranking keeps.
const DefaultLimit = 10

// Rank orders measurements from the most to the least polluted, keeps the
// first (worst) reading per city and truncates the result to limit entries.
// Equal values keep their input order. A limit <= 0 means DefaultLimit.
func Rank(measurements []Measurement, limit int) []Measurement {
	if limit <= 0 {
		limit = DefaultLimit
	}

	sorted := make([]Measurement, len(measurements))
	copy(sorted, measurements)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].value > sorted[j].value
	})

	seen := make(map[string]struct{}, len(sorted))
	ranked := make([]Measurement, 0, limit)
	for _, m := range sorted {
		if m.city == "" {
			continue
		}
		if _, dup := seen[m.city]; dup {
			continue
		}
		seen[m.city] = struct{}{}
		ranked = append(ranked, m)
		if len(ranked) == limit {
			break
		}
	}

	return ranked
}

// Names returns the city names of the given measurements in order.
func Names(measurements []Measurement) []string {
	names := make([]string, len(measurements))
	for i, m := range measurements {
		names[i] = m.city
	}
	return names
}
