package driven

import "context"

// Encyclopedia defines the interface for looking up short introductions of places.
// This is a driven port implemented by concrete adapters (e.g., the Wikipedia HTTP client).
type Encyclopedia interface {
	// Extracts returns the introductory HTML extract for each requested title,
	// keyed by the title as it was requested. Titles with no article map to "".
	Extracts(ctx context.Context, titles []string) (map[string]string, error)

	// Ping checks if the encyclopedia is reachable.
	Ping(ctx context.Context) error
}
