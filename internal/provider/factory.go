package provider

import "fmt"

// FromConfig creates a Provider from the given configuration.
// If cfg.Type is empty, defaults to Claude.
// Returns an error for unknown provider types; the heuristic evaluator
// is constructed directly, not through this factory.
func FromConfig(cfg Config) (Provider, error) {
	switch cfg.Type {
	case ProviderClaude, "":
		return NewClaude(cfg.Command), nil
	case ProviderCodex:
		return NewCodex(cfg.Command), nil
	default:
		return nil, fmt.Errorf("unknown provider type: %s", cfg.Type)
	}
}
