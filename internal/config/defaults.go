package config

// DefaultExcludes are glob patterns the reindex command skips by default.
// The index itself and editor droppings must never become posts.
var DefaultExcludes = []string{
	"posts/index.json",
	"posts/*.draft.json",
	"**/.*",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Title:               "Portfolio",
		DataDir:             "data",
		Timeline:            "timeline.json",
		Port:                8080,
		LiveEdit:            true,
		Placeholder:         "assets/placeholder.png",
		ImageTimeoutSec:     5,
		ProbeCache:          ".folio/probes.db",
		ProbeTTLHours:       24,
		Include:             []string{"posts/*.json"},
		Exclude:             DefaultExcludes,
		MaxConcurrency:      8,
		AccomplishmentOrder: SortNewestFirst,
	}
}
