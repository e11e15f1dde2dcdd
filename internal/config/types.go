package config

// SortDirection controls the ordering of dated collections.
type SortDirection string

const (
	SortNewestFirst SortDirection = "newest"
	SortOldestFirst SortDirection = "oldest"
)

// Config is the top-level folio configuration, corresponding to .folio.yml.
type Config struct {
	Title    string `yaml:"title" koanf:"title"`
	Author   string `yaml:"author" koanf:"author"`
	Tagline  string `yaml:"tagline" koanf:"tagline"`
	About    string `yaml:"about" koanf:"about"`
	DataDir  string `yaml:"data_dir" koanf:"data_dir"`
	Timeline string `yaml:"timeline" koanf:"timeline"`

	Port     int  `yaml:"port" koanf:"port"`
	CORSAll  bool `yaml:"cors_all" koanf:"cors_all"`
	LiveEdit bool `yaml:"live_edit" koanf:"live_edit"`

	Placeholder     string `yaml:"placeholder" koanf:"placeholder"`
	ImageTimeoutSec int    `yaml:"image_timeout_sec" koanf:"image_timeout_sec"`
	ProbeCache      string `yaml:"probe_cache" koanf:"probe_cache"`
	ProbeTTLHours   int    `yaml:"probe_ttl_hours" koanf:"probe_ttl_hours"`

	Include []string `yaml:"include" koanf:"include"`
	Exclude []string `yaml:"exclude" koanf:"exclude"`

	MaxConcurrency int `yaml:"max_concurrency" koanf:"max_concurrency"`

	// AccomplishmentOrder fixes the direction of the home-page
	// accomplishment timeline; work history is always newest-first.
	AccomplishmentOrder SortDirection `yaml:"accomplishment_order" koanf:"accomplishment_order"`
}
