package config

// MediaConfig holds URL-resolution settings for file references.
type MediaConfig struct {
	// BaseURL is prepended to relative network URLs when resolving the
	// full URL of a reference. Empty leaves relative URLs unchanged.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}
