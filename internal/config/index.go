package config

// IndexConfig holds reference index store configuration
type IndexConfig struct {
	Type   string            `mapstructure:"type"   yaml:"type"`
	SQLite IndexSQLiteConfig `mapstructure:"sqlite" yaml:"sqlite"`
}

// IndexSQLiteConfig holds SQLite-specific configuration
type IndexSQLiteConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}
