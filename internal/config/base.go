package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type BaseConfig struct {
	Media MediaConfig `mapstructure:"media" yaml:"media"`
	Index IndexConfig `mapstructure:"index" yaml:"index"`
	Log   LogConfig   `mapstructure:"log"   yaml:"log"`
}

func LoadConfig() (*BaseConfig, error) {
	cfg := &BaseConfig{}

	setDefaults()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}
