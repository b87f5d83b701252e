package cli

import (
	"fmt"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mwantia/gofile/internal/config"
	"github.com/mwantia/gofile/pkg/fileref"
	"github.com/spf13/viper"
)

func initConfig(path string) error {
	// Load .env files from current directory
	envFiles := []string{".env", ".env.local"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err != nil {
			// Silently ignore missing .env files
			continue
		}
	}

	if path != "" {
		viper.SetConfigFile(path)
		// Also try to load .env file from the same directory as config
		configDir := filepath.Dir(path)
		for _, envFile := range envFiles {
			envPath := filepath.Join(configDir, envFile)
			godotenv.Load(envPath) // Ignore errors
		}
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("/etc/gofile")
		viper.AddConfigPath("$HOME/.gofile")
	}

	viper.SetEnvPrefix("GOFILE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// loadConfig unmarshals the effective configuration and seeds the
// process-wide base media URL used for URL resolution.
func loadConfig() (*config.BaseConfig, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	fileref.SetBaseMediaURL(cfg.Media.BaseURL)
	return cfg, nil
}
