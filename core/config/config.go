package config

import (
	"fmt"
	"reflect"
	"strings"

	"leaderboard-payouts/core/database"
	"leaderboard-payouts/core/logger"
	"leaderboard-payouts/core/server"
	"leaderboard-payouts/core/storage"
	"leaderboard-payouts/feature/payouts"
	"leaderboard-payouts/feature/payouts/mee6"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Payouts holds the run settings: mapping workbook, output directory and sources.
	Payouts payouts.Config `mapstructure:"payouts"`
	// Leaderboard holds configuration for the leaderboard API client.
	Leaderboard mee6.Config `mapstructure:"leaderboard"`
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for report archival (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the run history database.
	Database database.Config `mapstructure:"database"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// A missing .env is normal outside development.
	_ = godotenv.Overload(envPath)

	v := viper.New()

	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if _, err := config.Payouts.ParseSources(); err != nil {
		return nil, fmt.Errorf("invalid payouts.sources: %w", err)
	}

	return &config, nil
}

// bindValues registers every tagged field with Viper, using the 'default' tag as the
// default value, so that AutomaticEnv can resolve nested keys.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Empty defaults still register the key for AutomaticEnv.
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
