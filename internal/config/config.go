package config

import (
	"os"

	"chipmaster-server/internal/util"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for the Chip Master server
type Config struct {
	loaded         bool
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	JWT            struct {
		PublicKey  string `yaml:"publicKey" envconfig:"public_key"`
		PrivateKey string `yaml:"privateKey" envconfig:"private_key"`
	}
	// RecaptchaSecret enables bot protection on profile creation when set
	RecaptchaSecret string `yaml:"recaptchaSecret" envconfig:"recaptcha_secret"`
	// PlayerCreateDelay is the minimum number of seconds between two profile
	// creations from a single remote address
	PlayerCreateDelay int `yaml:"playerCreateDelay" envconfig:"player_create_delay"`
	Log               struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	cfg := Config{
		PGDSN:             "postgres://postgres@localhost:5432/postgres?sslmode=disable",
		MigrationsPath:    "./sql",
		PlayerCreateDelay: 10,
	}
	cfg.JWT.PublicKey = "public.pem"
	cfg.JWT.PrivateKey = "private.key"

	return cfg
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
func Load() error {
	config = DefaultConfig()

	configFile := util.Getenv("CM_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("cm", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}
