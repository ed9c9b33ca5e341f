package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Version is the release version, shared by the CLI and the server.
const Version = "0.5.0"

// SchemeConfig represents server listen configuration
type SchemeConfig struct {
	Address   string `json:"address" mapstructure:"address"`
	HTTPPort  int    `json:"http_port" mapstructure:"http_port"`
	EnableH2C bool   `json:"enable_h2c" mapstructure:"enable_h2c"`
}

// StorageConfig represents profile/user persistence configuration
type StorageConfig struct {
	Driver   string `json:"driver" mapstructure:"driver"` // bolt, mysql
	DataDir  string `json:"data_dir" mapstructure:"data_dir"`
	MySQLDSN string `json:"mysql_dsn" mapstructure:"mysql_dsn"`
}

// TransformConfig represents pipeline defaults
type TransformConfig struct {
	Workers int `json:"workers" mapstructure:"workers"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level  string `json:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `json:"format" mapstructure:"format"` // console, json
}

// Config represents the main configuration
type Config struct {
	Scheme    SchemeConfig    `json:"scheme" mapstructure:"scheme"`
	Storage   StorageConfig   `json:"storage" mapstructure:"storage"`
	Transform TransformConfig `json:"transform" mapstructure:"transform"`
	Log       LogConfig       `json:"log" mapstructure:"log"`
	JWTSecret string          `json:"jwt_secret" mapstructure:"jwt_secret"`
	JWTExpire int             `json:"jwt_expire" mapstructure:"jwt_expire"` // hours
}

var (
	cfg  *Config
	once sync.Once
)

// Load reads the configuration once, from file, environment, and defaults.
func Load() *Config {
	once.Do(func() {
		viper.SetConfigName("config")
		viper.SetConfigType("json")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath("$HOME/.classic-cipher")

		// Scheme defaults
		viper.SetDefault("scheme.address", "0.0.0.0")
		viper.SetDefault("scheme.http_port", 5380)
		viper.SetDefault("scheme.enable_h2c", false)

		// Storage defaults
		viper.SetDefault("storage.driver", "bolt")
		viper.SetDefault("storage.data_dir", "./data")
		viper.SetDefault("storage.mysql_dsn", "")

		// Transform defaults
		viper.SetDefault("transform.workers", 4)

		// Log defaults
		viper.SetDefault("log.level", "info")
		viper.SetDefault("log.format", "console")

		// Auth defaults
		viper.SetDefault("jwt_secret", "classic-cipher-secret-change-me")
		viper.SetDefault("jwt_expire", 24)

		// Environment variables
		viper.SetEnvPrefix("CIPHER")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		if err := viper.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				log.Warn().Msg("Config file not found, using defaults")
			} else {
				log.Error().Err(err).Msg("Error reading config file")
			}
		}

		cfg = &Config{}
		if err := viper.Unmarshal(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to unmarshal config")
		}
	})
	return cfg
}

// Get returns the loaded configuration, loading it on first use.
func Get() *Config {
	if cfg == nil {
		return Load()
	}
	return cfg
}

// GetHTTPAddr returns the HTTP listen address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.Scheme.Address, c.Scheme.HTTPPort)
}

// IsH2CEnabled returns whether HTTP/2 cleartext is enabled
func (c *Config) IsH2CEnabled() bool {
	return c.Scheme.EnableH2C
}
