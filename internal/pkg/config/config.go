package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	WebService   WebServiceConfig   `mapstructure:"web_service"`
	Database     DatabaseConfig     `mapstructure:"database"`
	RedisService RedisServiceConfig `mapstructure:"redis_service"`
	JWT          JWTConfig          `mapstructure:"jwt"`
	Log          LogConfig          `mapstructure:"log"`
	Admin        AdminConfig        `mapstructure:"admin"`
	Screenshots  ScreenshotsConfig  `mapstructure:"screenshots"`
	Outbound     OutboundConfig     `mapstructure:"outbound"`
}

type WebServiceConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type RedisServiceConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	DB   int    `mapstructure:"db"`
}

type JWTConfig struct {
	SecretKey   string `mapstructure:"secret_key"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type AdminConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Email    string `mapstructure:"email"`
}

type ScreenshotsConfig struct {
	Path    string `mapstructure:"path"`
	Browser string `mapstructure:"browser"`
}

type OutboundConfig struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

var cfg *Config

// Load loads the configuration from config.yaml
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Get returns the loaded configuration
func Get() *Config {
	if cfg == nil {
		// Defaults for tests that never call Load
		cfg = &Config{
			JWT: JWTConfig{
				SecretKey:   "insecure-test-key",
				ExpireHours: 24,
			},
			Screenshots: ScreenshotsConfig{
				Path:    "screenshots",
				Browser: "chromium",
			},
			Outbound: OutboundConfig{
				TimeoutSeconds: 10,
			},
		}
	}
	return cfg
}

// GetWebServiceAddr returns the web service address
func (c *Config) GetWebServiceAddr() string {
	return fmt.Sprintf("%s:%d", c.WebService.Host, c.WebService.Port)
}

// GetRedisAddr returns the redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisService.Host, c.RedisService.Port)
}
