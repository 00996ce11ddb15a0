package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type RedisConfig struct {
	Addr string `mapstructure:"addr"`
	DB   int    `mapstructure:"db"`
}

type JWTConfig struct {
	SecretKey   string `mapstructure:"secret_key"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type AuthConfig struct {
	MaxSigninAttempts int `mapstructure:"max_signin_attempts"`
	LockoutMinutes    int `mapstructure:"lockout_minutes"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load loads the configuration from an optional yaml file plus the
// environment. A local .env file is honoured when present. It returns an
// error when the database URL or the JWT signing secret is missing so
// that the process refuses to start without them.
func Load(configPath string) (*Config, error) {
	// .env is optional, ignore a missing file
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("jwt.expire_hours", 1)
	v.SetDefault("auth.max_signin_attempts", 10)
	v.SetDefault("auth.lockout_minutes", 15)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Names the original deployment used
	v.BindEnv("database.url", "DATABASE_URL")
	v.BindEnv("jwt.secret_key", "SECRET_KEY")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("server.port", "PORT")

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the settings the process cannot run without.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return errors.New("database url is required (set DATABASE_URL)")
	}
	if c.JWT.SecretKey == "" {
		return errors.New("jwt signing secret is required (set SECRET_KEY)")
	}
	return nil
}

// ServerAddr returns the listen address
func (c *Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
