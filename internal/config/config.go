package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/yigit/extension-registry/internal/pkg/helpers"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Database struct {
		Host           string `yaml:"host" env:"DB_HOST"`
		Port           string `yaml:"port" env:"DB_PORT"`
		User           string `yaml:"user" env:"DB_USER"`
		Password       string `yaml:"password" env:"DB_PASSWORD"`
		DBName         string `yaml:"dbname" env:"DB_NAME"`
		SSLMode        string `yaml:"sslmode" env:"DB_SSLMODE"`
		ConnectTimeout string `yaml:"connect_timeout" env:"DB_CONNECT_TIMEOUT"`
		MaxConns       int    `yaml:"max_conns" env:"DB_MAX_CONNS"`
	} `yaml:"database"`

	Assistant struct {
		APIKey   string `yaml:"api_key" env:"GEMINI_API_KEY"`
		Model    string `yaml:"model" env:"GEMINI_MODEL"`
		ReadOnly bool   `yaml:"read_only" env:"ASSISTANT_READ_ONLY"`
	} `yaml:"assistant"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
		File   string `yaml:"file" env:"LOG_FILE"`
	} `yaml:"logging"`

	// EnvApplied lists the environment variables that overrode file or default values
	EnvApplied []string `yaml:"-"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// The file is optional; the environment alone is a complete configuration source.
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applied, err := processStructFields(config)
	if err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}
	config.EnvApplied = applied

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration. Credentials and the database
// location have no defaults on purpose.
func setDefaults(config *Config) {
	config.Database.Port = "5432"
	config.Database.SSLMode = "disable"
	config.Database.ConnectTimeout = "5s"
	config.Database.MaxConns = 4

	config.Assistant.Model = "gemini-2.0-flash"
	config.Assistant.ReadOnly = true

	config.Logging.Level = "info"
	config.Logging.Format = "text"
	config.Logging.File = "registry.log"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	var missing []string
	if config.Database.Host == "" {
		missing = append(missing, "DB_HOST")
	}
	if config.Database.DBName == "" {
		missing = append(missing, "DB_NAME")
	}
	if config.Database.User == "" {
		missing = append(missing, "DB_USER")
	}
	if config.Database.Password == "" {
		missing = append(missing, "DB_PASSWORD")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}

	if _, err := time.ParseDuration(config.Database.ConnectTimeout); err != nil {
		return fmt.Errorf("invalid database connect timeout format: %w", err)
	}

	if config.Database.MaxConns <= 0 {
		return errors.New("database max_conns must be positive")
	}

	return nil
}

// ConnectTimeout returns the parsed connect timeout
func (c *Config) ConnectTimeout() time.Duration {
	return helpers.ParseDuration(c.Database.ConnectTimeout, 5*time.Second)
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     net.JoinHostPort(c.Database.Host, c.Database.Port),
		Path:     "/" + c.Database.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(sslMode),
	}
	return u.String()
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
