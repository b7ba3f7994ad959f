package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const dotEnvFile = ".env"

type Config struct {
	Port         int      `validate:"gt=0,lt=65536"`
	LogLevel     string   `validate:"oneof=debug info warn error"`
	MaxBodyBytes int64    `validate:"gt=0"`
	CORSOrigins  []string `validate:"min=1,dive,required"`
	Gemini       GeminiConfig
}

type GeminiConfig struct {
	// APIKey may be empty: the server still starts and answers every
	// generation request with a configuration error.
	APIKey     string
	Model      string        `validate:"required"`
	BaseURL    string        `validate:"required,url"`
	APIVersion string        `validate:"required"`
	Backend    string        `validate:"oneof=rest sdk"`
	Timeout    time.Duration `validate:"gt=0"`
}

const (
	BackendREST = "rest"
	BackendSDK  = "sdk"
)

// Load reads configuration from the environment, falling back to a .env file
// in the working directory and then to defaults.
func Load() (Config, error) {
	return load(dotEnvFile)
}

func load(envFile string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			v.SetConfigFile(envFile)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("read %s: %w", envFile, err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("stat %s: %w", envFile, err)
		}
	}

	cfg := Config{
		Port:         v.GetInt("PORT"),
		LogLevel:     strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))),
		MaxBodyBytes: v.GetInt64("MAX_BODY_BYTES"),
		CORSOrigins:  splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		Gemini: GeminiConfig{
			APIKey:     strings.TrimSpace(v.GetString("GEMINI_API_KEY")),
			Model:      strings.TrimSpace(v.GetString("GEMINI_MODEL_ID")),
			BaseURL:    strings.TrimRight(v.GetString("GEMINI_BASE_URL"), "/"),
			APIVersion: strings.Trim(v.GetString("GEMINI_API_VERSION"), "/"),
			Backend:    strings.ToLower(strings.TrimSpace(v.GetString("GEMINI_BACKEND"))),
		},
	}

	timeout, err := parseDuration(v.GetString("GEMINI_TIMEOUT"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GEMINI_TIMEOUT: %w", err)
	}
	cfg.Gemini.Timeout = timeout

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", 5000)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_BODY_BYTES", 1<<20)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL_ID", "gemini-1.5-flash")
	v.SetDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com")
	v.SetDefault("GEMINI_API_VERSION", "v1beta")
	v.SetDefault("GEMINI_BACKEND", BackendREST)
	v.SetDefault("GEMINI_TIMEOUT", "30s")
}

// Validate checks field constraints declared in struct tags.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Addr returns the listen address for http.Server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// HasAPIKey reports whether a provider credential was configured.
func (c GeminiConfig) HasAPIKey() bool {
	return c.APIKey != ""
}

func parseDuration(value string) (time.Duration, error) {
	if value == "" {
		return 0, fmt.Errorf("duration is empty")
	}
	return time.ParseDuration(value)
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
