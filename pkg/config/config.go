package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config contains the runtime settings of the call-link service.
// It is resolved once at startup and passed by value.
type Config struct {
	AppName     string
	ServiceName string
	Env         string
	LogLevel    string
	HTTPPort    int

	DailyAPIKey string
	DailyDomain string
	DailyAPIURL string
	ManagerPass string
	NATSURL     string

	ShutdownTimeout time.Duration
	ProviderTimeout time.Duration
}

// Load reads configuration from environment variables and, when present,
// from the dotenv file named by ENV_FILE. Environment variables take precedence.
func Load(serviceName string) (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	envFile := strings.TrimSpace(v.GetString("ENV_FILE"))
	if envFile == "" {
		envFile = ".env"
	}
	if err := readEnvFile(v, envFile); err != nil {
		return Config{}, err
	}

	port, err := getInt(v, "PORT", 3000)
	if err != nil {
		return Config{}, err
	}
	shutdownSeconds, err := getInt(v, "SHUTDOWN_TIMEOUT_SECONDS", 10)
	if err != nil {
		return Config{}, err
	}
	providerSeconds, err := getInt(v, "PROVIDER_TIMEOUT_SECONDS", 30)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppName:         getString(v, "APP_NAME", "call-links"),
		ServiceName:     serviceName,
		Env:             getString(v, "APP_ENV", "development"),
		LogLevel:        getString(v, "LOG_LEVEL", "info"),
		HTTPPort:        port,
		DailyAPIKey:     getString(v, "DAILY_API_KEY", ""),
		DailyDomain:     getString(v, "DAILY_DOMAIN", ""),
		DailyAPIURL:     strings.TrimRight(getString(v, "DAILY_API_URL", "https://api.daily.co/v1"), "/"),
		ManagerPass:     getString(v, "MANAGER_PASS", ""),
		NATSURL:         getString(v, "NATS_URL", ""),
		ShutdownTimeout: time.Duration(shutdownSeconds) * time.Second,
		ProviderTimeout: time.Duration(providerSeconds) * time.Second,
	}

	return cfg, nil
}

// Warnings lists settings that are missing but do not prevent startup.
func (c Config) Warnings() []string {
	var out []string
	if c.DailyAPIKey == "" {
		out = append(out, "DAILY_API_KEY is not set, room creation will fail")
	}
	if c.DailyDomain == "" {
		out = append(out, "DAILY_DOMAIN is not set, fallback room urls cannot be built")
	}
	return out
}

func readEnvFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	v.SetConfigType("env")
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("read %s: %w", path, err)
}

func getString(v *viper.Viper, key, defaultValue string) string {
	if value := strings.TrimSpace(v.GetString(key)); value != "" {
		return value
	}
	return defaultValue
}

func getInt(v *viper.Viper, key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(v.GetString(key))
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}
