package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// External recommendation backend.
	BackendURL string `mapstructure:"BACKEND_URL"`

	// Nominatim geocoding search.
	NominatimURL       string `mapstructure:"NOMINATIM_URL"`
	NominatimUserAgent string `mapstructure:"NOMINATIM_USER_AGENT"`
	DebounceMs         int    `mapstructure:"DEBOUNCE_MS"`
	SuggestionLimit    int    `mapstructure:"SUGGESTION_LIMIT"`

	// Recommendation search defaults.
	SearchRadiusKm float64 `mapstructure:"SEARCH_RADIUS_KM"`
	Language       string  `mapstructure:"LANGUAGE"`

	// Credential store selection: "redis", "sqlite" or "memory".
	CredStore string `mapstructure:"CRED_STORE"`

	// Redis configuration (shared credential store).
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCredDB   int    `mapstructure:"REDIS_CRED_DB"`

	// SQLite configuration (local credential store).
	SQLitePath string `mapstructure:"SQLITE_PATH"`

	// Gateway session lifecycle.
	SessionIdleMin int `mapstructure:"SESSION_IDLE_MIN"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("BACKEND_URL", "http://localhost:4000")
	viper.SetDefault("NOMINATIM_URL", "https://nominatim.openstreetmap.org/search")
	viper.SetDefault("NOMINATIM_USER_AGENT", "SmartTravelCompanion/1.0")
	viper.SetDefault("DEBOUNCE_MS", 350)
	viper.SetDefault("SUGGESTION_LIMIT", 6)
	viper.SetDefault("SEARCH_RADIUS_KM", 5.0)
	viper.SetDefault("LANGUAGE", "es")
	viper.SetDefault("CRED_STORE", "sqlite")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CRED_DB", 0)
	viper.SetDefault("SQLITE_PATH", "smarttravel.db")
	viper.SetDefault("SESSION_IDLE_MIN", 120)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
