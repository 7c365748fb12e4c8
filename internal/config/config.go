package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Geocode  GeocodeConfig
	Weather  WeatherConfig
	Position PositionConfig
	Suggest  SuggestConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port string
}

// GeocodeConfig holds geocoding provider settings.
// The provider requires no API key.
type GeocodeConfig struct {
	BaseURL     string
	CountryCode string
	Limit       int
}

// WeatherConfig holds weather provider settings
type WeatherConfig struct {
	BaseURL string
	APIKey  string
	Lang    string
}

// PositionConfig holds device position source settings
type PositionConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SuggestConfig holds suggestion pipeline settings
type SuggestConfig struct {
	Debounce    time.Duration
	MinQueryLen int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	_ = godotenv.Load()

	apiKey := os.Getenv("WEATHER_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("WEATHER_API_KEY is required")
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("APP_PORT", "8080"),
		},
		Geocode: GeocodeConfig{
			BaseURL:     getEnv("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org"),
			CountryCode: getEnv("GEOCODE_COUNTRY", "br"),
			Limit:       getEnvAsInt("GEOCODE_LIMIT", 5),
		},
		Weather: WeatherConfig{
			BaseURL: getEnv("WEATHER_BASE_URL", "https://weather.visualcrossing.com/VisualCrossingWebServices/rest/services"),
			APIKey:  apiKey,
			Lang:    getEnv("WEATHER_LANG", "pt"),
		},
		Position: PositionConfig{
			BaseURL: getEnv("POSITION_BASE_URL", "http://ip-api.com"),
			Timeout: getEnvAsDuration("POSITION_TIMEOUT", 5*time.Second),
		},
		Suggest: SuggestConfig{
			Debounce:    getEnvAsDuration("SUGGEST_DEBOUNCE", 300*time.Millisecond),
			MinQueryLen: getEnvAsInt("SUGGEST_MIN_QUERY", 3),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
