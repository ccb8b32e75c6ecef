// README: Config loader with env defaults for HTTP, LLM, places, flights, cache, and session settings.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type LLMConfig struct {
	Provider     string
	GeminiKey    string
	GeminiModel  string
	OpenAIKey    string
	OpenAIModel  string
	ClaudeKey    string
	ClaudeModel  string
	Temperature  float64
	Timeout      time.Duration
	HistoryTurns int
}

type PlacesConfig struct {
	APIKey     string
	RadiusM    int
	MaxResults int
}

type FlightsConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	MaxResults   int
	Timeout      time.Duration
}

type SessionConfig struct {
	MaxAge        time.Duration
	SweepInterval time.Duration
}

type Config struct {
	HTTP struct {
		Addr string
	}
	Log struct {
		Level string
	}
	Redis struct {
		Addr     string
		CacheTTL time.Duration
	}
	LLM     LLMConfig
	Places  PlacesConfig
	Flights FlightsConfig
	Session SessionConfig
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	cfg.HTTP.Addr = envOrDefault("WAYFARER_HTTP_ADDR", ":8000")
	cfg.Log.Level = envOrDefault("WAYFARER_LOG_LEVEL", "info")

	cfg.Redis.Addr = os.Getenv("WAYFARER_REDIS_ADDR")
	cfg.Redis.CacheTTL = envOrDefaultDuration("WAYFARER_CACHE_TTL", 10*time.Minute)

	cfg.LLM.Provider = strings.ToLower(envOrDefault("WAYFARER_LLM_PROVIDER", "gemini"))
	cfg.LLM.GeminiKey = os.Getenv("GEMINI_API_KEY")
	cfg.LLM.GeminiModel = envOrDefault("WAYFARER_GEMINI_MODEL", "gemini-2.0-flash")
	cfg.LLM.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	cfg.LLM.OpenAIModel = envOrDefault("WAYFARER_OPENAI_MODEL", "gpt-4o-mini")
	cfg.LLM.ClaudeKey = os.Getenv("CLAUDE_API_KEY")
	cfg.LLM.ClaudeModel = envOrDefault("WAYFARER_CLAUDE_MODEL", "claude-3-5-sonnet-latest")
	cfg.LLM.Temperature = envOrDefaultFloat("WAYFARER_LLM_TEMPERATURE", 0.3)
	cfg.LLM.Timeout = envOrDefaultDuration("WAYFARER_LLM_TIMEOUT", 30*time.Second)
	cfg.LLM.HistoryTurns = envOrDefaultInt("WAYFARER_LLM_HISTORY_TURNS", 10)

	cfg.Places.APIKey = os.Getenv("GOOGLE_PLACES_API_KEY")
	cfg.Places.RadiusM = envOrDefaultInt("WAYFARER_PLACES_RADIUS_M", 5000)
	cfg.Places.MaxResults = envOrDefaultInt("WAYFARER_HOTEL_MAX_RESULTS", 5)

	cfg.Flights.BaseURL = strings.TrimRight(envOrDefault("WAYFARER_FLIGHTS_BASE_URL", "https://test.api.amadeus.com"), "/")
	cfg.Flights.ClientID = os.Getenv("AMADEUS_CLIENT_ID")
	cfg.Flights.ClientSecret = os.Getenv("AMADEUS_CLIENT_SECRET")
	cfg.Flights.MaxResults = envOrDefaultInt("WAYFARER_FLIGHT_MAX_RESULTS", 5)
	cfg.Flights.Timeout = envOrDefaultDuration("WAYFARER_FLIGHTS_TIMEOUT", 15*time.Second)

	cfg.Session.MaxAge = envOrDefaultDuration("WAYFARER_SESSION_MAX_AGE", 24*time.Hour)
	cfg.Session.SweepInterval = envOrDefaultDuration("WAYFARER_SESSION_SWEEP_INTERVAL", 15*time.Minute)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// validate rejects durations that would stall timers or expire everything at once.
func (c Config) validate() error {
	durations := []struct {
		key string
		val time.Duration
	}{
		{"WAYFARER_CACHE_TTL", c.Redis.CacheTTL},
		{"WAYFARER_LLM_TIMEOUT", c.LLM.Timeout},
		{"WAYFARER_FLIGHTS_TIMEOUT", c.Flights.Timeout},
		{"WAYFARER_SESSION_MAX_AGE", c.Session.MaxAge},
		{"WAYFARER_SESSION_SWEEP_INTERVAL", c.Session.SweepInterval},
	}
	for _, d := range durations {
		if d.val <= 0 {
			return fmt.Errorf("config: %s must be positive, got %s", d.key, d.val)
		}
	}
	return nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
