package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port        string
	Env         string
	APIUrl      string
	FrontendURL string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBTimeZone string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Identity provider (OIDC)
	OIDCIssuerURL       string
	OIDCAudience        string
	OIDCJWKSURL         string
	OIDCRefreshInterval time.Duration

	// Video search provider
	YouTubeAPIKey     string
	YouTubeBaseURL    string
	YouTubeTimeout    time.Duration
	SearchMaxResults  int
	SearchResultsCap  int

	// Logging
	LogLevel      string
	LogOutputPath string

	// Security
	RateLimitRequests int
	RateLimitDuration time.Duration

	// CORS
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

func New() *Config {
	return &Config{
		// Server
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		APIUrl:      getEnv("API_URL", "http://localhost:8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "tunedeck"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "tunedeck_db"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),
		DBTimeZone: getEnv("DB_TIMEZONE", "UTC"),

		// Redis
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		// Identity provider. The JWKS URL defaults to the Keycloak layout
		// under the issuer when left empty.
		OIDCIssuerURL:       getEnv("OIDC_ISSUER_URL", "http://localhost:8180/realms/music-app"),
		OIDCAudience:        getEnv("OIDC_AUDIENCE", ""),
		OIDCJWKSURL:         getEnv("OIDC_JWKS_URL", ""),
		OIDCRefreshInterval: getEnvAsDuration("OIDC_REFRESH_INTERVAL", "1h"),

		// Video search provider
		YouTubeAPIKey:    getEnv("YOUTUBE_API_KEY", ""),
		YouTubeBaseURL:   getEnv("YOUTUBE_BASE_URL", "https://www.googleapis.com/youtube/v3"),
		YouTubeTimeout:   getEnvAsDuration("YOUTUBE_TIMEOUT", "10s"),
		SearchMaxResults: getEnvAsInt("SEARCH_MAX_RESULTS", 10),
		SearchResultsCap: getEnvAsInt("SEARCH_RESULTS_CAP", 50),

		// Logging
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogOutputPath: getEnv("LOG_OUTPUT_PATH", ""),

		// Security
		RateLimitRequests: getEnvAsInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitDuration: getEnvAsDuration("RATE_LIMIT_DURATION", "1m"),

		// CORS
		AllowedOrigins: getEnvAsSlice("ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		AllowedMethods: getEnvAsSlice("ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		AllowedHeaders: getEnvAsSlice("ALLOWED_HEADERS", []string{"Content-Type", "Authorization"}),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	if duration, err := time.ParseDuration(defaultValue); err == nil {
		return duration
	}
	return time.Hour
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
