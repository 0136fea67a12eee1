package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App   AppConfig
	Keys  APIKeys
	Cache CacheConfig
}

type AppConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	Environment    string
	LogFilePath    string
}

type APIKeys struct {
	GoogleGemini       string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

type CacheConfig struct {
	// TTL for cached GET responses; zero disables the cache.
	ResponseTTL time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			BaseURL:        getEnv("API_BASE_URL", "http://localhost:8000/api/v1"),
			RequestTimeout: time.Duration(getEnvAsInt("API_TIMEOUT_MS", 30000)) * time.Millisecond,
			Environment:    getEnv("GO_ENV", "development"),
			LogFilePath:    getEnv("LOG_FILE_PATH", "client.log"),
		},
		Keys: APIKeys{
			GoogleGemini:       getEnv("GOOGLE_GEMINI_API_KEY", ""),
			GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		},
		Cache: CacheConfig{
			ResponseTTL: time.Duration(getEnvAsInt("RESPONSE_CACHE_TTL_SEC", 300)) * time.Second,
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
