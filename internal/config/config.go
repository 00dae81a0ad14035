package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL string
	AIBaseURL  string

	ServerPort string

	RedisAddr     string
	RedisPassword string
	ReferenceTTL  time.Duration

	CookieName   string
	CookieSecure bool

	Timezone string
	LogLevel string

	TemplatesGlob string
}

func Load() *Config {
	// .env is optional; deploys inject the environment directly.
	_ = godotenv.Load()

	return &Config{
		APIBaseURL:    getEnv("API_BASE_URL", "http://localhost:5000/api"),
		AIBaseURL:     getEnv("AI_BASE_URL", "https://barberdev-microservice.onrender.com"),
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		ReferenceTTL:  getDuration("REFERENCE_TTL", 5*time.Minute),
		CookieName:    getEnv("SESSION_COOKIE", "token"),
		CookieSecure:  getEnv("SESSION_COOKIE_SECURE", "false") == "true",
		Timezone:      getEnv("SHOP_TIMEZONE", "America/Santiago"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		TemplatesGlob: getEnv("TEMPLATES_GLOB", "web/templates/*.html"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}
