// config/config.go
package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Addr           string
	SessionSecret  string
	JWTSecret      string
	SessionMaxAge  int // saniye
	AllowedOrigins []string
	DemoSolves     bool // örnek çözümlerle başla
	Database       DatabaseConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// Enabled, DB_HOST verilmediyse çözüm geçmişi bellekte tutulur.
func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

func Load() Config {
	return Config{
		Addr:           getEnv("ADDR", ":8181"),
		SessionSecret:  getEnv("SESSION_SECRET", "vulnops-session-secret"),
		JWTSecret:      getEnv("JWT_SECRET", "vulnops-jwt-secret"),
		SessionMaxAge:  getEnvInt("SESSION_MAX_AGE", 86400),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:8080")),
		DemoSolves:     getEnvBool("DEMO_SOLVES", false),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", ""),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "vulnops"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
