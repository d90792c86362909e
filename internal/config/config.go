package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	DBConn   string
	LogLevel string

	JWTSecret string
	JWTTTL    time.Duration

	CBRURL     string
	KeyRateTTL time.Duration

	AllowedOrigins []string

	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	SenderEmail    string
	DigestSchedule string

	AnthropicAPIKey string
	AnthropicModel  string

	SpendingGrowth   float64
	AnomalyThreshold float64
	InsightLimit     int
	DefaultReturn    float64
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		DBConn:          getEnv("DB_CONN", "host=localhost port=5436 user=test password=test dbname=finance sslmode=disable"),
		LogLevel:        getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:       getEnv("JWT_SECRET", "secret"),
		CBRURL:          getEnv("CBR_URL", "https://www.cbr.ru/DailyInfoWebServ/DailyInfo.asmx"),
		AllowedOrigins:  getEnvList("ALLOWED_ORIGINS", []string{"*"}),
		SMTPHost:        getEnv("SMTP_HOST", "localhost"),
		SMTPPort:        getEnv("SMTP_PORT", "587"),
		SMTPUsername:    getEnv("SMTP_USERNAME", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		SenderEmail:     getEnv("SENDER_EMAIL", "noreply@finance-assistant.local"),
		DigestSchedule:  getEnv("DIGEST_SCHEDULE", "0 8 * * MON"),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  getEnv("ANTHROPIC_MODEL", "claude-3-5-haiku-latest"),
	}

	var err error
	if cfg.JWTTTL, err = getEnvDuration("JWT_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.KeyRateTTL, err = getEnvDuration("KEY_RATE_TTL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.SpendingGrowth, err = getEnvFloat("SPENDING_GROWTH_MULTIPLIER", 1.02); err != nil {
		return nil, err
	}
	if cfg.AnomalyThreshold, err = getEnvFloat("ANOMALY_Z_THRESHOLD", 2.0); err != nil {
		return nil, err
	}
	if cfg.InsightLimit, err = getEnvInt("INSIGHT_LIMIT", 5); err != nil {
		return nil, err
	}
	if cfg.DefaultReturn, err = getEnvFloat("DEFAULT_RETURN_RATE", 0.07); err != nil {
		return nil, err
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.SpendingGrowth <= 0 {
		return nil, fmt.Errorf("SPENDING_GROWTH_MULTIPLIER must be positive")
	}
	if cfg.InsightLimit <= 0 {
		return nil, fmt.Errorf("INSIGHT_LIMIT must be positive")
	}
	if cfg.DefaultReturn < 0 {
		return nil, fmt.Errorf("DEFAULT_RETURN_RATE must not be negative")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvList(key string, defaultVal []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvFloat(key string, defaultVal float64) (float64, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultVal, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getEnvInt(key string, defaultVal int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
