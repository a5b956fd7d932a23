package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTP_ADDR      string
	DATA_DIR       string
	LOGS_DIR       string
	LOG_LEVEL      string
	JWT_SECRET     string
	KAFKA_ADDRESS  string
	ALERT_URL      string
	ALERT_USER     string
	ALERT_PASSWORD string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		HTTP_ADDR:      getenvDefault("HTTP_ADDR", ":8080"),
		DATA_DIR:       getenvDefault("DATA_DIR", "data"),
		LOGS_DIR:       getenvDefault("LOGS_DIR", "logs"),
		LOG_LEVEL:      getenvDefault("LOG_LEVEL", "info"),
		JWT_SECRET:     getenvDefault("JWT_SECRET", "dev-secret"),
		KAFKA_ADDRESS:  os.Getenv("KAFKA_ADDRESS"),
		ALERT_URL:      os.Getenv("ALERT_URL"),
		ALERT_USER:     os.Getenv("ALERT_USER"),
		ALERT_PASSWORD: os.Getenv("ALERT_PASSWORD"),
	}

	return config, nil
}

// KafkaBrokers splits KAFKA_ADDRESS into broker addresses. Empty means the
// event producer stays disabled.
func (c *Config) KafkaBrokers() []string {
	if c.KAFKA_ADDRESS == "" {
		return nil
	}
	return strings.Split(c.KAFKA_ADDRESS, ",")
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
