package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBUrl      string
	JWTSecret  string
	ServerPort string
}

func Load() *Config {
	// Missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	return &Config{
		DBUrl:      getEnv("DATABASE_URL", "carstorage.db"),
		JWTSecret:  getEnv("JWT_SECRET", "devkey123"),
		ServerPort: getEnv("SERVER_PORT", "8080"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}
