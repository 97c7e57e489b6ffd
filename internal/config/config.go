package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWTSecret string
	TokenTTL  time.Duration
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	URI  string
	Name string
}

func Load() *Config {
	// .env is optional, the environment may already be populated
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("No .env file loaded: %s", err)
	}

	serverPort, _ := strconv.Atoi(getEnv("SERVER_PORT", "8080"))

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		log.Fatalf("Invalid TOKEN_TTL: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port: serverPort,
		},
		Database: DatabaseConfig{
			URI:  getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Name: getEnv("DB_NAME", "shopdb"),
		},
		// no default: the server must not start with a guessable secret
		JWTSecret: getEnv("JWT_SECRET", ""),
		TokenTTL:  ttl,
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
