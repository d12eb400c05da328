package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting. It is built once at startup and passed
// by value to the components that need it.
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	ServerPort string

	JWTSecret  string
	JWTExpires time.Duration

	BcryptRounds int

	// CoachLimit caps coach-type users per team, confirmed members and
	// pending requesters combined.
	CoachLimit int

	// DiscordLinkRequired gates join requests on a linked Discord account.
	DiscordLinkRequired bool
}

func LoadConfig() (Config, error) {

	err := godotenv.Load()

	return Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "arena"),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		JWTSecret:  getEnv("JWT_SECRET", "LongRandomKey"),
		JWTExpires: getDurationEnv("JWT_EXPIRES", 365*24*time.Hour),

		BcryptRounds: getIntEnv("BCRYPT_ROUNDS", 10),

		CoachLimit: getIntEnv("COACH_LIMIT", 2),

		DiscordLinkRequired: getEnv("DISCORD_LINK_REQUIRED", "true") == "true",
	}, err
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
