package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Port       int
	DBDriver   string
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	RedisHost  string
	RedisPort  int

	JWTSecret            string
	AccessTokenLifetime  time.Duration
	RefreshTokenLifetime time.Duration

	RateLimitMax    int
	RateLimitWindow time.Duration

	LogDir     string
	BcryptCost int
}

// UseRedis bernilai true jika REDIS_HOST diisi.
func (c Config) UseRedis() bool {
	return c.RedisHost != ""
}

func LoadConfig() Config {
	// Muat file .env
	if err := godotenv.Load(); err != nil {
		// Hanya log jika tidak dalam mode test
		if os.Getenv("GO_ENV") != "test" {
			log.Println("No .env file found, using default values")
		}
	}

	return Config{
		Port:       intEnv("PORT", 3004),
		DBDriver:   stringEnv("DB_DRIVER", "postgres"),
		DBHost:     stringEnv("DB_HOST", "localhost"),
		DBPort:     intEnv("DB_PORT", 5432),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     stringEnv("DB_NAME", "todo_calendar"),
		RedisHost:  os.Getenv("REDIS_HOST"),
		RedisPort:  intEnv("REDIS_PORT", 6379),

		JWTSecret:            stringEnv("JWT_SECRET", "secret"),
		AccessTokenLifetime:  durationEnv("ACCESS_TOKEN_LIFETIME", 5*time.Minute),
		RefreshTokenLifetime: durationEnv("REFRESH_TOKEN_LIFETIME", 24*time.Hour),

		RateLimitMax:    intEnv("RATE_LIMIT_MAX", 100),
		RateLimitWindow: durationEnv("RATE_LIMIT_WINDOW", time.Minute),

		LogDir:     stringEnv("LOG_DIR", "logs"),
		BcryptCost: intEnv("BCRYPT_COST", bcrypt.DefaultCost),
	}
}

func stringEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
