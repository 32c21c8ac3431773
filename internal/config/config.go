package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/Karthikraja2345/ksmatri/internal/logger"
)

type Config struct {
	AppPort    string
	CORSOrigin string

	MongoURI      string
	MongoDatabase string

	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	// AuthVerifier selects which configured verifier handles bearer
	// tokens: "oidc" or "hmac".
	AuthVerifier string

	OIDCIssuer   string
	OIDCAudience string

	HMACSecret string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, relying on system env vars", nil)
	}

	return Config{
		AppPort:    getEnv("APP_PORT", "3000"),
		CORSOrigin: getEnv("CORS_ORIGIN", "http://127.0.0.1:5501"),

		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DB", "ksmatri"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		CacheTTL:      getEnvDuration("CACHE_TTL", 5*time.Minute),

		AuthVerifier: getEnv("AUTH_VERIFIER", "oidc"),

		OIDCIssuer:   os.Getenv("OIDC_ISSUER"),
		OIDCAudience: os.Getenv("OIDC_AUDIENCE"),

		HMACSecret: os.Getenv("HMAC_SECRET"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
