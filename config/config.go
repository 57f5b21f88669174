package config

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	Port              string
	StoreDriver       string
	DatabaseDSN       string
	MongoURI          string
	DBName            string
	SQLMigrations     bool
	JWTSecret         string
	SessionTTL        time.Duration
	MinPasswordLength int
	PriceEngine       string
	PriceModelPath    string
	DefaultMarkup     float64
	RateLimitPerMin   int
	RedisURL          string
	TrustProxy        bool
	FrontendDir       string
	RedactErrors      bool
	SendGridAPIKey    string
	AWSRegion         string
	AWSBucketName     string
	GeminiAPIKey      string
)

// LoadConfig loads environment variables from .env file
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default values or system environment variables")
	}

	Port = getEnv("PORT", "10000")

	StoreDriver = getEnv("STORE_DRIVER", "sqlite")
	DatabaseDSN = getEnv("DATABASE_DSN", "closetly_users.db")
	MongoURI = getEnv("MONGO_URI", "mongodb://localhost:27017/")
	DBName = getEnv("DB_NAME", "closetly")
	SQLMigrations = getEnvAsBool("MIGRATIONS", false)

	JWTSecret = os.Getenv("JWT_SECRET")
	if JWTSecret == "" {
		// Tokens signed with a per-process key do not survive a restart.
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			log.Fatalf("Failed to generate JWT secret: %v", err)
		}
		JWTSecret = hex.EncodeToString(buf)
		log.Println("JWT_SECRET is not set, generated an ephemeral signing key")
	}
	SessionTTL = getEnvAsDuration("SESSION_TTL", 7*24*time.Hour)
	MinPasswordLength = getEnvAsInt("MIN_PASSWORD_LENGTH", 8)

	PriceEngine = getEnv("PRICE_ENGINE", "sampling")
	PriceModelPath = getEnv("PRICE_MODEL_PATH", "fashion_price_model.json")
	DefaultMarkup = getEnvAsFloat("PRICE_DEFAULT_MARKUP", 1.3)

	RateLimitPerMin = getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60)
	RedisURL = os.Getenv("REDIS_URL")
	TrustProxy = getEnvAsBool("TRUST_PROXY", false)

	FrontendDir = getEnv("FRONTEND_DIR", "static")
	RedactErrors = getEnvAsBool("REDACT_ERRORS", false)

	SendGridAPIKey = os.Getenv("SENDGRID_API_KEY")
	AWSRegion = os.Getenv("AWS_REGION")
	AWSBucketName = os.Getenv("AWS_BUCKET_NAME")
	GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		log.Printf("Invalid integer for %s=%q, using %d", key, value, defaultValue)
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Printf("Invalid number for %s=%q, using %v", key, value, defaultValue)
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s=%q, using %v", key, value, defaultValue)
	}
	return defaultValue
}
