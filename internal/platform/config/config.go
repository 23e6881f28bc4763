package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort string
	AppEnv  string

	JWTKey []byte
	JWTExp time.Duration

	BcryptCost int

	LoginRateLimit   int
	LoginRateWindow  time.Duration
	SignupRateLimit  int
	SignupRateWindow time.Duration

	CsrfTokenTTL time.Duration

	RateLimitMaxKeys       int
	RateLimitSweepInterval time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	SentryDSN string
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		APIPort: getEnv("API_PORT", "8080"),
		AppEnv:  getEnv("APP_ENV", "development"),

		JWTKey: []byte(getEnv("JWT_SECRET", "defaultsecret")),
		JWTExp: time.Duration(getEnvAsInt("JWT_EXPIRATION_HOURS", 168)) * time.Hour,

		BcryptCost: getEnvAsInt("BCRYPT_COST", 10),

		LoginRateLimit:   getEnvAsInt("LOGIN_RATE_LIMIT", 5),
		LoginRateWindow:  time.Duration(getEnvAsInt("LOGIN_RATE_WINDOW_SECONDS", 60)) * time.Second,
		SignupRateLimit:  getEnvAsInt("SIGNUP_RATE_LIMIT", 3),
		SignupRateWindow: time.Duration(getEnvAsInt("SIGNUP_RATE_WINDOW_SECONDS", 3600)) * time.Second,

		CsrfTokenTTL: time.Duration(getEnvAsInt("CSRF_TTL_HOURS", 24)) * time.Hour,

		RateLimitMaxKeys:       getEnvAsInt("RATE_LIMIT_MAX_KEYS", 5000),
		RateLimitSweepInterval: time.Duration(getEnvAsInt("RATE_LIMIT_SWEEP_MINUTES", 5)) * time.Minute,

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "user"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "coachup_db"),
		DBSslMode:  getEnv("DB_SSLMODE", "disable"),

		SentryDSN: getEnv("SENTRY_DSN", ""),
	}

	AppConfig.DBConnStr = "host=" + AppConfig.DBHost +
		" port=" + AppConfig.DBPort +
		" user=" + AppConfig.DBUser +
		" password=" + AppConfig.DBPassword +
		" dbname=" + AppConfig.DBName +
		" sslmode=" + AppConfig.DBSslMode
}

// IsProduction reports whether the app runs with production hardening
// (secure cookies, real Sentry environment).
func IsProduction() bool {
	return AppConfig != nil && AppConfig.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
