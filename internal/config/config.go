package config

import (
	"os"
	"strconv"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// StorageConfig selects where uploaded documents are kept.
// Driver is either "local" (an upload directory on disk) or "minio".
type StorageConfig struct {
	Driver   string
	LocalDir string
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// OpenAIConfig holds credentials and tuning for the analysis model API.
type OpenAIConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	MaxTokens  int
	TimeoutSec int
}

// StripeConfig holds payment gateway credentials.
// PaymentMethodConfig is the Stripe payment method configuration id attached
// to every created intent.
type StripeConfig struct {
	SecretKey           string
	PublishableKey      string
	BaseURL             string
	PaymentMethodConfig string
	TimeoutSec          int
}

// AnalysisConfig holds the fixed fee charged per document analysis.
// Amount is in minor currency units.
type AnalysisConfig struct {
	Amount   int64
	Currency string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost         string
	Port            string
	MaxUploadSizeMB int
	Database        DatabaseConfig
	Storage         StorageConfig
	MinIO           MinIOConfig
	OpenAI          OpenAIConfig
	Stripe          StripeConfig
	Analysis        AnalysisConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:         getEnv("APP_HOST", "localhost:8080"),
		Port:            getEnv("PORT", "8080"), // default only for non-sensitive value
		MaxUploadSizeMB: getEnvInt("MAX_UPLOAD_SIZE_MB", 20),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		Storage: StorageConfig{
			Driver:   getEnv("STORAGE_DRIVER", "local"),
			LocalDir: getEnv("UPLOAD_DIR", "./data/uploads"),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		OpenAI: OpenAIConfig{
			APIKey:     getEnv("OPENAI_API_KEY", ""),
			BaseURL:    getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:      getEnv("OPENAI_MODEL", "gpt-4o"),
			MaxTokens:  getEnvInt("OPENAI_MAX_TOKENS", 1500),
			TimeoutSec: getEnvInt("OPENAI_TIMEOUT_SEC", 60),
		},
		Stripe: StripeConfig{
			SecretKey:           getEnv("STRIPE_SECRET_KEY", ""),
			PublishableKey:      getEnv("STRIPE_PUBLISHABLE_KEY", ""),
			BaseURL:             getEnv("STRIPE_BASE_URL", "https://api.stripe.com/v1"),
			PaymentMethodConfig: getEnv("STRIPE_PAYMENT_METHOD_CONFIG", "pmc_1QbcRB00zr9oQIWafBW2LMWF"),
			TimeoutSec:          getEnvInt("STRIPE_TIMEOUT_SEC", 30),
		},
		Analysis: AnalysisConfig{
			Amount:   int64(getEnvInt("ANALYSIS_FEE_AMOUNT", 300)),
			Currency: getEnv("ANALYSIS_FEE_CURRENCY", "cny"),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
