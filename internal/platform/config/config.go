package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Object storage (receipt files)
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MinioBucket    string

	// Rate limiting, e.g. "100-M" for 100 requests per minute
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "8h")
	viper.SetDefault("JWT_ISSUER", "travel-expense-api")
	viper.SetDefault("MINIO_ENDPOINT", "localhost:9000")
	viper.SetDefault("MINIO_ACCESS_KEY", "minioadmin")
	viper.SetDefault("MINIO_SECRET_KEY", "minioadmin")
	viper.SetDefault("MINIO_USE_SSL", false)
	viper.SetDefault("MINIO_BUCKET_NAME", "travel-expenses")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	jwtExpiry, err := time.ParseDuration(viper.GetString("JWT_EXPIRY_DURATION"))
	if err != nil {
		jwtExpiry = 8 * time.Hour
	}

	return &Config{
		DatabaseURL:       viper.GetString("PGSQL_URL"),
		Port:              viper.GetString("PORT"),
		IsProduction:      viper.GetBool("IS_PRODUCTION"),
		JWTSecret:         viper.GetString("JWT_SECRET"),
		JWTExpiryDuration: jwtExpiry,
		JWTIssuer:         viper.GetString("JWT_ISSUER"),
		MinioEndpoint:     viper.GetString("MINIO_ENDPOINT"),
		MinioAccessKey:    viper.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey:    viper.GetString("MINIO_SECRET_KEY"),
		MinioUseSSL:       viper.GetBool("MINIO_USE_SSL"),
		MinioBucket:       viper.GetString("MINIO_BUCKET_NAME"),
		RateLimit:         viper.GetString("RATE_LIMIT"),
	}, nil
}
