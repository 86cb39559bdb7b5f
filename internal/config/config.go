package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	AssetProviderCloudinary = "cloudinary"
	AssetProviderSupabase   = "supabase"
)

type Config struct {
	// Database
	DatabaseURL  string
	DatabaseName string

	// Asset store
	AssetProvider string
	AssetFolder   string

	// Cloudinary
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	// Supabase
	SupabaseURL           string
	SupabaseServiceKey    string
	SupabaseStorageBucket string

	// Server
	Port        string
	StaticDir   string
	Environment string
	LogLevel    string
}

func Load() (*Config, error) {
	// A missing .env file is normal outside local development
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		DatabaseName: getEnv("DATABASE_NAME", "portfolio"),

		AssetProvider: strings.ToLower(getEnv("ASSET_PROVIDER", AssetProviderCloudinary)),
		AssetFolder:   getEnv("ASSET_FOLDER", "portfolio"),

		CloudinaryCloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),

		SupabaseURL:           getEnv("SUPABASE_URL", ""),
		SupabaseServiceKey:    getEnv("SUPABASE_SERVICE_KEY", ""),
		SupabaseStorageBucket: getEnv("SUPABASE_STORAGE_BUCKET", "project-images"),

		Port:        getEnv("PORT", "3000"),
		StaticDir:   getEnv("STATIC_DIR", "public"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	switch c.AssetProvider {
	case AssetProviderCloudinary:
	case AssetProviderSupabase:
		if c.SupabaseURL == "" {
			return fmt.Errorf("SUPABASE_URL is required when ASSET_PROVIDER is %q", AssetProviderSupabase)
		}
		if c.SupabaseServiceKey == "" {
			return fmt.Errorf("SUPABASE_SERVICE_KEY is required when ASSET_PROVIDER is %q", AssetProviderSupabase)
		}
	default:
		return fmt.Errorf("unknown ASSET_PROVIDER %q", c.AssetProvider)
	}
	return nil
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
