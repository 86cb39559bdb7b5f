package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"project-gallery-backend/internal/config"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"DATABASE_URL", "DATABASE_NAME", "ASSET_PROVIDER", "ASSET_FOLDER",
		"CLOUDINARY_CLOUD_NAME", "CLOUDINARY_API_KEY", "CLOUDINARY_API_SECRET",
		"SUPABASE_URL", "SUPABASE_SERVICE_KEY", "SUPABASE_STORAGE_BUCKET",
		"PORT", "STATIC_DIR", "ENVIRONMENT", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "mongodb://localhost:27017/portfolio")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, config.AssetProviderCloudinary, cfg.AssetProvider)
	assert.Equal(t, "portfolio", cfg.AssetFolder)
	assert.Equal(t, "public", cfg.StaticDir)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_PortOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "mongodb://localhost:27017/portfolio")
	t.Setenv("PORT", "8081")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "8081", cfg.Port)
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	clearEnv(t)

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL is required")
}

func TestValidate_AssetProvider(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantErr string
	}{
		{
			name: "cloudinary needs nothing extra",
			cfg:  config.Config{DatabaseURL: "mongodb://db", AssetProvider: "cloudinary"},
		},
		{
			name:    "supabase without url",
			cfg:     config.Config{DatabaseURL: "mongodb://db", AssetProvider: "supabase", SupabaseServiceKey: "key"},
			wantErr: "SUPABASE_URL is required",
		},
		{
			name:    "supabase without key",
			cfg:     config.Config{DatabaseURL: "mongodb://db", AssetProvider: "supabase", SupabaseURL: "https://x.supabase.co"},
			wantErr: "SUPABASE_SERVICE_KEY is required",
		},
		{
			name: "supabase complete",
			cfg: config.Config{
				DatabaseURL:        "mongodb://db",
				AssetProvider:      "supabase",
				SupabaseURL:        "https://x.supabase.co",
				SupabaseServiceKey: "key",
			},
		},
		{
			name:    "unknown provider",
			cfg:     config.Config{DatabaseURL: "mongodb://db", AssetProvider: "s3"},
			wantErr: "unknown ASSET_PROVIDER",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
