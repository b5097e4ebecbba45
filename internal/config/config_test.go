package config

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/models"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"7d", 7 * 24 * time.Hour},
		{"12h", 12 * time.Hour},
		{"90m", 90 * time.Minute},
		{"3600", time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDuration(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseDuration("xd")
	require.Error(t, err)
	assert.Equal(t, `invalid duration "xd"`, err.Error())
	// errors.Errorf adjunta la pila en el punto de creación
	_, withStack := err.(interface{ StackTrace() errors.StackTrace })
	assert.True(t, withStack)
}

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")

	cfg := FromEnv()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreMongo, cfg.StoreDriver)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTExpiresIn)
	assert.Equal(t, "s3cret", cfg.SessionSecret)
	assert.Equal(t, models.DeleteRestrict, cfg.CategoryDeletePolicy)
	assert.NoError(t, cfg.Validate())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("JWT_EXPIRES_IN", "1d")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("ADMIN_EMAIL", " Admin@Example.com ")
	t.Setenv("ADMIN_PASSWORD", "changeme")
	t.Setenv("CATEGORY_DELETE_POLICY", "cascade")

	cfg := FromEnv()

	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiresIn)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, "admin@example.com", cfg.AdminEmail)
	assert.Equal(t, models.DeleteCascade, cfg.CategoryDeletePolicy)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			JWTSecret:            "x",
			JWTExpiresIn:         time.Hour,
			StoreDriver:          StoreMemory,
			CategoryDeletePolicy: models.DeleteRestrict,
		}
	}

	cfg := base()
	cfg.JWTSecret = ""
	assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET")

	cfg = base()
	cfg.StoreDriver = StoreMongo
	assert.ErrorContains(t, cfg.Validate(), "MONGO_URI")

	cfg = base()
	cfg.CategoryDeletePolicy = "nullify"
	assert.ErrorContains(t, cfg.Validate(), "CATEGORY_DELETE_POLICY")

	cfg = base()
	cfg.AdminEmail = "a@b.co"
	assert.ErrorContains(t, cfg.Validate(), "ADMIN_PASSWORD")
}
