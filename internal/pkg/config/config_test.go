package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverMongo, cfg.StorageDriver)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "yoga_booking", cfg.Mongo.Database)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 5*time.Second, cfg.Roster.LockTTL)
	assert.Equal(t, 5, cfg.Roster.MaxAttempts)
	assert.False(t, cfg.SeedData)
	assert.True(t, cfg.IsDevelopment())
}

func TestParse_Overrides(t *testing.T) {
	cfg, err := Parse(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":          "s3cret",
		"JWT_TTL":             "1h",
		"STORAGE_DRIVER":      "memory",
		"REDIS_ADDR":          "redis:6379",
		"ROSTER_MAX_ATTEMPTS": "9",
		"SEED_DATA":           "true",
		"ENV":                 "production",
	}))
	require.NoError(t, err)

	assert.Equal(t, time.Hour, cfg.JWT.TTL)
	assert.Equal(t, DriverMemory, cfg.StorageDriver)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 9, cfg.Roster.MaxAttempts)
	assert.True(t, cfg.SeedData)
	assert.False(t, cfg.IsDevelopment())
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{}},
		{"unknown driver", map[string]string{"JWT_SECRET": "x", "STORAGE_DRIVER": "sqlite"}},
		{"zero attempts", map[string]string{"JWT_SECRET": "x", "ROSTER_MAX_ATTEMPTS": "0"}},
		{"negative ttl", map[string]string{"JWT_SECRET": "x", "JWT_TTL": "-1m"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(context.Background(), envconfig.MapLookuper(tt.env))
			assert.Error(t, err)
		})
	}
}
