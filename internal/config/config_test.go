package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"valuation_service/internal/config"
)

func TestParseDefaults(t *testing.T) {
	rq := require.New(t)

	cfg, err := config.Parse()
	rq.NoError(err)

	rq.Equal(":8083", cfg.HTTP.ListenAddress)
	rq.Equal([]string{"http://localhost:3000", "http://localhost:3001"}, cfg.HTTP.AllowedOrigins)
	rq.Equal(1000, cfg.HTTP.MaxBatchSize)
	rq.Equal(":8084", cfg.Probe.ListenAddress)
	rq.Equal(":9090", cfg.Metrics.ListenAddress)
	rq.Equal(slog.LevelInfo, cfg.Log.Level)
	rq.Equal(config.CacheDriverMemory, cfg.Cache.Driver)
	rq.Equal(10*time.Minute, cfg.Cache.TTL)
}

func TestParse(t *testing.T) {
	testCases := []struct {
		name    string
		env     map[string]string
		wantErr bool
		check   func(rq *require.Assertions, cfg config.Config)
	}{
		{
			name: "Overrides",
			env: map[string]string{
				"HTTP_LISTEN_ADDRESS":  ":9000",
				"HTTP_ALLOWED_ORIGINS": "https://a.example,https://b.example",
				"HTTP_MAX_BATCH_SIZE":  "0",
				"LOG_LEVEL":            "debug",
				"CACHE_DRIVER":         "redis",
				"CACHE_TTL":            "30s",
				"REDIS_ADDRESS":        "redis:6379",
				"REDIS_DB":             "3",
			},
			check: func(rq *require.Assertions, cfg config.Config) {
				rq.Equal(":9000", cfg.HTTP.ListenAddress)
				rq.Equal([]string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
				rq.Equal(0, cfg.HTTP.MaxBatchSize)
				rq.Equal(slog.LevelDebug, cfg.Log.Level)
				rq.Equal(config.CacheDriverRedis, cfg.Cache.Driver)
				rq.Equal(30*time.Second, cfg.Cache.TTL)
				rq.Equal("redis:6379", cfg.Redis.Address)
				rq.Equal(3, cfg.Redis.DatabaseNumber)
			},
		},
		{
			name:    "Unknown cache driver",
			env:     map[string]string{"CACHE_DRIVER": "memcached"},
			wantErr: true,
		},
		{
			name:    "Negative batch size",
			env:     map[string]string{"HTTP_MAX_BATCH_SIZE": "-1"},
			wantErr: true,
		},
		{
			name:    "Malformed duration",
			env:     map[string]string{"CACHE_TTL": "soon"},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			cfg, err := config.Parse()
			if tc.wantErr {
				rq.Error(err)
				return
			}

			rq.NoError(err)
			tc.check(rq, cfg)
		})
	}
}
