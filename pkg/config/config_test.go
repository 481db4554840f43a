package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseList(t *testing.T) {
	fallback := []string{"a", "b"}

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty uses fallback", "", []string{"a", "b"}},
		{"only separators uses fallback", " , ,", []string{"a", "b"}},
		{"trims entries", " Exercise ,Read ", []string{"Exercise", "Read"}},
		{"drops empty entries", "Exercise,,Read,", []string{"Exercise", "Read"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseList(tt.in, fallback))
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"DB_DRIVER", "DB_SQLITE_PATH", "NATS_URL", "REDIS_URL", "REDIS_TASK_TTL", "DAILY_GOALS", "SEED_RESEED_CRON"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "tasks.db", cfg.Database.SQLitePath)
	assert.Empty(t, cfg.NATS.URL)
	assert.Equal(t, "TASK_EVENTS", cfg.NATS.Stream)
	assert.Empty(t, cfg.Redis.URL)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TaskTTL)
	assert.Equal(t, DefaultDailyGoals, cfg.Seed.DailyGoals)
	assert.Empty(t, cfg.Seed.ReseedCron)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("REDIS_URL", "redis://cache:6379/1")
	t.Setenv("REDIS_TASK_TTL", "90s")
	t.Setenv("DAILY_GOALS", "Meditate, Journal")
	t.Setenv("SEED_RESEED_CRON", "5 0 * * *")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "redis://cache:6379/1", cfg.Redis.URL)
	assert.Equal(t, 90*time.Second, cfg.Redis.TaskTTL)
	assert.Equal(t, []string{"Meditate", "Journal"}, cfg.Seed.DailyGoals)
	assert.Equal(t, "5 0 * * *", cfg.Seed.ReseedCron)
}

func TestConfig_Environment(t *testing.T) {
	tests := []struct {
		env         string
		development bool
		production  bool
	}{
		{"development", true, false},
		{"production", false, true},
		{"staging", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := &Config{App: AppConfig{Env: tt.env}}
			assert.Equal(t, tt.development, cfg.IsDevelopment())
			assert.Equal(t, tt.production, cfg.IsProduction())
		})
	}
}
