package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// clearEnv 将所有相关环境变量置空，避免宿主环境干扰。
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "CORS_ALLOWED_ORIGINS", "STORAGE_DRIVER", "MONGO_URI", "MONGO_DATABASE",
		"MONGO_COLLECTION", "DATABASE_URL", "DATABASE_SECRET_PARAM", "SQLITE_PATH", "MOOD_FILE",
		"DYNAMODB_TABLE", "LOG_LEVEL", "LOG_FORMAT", "CHAT_REPLY_DELAY", "JOURNAL_ANALYSIS_DELAY",
		"EMOTION_SAMPLE_INTERVAL", "BANNER_TTL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":5001", cfg.Server.Addr)
	require.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	require.Equal(t, "memory", cfg.Storage.Driver)
	require.Equal(t, "moodmate", cfg.Storage.MongoDatabase)
	require.Equal(t, "moodentries", cfg.Storage.MongoCollection)
	require.Equal(t, "data/moodmate.db", cfg.Storage.SQLitePath)
	require.Equal(t, "data/mood_entries.json", cfg.Storage.FilePath)
	require.Equal(t, LogConfig{Level: "info", Format: "json"}, cfg.Log)
	require.Equal(t, TimingConfig{
		ChatReplyDelay:        time.Second,
		JournalAnalysisDelay:  1500 * time.Millisecond,
		EmotionSampleInterval: 2 * time.Second,
		BannerTTL:             5 * time.Second,
	}, cfg.Timing)
}

func TestLoadServerConfig(t *testing.T) {
	tests := []struct {
		port    string
		want    string
		wantErr bool
	}{
		{port: "8080", want: ":8080"},
		{port: ":9000", want: ":9000"},
		{port: "127.0.0.1:9000", want: "127.0.0.1:9000"},
		{port: "80 80", wantErr: true},
		{port: "http", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.port, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("PORT", tt.port)
			got, err := loadServerConfig()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got.Addr)
		})
	}
}

func TestCORSOrigins(t *testing.T) {
	clearEnv(t)
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example, ,http://b.example")

	got, err := loadServerConfig()
	require.NoError(t, err)
	require.Equal(t, []string{"http://a.example", "http://b.example"}, got.AllowedOrigins)
}

func TestStorageDriverSelection(t *testing.T) {
	t.Run("mongo uri implies mongo", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("MONGO_URI", "mongodb://localhost:27017")
		cfg, err := loadStorageConfig()
		require.NoError(t, err)
		require.Equal(t, "mongo", cfg.Driver)
	})

	t.Run("explicit driver wins", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("MONGO_URI", "mongodb://localhost:27017")
		t.Setenv("STORAGE_DRIVER", "SQLite")
		cfg, err := loadStorageConfig()
		require.NoError(t, err)
		require.Equal(t, "sqlite", cfg.Driver)
	})

	t.Run("unknown driver", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STORAGE_DRIVER", "redis")
		_, err := loadStorageConfig()
		require.ErrorContains(t, err, "STORAGE_DRIVER")
	})

	t.Run("dynamodb requires table", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STORAGE_DRIVER", "dynamodb")
		_, err := loadStorageConfig()
		require.ErrorContains(t, err, "DYNAMODB_TABLE")

		t.Setenv("DYNAMODB_TABLE", "moods")
		cfg, err := loadStorageConfig()
		require.NoError(t, err)
		require.Equal(t, "moods", cfg.DynamoDBTable)
	})
}

func TestParseDurationEnv(t *testing.T) {
	tests := []struct {
		raw     string
		want    time.Duration
		wantErr bool
	}{
		{raw: "", want: time.Second},
		{raw: "250", want: 250 * time.Millisecond},
		{raw: "0", want: 0},
		{raw: "1.5s", want: 1500 * time.Millisecond},
		{raw: "-1s", wantErr: true},
		{raw: "-5", wantErr: true},
		{raw: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.raw)
			got, err := parseDurationEnv("TEST_DURATION", time.Second)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestEmotionIntervalMustBePositive(t *testing.T) {
	clearEnv(t)
	t.Setenv("EMOTION_SAMPLE_INTERVAL", "0")
	_, err := Load()
	require.ErrorContains(t, err, "EMOTION_SAMPLE_INTERVAL")
}
