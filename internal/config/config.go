package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Log     LogConfig
	Timing  TimingConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	storage, err := loadStorageConfig()
	if err != nil {
		return nil, err
	}

	timing, err := loadTimingConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:  server,
		Storage: storage,
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
		},
		Timing: timing,
	}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
}

// loadServerConfig 解析服务器监听地址与跨域来源。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "5001"
	}

	cfg := ServerConfig{AllowedOrigins: splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*"))}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":5001" 或 "127.0.0.1:5001"。
		cfg.Addr = port
		return cfg, nil
	}

	if _, err := strconv.Atoi(port); err != nil {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	cfg.Addr = ":" + port
	return cfg, nil
}

// StorageConfig 描述心情记录的存储后端。
type StorageConfig struct {
	Driver          string
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
	DatabaseURL     string
	// DatabaseSecretParam 为 SSM 参数名，设置后其值覆盖 DatabaseURL 或 MongoURI。
	DatabaseSecretParam string
	SQLitePath          string
	FilePath            string
	DynamoDBTable       string
}

var supportedDrivers = map[string]bool{
	"memory":   true,
	"file":     true,
	"postgres": true,
	"sqlite":   true,
	"mongo":    true,
	"dynamodb": true,
}

func loadStorageConfig() (StorageConfig, error) {
	cfg := StorageConfig{
		MongoURI:            strings.TrimSpace(os.Getenv("MONGO_URI")),
		MongoDatabase:       getEnvOrDefault("MONGO_DATABASE", "moodmate"),
		MongoCollection:     getEnvOrDefault("MONGO_COLLECTION", "moodentries"),
		DatabaseURL:         strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DatabaseSecretParam: strings.TrimSpace(os.Getenv("DATABASE_SECRET_PARAM")),
		SQLitePath:          getEnvOrDefault("SQLITE_PATH", "data/moodmate.db"),
		FilePath:            getEnvOrDefault("MOOD_FILE", "data/mood_entries.json"),
		DynamoDBTable:       strings.TrimSpace(os.Getenv("DYNAMODB_TABLE")),
	}

	driver := strings.ToLower(strings.TrimSpace(os.Getenv("STORAGE_DRIVER")))
	if driver == "" {
		// 配置了 MONGO_URI 时默认使用 MongoDB。
		if cfg.MongoURI != "" {
			driver = "mongo"
		} else {
			driver = "memory"
		}
	}
	if !supportedDrivers[driver] {
		return StorageConfig{}, fmt.Errorf("invalid STORAGE_DRIVER value: %q", driver)
	}
	cfg.Driver = driver

	if driver == "dynamodb" && cfg.DynamoDBTable == "" {
		return StorageConfig{}, fmt.Errorf("DYNAMODB_TABLE is required when STORAGE_DRIVER=dynamodb")
	}
	return cfg, nil
}

// LogConfig 描述日志输出。
type LogConfig struct {
	Level  string
	Format string
}

// TimingConfig 描述模拟延迟与采样周期。
type TimingConfig struct {
	ChatReplyDelay        time.Duration
	JournalAnalysisDelay  time.Duration
	EmotionSampleInterval time.Duration
	BannerTTL             time.Duration
}

func loadTimingConfig() (TimingConfig, error) {
	replyDelay, err := parseDurationEnv("CHAT_REPLY_DELAY", time.Second)
	if err != nil {
		return TimingConfig{}, err
	}

	analysisDelay, err := parseDurationEnv("JOURNAL_ANALYSIS_DELAY", 1500*time.Millisecond)
	if err != nil {
		return TimingConfig{}, err
	}

	interval, err := parseDurationEnv("EMOTION_SAMPLE_INTERVAL", 2*time.Second)
	if err != nil {
		return TimingConfig{}, err
	}
	if interval <= 0 {
		return TimingConfig{}, fmt.Errorf("EMOTION_SAMPLE_INTERVAL must be positive, got %s", interval)
	}

	bannerTTL, err := parseDurationEnv("BANNER_TTL", 5*time.Second)
	if err != nil {
		return TimingConfig{}, err
	}

	return TimingConfig{
		ChatReplyDelay:        replyDelay,
		JournalAnalysisDelay:  analysisDelay,
		EmotionSampleInterval: interval,
		BannerTTL:             bannerTTL,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

// parseDurationEnv 接受 Go duration（如 "1.5s"）或纯数字毫秒。负值视为错误。
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	if ms, err := parseOptionalIntEnv(key); err == nil && ms != nil {
		if *ms < 0 {
			return 0, fmt.Errorf("invalid %s value %q: must not be negative", key, raw)
		}
		return time.Duration(*ms) * time.Millisecond, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	if val < 0 {
		return 0, fmt.Errorf("invalid %s value %q: must not be negative", key, raw)
	}
	return val, nil
}
