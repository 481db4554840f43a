package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultDailyGoals ใช้เมื่อไม่ได้ตั้ง DAILY_GOALS
var DefaultDailyGoals = []string{"Exercise", "Read 20 pages", "Drink water"}

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	NATS     NATSConfig  // task event stream (optional)
	Redis    RedisConfig // cache ของ GetTask (optional)
	Log      LogConfig
	Seed     SeedConfig
}

type AppConfig struct {
	Name        string
	Port        string
	Env         string
	CORSOrigins string // comma-separated, ว่าง = "*"
}

type DatabaseConfig struct {
	Driver     string // sqlite, postgres
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SSLMode    string
	SQLitePath string // tasks.db
}

// NATSConfig configuration สำหรับ NATS JetStream
type NATSConfig struct {
	URL           string // nats://localhost:4222, ว่าง = ปิด
	Stream        string // TASK_EVENTS
	SubjectPrefix string // tasks
}

// RedisConfig สำหรับ cache task lookups
type RedisConfig struct {
	URL      string // redis://localhost:6379, ว่าง = ปิด
	Password string
	DB       int
	TaskTTL  time.Duration
}

type LogConfig struct {
	Level      string // debug, info, warn, error
	Format     string // json, text
	Output     string // stdout, file, both
	FilePath   string // logs/app.log
	MaxSize    int    // MB
	MaxBackups int    // จำนวน backup files
	MaxAge     int    // วัน
	Compress   bool   // บีบอัด backup
}

// SeedConfig daily goals เริ่มต้นของแต่ละวัน
type SeedConfig struct {
	DailyGoals []string
	ReseedCron string // เช่น "5 0 * * *", ว่าง = seed ตอน startup อย่างเดียว
}

func LoadConfig() (*Config, error) {
	// ไม่ error ถ้าไม่มี .env file (ใช้ environment variables แทน)
	_ = godotenv.Load()

	logMaxSize, _ := strconv.Atoi(getEnv("LOG_MAX_SIZE", "100"))
	logMaxBackups, _ := strconv.Atoi(getEnv("LOG_MAX_BACKUPS", "5"))
	logMaxAge, _ := strconv.Atoi(getEnv("LOG_MAX_AGE", "30"))
	logCompress := getEnv("LOG_COMPRESS", "true") == "true"

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	taskTTL, err := time.ParseDuration(getEnv("REDIS_TASK_TTL", "5m"))
	if err != nil {
		taskTTL = 5 * time.Minute
	}

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Task Tracker"),
			Port:        getEnv("APP_PORT", "8080"),
			Env:         getEnv("APP_ENV", "development"),
			CORSOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Driver:     strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "5432"),
			User:       getEnv("DB_USER", "postgres"),
			Password:   getEnv("DB_PASSWORD", ""),
			DBName:     getEnv("DB_NAME", "tasktracker"),
			SSLMode:    getEnv("DB_SSL_MODE", "disable"),
			SQLitePath: getEnv("DB_SQLITE_PATH", "tasks.db"),
		},
		NATS: NATSConfig{
			URL:           os.Getenv("NATS_URL"),
			Stream:        getEnv("NATS_STREAM", "TASK_EVENTS"),
			SubjectPrefix: getEnv("NATS_SUBJECT_PREFIX", "tasks"),
		},
		Redis: RedisConfig{
			URL:      os.Getenv("REDIS_URL"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
			TaskTTL:  taskTTL,
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			Output:     getEnv("LOG_OUTPUT", "stdout"),
			FilePath:   getEnv("LOG_FILE", "logs/app.log"),
			MaxSize:    logMaxSize,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAge,
			Compress:   logCompress,
		},
		Seed: SeedConfig{
			DailyGoals: parseList(os.Getenv("DAILY_GOALS"), DefaultDailyGoals),
			ReseedCron: getEnv("SEED_RESEED_CRON", ""),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// parseList แปลง comma-separated string เป็น slice
// เช่น "Exercise, Read" -> ["Exercise", "Read"]
func parseList(s string, fallback []string) []string {
	var items []string
	for _, p := range strings.Split(s, ",") {
		item := strings.TrimSpace(p)
		if item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return append([]string(nil), fallback...)
	}
	return items
}

// IsDevelopment ตรวจสอบว่าเป็น development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction ตรวจสอบว่าเป็น production mode
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
