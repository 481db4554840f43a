package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"tasktracker/domain/models"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type DatabaseConfig struct {
	Driver     string // postgres, sqlite
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SSLMode    string
	SQLitePath string
	LogLevel   gormlogger.LogLevel
}

func NewDatabase(config DatabaseConfig) (*gorm.DB, error) {
	dialector, err := dialectorFor(config)
	if err != nil {
		return nil, err
	}

	logLevel := config.LogLevel
	if logLevel == 0 {
		logLevel = gormlogger.Warn
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite เขียนได้ทีละ connection
	if config.Driver == DriverSQLite || config.Driver == "" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

func dialectorFor(config DatabaseConfig) (gorm.Dialector, error) {
	switch config.Driver {
	case DriverPostgres:
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			config.Host, config.User, config.Password, config.DBName, config.Port, config.SSLMode)
		return postgres.Open(dsn), nil

	case DriverSQLite, "":
		path := config.SQLitePath
		if path == "" {
			path = "tasks.db"
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
			}
		}
		registerSQLiteFunctions()
		// _txlock=immediate: transaction จอง write lock ตั้งแต่ BEGIN
		// check-then-insert ใน transaction เดียวกันจึงไม่ชนกันข้าม process
		return sqlite.Open(path + "?_pragma=busy_timeout(5000)&_txlock=immediate"), nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", config.Driver)
	}
}

// Migrate สร้าง/อัปเดต schema ถ้ายังไม่มี
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Task{},
	)
}

// Close ปิด connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
