package di

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"tasktracker/application/serviceimpl"
	"tasktracker/domain/models"
	"tasktracker/domain/ports"
	"tasktracker/domain/repositories"
	"tasktracker/domain/services"
	"tasktracker/infrastructure/database"
	"tasktracker/infrastructure/messaging"
	natspkg "tasktracker/infrastructure/nats"
	redispkg "tasktracker/infrastructure/redis"
	"tasktracker/interfaces/api/handlers"
	"tasktracker/pkg/config"
	"tasktracker/pkg/logger"
	"tasktracker/pkg/scheduler"
)

const reseedJobID = "reseed-daily-goals"

type Container struct {
	// Configuration
	Config *config.Config

	// Infrastructure
	DB           *gorm.DB
	RedisClient  *redispkg.Client // optional
	NATSClient   *natspkg.Client  // optional
	JobScheduler scheduler.JobScheduler

	// Ports
	TaskCache      ports.TaskCache // nil ถ้าไม่มี Redis
	EventPublisher ports.TaskEventPublisher

	// Repositories
	TaskRepository repositories.TaskRepository

	// Services
	TaskService services.TaskService
}

func NewContainer() *Container {
	return &Container{}
}

// Initialize เตรียมทุกอย่างที่ API server ต้องใช้
func (c *Container) Initialize() error {
	if err := c.InitCore(); err != nil {
		return err
	}

	if err := c.seedToday(); err != nil {
		return err
	}

	return c.initScheduler()
}

// InitCore config, logger, database, integrations และ service (ไม่มี seed/scheduler)
func (c *Container) InitCore() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initLogger(); err != nil {
		return err
	}

	if err := c.initDatabase(); err != nil {
		return err
	}

	c.initCache()
	c.initMessaging()

	c.initRepositories()
	c.initServices()
	return nil
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

func (c *Container) initLogger() error {
	logConfig := logger.Config{
		Level:      c.Config.Log.Level,
		Format:     c.Config.Log.Format,
		Output:     c.Config.Log.Output,
		FilePath:   c.Config.Log.FilePath,
		MaxSize:    c.Config.Log.MaxSize,
		MaxBackups: c.Config.Log.MaxBackups,
		MaxAge:     c.Config.Log.MaxAge,
		Compress:   c.Config.Log.Compress,
	}

	if err := logger.Init(logConfig); err != nil {
		return err
	}

	logger.Info("Logger initialized",
		"level", c.Config.Log.Level,
		"format", c.Config.Log.Format,
		"output", c.Config.Log.Output,
	)
	return nil
}

func (c *Container) initDatabase() error {
	dbLogLevel := gormlogger.Warn
	if c.Config.Log.Level == "debug" {
		dbLogLevel = gormlogger.Info
	}

	db, err := database.NewDatabase(database.DatabaseConfig{
		Driver:     c.Config.Database.Driver,
		Host:       c.Config.Database.Host,
		Port:       c.Config.Database.Port,
		User:       c.Config.Database.User,
		Password:   c.Config.Database.Password,
		DBName:     c.Config.Database.DBName,
		SSLMode:    c.Config.Database.SSLMode,
		SQLitePath: c.Config.Database.SQLitePath,
		LogLevel:   dbLogLevel,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db
	logger.Info("Database connected", "driver", c.Config.Database.Driver)

	if err := database.Migrate(c.DB); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Info("Database migrated")
	return nil
}

// initCache Redis เป็น optional: ต่อไม่ได้ก็ทำงานต่อโดยไม่มี cache
func (c *Container) initCache() {
	if c.Config.Redis.URL == "" {
		logger.Info("Redis not configured, task cache disabled")
		return
	}

	client, err := redispkg.NewClient(&c.Config.Redis)
	if err != nil {
		logger.Warn("Redis unavailable, task cache disabled", "error", err)
		return
	}

	c.RedisClient = client
	c.TaskCache = redispkg.NewTaskCache(client, c.Config.Redis.TaskTTL)
	logger.Info("Task cache enabled", "ttl", c.Config.Redis.TaskTTL.String())
}

// initMessaging NATS เป็น optional: ไม่มีก็ใช้ noop publisher
func (c *Container) initMessaging() {
	c.EventPublisher = messaging.NewNoopTaskEventPublisher()

	if c.Config.NATS.URL == "" {
		logger.Info("NATS not configured, task events disabled")
		return
	}

	client, err := natspkg.NewClient(natspkg.ClientConfig{
		URL:           c.Config.NATS.URL,
		StreamName:    c.Config.NATS.Stream,
		SubjectPrefix: c.Config.NATS.SubjectPrefix,
	})
	if err != nil {
		logger.Warn("NATS unavailable, task events disabled", "error", err)
		return
	}

	c.NATSClient = client
	c.EventPublisher = messaging.NewNATSTaskEventPublisher(client)
	logger.Info("Task events enabled", "stream", c.Config.NATS.Stream)
}

func (c *Container) initRepositories() {
	c.TaskRepository = database.NewTaskRepository(c.DB)
}

func (c *Container) initServices() {
	if c.TaskCache != nil {
		c.TaskService = serviceimpl.NewTaskServiceWithCache(
			c.TaskRepository,
			c.EventPublisher,
			c.TaskCache,
			c.Config.Seed.DailyGoals,
		)
	} else {
		c.TaskService = serviceimpl.NewTaskService(
			c.TaskRepository,
			c.EventPublisher,
			c.Config.Seed.DailyGoals,
		)
	}
	logger.Info("Services initialized", "daily_goals", len(c.Config.Seed.DailyGoals))
}

func (c *Container) seedToday() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := c.SeedDailyGoals(ctx, c.TaskService.Today()); err != nil {
		return fmt.Errorf("failed to seed daily goals: %w", err)
	}
	return nil
}

// SeedDailyGoals seed daily goals ของวันที่กำหนด
func (c *Container) SeedDailyGoals(ctx context.Context, date models.Date) (int, error) {
	return c.TaskService.SeedDailyGoals(ctx, date)
}

func (c *Container) initScheduler() error {
	c.JobScheduler = scheduler.NewJobScheduler(time.Local)

	cronExpr := c.Config.Seed.ReseedCron
	if cronExpr == "" {
		return nil
	}

	if err := scheduler.ValidateCronExpression(cronExpr); err != nil {
		return err
	}

	err := c.JobScheduler.AddJob(reseedJobID, cronExpr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if _, err := c.TaskService.SeedDailyGoals(ctx, c.TaskService.Today()); err != nil {
			logger.Error("Scheduled daily goal seeding failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	c.JobScheduler.Start()
	return nil
}

func (c *Container) Cleanup() error {
	logger.Info("Starting cleanup...")

	if c.JobScheduler != nil && c.JobScheduler.IsRunning() {
		c.JobScheduler.Stop()
	}

	if c.NATSClient != nil {
		if err := c.NATSClient.Close(); err != nil {
			logger.Warn("Failed to close NATS connection", "error", err)
		} else {
			logger.Info("NATS connection closed")
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Warn("Failed to close Redis connection", "error", err)
		} else {
			logger.Info("Redis connection closed")
		}
	}

	if c.DB != nil {
		if err := database.Close(c.DB); err != nil {
			logger.Warn("Failed to close database connection", "error", err)
		} else {
			logger.Info("Database connection closed")
		}
	}

	logger.Info("Cleanup completed")
	return nil
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		TaskService: c.TaskService,
	}
}
