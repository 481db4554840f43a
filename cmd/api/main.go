package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"tasktracker/interfaces/api/handlers"
	"tasktracker/interfaces/api/middleware"
	"tasktracker/interfaces/api/routes"
	"tasktracker/pkg/di"
	"tasktracker/pkg/logger"
	"tasktracker/web"
)

func main() {
	container := di.NewContainer()

	if err := container.Initialize(); err != nil {
		// ใช้ panic เพราะ logger อาจยังไม่ได้ init
		panic("Failed to initialize container: " + err.Error())
	}

	cfg := container.GetConfig()

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		Views:                 web.NewViewEngine(),
		ErrorHandler:          middleware.ErrorHandler(handlers.LayoutMain),
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          15 * time.Second,
		BodyLimit:             1 * 1024 * 1024,
		EnablePrintRoutes:     cfg.IsDevelopment(),
		DisableStartupMessage: cfg.IsProduction(),
	})

	// Setup middleware (order matters!)
	app.Use(middleware.RequestIDMiddleware()) // ต้องมาก่อน logger
	app.Use(middleware.LoggerMiddleware())
	app.Use(middleware.RecoverMiddleware())
	app.Use("/api", middleware.CorsMiddleware(cfg.App.CORSOrigins))

	h := handlers.NewHandlers(container.GetHandlerServices())
	routes.SetupRoutes(app, h)

	setupGracefulShutdown(app, container)

	port := cfg.App.Port
	logger.Info("Server starting",
		"port", port,
		"env", cfg.App.Env,
		"app", cfg.App.Name,
	)
	logger.Info("Endpoints available",
		"ui", "http://localhost:"+port+"/",
		"api", "http://localhost:"+port+"/api/tasks",
		"health", "http://localhost:"+port+"/health",
	)

	if err := app.Listen(":" + port); err != nil {
		logger.Error("Server failed to start", "error", err)
		os.Exit(1)
	}
}

func setupGracefulShutdown(app *fiber.App, container *di.Container) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Info("Gracefully shutting down...")

		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("Error during server shutdown", "error", err)
		}

		if err := container.Cleanup(); err != nil {
			logger.Error("Error during cleanup", "error", err)
		}

		logger.Info("Shutdown complete")
		os.Exit(0)
	}()
}
