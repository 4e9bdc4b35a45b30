package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"server/internal/app"
	"server/internal/handlers"
	"server/internal/logger"
	"syscall"

	"github.com/gofiber/fiber/v2"
)

func main() {
	logger.InitDefault(slog.LevelInfo)
	log := logger.New("main")

	application, err := app.New()
	if err != nil {
		log.Er("failed to initialize application", err)
		os.Exit(1)
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Er("failed to close application", err)
		}
	}()

	server := fiber.New(fiber.Config{
		AppName: "election-server",
	})

	if err := handlers.Router(server, application); err != nil {
		log.Er("failed to register routes", err)
		os.Exit(1)
	}

	go func() {
		address := fmt.Sprintf("%s:%d", application.Config.ServerHost, application.Config.ServerPort)
		if err := server.Listen(address); err != nil {
			log.Er("server stopped", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	if err := server.Shutdown(); err != nil {
		log.Er("failed to shutdown server", err)
	}
}
