package main

import (
	"log/slog"
	"os"

	"github.com/nfrund/ipadmin/internal/config"
	"github.com/nfrund/ipadmin/internal/logging"
	"github.com/nfrund/ipadmin/internal/server"
)

func main() {
	cfg := config.New()
	logger := logging.New()

	s, err := server.New(cfg, logger)
	if err != nil {
		slog.Error("Failed to initialize server", "error", err)
		os.Exit(1)
	}

	if err := s.RegisterRoutes(); err != nil {
		slog.Error("Failed to register routes", "error", err)
		os.Exit(1)
	}

	if err := s.Start(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}
