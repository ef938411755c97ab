package main

import (
	"os"

	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/logger"
	"github.com/RachidAzrou/madrassa-sub000/internal/server"
)

// @title MyMadrassa API
// @version 1.0
// @description REST backend for multi-tenant school administration

// @contact.name API Support
// @contact.email support@mymadrassa.be

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey SessionToken
// @in header
// @name X-Session-Token
// @description Opaque session token, also accepted as the madrassa_session cookie

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until a shutdown signal arrives.
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
