package main

import (
	_ "time/tzdata"

	"castle-admin/core/logger"
	"castle-admin/core/server"

	_ "castle-admin/docs" // Swagger docs
)

// @title Castle Admin API
// @version 1.0
// @description Bookings, calendar reconciliation and fleet management for a bouncy castle hire business.

// @contact.name API Support
// @contact.email support@example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:7070
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Admin JWT. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", "error", err)
	}
}
