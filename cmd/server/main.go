package main

import (
	"log"
	"net/http"
	"os"

	"tourism_guide/internal/config"
	"tourism_guide/internal/logger"
	"tourism_guide/internal/middleware"
	"tourism_guide/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	config.InitDB()

	// Setup Gin router (recovery + request logging registered inside)
	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	addr := "0.0.0.0:" + port()
	log.Printf("Server running at %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}

func port() string {
	if v := os.Getenv("PORT"); v != "" {
		return v
	}
	return "8080"
}
