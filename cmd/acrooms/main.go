package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edumon/acrooms/internal/api"
	"github.com/edumon/acrooms/internal/config"
	"github.com/edumon/acrooms/internal/monitor"
	"github.com/edumon/acrooms/internal/repository"
	"github.com/edumon/acrooms/internal/service"
	"github.com/edumon/acrooms/internal/web"
)

func main() {
	// Load the room list
	roomsPath := os.Getenv("ACROOMS_ROOMS_CONFIG")
	if roomsPath == "" {
		roomsPath = "rooms.yaml"
	}
	rooms, err := config.LoadRooms(roomsPath)
	if err != nil {
		log.Fatalf("Failed to load rooms config: %v", err)
	}

	// Get Redis configuration
	redisConfig := config.GetRedisConfig()

	// Initialize the status store using the factory
	repo, err := repository.NewRepository(redisConfig)
	if err != nil {
		log.Fatalf("Failed to initialize repository: %v", err)
	}

	// Check if we're using a Redis repository, and if so, close it properly on exit
	if redisRepo, ok := repo.(interface{ Close() error }); ok {
		defer func() {
			if err := redisRepo.Close(); err != nil {
				log.Printf("Error closing Redis connection: %v", err)
			}
		}()
	}

	// Every configured room starts out pending
	if err := repo.SeedRooms(context.Background(), rooms); err != nil {
		log.Fatalf("Failed to seed rooms: %v", err)
	}

	// Initialize the service layer
	roomService := service.NewRoomService(repo)

	// Set up the SSE push handler
	webHandler := web.NewHandler()

	// Register the SSE update callback before any supervisor starts
	roomService.RegisterUpdateCallback(webHandler.NotifyRoomUpdate)

	// Set up API routes with the status store
	mux := api.SetupRoutes(repo)

	// Set up SSE routes
	webHandler.SetupRoutes(mux)

	// Start one supervisor per room
	monitorCtx, stopMonitors := context.WithCancel(context.Background())
	defer stopMonitors()

	manager := monitor.NewManager(rooms, roomService, config.GetMonitorConfig())
	manager.Start(monitorCtx)

	// Get port from environment variable or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Configure the HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // Disable write timeout for SSE connections
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Printf("Starting acrooms server on port %s, watching %d rooms", port, len(rooms))
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until a signal is received or an error occurs
	select {
	case err := <-serverErrors:
		log.Fatalf("Error starting server: %v", err)

	case <-shutdown:
		log.Println("Shutting down server...")

		// Stop the room supervisors first so no further updates are published
		stopMonitors()

		// Then shut down the web handler to close SSE connections
		webHandler.Shutdown()

		// Create a deadline to wait for
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// Doesn't block if there are no connections, but will otherwise
		// wait until the timeout deadline.
		if err := server.Shutdown(ctx); err != nil {
			server.Close()
			log.Fatalf("Error shutting down server: %v", err)
		}

		log.Println("Server gracefully stopped")
	}
}
