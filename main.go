// main.go - Entry point for the command snippet backend server

package main // Declares the package name

import ( // Import required packages
	"context"   // Shutdown deadline
	"errors"    // For http.ErrServerClosed
	"log"       // Logging
	"net/http"  // HTTP server
	"os"        // Signals
	"os/signal" // Signal notification
	"syscall"   // SIGTERM
	"time"      // Timeouts

	"go-commands-backend/config"     // Project config management
	"go-commands-backend/database"   // Database connection and setup
	"go-commands-backend/events"     // MQTT command events
	"go-commands-backend/handlers"   // HTTP handlers for API endpoints
	"go-commands-backend/middleware" // Middleware (auth, rate limiting)
	"go-commands-backend/repository" // Persistence
	"go-commands-backend/services"   // Use cases

	"github.com/rs/cors" // CORS for the browser client
)

func main() { // Main function, program entry point
	// STEP 1: Load configuration and establish connections
	cfg := config.MustLoad() // Load configuration (DB, JWT, CORS, MQTT)

	db, err := database.Connect(cfg) // Connect to the database and migrate
	if err != nil {
		log.Fatal("DB connection error: ", err) // If error, log and exit
	}
	publisher, err := events.Connect(cfg.MQTTBroker, cfg.MQTTClientID, cfg.MQTTTopicPrefix)
	if err != nil {
		log.Fatal("MQTT connection error: ", err)
	}

	// STEP 2: Wire repositories, services and the router
	users := repository.NewUserRepository(db)
	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTTTL, cfg.JWTIssuer)
	router := handlers.NewRouter(handlers.Deps{
		Auth:           services.NewAuthService(users, tokens),
		Commands:       services.NewCommandService(repository.NewCommandRepository(db), publisher),
		Tokens:         tokens,
		Users:          users,
		AuthLimiter:    middleware.NewIPRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst),
		TrustedProxies: cfg.Proxies(),
		Ping:           func() error { return database.Ping(db) },
		AccessLog:      true,
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins(),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           3600,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// STEP 3: Start the web server and wait for a shutdown signal
	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	publisher.Close()
	if err := database.Close(db); err != nil {
		log.Printf("db close: %v", err)
	}
}
