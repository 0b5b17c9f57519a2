package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"creator-engagement-system/chain"
	"creator-engagement-system/conf"
	"creator-engagement-system/controller"
	"creator-engagement-system/database"
	"creator-engagement-system/service/registry_service"
)

var ENV string

func init() {
	flag.StringVar(&ENV, "env", "mainnet", "Environment: loc/mainnet/testnet")
}

// @title           Creator Engagement System API
// @version         1.0
// @description     Engagement ledger and creator/content directory API

// @host      localhost:7380
// @BasePath  /api/v1

// @schemes https http

func main() {
	// Initialize all components
	registryService, srv, cleanup := initAll()
	defer cleanup()

	// Start registry sync service (in goroutine)
	if registryService != nil {
		go registryService.Start()
		log.Println("Registry sync service started successfully")
	}

	// Start HTTP API service (in goroutine)
	go startServer(srv)
	log.Println("Engagement API service started successfully")

	// Wait for shutdown signal
	waitForShutdown()

	log.Println("Shutting down engagement service...")

	// Stop registry sync service
	if registryService != nil {
		registryService.Stop()
	}

	// Gracefully shutdown HTTP service
	shutdownServer(srv)

	log.Println("Server exited")
}

// initEnv initialize environment
func initEnv() {
	if ENV == "loc" {
		conf.SystemEnvironmentEnum = conf.LocalEnvironmentEnum
	} else if ENV == "mainnet" {
		conf.SystemEnvironmentEnum = conf.MainnetEnvironmentEnum
	} else if ENV == "testnet" {
		conf.SystemEnvironmentEnum = conf.TestnetEnvironmentEnum
	}
	fmt.Printf("Environment: %s\n", ENV)
}

// initAll initialize all components
func initAll() (*registry_service.RegistryService, *http.Server, func()) {
	// Parse command line parameters
	flag.Parse()

	// Set environment
	initEnv()

	// Initialize configuration
	if err := conf.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}
	log.Printf("Configuration loaded: env=%s, net=%s, port=%s", ENV, conf.Cfg.Net, conf.Cfg.Port)

	// Initialize database
	if err := initDatabase(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize Redis (optional, won't fail if disabled or unavailable)
	if err := database.InitRedis(); err != nil {
		log.Printf("Redis initialization failed (cache will be disabled): %v", err)
	}

	// Create chain read client
	chainClient := chain.NewClient(
		conf.Cfg.Chain.RpcUrl,
		conf.Cfg.Chain.PackageId,
		conf.Cfg.Chain.Module,
		conf.Cfg.Chain.Sender,
	)

	// Create registry sync service when enabled
	var registryService *registry_service.RegistryService
	if conf.Cfg.Registry.Enabled {
		registryService = registry_service.NewRegistryService(chainClient)
	} else {
		log.Println("Registry sync disabled")
	}

	// Setup engagement service router
	router := controller.SetupEngagementRouter(chainClient, registryService)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + conf.Cfg.Port,
		Handler: router,
	}

	// Return service instance and cleanup function
	cleanup := func() {
		if database.DB != nil {
			database.DB.Close()
		}
		if err := database.CloseRedis(); err != nil {
			log.Printf("Failed to close Redis: %v", err)
		}
	}

	return registryService, srv, cleanup
}

// initDatabase initialize database based on configuration
func initDatabase() error {
	dbType := database.DBType(conf.Cfg.Database.Type)

	switch dbType {
	case database.DBTypeMySQL:
		config := &database.MySQLConfig{
			DSN:          conf.Cfg.Database.Dsn,
			MaxOpenConns: conf.Cfg.Database.MaxOpenConns,
			MaxIdleConns: conf.Cfg.Database.MaxIdleConns,
		}
		return database.InitDatabase(database.DBTypeMySQL, config)

	case database.DBTypePebble:
		config := &database.PebbleConfig{
			DataDir: conf.Cfg.Database.DataDir,
		}
		return database.InitDatabase(database.DBTypePebble, config)

	default:
		log.Printf("Database type not specified, defaulting to MySQL")
		config := &database.MySQLConfig{
			DSN:          conf.Cfg.Database.Dsn,
			MaxOpenConns: conf.Cfg.Database.MaxOpenConns,
			MaxIdleConns: conf.Cfg.Database.MaxIdleConns,
		}
		return database.InitDatabase(database.DBTypeMySQL, config)
	}
}

// startServer start HTTP server
func startServer(srv *http.Server) {
	log.Printf("Engagement API service starting on port %s...", conf.Cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// waitForShutdown wait for shutdown signal
func waitForShutdown() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
}

// shutdownServer gracefully shutdown server
func shutdownServer(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}
