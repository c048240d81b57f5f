package main

// @title           Storefront Core API
// @version         1.0
// @description     Account management and product listing API. Products carry images relayed to object storage.

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Format: "Bearer {token}"

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	miniolib "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/storefront-labs/storefront-core/internal/adapters/driven/auth"
	minioadapter "github.com/storefront-labs/storefront-core/internal/adapters/driven/minio"
	"github.com/storefront-labs/storefront-core/internal/adapters/driven/postgres"
	"github.com/storefront-labs/storefront-core/internal/adapters/driving/http"
	"github.com/storefront-labs/storefront-core/internal/config"
	"github.com/storefront-labs/storefront-core/internal/core/services"
)

var version = "dev"

func main() {
	log.Printf("storefront-core %s starting", version)

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Shutdown signal received, stopping...")
		cancel()
	}()

	// ===== Initialize PostgreSQL =====
	log.Println("Connecting to PostgreSQL...")
	db, err := postgres.Connect(ctx, postgres.DefaultConfig(cfg.Database.URL))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize schema (idempotent)
	if err := db.InitSchema(ctx); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}
	log.Println("PostgreSQL connected and schema initialized")

	// ===== Initialize MinIO image relay =====
	log.Println("Connecting to MinIO...")
	minioClient, err := miniolib.New(cfg.Storage.Endpoint, &miniolib.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		log.Fatalf("Failed to create MinIO client: %v", err)
	}
	imageRelay, err := minioadapter.NewRelay(ctx, minioClient, cfg.Storage.Bucket, cfg.Storage.PublicURL)
	if err != nil {
		log.Fatalf("Failed to initialize image relay: %v", err)
	}
	log.Println("MinIO connected")

	// ===== Driven adapters (infrastructure) =====
	authAdapter := auth.NewAdapter(cfg.JWT.Secret)

	// ===== PostgreSQL Stores =====
	userStore := postgres.NewUserStore(db)
	productStore := postgres.NewProductStore(db)

	// Services (core business logic)
	authService := services.NewAuthService(userStore, authAdapter)
	productService := services.NewProductService(productStore, imageRelay)

	// ===== HTTP server =====
	serverCfg := http.Config{
		Host:    cfg.HTTP.Host,
		Port:    cfg.HTTP.Port,
		Version: version,
	}
	server := http.NewServer(serverCfg, authService, productService, db)

	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
