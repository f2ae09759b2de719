package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clarity/internal/config"
	"clarity/internal/handler"
	"clarity/internal/lexicon"
	"clarity/internal/repository"
	"clarity/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Print version info
	log.Printf("Command Clarity Analyzer")
	log.Printf("Version: %s", Version)
	log.Printf("Build Time: %s", BuildTime)
	log.Printf("Git Commit: %s", GitCommit)
	log.Println("")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize database connection
	repo, err := repository.NewPostgresRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
		cfg.Analysis.LogRetention,
	)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	log.Println("✅ Connected to PostgreSQL database")

	schemaCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := repo.EnsureSchema(schemaCtx, cfg.Embedding.Dimensions); err != nil {
		log.Fatalf("Failed to prepare database schema: %v", err)
	}

	// Load the static dictionaries and reference tables
	lex, err := lexicon.NewStore()
	if err != nil {
		log.Fatalf("Failed to load lexicon: %v", err)
	}

	// Initialize embedding client
	embedder := service.NewEmbeddingClient(&cfg.Embedding)
	if cfg.Embedding.Enabled {
		log.Printf("✅ Embedding client initialized")
		log.Printf("   - API Base: %s", cfg.Embedding.APIBase)
		log.Printf("   - Model: %s", cfg.Embedding.Model)
		log.Printf("   - Dimensions: %d", cfg.Embedding.Dimensions)
	} else {
		log.Println("⚠️  Embedding API is disabled - circle validation will reject unknown phrasings")
		log.Println("   Set OPENAI_API_KEY environment variable to enable similarity search")
	}

	// Initialize services
	similarity := service.NewVectorSimilarity(embedder, repo, cfg.Validation.SearchLimit, cfg.Validation.MinScore)
	validator := service.NewCircleValidator(similarity, lex, cfg.Validation)
	analyzer := service.NewAnalyzer(lex, validator, repo, cfg.Analysis)

	log.Println("✅ Services initialized")

	// Initialize handlers
	analyzeHandler := handler.NewAnalyzeHandler(analyzer)
	indexHandler := handler.NewIndexHandler(similarity, lex)
	logsHandler := handler.NewLogsHandler(repo, cfg.Analysis.LogPageSize)

	// Setup Gin router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "healthy",
			"service":    "command-clarity-analyzer",
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		// Analysis endpoints
		apiV1.POST("/analyze", analyzeHandler.Analyze)
		apiV1.GET("/logs", logsHandler.List)

		// Phrase index endpoints
		apiV1.POST("/index/reindex", indexHandler.Reindex)
		apiV1.POST("/index/phrases", indexHandler.AddPhrase)
		apiV1.GET("/index/info", indexHandler.Info)
	}

	// Serve the help documents referenced by help redirects
	router.Static("/docs", "./docs")

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("🚀 Starting server on %s", addr)
	log.Printf("📝 API: http://localhost:%d/api/v1", cfg.Server.Port)

	// Graceful shutdown
	go func() {
		if err := router.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	log.Println("✅ Server stopped")
}
