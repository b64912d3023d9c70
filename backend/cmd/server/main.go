package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"kingraph/backend/internal/adapter"
	"kingraph/backend/internal/assistant"
	"kingraph/backend/internal/graph"
	"kingraph/backend/pkg/config"
	"kingraph/backend/pkg/logger"
)

func main() {
	// Initialize logger before anything else
	if err := logger.Init(os.Getenv("ENV")); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting HTTP API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize Neo4j driver
	driver, err := neo4j.NewDriverWithContext(
		cfg.Neo4jURI,
		neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
	)
	if err != nil {
		log.Fatal("Failed to create Neo4j driver", zap.Error(err))
	}
	defer driver.Close(context.Background())

	ctx := context.Background()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		log.Fatal("Failed to verify Neo4j connectivity", zap.Error(err))
	}

	// Initialize dependencies
	repo := graph.NewRepository(driver, cfg.Neo4jDatabase)
	llm := adapter.NewLLMAdapter(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.ModelID)
	orch := assistant.NewOrchestrator(repo, llm)

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	router.GET("/health", healthHandler(repo))

	api := router.Group("/api")
	{
		api.POST("/ai-chat", chatHandler(orch, log))
		api.GET("/people", listPeopleHandler(repo, log))
		api.POST("/search-people", searchPeopleHandler(repo, log))
		api.POST("/add-person", addPersonHandler(repo, log))
		api.GET("/relationships", relationshipsHandler(repo, log))
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started", zap.String("port", cfg.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

// chatRequest is the shared chat contract of both HTTP surfaces
type chatRequest struct {
	Message             string            `json:"message" binding:"required"`
	ConversationHistory []adapter.Message `json:"conversationHistory"`
}

func chatHandler(orch *assistant.Orchestrator, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req chatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
			return
		}

		result, err := orch.HandleTurn(c.Request.Context(), req.Message, req.ConversationHistory)
		if err != nil {
			log.Error("Failed to process turn", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to process request",
				"details": err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":             result.Message,
			"conversationHistory": result.History,
		})
	}
}

func listPeopleHandler(repo *graph.Repository, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		people, err := repo.GetAllPeople(c.Request.Context())
		if err != nil {
			log.Error("Failed to list people", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve people from database"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"people": people})
	}
}

func searchPeopleHandler(repo *graph.Repository, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Query string `json:"query" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
			return
		}

		results, err := repo.SearchPeople(c.Request.Context(), req.Query)
		if err != nil {
			log.Error("Failed to search people", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search database"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"results": results})
	}
}

func addPersonHandler(repo *graph.Repository, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var person graph.Person
		if err := c.ShouldBindJSON(&person); err != nil || person.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Person name is required"})
			return
		}

		if err := repo.AddPerson(c.Request.Context(), person); err != nil {
			log.Error("Failed to add person", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add person to database"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Person added successfully", "person": person})
	}
}

func relationshipsHandler(repo *graph.Repository, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		relationships, err := repo.GetRelationships(c.Request.Context(), c.Query("person"))
		if err != nil {
			log.Error("Failed to get relationships", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve relationships"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"relationships": relationships})
	}
}

// healthHandler reports service health. The graph check runs in an errgroup
// so more dependency probes can fan out here without serializing them.
func healthHandler(repo *graph.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		checkCtx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		g, checkCtx := errgroup.WithContext(checkCtx)
		g.Go(func() error {
			return repo.Ping(checkCtx)
		})

		if err := g.Wait(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "neo4j": "disconnected"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "neo4j": "connected"})
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// ginLogger is a custom logger middleware for Gin
func ginLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		log.Info("HTTP Request",
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
		)
	}
}
