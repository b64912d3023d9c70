// chatd is the standalone chat endpoint: the same conversational contract as
// the main API server, served over plain net/http with no framework. Useful
// for quick local testing against just Neo4j and a model gateway.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

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
	if err := logger.Init(os.Getenv("ENV")); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting standalone chat server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	driver, err := neo4j.NewDriverWithContext(
		cfg.Neo4jURI,
		neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
	)
	if err != nil {
		log.Fatal("Failed to create Neo4j driver", zap.Error(err))
	}
	defer driver.Close(context.Background())

	if err := driver.VerifyConnectivity(context.Background()); err != nil {
		log.Fatal("Failed to verify Neo4j connectivity", zap.Error(err))
	}

	repo := graph.NewRepository(driver, cfg.Neo4jDatabase)
	llm := adapter.NewLLMAdapter(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.ModelID)
	orch := assistant.NewOrchestrator(repo, llm)

	srv := &server{orch: orch, repo: repo, logger: log}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/ai-chat", srv.handleChat)
	mux.HandleFunc("POST /api/health-check", srv.handleHealthCheck)
	mux.HandleFunc("GET /api/get-people", srv.handleGetPeople)

	httpSrv := &http.Server{
		Addr:    ":" + cfg.ChatdPort,
		Handler: mux,
	}

	// Serve until a signal arrives, then drain
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server started", zap.String("port", cfg.ChatdPort))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("Server error", zap.Error(err))
	}
	log.Info("Server exited")
}

type server struct {
	orch   *assistant.Orchestrator
	repo   *graph.Repository
	logger *zap.Logger
}

type chatRequest struct {
	Message             string            `json:"message"`
	ConversationHistory []adapter.Message `json:"conversationHistory"`
}

func (s *server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Message is required"})
		return
	}

	s.logger.Info("Chat message received", zap.String("message", req.Message))

	result, err := s.orch.HandleTurn(r.Context(), req.Message, req.ConversationHistory)
	if err != nil {
		s.logger.Error("Failed to process turn", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "Failed to process request",
			"details": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":             result.Message,
		"conversationHistory": result.History,
	})
}

func (s *server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	checkCtx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := s.repo.Ping(checkCtx); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"status": "error", "message": "Neo4j connection failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "neo4j": "connected"})
}

func (s *server) handleGetPeople(w http.ResponseWriter, r *http.Request) {
	people, err := s.repo.GetAllPeople(r.Context())
	if err != nil {
		s.logger.Error("Failed to list people", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Failed to retrieve people from database"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"people": people})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
