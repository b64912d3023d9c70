package assistant

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"kingraph/backend/internal/adapter"
	"kingraph/backend/pkg/logger"
)

// CompletionClient is the language-model capability the orchestrator talks
// to. Implemented by adapter.LLMAdapter; tests substitute fakes.
type CompletionClient interface {
	Generate(ctx context.Context, systemPrompt string, history []adapter.Message, userMessage string, tools []adapter.Tool) (*adapter.Response, error)
}

// TurnResult is the outcome of one conversational turn. History is the
// caller's history extended with exactly the user turn and the reply; the
// orchestrator keeps no state between calls.
type TurnResult struct {
	Message string            `json:"message"`
	History []adapter.Message `json:"conversationHistory"`
}

// Orchestrator sequences one turn: completion call, tool routing, response
// synthesis, history extension
type Orchestrator struct {
	llm    CompletionClient
	router *Router
	logger *zap.Logger
}

// NewOrchestrator creates a new conversation orchestrator
func NewOrchestrator(store GraphStore, llm CompletionClient) *Orchestrator {
	return &Orchestrator{
		llm:    llm,
		router: NewRouter(store),
		logger: logger.Get(),
	}
}

// HandleTurn processes a single user message against the rolling history.
// A completion failure is the only error return; every other failure is
// reported inside the assistant's reply.
func (o *Orchestrator) HandleTurn(ctx context.Context, userMessage string, history []adapter.Message) (*TurnResult, error) {
	response, err := o.llm.Generate(ctx, systemPrompt, history, userMessage, GraphTools())
	if err != nil {
		return nil, fmt.Errorf("completion request failed: %w", err)
	}

	calls := response.ToolCalls
	if len(calls) == 0 {
		// The model may have printed the call as text instead
		calls = ExtractToolCalls(response.Content)
		if len(calls) > 0 {
			o.logger.Debug("Recovered tool calls from text response", zap.Int("count", len(calls)))
		}
	}

	var reply string
	if len(calls) > 0 {
		results := make([]Result, 0, len(calls))
		for _, call := range calls {
			o.logger.Debug("Executing tool call",
				zap.String("tool", call.Name),
				zap.Any("arguments", call.Arguments),
			)
			results = append(results, o.router.Execute(ctx, call))
		}
		reply = renderResults(results, userMessage)
	} else {
		reply = fallbackReply(userMessage, response.Content)
	}

	extended := make([]adapter.Message, 0, len(history)+2)
	extended = append(extended, history...)
	extended = append(extended,
		adapter.Message{Role: adapter.RoleUser, Content: userMessage},
		adapter.Message{Role: adapter.RoleAssistant, Content: reply},
	)

	return &TurnResult{Message: reply, History: extended}, nil
}
