package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"kingraph/backend/internal/adapter"
	"kingraph/backend/internal/assistant"
	"kingraph/backend/internal/graph"
)

type stubStore struct {
	people []graph.Person
}

func (s *stubStore) GetAllPeople(ctx context.Context) ([]graph.Person, error) {
	return s.people, nil
}

func (s *stubStore) SearchPeople(ctx context.Context, query string) ([]graph.Person, error) {
	return s.people, nil
}

func (s *stubStore) AddPerson(ctx context.Context, person graph.Person) error { return nil }

func (s *stubStore) UpdatePerson(ctx context.Context, name string, updates map[string]any) error {
	return nil
}

func (s *stubStore) DeletePerson(ctx context.Context, name string) error { return nil }

func (s *stubStore) AddRelationship(ctx context.Context, person1, person2, relType string, props graph.RelationshipProps) error {
	return nil
}

func (s *stubStore) DeleteRelationship(ctx context.Context, person1, person2, relType string) error {
	return nil
}

type stubLLM struct {
	content string
}

func (s *stubLLM) Generate(ctx context.Context, systemPrompt string, history []adapter.Message, userMessage string, tools []adapter.Tool) (*adapter.Response, error) {
	return &adapter.Response{Content: s.content}, nil
}

func newTestServer(content string) *server {
	return &server{
		orch:   assistant.NewOrchestrator(&stubStore{}, &stubLLM{content: content}),
		logger: zap.NewNop(),
	}
}

func TestHandleChat_MissingMessage(t *testing.T) {
	srv := newTestServer("")

	for _, body := range []string{`{}`, `{"message": ""}`, `not json`} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/ai-chat", strings.NewReader(body))
		srv.handleChat(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Body %q: expected 400, got %d", body, w.Code)
		}
		if !strings.Contains(w.Body.String(), "Message is required") {
			t.Errorf("Body %q: missing error text, got %s", body, w.Body.String())
		}
	}
}

func TestHandleChat_Success(t *testing.T) {
	srv := newTestServer("All set.")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/ai-chat", strings.NewReader(`{"message": "record a new contact for me"}`))
	srv.handleChat(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected JSON content type, got %q", ct)
	}
	body := w.Body.String()
	if !strings.Contains(body, "All set.") {
		t.Errorf("Expected model text in response, got %s", body)
	}
	if !strings.Contains(body, "conversationHistory") {
		t.Errorf("Expected history in response, got %s", body)
	}
}
