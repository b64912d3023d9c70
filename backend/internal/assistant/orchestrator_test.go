package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"kingraph/backend/internal/adapter"
	"kingraph/backend/internal/graph"
)

// Fakes for testing

type fakeStore struct {
	people    []graph.Person
	listCalls int
	searches  []string

	added      []graph.Person
	addErrFor  map[string]error
	updated    map[string]map[string]any
	updateErr  error
	deleted    []string
	deleteErr  error
	relsAdded  [][3]string
	relAddErr  error
	relsDel    [][3]string
	relDelErr  error
	searchErr  error
	listErr    error
}

func (f *fakeStore) GetAllPeople(ctx context.Context) ([]graph.Person, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.people, nil
}

func (f *fakeStore) SearchPeople(ctx context.Context, query string) ([]graph.Person, error) {
	f.searches = append(f.searches, query)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	var matches []graph.Person
	for _, p := range f.people {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

func (f *fakeStore) AddPerson(ctx context.Context, person graph.Person) error {
	if err := f.addErrFor[person.Name]; err != nil {
		return err
	}
	f.added = append(f.added, person)
	f.people = append(f.people, person)
	return nil
}

func (f *fakeStore) UpdatePerson(ctx context.Context, name string, updates map[string]any) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if f.updated == nil {
		f.updated = make(map[string]map[string]any)
	}
	f.updated[name] = updates
	return nil
}

func (f *fakeStore) DeletePerson(ctx context.Context, name string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, name)
	return nil
}

func (f *fakeStore) AddRelationship(ctx context.Context, person1, person2, relType string, props graph.RelationshipProps) error {
	if f.relAddErr != nil {
		return f.relAddErr
	}
	f.relsAdded = append(f.relsAdded, [3]string{person1, person2, relType})
	return nil
}

func (f *fakeStore) DeleteRelationship(ctx context.Context, person1, person2, relType string) error {
	if f.relDelErr != nil {
		return f.relDelErr
	}
	f.relsDel = append(f.relsDel, [3]string{person1, person2, relType})
	return nil
}

type fakeLLM struct {
	response *adapter.Response
	err      error

	lastSystemPrompt string
	lastHistory      []adapter.Message
	lastMessage      string
	lastTools        []adapter.Tool
}

func (f *fakeLLM) Generate(ctx context.Context, systemPrompt string, history []adapter.Message, userMessage string, tools []adapter.Tool) (*adapter.Response, error) {
	f.lastSystemPrompt = systemPrompt
	f.lastHistory = history
	f.lastMessage = userMessage
	f.lastTools = tools
	if f.err != nil {
		return nil, f.err
	}
	if f.response != nil {
		return f.response, nil
	}
	return &adapter.Response{Content: "Hello!"}, nil
}

func TestHandleTurn_ContentPassThrough(t *testing.T) {
	ctx := context.Background()
	llm := &fakeLLM{response: &adapter.Response{Content: "Sure, tell me more about your contacts."}}
	orch := NewOrchestrator(&fakeStore{}, llm)

	result, err := orch.HandleTurn(ctx, "Can you store people for me?", nil)
	if err != nil {
		t.Fatalf("HandleTurn failed: %v", err)
	}
	if result.Message != "Sure, tell me more about your contacts." {
		t.Errorf("Expected model text to pass through, got %q", result.Message)
	}
}

func TestHandleTurn_SendsToolCatalog(t *testing.T) {
	ctx := context.Background()
	llm := &fakeLLM{response: &adapter.Response{Content: "ok"}}
	orch := NewOrchestrator(&fakeStore{}, llm)

	if _, err := orch.HandleTurn(ctx, "anything at all", nil); err != nil {
		t.Fatalf("HandleTurn failed: %v", err)
	}
	if len(llm.lastTools) != 3 {
		t.Fatalf("Expected 3 tools in catalog, got %d", len(llm.lastTools))
	}
	names := map[string]bool{}
	for _, tool := range llm.lastTools {
		names[tool.Function.Name] = true
	}
	for _, want := range []string{ToolReadGraph, ToolWriteGraph, ToolSearchGraph} {
		if !names[want] {
			t.Errorf("Tool catalog missing %s", want)
		}
	}
}

func TestHandleTurn_HistoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	llm := &fakeLLM{response: &adapter.Response{Content: "Noted."}}
	orch := NewOrchestrator(&fakeStore{}, llm)

	history := []adapter.Message{
		{Role: adapter.RoleUser, Content: "first"},
		{Role: adapter.RoleAssistant, Content: "second"},
	}
	result, err := orch.HandleTurn(ctx, "What about Bob?", history)
	if err != nil {
		t.Fatalf("HandleTurn failed: %v", err)
	}

	if len(result.History) != len(history)+2 {
		t.Fatalf("Expected history length %d, got %d", len(history)+2, len(result.History))
	}
	userTurn := result.History[len(result.History)-2]
	assistantTurn := result.History[len(result.History)-1]
	if userTurn.Role != adapter.RoleUser || userTurn.Content != "What about Bob?" {
		t.Errorf("Unexpected user turn: %+v", userTurn)
	}
	if assistantTurn.Role != adapter.RoleAssistant || assistantTurn.Content != result.Message {
		t.Errorf("Unexpected assistant turn: %+v", assistantTurn)
	}
	// Input history must not be mutated
	if len(history) != 2 {
		t.Errorf("Input history was modified, length %d", len(history))
	}
}

func TestHandleTurn_GreetingFallback(t *testing.T) {
	ctx := context.Background()
	llm := &fakeLLM{response: &adapter.Response{Content: ""}}
	orch := NewOrchestrator(&fakeStore{}, llm)

	result, err := orch.HandleTurn(ctx, "Hello there!", nil)
	if err != nil {
		t.Fatalf("HandleTurn failed: %v", err)
	}
	if !strings.Contains(result.Message, "personal relationship database assistant") {
		t.Errorf("Expected greeting reply, got %q", result.Message)
	}
}

func TestHandleTurn_ThanksFallback(t *testing.T) {
	ctx := context.Background()
	llm := &fakeLLM{response: &adapter.Response{Content: "some text"}}
	orch := NewOrchestrator(&fakeStore{}, llm)

	result, err := orch.HandleTurn(ctx, "Thank you so much", nil)
	if err != nil {
		t.Fatalf("HandleTurn failed: %v", err)
	}
	if !strings.Contains(result.Message, "You're welcome") {
		t.Errorf("Expected thanks reply, got %q", result.Message)
	}
}

func TestHandleTurn_EmptyModelOutputFallback(t *testing.T) {
	ctx := context.Background()
	for _, content := range []string{"", "  ", "[]", "{}"} {
		llm := &fakeLLM{response: &adapter.Response{Content: content}}
		orch := NewOrchestrator(&fakeStore{}, llm)

		result, err := orch.HandleTurn(ctx, "qwerty dance", nil)
		if err != nil {
			t.Fatalf("HandleTurn failed for %q: %v", content, err)
		}
		if !strings.Contains(result.Message, "I'm not sure how to help with that") {
			t.Errorf("Expected unrecognized reply for model text %q, got %q", content, result.Message)
		}
	}
}

func TestHandleTurn_CompletionFailure(t *testing.T) {
	ctx := context.Background()
	llm := &fakeLLM{err: errors.New("connection refused")}
	orch := NewOrchestrator(&fakeStore{}, llm)

	result, err := orch.HandleTurn(ctx, "Who is Alice?", nil)
	if err == nil {
		t.Fatal("Expected error on completion failure")
	}
	if result != nil {
		t.Errorf("Expected nil result on completion failure, got %+v", result)
	}
}

func TestHandleTurn_ToolCallRead(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{people: []graph.Person{
		{Name: "Alice Walker", Age: 34, Occupation: "data scientist"},
	}}
	llm := &fakeLLM{response: &adapter.Response{
		ToolCalls: []adapter.ToolCall{
			{ID: "1", Name: ToolReadGraph, Arguments: map[string]any{"query": "Alice"}},
		},
	}}
	orch := NewOrchestrator(store, llm)

	result, err := orch.HandleTurn(ctx, "What do you know about Alice?", nil)
	if err != nil {
		t.Fatalf("HandleTurn failed: %v", err)
	}
	if !strings.Contains(result.Message, "Alice Walker") {
		t.Errorf("Expected reply to mention Alice Walker, got %q", result.Message)
	}
	if !strings.Contains(result.Message, "data scientist") {
		t.Errorf("Expected reply to mention occupation, got %q", result.Message)
	}
}

func TestHandleTurn_TextToolCallRecovery(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{people: []graph.Person{{Name: "Alice Walker"}}}
	llm := &fakeLLM{response: &adapter.Response{
		Content: `[{"name": "read_graph", "arguments": {"query": "Alice"}}]`,
	}}
	orch := NewOrchestrator(store, llm)

	result, err := orch.HandleTurn(ctx, "Show me Alice", nil)
	if err != nil {
		t.Fatalf("HandleTurn failed: %v", err)
	}
	if len(store.searches) != 1 || store.searches[0] != "Alice" {
		t.Fatalf("Expected one search for Alice, got %v", store.searches)
	}
	if !strings.Contains(result.Message, "Alice Walker") {
		t.Errorf("Expected reply to mention Alice Walker, got %q", result.Message)
	}
}

func TestHandleTurn_PartialWriteFailureIsolation(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{addErrFor: map[string]error{"Broken": errors.New("constraint violation")}}
	llm := &fakeLLM{response: &adapter.Response{
		ToolCalls: []adapter.ToolCall{
			{ID: "1", Name: ToolWriteGraph, Arguments: map[string]any{
				"action": ActionAddPerson,
				"data":   map[string]any{"name": "Broken"},
			}},
			{ID: "2", Name: ToolWriteGraph, Arguments: map[string]any{
				"action": ActionAddPerson,
				"data":   map[string]any{"name": "Fine"},
			}},
		},
	}}
	orch := NewOrchestrator(store, llm)

	result, err := orch.HandleTurn(ctx, "Add both of them", nil)
	if err != nil {
		t.Fatalf("HandleTurn failed: %v", err)
	}
	if !strings.Contains(result.Message, "❌") {
		t.Errorf("Expected failure report in message, got %q", result.Message)
	}
	if !strings.Contains(result.Message, "Successfully added to database!") {
		t.Errorf("Expected success report in message, got %q", result.Message)
	}
	// Second write still landed
	if len(store.added) != 1 || store.added[0].Name != "Fine" {
		t.Errorf("Expected Fine to be added despite sibling failure, got %+v", store.added)
	}
}

func TestHandleTurn_NeverEmptyMessage(t *testing.T) {
	ctx := context.Background()
	cases := []*adapter.Response{
		{Content: ""},
		{Content: "{}"},
		{ToolCalls: []adapter.ToolCall{{ID: "1", Name: "bogus_tool"}}},
		{ToolCalls: []adapter.ToolCall{{ID: "1", Name: ToolReadGraph, Arguments: map[string]any{"query": "nonexistent"}}}},
	}
	for i, resp := range cases {
		llm := &fakeLLM{response: resp}
		orch := NewOrchestrator(&fakeStore{}, llm)
		result, err := orch.HandleTurn(ctx, "zzz unmatched zzz", nil)
		if err != nil {
			t.Fatalf("case %d: HandleTurn failed: %v", i, err)
		}
		if strings.TrimSpace(result.Message) == "" {
			t.Errorf("case %d: got empty assistant message", i)
		}
	}
}

func TestHandleTurn_UnknownToolRendered(t *testing.T) {
	ctx := context.Background()
	llm := &fakeLLM{response: &adapter.Response{
		ToolCalls: []adapter.ToolCall{{ID: "1", Name: "make_coffee"}},
	}}
	orch := NewOrchestrator(&fakeStore{}, llm)

	result, err := orch.HandleTurn(ctx, "make me a coffee", nil)
	if err != nil {
		t.Fatalf("HandleTurn failed: %v", err)
	}
	if !strings.Contains(result.Message, "Unknown function: make_coffee") {
		t.Errorf("Expected unknown function report, got %q", result.Message)
	}
}
