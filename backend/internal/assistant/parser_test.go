package assistant

import "testing"

func TestExtractToolCalls_Array(t *testing.T) {
	text := `[{"name": "read_graph", "arguments": {"query": "Alice"}}, {"name": "search_graph", "arguments": {"query": "engineer"}}]`

	calls := ExtractToolCalls(text)
	if len(calls) != 2 {
		t.Fatalf("Expected 2 calls, got %d", len(calls))
	}
	if calls[0].Name != ToolReadGraph || calls[0].Arguments["query"] != "Alice" {
		t.Errorf("Unexpected first call: %+v", calls[0])
	}
	if calls[1].Name != ToolSearchGraph || calls[1].Arguments["query"] != "engineer" {
		t.Errorf("Unexpected second call: %+v", calls[1])
	}
	if calls[0].ID == "" || calls[0].ID == calls[1].ID {
		t.Error("Calls must carry distinct synthetic IDs")
	}
}

func TestExtractToolCalls_SingleObjectWithParameters(t *testing.T) {
	text := `{"name": "write_graph", "parameters": {"action": "add_person", "data": {"name": "Maria"}}}`

	calls := ExtractToolCalls(text)
	if len(calls) != 1 {
		t.Fatalf("Expected 1 call, got %d", len(calls))
	}
	if calls[0].Name != ToolWriteGraph {
		t.Errorf("Unexpected name: %s", calls[0].Name)
	}
	if calls[0].Arguments["action"] != "add_person" {
		t.Errorf("parameters key was not mapped to arguments: %+v", calls[0].Arguments)
	}
}

func TestExtractToolCalls_EmbeddedInProse(t *testing.T) {
	text := `Sure, I'll look that up. {"name": "read_graph", "arguments": {"query": "Bob"}} Let me know if you need more.`

	calls := ExtractToolCalls(text)
	if len(calls) != 1 {
		t.Fatalf("Expected 1 call, got %d", len(calls))
	}
	if calls[0].Name != ToolReadGraph || calls[0].Arguments["query"] != "Bob" {
		t.Errorf("Unexpected call: %+v", calls[0])
	}
}

func TestExtractToolCalls_MissingArgumentsDefaultsEmpty(t *testing.T) {
	text := `[{"name": "read_graph", "arguments": null}]`

	calls := ExtractToolCalls(text)
	if len(calls) != 1 {
		t.Fatalf("Expected 1 call, got %d", len(calls))
	}
	if calls[0].Arguments == nil {
		t.Error("Arguments must never be nil")
	}
}

func TestExtractToolCalls_PlainTextIgnored(t *testing.T) {
	for _, text := range []string{
		"",
		"Hello! How can I help you today?",
		`The "name" field matters here`,
		`{"name": "read_graph"}`,
		`just mentioning "name" and "arguments" with no JSON at all`,
	} {
		if calls := ExtractToolCalls(text); calls != nil {
			t.Errorf("Expected nil for %q, got %+v", text, calls)
		}
	}
}

func TestExtractToolCalls_NamelessEntriesDropped(t *testing.T) {
	text := `[{"name": "", "arguments": {"query": "x"}}, {"arguments": {"query": "y"}}]`

	if calls := ExtractToolCalls(text); calls != nil {
		t.Errorf("Expected nil when no entry has a name, got %+v", calls)
	}
}
