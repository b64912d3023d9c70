package assistant

import (
	"kingraph/backend/internal/adapter"
)

// Tool names in the catalog
const (
	ToolReadGraph   = "read_graph"
	ToolWriteGraph  = "write_graph"
	ToolSearchGraph = "search_graph"
)

// Write actions accepted by write_graph
const (
	ActionAddPerson          = "add_person"
	ActionUpdatePerson       = "update_person"
	ActionDeletePerson       = "delete_person"
	ActionAddRelationship    = "add_relationship"
	ActionDeleteRelationship = "delete_relationship"
)

// GraphTools returns the static catalog of graph operations offered to the
// model. The catalog is fixed: exactly these three tools, every turn.
func GraphTools() []adapter.Tool {
	return []adapter.Tool{
		{
			Type: "function",
			Function: adapter.FunctionDefinition{
				Name:        ToolReadGraph,
				Description: "Read people from the graph database",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"query": map[string]any{
							"type":        "string",
							"description": "Optional search query to filter people. If empty, returns all people.",
						},
					},
				},
			},
		},
		{
			Type: "function",
			Function: adapter.FunctionDefinition{
				Name:        ToolWriteGraph,
				Description: "Write to the graph database",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"action": map[string]any{
							"type": "string",
							"enum": []string{
								ActionAddPerson,
								ActionUpdatePerson,
								ActionDeletePerson,
								ActionAddRelationship,
								ActionDeleteRelationship,
							},
							"description": "The action to perform on the graph database",
						},
						"data": map[string]any{
							"type":        "object",
							"description": "The data for the action",
						},
					},
					"required": []string{"action", "data"},
				},
			},
		},
		{
			Type: "function",
			Function: adapter.FunctionDefinition{
				Name:        ToolSearchGraph,
				Description: "Search the graph database for specific information",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"query": map[string]any{
							"type":        "string",
							"description": "The query to search for in the graph database",
						},
					},
					"required": []string{"query"},
				},
			},
		},
	}
}
