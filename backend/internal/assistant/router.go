package assistant

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"kingraph/backend/internal/adapter"
	"kingraph/backend/internal/graph"
	"kingraph/backend/pkg/logger"
)

// GraphStore is the graph capability the router dispatches to. Implemented
// by graph.Repository; tests substitute fakes.
type GraphStore interface {
	GetAllPeople(ctx context.Context) ([]graph.Person, error)
	SearchPeople(ctx context.Context, query string) ([]graph.Person, error)
	AddPerson(ctx context.Context, person graph.Person) error
	UpdatePerson(ctx context.Context, name string, updates map[string]any) error
	DeletePerson(ctx context.Context, name string) error
	AddRelationship(ctx context.Context, person1, person2, relType string, props graph.RelationshipProps) error
	DeleteRelationship(ctx context.Context, person1, person2, relType string) error
}

// Result is the outcome of one tool invocation. Err is set instead of
// returning an error so one failing invocation never aborts its siblings.
type Result struct {
	Tool   string
	Action string
	People []graph.Person
	Write  bool
	Err    string
}

// Router maps tool invocations from the model to concrete graph calls
type Router struct {
	store  GraphStore
	logger *zap.Logger
}

// NewRouter creates a new intent router
func NewRouter(store GraphStore) *Router {
	return &Router{
		store:  store,
		logger: logger.Get(),
	}
}

// Execute runs a single tool invocation and captures any failure in the result
func (r *Router) Execute(ctx context.Context, call adapter.ToolCall) Result {
	switch call.Name {
	case ToolReadGraph, ToolSearchGraph:
		return r.executeLookup(ctx, call)
	case ToolWriteGraph:
		return r.executeWrite(ctx, call)
	default:
		return Result{Tool: call.Name, Err: fmt.Sprintf("Unknown function: %s", call.Name)}
	}
}

// executeLookup handles read_graph and search_graph. Queries that ask for
// cross-record analysis need the full person list; birthday questions tend to
// arrive as whole sentences and are reduced to a bare name first.
func (r *Router) executeLookup(ctx context.Context, call adapter.ToolCall) Result {
	query := stringArg(call.Arguments, "query")
	lower := strings.ToLower(query)

	var people []graph.Person
	var err error
	switch {
	case query == "" || strings.Contains(lower, "interest") || strings.Contains(lower, "similar"):
		people, err = r.store.GetAllPeople(ctx)
	case strings.Contains(lower, "birthday") || strings.Contains(lower, "birth"):
		name := extractPersonName(query)
		r.logger.Debug("Birthday query normalized",
			zap.String("query", query),
			zap.String("name", name),
		)
		people, err = r.store.SearchPeople(ctx, name)
	default:
		people, err = r.store.SearchPeople(ctx, query)
	}

	if err != nil {
		return Result{Tool: call.Name, Err: fmt.Sprintf("Function execution failed: %v", err)}
	}
	return Result{Tool: call.Name, People: people}
}

func (r *Router) executeWrite(ctx context.Context, call adapter.ToolCall) Result {
	action := stringArg(call.Arguments, "action")
	data := mapArg(call.Arguments, "data")
	result := Result{Tool: ToolWriteGraph, Action: action, Write: true}

	var err error
	switch action {
	case ActionAddPerson:
		person := personFromData(data)
		if person.Name == "" {
			result.Err = "add_person requires a name"
			return result
		}
		err = r.store.AddPerson(ctx, person)

	case ActionUpdatePerson:
		name := stringArg(data, "name")
		if name == "" {
			result.Err = "update_person requires a name"
			return result
		}
		updates := make(map[string]any, len(data))
		for key, value := range data {
			if key != "name" {
				updates[key] = value
			}
		}
		err = r.store.UpdatePerson(ctx, name, updates)

	case ActionDeletePerson:
		name := stringArg(data, "name")
		if name == "" {
			result.Err = "delete_person requires a name"
			return result
		}
		err = r.store.DeletePerson(ctx, name)

	case ActionAddRelationship:
		person1 := stringArg(data, "person1")
		person2 := stringArg(data, "person2")
		relType := stringArg(data, "relationshipType")
		if person1 == "" || person2 == "" || relType == "" {
			result.Err = "add_relationship requires person1, person2 and relationshipType"
			return result
		}
		err = r.store.AddRelationship(ctx, person1, person2, relType, graph.RelationshipProps{
			Since:       stringArg(data, "since"),
			Description: stringArg(data, "description"),
		})

	case ActionDeleteRelationship:
		person1 := stringArg(data, "person1")
		person2 := stringArg(data, "person2")
		if person1 == "" || person2 == "" {
			result.Err = "delete_relationship requires person1 and person2"
			return result
		}
		err = r.store.DeleteRelationship(ctx, person1, person2, stringArg(data, "relationshipType"))

	default:
		result.Err = fmt.Sprintf("Unknown action: %s", action)
		return result
	}

	if err != nil {
		r.logger.Warn("Graph write failed",
			zap.String("action", action),
			zap.Error(err),
		)
		result.Err = fmt.Sprintf("Function execution failed: %v", err)
	}
	return result
}

// The model is inconsistent about sending a clean name versus a whole
// question ("what is Alice's birthday"). Stopword tokens and the possessive
// marker are stripped at word boundaries to isolate the bare name.
var (
	birthdayStopwords = regexp.MustCompile(`(?i)\b(birthday|birth|born|what|is|when)\b|'s`)
	fillerWords       = regexp.MustCompile(`(?i)\b(the|of|for)\b`)
)

func extractPersonName(query string) string {
	name := birthdayStopwords.ReplaceAllString(query, "")
	name = fillerWords.ReplaceAllString(name, "")
	return strings.Join(strings.Fields(name), " ")
}

// Argument helpers: tool arguments arrive as decoded JSON, so values may be
// strings, float64s or nested maps depending on the model's mood.

func stringArg(args map[string]any, key string) string {
	if args == nil {
		return ""
	}
	if s, ok := args[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func mapArg(args map[string]any, key string) map[string]any {
	if args == nil {
		return nil
	}
	if m, ok := args[key].(map[string]any); ok {
		return m
	}
	return nil
}

func int64Arg(args map[string]any, key string) int64 {
	if args == nil {
		return 0
	}
	switch n := args[key].(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case string:
		if parsed, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
			return parsed
		}
	}
	return 0
}

func personFromData(data map[string]any) graph.Person {
	var birthday any
	if data != nil {
		birthday = data["birthday"]
	}
	return graph.Person{
		Name:       stringArg(data, "name"),
		Age:        int64Arg(data, "age"),
		Location:   stringArg(data, "location"),
		Birthday:   birthday,
		Info:       stringArg(data, "info"),
		Occupation: stringArg(data, "occupation"),
	}
}
