package assistant

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"kingraph/backend/internal/adapter"
)

// Some models skip the structured tool-call mechanism and print the call as
// JSON inside their text reply. ExtractToolCalls recovers those best-effort:
// if no tool-shaped JSON can be pulled out of the text it returns nil and the
// turn falls through to the conversational path.

var (
	jsonArrayPattern  = regexp.MustCompile(`(?s)\[.*\]`)
	jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)
)

// rawToolCall tolerates both "arguments" and "parameters" as the argument key
type rawToolCall struct {
	Name       string         `json:"name"`
	Arguments  map[string]any `json:"arguments"`
	Parameters map[string]any `json:"parameters"`
}

// ExtractToolCalls parses tool invocations out of free text
func ExtractToolCalls(text string) []adapter.ToolCall {
	if !strings.Contains(text, `"name"`) {
		return nil
	}
	if !strings.Contains(text, `"parameters"`) && !strings.Contains(text, `"arguments"`) {
		return nil
	}

	candidate := jsonArrayPattern.FindString(text)
	if candidate == "" {
		candidate = jsonObjectPattern.FindString(text)
	}
	if candidate == "" {
		return nil
	}

	var raws []rawToolCall
	if err := json.Unmarshal([]byte(candidate), &raws); err != nil {
		var single rawToolCall
		if err := json.Unmarshal([]byte(candidate), &single); err != nil {
			return nil
		}
		raws = []rawToolCall{single}
	}

	calls := make([]adapter.ToolCall, 0, len(raws))
	for _, raw := range raws {
		if raw.Name == "" {
			continue
		}
		args := raw.Arguments
		if args == nil {
			args = raw.Parameters
		}
		if args == nil {
			args = make(map[string]any)
		}
		calls = append(calls, adapter.ToolCall{
			ID:        uuid.NewString(),
			Name:      raw.Name,
			Arguments: args,
		})
	}
	if len(calls) == 0 {
		return nil
	}
	return calls
}
