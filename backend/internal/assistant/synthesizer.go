package assistant

import (
	"fmt"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
	"kingraph/backend/internal/graph"
)

const (
	noMatchesReply   = "I didn't find any matching people in your database."
	nothingToShow    = "I processed your request but couldn't generate a response."
	birthdayMissing  = "❓ Birthday not available"
	birthdayHeadline = "Here's the birthday information I found:"
)

// renderResults turns the per-invocation results of one turn into a single
// assistant message, in invocation order. It never returns an empty string.
func renderResults(results []Result, userMessage string) string {
	lower := strings.ToLower(userMessage)
	wantsBirthday := strings.Contains(lower, "birthday")
	wantsInterests := strings.Contains(lower, "interest") || strings.Contains(lower, "similar")

	var b strings.Builder
	for _, res := range results {
		if res.Err != "" {
			b.WriteString("❌ " + res.Err + "\n\n")
			continue
		}

		switch res.Tool {
		case ToolReadGraph, ToolSearchGraph:
			if len(res.People) == 0 {
				b.WriteString(noMatchesReply + "\n\n")
				continue
			}
			if wantsBirthday {
				renderBirthdayList(&b, res.People)
			} else {
				renderPeopleList(&b, res.People)
			}
			if wantsInterests {
				renderInterestAnalysis(&b, res.People)
			}

		case ToolWriteGraph:
			b.WriteString(writeConfirmation(res.Action) + "\n")
		}
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return nothingToShow
	}
	return text
}

func renderBirthdayList(b *strings.Builder, people []graph.Person) {
	b.WriteString(birthdayHeadline + "\n\n")
	for _, person := range people {
		b.WriteString("• **" + person.Name + "**")
		if formatted, ok := formatBirthday(person.Birthday); ok {
			b.WriteString("\n  🎂 Birthday: " + formatted)
		} else {
			b.WriteString("\n  " + birthdayMissing)
		}
		b.WriteString("\n\n")
	}
}

func renderPeopleList(b *strings.Builder, people []graph.Person) {
	fmt.Fprintf(b, "I found %d people in your database:\n\n", len(people))
	for _, person := range people {
		b.WriteString("• **" + person.Name + "**")
		if person.Age > 0 {
			fmt.Fprintf(b, " (age %d)", person.Age)
		}
		if person.Occupation != "" {
			b.WriteString(" - " + person.Occupation)
		}
		if person.Location != "" {
			b.WriteString(" in " + person.Location)
		}
		if person.Info != "" {
			b.WriteString("\n  " + person.Info)
		}
		b.WriteString("\n\n")
	}
}

func renderInterestAnalysis(b *strings.Builder, people []graph.Person) {
	clusters := clusterInterests(people)

	b.WriteString("\n🔗 **Common Interests Analysis:**\n")
	common := 0
	for _, cluster := range clusters {
		if len(cluster.People) > 1 {
			fmt.Fprintf(b, "• **%s**: %s\n", titleCase(cluster.Category), strings.Join(cluster.People, ", "))
			common++
		}
	}
	if common == 0 {
		b.WriteString("• No common interests found among multiple people\n")
	}

	b.WriteString("\n🎯 **Unique Interests:**\n")
	for _, cluster := range clusters {
		if len(cluster.People) == 1 {
			fmt.Fprintf(b, "• **%s**: %s\n", titleCase(cluster.Category), cluster.People[0])
		}
	}
}

func writeConfirmation(action string) string {
	switch action {
	case ActionUpdatePerson:
		return "Successfully updated the database!"
	case ActionDeletePerson, ActionDeleteRelationship:
		return "Successfully deleted from database!"
	default:
		return "Successfully added to database!"
	}
}

// formatBirthday renders the heterogeneous birthday value as month/day/year.
// Values arrive as plain strings, driver dates, or {year, month, day} maps
// whose components may themselves be numbers or {low, high} integer maps.
func formatBirthday(value any) (string, bool) {
	switch bd := value.(type) {
	case nil:
		return "", false
	case string:
		if bd == "" {
			return "", false
		}
		return bd, true
	case dbtype.Date:
		t := bd.Time()
		return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year()), true
	case time.Time:
		return fmt.Sprintf("%d/%d/%d", int(bd.Month()), bd.Day(), bd.Year()), true
	case map[string]any:
		year, yearOK := birthdayComponent(bd["year"])
		month, monthOK := birthdayComponent(bd["month"])
		day, dayOK := birthdayComponent(bd["day"])
		if yearOK && monthOK && dayOK {
			return fmt.Sprintf("%d/%d/%d", month, day, year), true
		}
		return "", false
	}
	return "", false
}

func birthdayComponent(value any) (int64, bool) {
	switch n := value.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	case map[string]any:
		// {low, high} integer encoding
		return birthdayComponent(n["low"])
	}
	return 0, false
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
