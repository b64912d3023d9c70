package assistant

import "strings"

// When the model neither called a tool nor produced usable text, the reply
// comes from an ordered rule list: first match wins, and if nothing matches
// the model's own text passes through unchanged.

type fallbackRule struct {
	name  string
	match func(userMessage, modelText string) bool
	reply string
}

var greetingKeywords = []string{"hello", "hi", "hey", "good morning", "good afternoon", "good evening"}

const greetingReply = `👋 Hello! I'm your personal relationship database assistant. I can help you:

• Find information about people in your database
• Add new people and their details
• Search for people with similar interests
• Analyze relationships and connections

Try asking me something like:
• "What is Alice's info?"
• "Who has similar interests?"
• "Add Maria, she's 25 and loves cooking"`

const thanksReply = "You're welcome! I'm here to help you manage your personal relationships database. Is there anything else you'd like to know about your contacts?"

const unrecognizedReply = `I'm not sure how to help with that. I specialize in managing your personal relationship database. You can ask me to:

• Find people: "What is [name]'s info?"
• Add people: "Add [name], they're [age] and work as [job]"
• Find interests: "Who likes [hobby]?"
• Analyze relationships: "Who has similar interests?"`

var fallbackRules = []fallbackRule{
	{
		name: "greeting",
		match: func(userMessage, _ string) bool {
			lower := strings.ToLower(userMessage)
			for _, greeting := range greetingKeywords {
				if strings.Contains(lower, greeting) {
					return true
				}
			}
			return false
		},
		reply: greetingReply,
	},
	{
		name: "thanks",
		match: func(userMessage, _ string) bool {
			return strings.Contains(strings.ToLower(userMessage), "thank")
		},
		reply: thanksReply,
	},
	{
		name: "unrecognized",
		match: func(_, modelText string) bool {
			trimmed := strings.TrimSpace(modelText)
			return trimmed == "" || trimmed == "[]" || trimmed == "{}"
		},
		reply: unrecognizedReply,
	},
}

func fallbackReply(userMessage, modelText string) string {
	for _, rule := range fallbackRules {
		if rule.match(userMessage, modelText) {
			return rule.reply
		}
	}
	return modelText
}
