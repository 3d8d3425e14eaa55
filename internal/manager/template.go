package manager

import "strings"

// queryPlaceholder marks where the user text is substituted in safetyTemplate.
const queryPlaceholder = "{query}"

// safetyTemplate frames every user query for a young audience.
const safetyTemplate = `
IMPORTANT INSTRUCTION: The following content may involve or be for children.
You must respond using sanitized, simple language appropriate for young audiences.
Ensure all content is educational, safe, and easily understandable.
Avoid complex terminology and keep explanations straightforward.

User query: {query}
`

// WrapPrompt substitutes query verbatim into the safety template. The query is
// not escaped and placeholders inside it are not expanded.
func WrapPrompt(query string) string {
	return strings.Replace(safetyTemplate, queryPlaceholder, query, 1)
}

// PromptPreview returns at most n runes of prompt for logging.
func PromptPreview(prompt string, n int) string {
	r := []rune(prompt)
	if len(r) <= n {
		return prompt
	}
	return string(r[:n]) + "..."
}
