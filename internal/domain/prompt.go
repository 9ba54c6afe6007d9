package domain

// RetrievedSnippet is a short passage returned by the vector-search
// collaborator. Ephemeral; produced per request and never stored.
type RetrievedSnippet struct {
	Text string `json:"text"`
}

// PromptMessage is one entry of the message sequence sent to the
// completion service.
type PromptMessage struct {
	Role    string `json:"role"` // system, user, assistant
	Content string `json:"content"`
}

// ComposedPrompt is the final ordered message sequence for one completion
// request: system prompt first, history verbatim, new user message last.
type ComposedPrompt []PromptMessage
