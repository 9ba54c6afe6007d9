// Package domain defines the core domain models for the chat relay.
package domain

// RoleConfig is a named persona whose system prompt prefixes every
// completion request made on its behalf. Immutable once handed out of the
// registry; replaced wholesale on redefinition.
type RoleConfig struct {
	Name         string `json:"name"`
	SystemPrompt string `json:"system_prompt"`
	Description  string `json:"description,omitempty"`
}
