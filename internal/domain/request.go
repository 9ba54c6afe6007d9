package domain

// ChatRequest is the JSON chat API request body.
type ChatRequest struct {
	Message      string `json:"message"`
	SessionID    string `json:"session_id,omitempty"`
	Role         string `json:"role,omitempty"`
	SystemPrompt string `json:"system_prompt,omitempty"`
}

// ChatResult is what the orchestrator returns for one handled message.
type ChatResult struct {
	Reply             string `json:"reply"`
	SessionID         string `json:"session_id"`
	CurrentRole       string `json:"current_role"`
	ChatHistoryLength int    `json:"chat_history_length"`
}

// DefineRoleRequest is the body for defining a custom role. SessionID is
// optional; when present the new role is also assigned to that session.
type DefineRoleRequest struct {
	SessionID    string `json:"session_id,omitempty"`
	Name         string `json:"name"`
	SystemPrompt string `json:"system_prompt"`
	Description  string `json:"description,omitempty"`
}

// SetRoleRequest is the body for assigning an existing role to a session.
type SetRoleRequest struct {
	Role string `json:"role"`
}

// RoleChangeResult confirms a role assignment or definition.
type RoleChangeResult struct {
	Message string     `json:"message"`
	Role    RoleConfig `json:"role_config"`
}

// HistoryResult is the live history of one session.
type HistoryResult struct {
	Role    RoleConfig `json:"role_config"`
	History []Turn     `json:"history"`
}
