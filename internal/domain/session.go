package domain

import "time"

// Speaker identifies who produced a turn.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Turn is a single message in a session's history. Turns are always
// appended in user/assistant pairs and never mutated afterwards.
type Turn struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// Session is the conversational state for one externally supplied
// identifier. Role is the active persona; RoleAssigned distinguishes an
// explicit assignment from the lazily applied default. History holds an
// even number of turns, bounded by the store's configured maximum.
type Session struct {
	ID           string     `json:"session_id"`
	Role         RoleConfig `json:"role"`
	RoleAssigned bool       `json:"role_assigned"`
	History      []Turn     `json:"history"`
	CreatedAt    time.Time  `json:"created_at"`
}

// PairCount reports the number of completed user/assistant exchanges.
func (s Session) PairCount() int {
	return len(s.History) / 2
}
