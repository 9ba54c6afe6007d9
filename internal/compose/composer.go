// Package compose builds the message sequence sent to the completion
// service for one request.
package compose

import (
	"strings"

	"github.com/weitseng/rolechat/internal/domain"
	"github.com/weitseng/rolechat/internal/roles"
)

// Snippet block delimiters. Retrieved context is appended to the system
// prompt under a fixed header, snippets joined in retrieval order.
const (
	snippetHeader    = "\n\n---\n參考資料（依相關性排序）：\n"
	snippetSeparator = "\n---\n"
)

// Options carries the request-level prompt overrides. Both are ignored
// for sessions whose role was explicitly assigned.
type Options struct {
	// SystemPrompt replaces the system prompt outright.
	SystemPrompt string
	// RoleName selects a registered role by name; unknown names fall
	// through to the session's default.
	RoleName string
}

// Composer deterministically assembles prompts: resolved system prompt
// first, session history verbatim and in order, the new user message
// last. Nothing is summarized or reordered.
type Composer struct {
	registry *roles.Registry
}

// New creates a Composer resolving role names against registry.
func New(registry *roles.Registry) *Composer {
	return &Composer{registry: registry}
}

// Compose builds the prompt for one request and reports the role name the
// system prompt was resolved from ("custom" for raw overrides).
func (c *Composer) Compose(sess domain.Session, snippets []domain.RetrievedSnippet, userMessage string, opts Options) (domain.ComposedPrompt, string) {
	system, roleName := c.resolveSystemPrompt(sess, opts)

	if len(snippets) > 0 {
		texts := make([]string, len(snippets))
		for i, sn := range snippets {
			texts[i] = sn.Text
		}
		system += snippetHeader + strings.Join(texts, snippetSeparator)
	}

	prompt := make(domain.ComposedPrompt, 0, len(sess.History)+2)
	prompt = append(prompt, domain.PromptMessage{Role: "system", Content: system})
	for _, turn := range sess.History {
		prompt = append(prompt, domain.PromptMessage{Role: string(turn.Speaker), Content: turn.Text})
	}
	prompt = append(prompt, domain.PromptMessage{Role: "user", Content: userMessage})
	return prompt, roleName
}

// resolveSystemPrompt applies the priority chain: explicit session role,
// request system-prompt override, request role name, session default.
func (c *Composer) resolveSystemPrompt(sess domain.Session, opts Options) (string, string) {
	if sess.RoleAssigned {
		return sess.Role.SystemPrompt, sess.Role.Name
	}
	if opts.SystemPrompt != "" {
		return opts.SystemPrompt, "custom"
	}
	if opts.RoleName != "" {
		if cfg, err := c.registry.Get(opts.RoleName); err == nil {
			return cfg.SystemPrompt, cfg.Name
		}
	}
	return sess.Role.SystemPrompt, sess.Role.Name
}
