// Package service implements the chat orchestrator: the use-case layer
// driving session resolution, context retrieval, prompt composition, the
// completion call and history bookkeeping.
package service

import (
	"fmt"

	"github.com/weitseng/rolechat/internal/adapter/llm"
	"github.com/weitseng/rolechat/internal/adapter/search"
	"github.com/weitseng/rolechat/internal/archive"
	"github.com/weitseng/rolechat/internal/compose"
	"github.com/weitseng/rolechat/internal/config"
	"github.com/weitseng/rolechat/internal/domain"
	"github.com/weitseng/rolechat/internal/policy"
	"github.com/weitseng/rolechat/internal/roles"
	"github.com/weitseng/rolechat/internal/session"
)

type Service struct {
	registry    *roles.Registry
	sessions    *session.Store
	retriever   *search.Retriever
	llmClient   llm.CompletionClient
	archive     *archive.Store
	policy      *policy.Engine
	composer    *compose.Composer
	config      *config.Config
	defaultRole domain.RoleConfig
}

// New wires the orchestrator. The configured default role must resolve in
// the registry; refusing to start beats serving every session a zero
// persona.
func New(registry *roles.Registry, sessions *session.Store, retriever *search.Retriever, llmClient llm.CompletionClient, archiveStore *archive.Store, policyEngine *policy.Engine, cfg *config.Config) (*Service, error) {
	defaultRole, err := registry.Get(cfg.DefaultRole)
	if err != nil {
		return nil, fmt.Errorf("default role %q is not registered: %w", cfg.DefaultRole, err)
	}

	return &Service{
		registry:    registry,
		sessions:    sessions,
		retriever:   retriever,
		llmClient:   llmClient,
		archive:     archiveStore,
		policy:      policyEngine,
		composer:    compose.New(registry),
		config:      cfg,
		defaultRole: defaultRole,
	}, nil
}

// DefaultRole returns the persona applied to sessions with no explicit
// assignment.
func (s *Service) DefaultRole() domain.RoleConfig {
	return s.defaultRole
}
