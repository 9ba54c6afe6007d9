package service

import (
	"context"
	"fmt"

	"github.com/weitseng/rolechat/internal/domain"
	"github.com/weitseng/rolechat/internal/policy"
)

// ListRoles returns the full role catalog.
func (s *Service) ListRoles() []domain.RoleConfig {
	return s.registry.List()
}

// SetRole assigns a registered role to a session, clearing its history.
// Unknown role names surface as domain.ErrRoleNotFound; the session is
// left untouched in that case.
func (s *Service) SetRole(sessionID, roleName string) (domain.RoleChangeResult, error) {
	cfg, err := s.registry.Get(roleName)
	if err != nil {
		return domain.RoleChangeResult{}, err
	}

	s.sessions.SetRole(sessionID, cfg)
	return domain.RoleChangeResult{
		Message: roleSwitchedMessage(cfg),
		Role:    cfg,
	}, nil
}

// DefineRole registers (or replaces) a custom role after the policy gate
// clears it. When the request names a session, the new role is assigned
// to it in the same call.
func (s *Service) DefineRole(ctx context.Context, req domain.DefineRoleRequest) (domain.RoleChangeResult, error) {
	if err := s.checkPolicy(ctx, policy.Input{
		Action:       "define_role",
		RoleName:     req.Name,
		SystemPrompt: req.SystemPrompt,
	}); err != nil {
		return domain.RoleChangeResult{}, err
	}

	cfg, err := s.registry.Define(domain.RoleConfig{
		Name:         req.Name,
		SystemPrompt: req.SystemPrompt,
		Description:  req.Description,
	})
	if err != nil {
		return domain.RoleChangeResult{}, err
	}

	msg := fmt.Sprintf("已建立自訂角色「%s」。", cfg.Name)
	if req.SessionID != "" {
		s.sessions.SetRole(req.SessionID, cfg)
		msg = roleSwitchedMessage(cfg)
	}
	return domain.RoleChangeResult{Message: msg, Role: cfg}, nil
}

func roleSwitchedMessage(cfg domain.RoleConfig) string {
	return fmt.Sprintf("已切換為「%s」角色！\n個性：%s\n\n請開始對話吧！", cfg.Name, cfg.Description)
}
