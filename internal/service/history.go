package service

import (
	"context"

	"github.com/weitseng/rolechat/internal/archive"
	"github.com/weitseng/rolechat/internal/domain"
)

// GetHistory returns a session's live history and active role.
func (s *Service) GetHistory(sessionID string) (domain.HistoryResult, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return domain.HistoryResult{}, err
	}
	return domain.HistoryResult{
		Role:    sess.Role,
		History: sess.History,
	}, nil
}

// ClearHistory empties a session's history, keeping its role assignment.
func (s *Service) ClearHistory(sessionID string) error {
	return s.sessions.Clear(sessionID)
}

// GetTranscript reads the archived transcript of a session.
func (s *Service) GetTranscript(ctx context.Context, sessionID string, limit int) ([]archive.Entry, error) {
	if s.archive == nil {
		return nil, nil
	}
	return s.archive.GetTranscript(ctx, sessionID, limit)
}
