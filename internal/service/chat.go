package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/weitseng/rolechat/internal/adapter/llm"
	"github.com/weitseng/rolechat/internal/compose"
	"github.com/weitseng/rolechat/internal/domain"
	"github.com/weitseng/rolechat/internal/policy"
)

// DefaultSessionID is used when the chat API caller supplies no id.
const DefaultSessionID = "default"

// Chat handles one JSON chat request: resolve the session, retrieve
// context, compose the prompt, call the completion service and record the
// exchange. A completion failure leaves the session history untouched.
func (s *Service) Chat(ctx context.Context, req domain.ChatRequest) (domain.ChatResult, error) {
	if strings.TrimSpace(req.Message) == "" {
		return domain.ChatResult{}, fmt.Errorf("message must not be empty")
	}
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = DefaultSessionID
	}

	if req.SystemPrompt != "" {
		if err := s.checkPolicy(ctx, policy.Input{
			Action:       "override_system_prompt",
			SystemPrompt: req.SystemPrompt,
		}); err != nil {
			return domain.ChatResult{}, err
		}
	}

	sess, _ := s.sessions.GetOrCreate(sessionID, s.defaultRole)

	snippets := s.retriever.Retrieve(ctx, req.Message, s.config.RetrieveLimit)

	prompt, roleName := s.composer.Compose(sess, snippets, req.Message, compose.Options{
		SystemPrompt: req.SystemPrompt,
		RoleName:     req.Role,
	})

	reply, err := s.complete(ctx, prompt)
	if err != nil {
		log.Printf("ERROR: completion failed for session %s: %v", sessionID, err)
		return domain.ChatResult{}, domain.NewCompletionError(err)
	}

	updated, err := s.sessions.AppendExchange(sessionID, req.Message, reply)
	if err != nil {
		return domain.ChatResult{}, fmt.Errorf("failed to record exchange: %w", err)
	}

	s.archiveExchange(ctx, sessionID, roleName, req.Message, reply)

	return domain.ChatResult{
		Reply:             reply,
		SessionID:         sessionID,
		CurrentRole:       roleName,
		ChatHistoryLength: updated.PairCount(),
	}, nil
}

// complete maps the composed prompt onto the completion request and
// extracts the reply text.
func (s *Service) complete(ctx context.Context, prompt domain.ComposedPrompt) (string, error) {
	messages := make([]llm.ChatMessage, len(prompt))
	for i, msg := range prompt {
		messages[i] = llm.ChatMessage{Role: msg.Role, Content: msg.Content}
	}

	maxTokens := s.config.LLMMaxTokens
	temperature := s.config.LLMTemperature
	resp, err := s.llmClient.CreateChatCompletion(ctx, &llm.ChatCompletionRequest{
		Model:       s.config.LLMModel,
		Messages:    messages,
		MaxTokens:   &maxTokens,
		Temperature: &temperature,
	})
	if err != nil {
		return "", err
	}
	return resp.ReplyText()
}

// archiveExchange persists the exchange best-effort; the reply already
// happened, so failures only warrant a warning.
func (s *Service) archiveExchange(ctx context.Context, sessionID, roleName, userText, assistantText string) {
	if s.archive == nil {
		return
	}
	if err := s.archive.RecordExchange(ctx, sessionID, roleName, userText, assistantText); err != nil {
		log.Printf("WARN: failed to archive exchange for session %s: %v", sessionID, err)
	}
}

func (s *Service) checkPolicy(ctx context.Context, input policy.Input) error {
	if s.policy == nil {
		return nil
	}
	decision, err := s.policy.Evaluate(ctx, input)
	if err != nil {
		return fmt.Errorf("policy evaluation failed: %w", err)
	}
	if decision != "allow" {
		return fmt.Errorf("%w: %s", domain.ErrPolicyBlocked, input.Action)
	}
	return nil
}
