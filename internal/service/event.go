package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/weitseng/rolechat/internal/compose"
	"github.com/weitseng/rolechat/internal/domain"
)

// Webhook command tokens.
const (
	CommandRole  = "/角色"
	CommandReset = "/重置"
)

// Scripted replies for non-text webhook messages.
const (
	ReplySticker = "收到你的貼圖了!"
	ReplyImage   = "收到你的圖片囉！請用文字簡單敘述圖片的內容，能幫助我能更快速的理解您的問題喔!"
	ReplyVideo   = "收到你的影片了！請用文字簡單敘述影片的內容，能幫助我能更快速的理解您的問題喔!"
)

// HandleEvent processes one webhook message event and returns the reply
// text. Role-switch and reset commands answer locally; a first contact
// gets the scripted welcome; everything else runs the full chat pipeline.
func (s *Service) HandleEvent(ctx context.Context, userID, text string) (string, error) {
	if strings.HasPrefix(text, CommandRole) {
		return s.handleRoleCommand(userID, text), nil
	}
	if text == CommandReset {
		return s.handleResetCommand(userID), nil
	}

	sess, created := s.sessions.GetOrCreate(userID, s.defaultRole)
	if created {
		return s.welcomeMessage(sess.Role), nil
	}

	snippets := s.retriever.Retrieve(ctx, text, s.config.RetrieveLimit)
	prompt, roleName := s.composer.Compose(sess, snippets, text, compose.Options{})

	reply, err := s.complete(ctx, prompt)
	if err != nil {
		log.Printf("ERROR: completion failed for user %s: %v", userID, err)
		return "", domain.NewCompletionError(err)
	}

	if _, err := s.sessions.AppendExchange(userID, text, reply); err != nil {
		return "", fmt.Errorf("failed to record exchange: %w", err)
	}
	s.archiveExchange(ctx, userID, roleName, text, reply)

	return reply, nil
}

// handleRoleCommand answers a /角色 command. Malformed commands and
// unknown role names get the help text, never an error.
func (s *Service) handleRoleCommand(userID, text string) string {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return fmt.Sprintf("請指定角色名稱。\n\n可用角色：%s\n\n使用方式：%s 角色名稱",
			strings.Join(s.registry.Names(), "、"), CommandRole)
	}

	roleName := fields[1]
	result, err := s.SetRole(userID, roleName)
	if err != nil {
		return fmt.Sprintf("找不到「%s」角色。\n\n可用角色：%s\n\n使用方式：%s 角色名稱",
			roleName, strings.Join(s.registry.Names(), "、"), CommandRole)
	}
	return result.Message
}

// handleResetCommand clears the user's history. Resetting a session that
// never chatted is fine.
func (s *Service) handleResetCommand(userID string) string {
	if err := s.sessions.Clear(userID); err != nil {
		log.Printf("WARN: reset for unknown session %s: %v", userID, err)
	}
	return fmt.Sprintf("對話已重置！請重新開始對話。\n\n💡 小提示：\n• 輸入 %s 角色名稱 來切換角色\n• 輸入 %s 來清除對話歷史",
		CommandRole, CommandReset)
}

func (s *Service) welcomeMessage(role domain.RoleConfig) string {
	return fmt.Sprintf(
		"Hi 👋 你今天過得如何！\n\n目前角色：%s\n個性：%s\n\n💡 使用指令：\n• %s 角色名稱 - 切換角色\n• %s - 清除對話歷史\n\n現在開始對話吧！",
		role.Name, role.Description, CommandRole, CommandReset)
}
