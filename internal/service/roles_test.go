package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/weitseng/rolechat/internal/domain"
)

func TestSetRoleClearsHistory(t *testing.T) {
	fake := &fakeCompletion{reply: "ok"}
	svc := newTestService(t, fake, nil)
	ctx := context.Background()

	if _, err := svc.SetRole("s1", "技術顧問"); err != nil {
		t.Fatalf("SetRole failed: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := svc.Chat(ctx, domain.ChatRequest{Message: "q", SessionID: "s1"}); err != nil {
			t.Fatalf("Chat failed: %v", err)
		}
	}
	hist, _ := svc.GetHistory("s1")
	if len(hist.History) != 4 {
		t.Fatalf("expected 4 turns before switch, got %d", len(hist.History))
	}

	result, err := svc.SetRole("s1", "客服代表")
	if err != nil {
		t.Fatalf("SetRole failed: %v", err)
	}
	if result.Role.Name != "客服代表" || !strings.Contains(result.Message, "客服代表") {
		t.Fatalf("unexpected result: %+v", result)
	}

	hist, _ = svc.GetHistory("s1")
	if len(hist.History) != 0 {
		t.Fatalf("expected empty history after switch, got %d", len(hist.History))
	}
	if hist.Role.Name != "客服代表" {
		t.Fatalf("expected active role 客服代表, got %q", hist.Role.Name)
	}
}

func TestSetRoleUnknownLeavesSessionUnchanged(t *testing.T) {
	svc := newTestService(t, &fakeCompletion{reply: "ok"}, nil)
	ctx := context.Background()

	if _, err := svc.Chat(ctx, domain.ChatRequest{Message: "q", SessionID: "s1"}); err != nil {
		t.Fatalf("Chat failed: %v", err)
	}

	_, err := svc.SetRole("s1", "不存在")
	if !errors.Is(err, domain.ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}

	hist, _ := svc.GetHistory("s1")
	if len(hist.History) != 2 || hist.Role.Name != "客服代表" {
		t.Fatalf("session must be unchanged: %+v", hist)
	}
}

func TestDefineRoleAndAssign(t *testing.T) {
	svc := newTestService(t, &fakeCompletion{reply: "ok"}, nil)

	result, err := svc.DefineRole(context.Background(), domain.DefineRoleRequest{
		SessionID:    "s1",
		Name:         "翻譯員",
		SystemPrompt: "你是翻譯員。",
		Description:  "精準",
	})
	if err != nil {
		t.Fatalf("DefineRole failed: %v", err)
	}
	if result.Role.Name != "翻譯員" {
		t.Fatalf("unexpected role: %+v", result.Role)
	}

	hist, err := svc.GetHistory("s1")
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if hist.Role.Name != "翻譯員" || len(hist.History) != 0 {
		t.Fatalf("expected new role assigned with empty history: %+v", hist)
	}

	if len(svc.ListRoles()) != 3 {
		t.Fatalf("expected 3 roles, got %d", len(svc.ListRoles()))
	}
}

func TestDefineRoleWithoutSessionOnlyRegisters(t *testing.T) {
	svc := newTestService(t, &fakeCompletion{reply: "ok"}, nil)

	if _, err := svc.DefineRole(context.Background(), domain.DefineRoleRequest{
		Name:         "詩人",
		SystemPrompt: "你是詩人。",
	}); err != nil {
		t.Fatalf("DefineRole failed: %v", err)
	}

	if _, err := svc.GetHistory("詩人"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("no session should be created: %v", err)
	}
}

func TestDefineRoleBlockedByPolicy(t *testing.T) {
	svc := newTestService(t, &fakeCompletion{reply: "ok"}, nil)

	_, err := svc.DefineRole(context.Background(), domain.DefineRoleRequest{
		Name:         "超長",
		SystemPrompt: strings.Repeat("字", 9000),
	})
	if !errors.Is(err, domain.ErrPolicyBlocked) {
		t.Fatalf("expected ErrPolicyBlocked, got %v", err)
	}
}
