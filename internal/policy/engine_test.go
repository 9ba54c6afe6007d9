package policy

import (
	"context"
	"strings"
	"testing"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(context.Background(), DefaultPolicy)
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	return engine
}

func TestDefaultPolicyAllowsNormalPrompt(t *testing.T) {
	engine := newTestEngine(t)

	decision, err := engine.Evaluate(context.Background(), Input{
		Action:       "define_role",
		RoleName:     "翻譯員",
		SystemPrompt: "你是翻譯員。",
	})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if decision != "allow" {
		t.Fatalf("expected allow, got %q", decision)
	}
}

func TestDefaultPolicyBlocksEmptyPrompt(t *testing.T) {
	engine := newTestEngine(t)

	decision, err := engine.Evaluate(context.Background(), Input{
		Action:       "override_system_prompt",
		SystemPrompt: "   ",
	})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if decision != "block" {
		t.Fatalf("expected block, got %q", decision)
	}
}

func TestDefaultPolicyBlocksOversizedPrompt(t *testing.T) {
	engine := newTestEngine(t)

	decision, err := engine.Evaluate(context.Background(), Input{
		Action:       "define_role",
		RoleName:     "x",
		SystemPrompt: strings.Repeat("很長的提示詞", 2000),
	})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if decision != "block" {
		t.Fatalf("expected block, got %q", decision)
	}
}
