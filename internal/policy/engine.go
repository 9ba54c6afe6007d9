// Package policy gates prompt-affecting operations (system-prompt
// overrides, custom role definitions) through an OPA policy.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/rego"
)

// Engine is the OPA policy engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.prompt_policy.decision"),
		rego.Module("prompt_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Input describes the operation being gated.
type Input struct {
	Action       string `json:"action"` // override_system_prompt, define_role
	RoleName     string `json:"role_name,omitempty"`
	SystemPrompt string `json:"system_prompt"`
}

// Evaluate returns the policy decision: "allow" or "block". Absent
// results default to allow so a policy only has to name what it forbids.
func (e *Engine) Evaluate(ctx context.Context, input Input) (string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return "allow", nil
	}
	if s, ok := results[0].Expressions[0].Value.(string); ok {
		return s, nil
	}
	return "allow", nil
}

// DefaultPolicy blocks empty and oversized prompts; everything else is
// allowed.
const DefaultPolicy = `
package prompt_policy

import rego.v1

default decision := "allow"

decision := "block" if {
	trim_space(input.system_prompt) == ""
}

decision := "block" if {
	count(input.system_prompt) > 8000
}
`
