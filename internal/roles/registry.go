// Package roles maintains the catalog of chat personas.
package roles

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/weitseng/rolechat/internal/domain"
)

// Registry maps role names to their configurations. Built-in roles are
// seeded at construction; additional roles come from an optional catalog
// file or from Define at runtime. Roles are never deleted, only replaced.
type Registry struct {
	mu    sync.RWMutex
	roles map[string]domain.RoleConfig
	order []string
}

// NewRegistry creates a registry seeded with the built-in personas.
func NewRegistry() *Registry {
	r := &Registry{roles: make(map[string]domain.RoleConfig)}
	for _, cfg := range builtinRoles {
		r.put(cfg)
	}
	return r
}

// LoadFile merges roles from a YAML catalog file into the registry,
// overwriting built-ins on name collision.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read roles file: %w", err)
	}

	var doc struct {
		Roles []struct {
			Name         string `yaml:"name"`
			SystemPrompt string `yaml:"system_prompt"`
			Description  string `yaml:"description"`
		} `yaml:"roles"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse roles file: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entry := range doc.Roles {
		cfg := domain.RoleConfig{
			Name:         strings.TrimSpace(entry.Name),
			SystemPrompt: entry.SystemPrompt,
			Description:  entry.Description,
		}
		if cfg.Name == "" || strings.TrimSpace(cfg.SystemPrompt) == "" {
			return fmt.Errorf("roles file: entry %q missing name or system_prompt", entry.Name)
		}
		r.put(cfg)
	}
	return nil
}

// Get returns the role registered under name.
func (r *Registry) Get(name string) (domain.RoleConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.roles[name]
	if !ok {
		return domain.RoleConfig{}, fmt.Errorf("%w: %s", domain.ErrRoleNotFound, name)
	}
	return cfg, nil
}

// List returns all roles in registration order.
func (r *Registry) List() []domain.RoleConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.RoleConfig, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.roles[name])
	}
	return out
}

// Names returns the registered role names, sorted for display.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	sort.Strings(out)
	return out
}

// Define upserts a role by name. The name and system prompt must be
// non-empty; everything else about the configuration is the caller's
// business.
func (r *Registry) Define(cfg domain.RoleConfig) (domain.RoleConfig, error) {
	cfg.Name = strings.TrimSpace(cfg.Name)
	if cfg.Name == "" {
		return domain.RoleConfig{}, fmt.Errorf("role name must not be empty")
	}
	if strings.TrimSpace(cfg.SystemPrompt) == "" {
		return domain.RoleConfig{}, fmt.Errorf("role %q: system prompt must not be empty", cfg.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.put(cfg)
	return cfg, nil
}

// put must be called with mu held (or before the registry is shared).
func (r *Registry) put(cfg domain.RoleConfig) {
	if _, exists := r.roles[cfg.Name]; !exists {
		r.order = append(r.order, cfg.Name)
	}
	r.roles[cfg.Name] = cfg
}
