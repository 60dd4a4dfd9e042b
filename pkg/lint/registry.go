package lint

import (
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/yaklabco/razorlint/pkg/config"
)

// Registry is a concurrency-safe set of tree rules addressable by ID or
// by name.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Rule   // by ID
	names map[string]string // name to ID
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{rules: map[string]Rule{}, names: map[string]string{}}
}

// Register adds rule, replacing any rule with the same ID along with its
// name.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := rule.ID()
	if prev, ok := r.rules[id]; ok {
		delete(r.names, prev.Name())
	}
	r.rules[id] = rule
	r.names[rule.Name()] = id
}

// Get looks key up as an ID and then as a name.
func (r *Registry) Get(key string) (Rule, bool) {
	if rule, ok := r.GetByID(key); ok {
		return rule, true
	}
	return r.GetByName(key)
}

func (r *Registry) GetByID(id string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[id]
	return rule, ok
}

func (r *Registry) GetByName(name string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.names[name]
	if !ok {
		return nil, false
	}
	return r.rules[id], true
}

// Resolve is Get with case-insensitive IDs, so "rzl001" finds RZL001. It
// also returns the canonical ID.
func (r *Registry) Resolve(key string) (string, Rule, bool) {
	rule, ok := r.Get(key)
	if !ok {
		rule, ok = r.GetByID(strings.ToUpper(key))
	}
	if !ok {
		return "", nil, false
	}
	return rule.ID(), rule, true
}

// IDs returns the registered IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.rules))
}

// Rules returns the registered rules ordered by ID.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Rule, 0, len(r.rules))
	for _, id := range slices.Sorted(maps.Keys(r.rules)) {
		out = append(out, r.rules[id])
	}
	return out
}

// Infos adapts Rules for config.GenerateTemplate.
func (r *Registry) Infos() []config.RuleInfo {
	var infos []config.RuleInfo
	for _, rule := range r.Rules() {
		infos = append(infos, config.RuleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Enabled:     rule.DefaultEnabled(),
			Severity:    rule.DefaultSeverity(),
			Tags:        rule.Tags(),
		})
	}
	return infos
}

// DefaultRegistry holds the built-in rules, which register themselves from
// the rules package.
//
//nolint:gochecknoglobals // Rules self-register at init.
var DefaultRegistry = NewRegistry()
