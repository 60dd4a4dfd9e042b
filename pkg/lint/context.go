package lint

import (
	"context"

	"github.com/yaklabco/razorlint/pkg/config"
	"github.com/yaklabco/razorlint/pkg/syntax"
)

// RuleContext is what a rule sees for one template. The engine builds a
// fresh one per rule and file, so Ctx is carried as a field.
type RuleContext struct {
	Ctx  context.Context
	File *File
	Root *syntax.Block // File.Root, or nil

	Config     *config.Config
	RuleConfig *config.RuleConfig // nil when the rule has no entry
	Registry   *Registry

	// Nodes is shared by all rules run against the same file.
	Nodes *NodeCache
}

// NewRuleContext builds a RuleContext with its own NodeCache. file may be
// nil.
func NewRuleContext(ctx context.Context, file *File, cfg *config.Config, ruleCfg *config.RuleConfig) *RuleContext {
	rc := &RuleContext{Ctx: ctx, File: file, Config: cfg, RuleConfig: ruleCfg}
	if file != nil {
		rc.Root = file.Root
	}
	rc.Nodes = NewNodeCache(rc.Root)
	return rc
}

// Cancelled reports whether Ctx is done.
func (rc *RuleContext) Cancelled() bool {
	return rc.Ctx.Err() != nil
}

// Option returns the raw value of a rule option, or def.
func (rc *RuleContext) Option(key string, def any) any {
	if rc.RuleConfig == nil {
		return def
	}
	if v, ok := rc.RuleConfig.Options[key]; ok {
		return v
	}
	return def
}

func optionAs[T any](rc *RuleContext, key string, def T) T {
	if v, ok := rc.Option(key, def).(T); ok {
		return v
	}
	return def
}

// OptionInt accepts float64 too, since JSON numbers decode that way.
func (rc *RuleContext) OptionInt(key string, def int) int {
	if f, ok := rc.Option(key, def).(float64); ok {
		return int(f)
	}
	return optionAs(rc, key, def)
}

func (rc *RuleContext) OptionString(key, def string) string {
	return optionAs(rc, key, def)
}

func (rc *RuleContext) OptionBool(key string, def bool) bool {
	return optionAs(rc, key, def)
}

// OptionStringSlice also accepts the []any that YAML lists decode to,
// keeping only the string items. A list with no strings yields def.
func (rc *RuleContext) OptionStringSlice(key string, def []string) []string {
	items, ok := rc.Option(key, nil).([]any)
	if !ok {
		return optionAs(rc, key, def)
	}
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// Blocks returns the blocks of the given kind in document order.
// The returned slice is shared; do not modify it.
func (rc *RuleContext) Blocks(kind syntax.BlockKind) []*syntax.Block {
	if rc.Root == nil {
		return nil
	}
	return rc.nodes().Blocks(kind)
}

// Spans returns the leaf spans of the tree in source order.
// The returned slice is shared; do not modify it.
func (rc *RuleContext) Spans() []*syntax.Span {
	if rc.Root == nil {
		return nil
	}
	return rc.nodes().Spans()
}

func (rc *RuleContext) nodes() *NodeCache {
	if rc.Nodes == nil {
		rc.Nodes = NewNodeCache(rc.Root)
	}
	return rc.Nodes
}
