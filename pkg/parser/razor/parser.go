// Package razor adapts the template parser to the lint.Parser interface.
package razor

import (
	"context"
	"fmt"

	"github.com/yaklabco/razorlint/pkg/config"
	"github.com/yaklabco/razorlint/pkg/lint"
	"github.com/yaklabco/razorlint/pkg/parser"
	"github.com/yaklabco/razorlint/pkg/source"
)

// Parser implements lint.Parser. It is safe for concurrent use.
type Parser struct {
	opts parser.Options
}

// New creates a parser with the given options.
func New(opts parser.Options) *Parser {
	return &Parser{opts: opts}
}

// NewFromConfig creates a parser configured from cfg.
func NewFromConfig(cfg *config.Config) (*Parser, error) {
	opts, err := OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return New(opts), nil
}

// Options returns the parse options.
func (p *Parser) Options() parser.Options {
	return p.opts
}

// Parse converts raw template bytes into a lint.File.
//
// Malformed templates produce diagnostics, never errors. An error is
// returned only when ctx is cancelled or the parser fails internally.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (file *lint.File, err error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			file = nil
			err = fmt.Errorf("%w: %s: %v", lint.ErrParseFailure, path, r)
		}
	}()

	doc := source.NewDocument(path, string(content))
	result := parser.Parse(doc, p.opts)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	return &lint.File{
		Path:        path,
		Content:     copyContent(content),
		Document:    doc,
		Root:        result.Root,
		Diagnostics: result.Diagnostics,
	}, nil
}

// OptionsFromConfig converts configuration to parse options. It fails on
// an unknown language version or a malformed directive declaration.
func OptionsFromConfig(cfg *config.Config) (parser.Options, error) {
	opts := parser.DefaultOptions()
	if cfg == nil {
		return opts, nil
	}

	version, err := parser.ParseVersion(cfg.LanguageVersion)
	if err != nil {
		return opts, fmt.Errorf("language_version: %w", err)
	}
	opts.LanguageVersion = version
	opts.DesignTime = cfg.DesignTime

	for i, dc := range cfg.Directives {
		desc, err := DirectiveFromConfig(dc)
		if err != nil {
			return opts, fmt.Errorf("directives[%d]: %w", i, err)
		}
		opts.Directives = append(opts.Directives, desc)
	}

	return opts, nil
}

// DirectiveFromConfig converts one configured directive to a descriptor.
func DirectiveFromConfig(dc config.DirectiveConfig) (parser.DirectiveDescriptor, error) {
	kind, err := parser.ParseDirectiveKind(dc.Kind)
	if err != nil {
		return parser.DirectiveDescriptor{}, err
	}

	desc := parser.DirectiveDescriptor{Name: dc.Name, Kind: kind}
	for _, tc := range dc.Tokens {
		tokKind, err := parser.ParseDirectiveTokenKind(tc.Kind)
		if err != nil {
			return parser.DirectiveDescriptor{}, err
		}
		desc.Tokens = append(desc.Tokens, parser.DirectiveToken{Kind: tokKind, Optional: tc.Optional})
	}

	if err := desc.Validate(); err != nil {
		return parser.DirectiveDescriptor{}, err
	}
	return desc, nil
}

func copyContent(content []byte) []byte {
	if content == nil {
		return nil
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	return cp
}
