package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/razorlint/pkg/tokenizer"
)

// Version identifies a template language version.
type Version int

// Supported language versions.
const (
	Version1_0 Version = iota + 1
	Version1_1
	Version2_0

	VersionLatest = Version2_0
)

// String returns the dotted version number.
func (v Version) String() string {
	switch v {
	case Version1_0:
		return "1.0"
	case Version1_1:
		return "1.1"
	case Version2_0:
		return "2.0"
	default:
		return fmt.Sprintf("Version(%d)", int(v))
	}
}

// ErrUnknownVersion is returned by ParseVersion for unsupported versions.
var ErrUnknownVersion = errors.New("unknown language version")

// ParseVersion converts "1.0", "1.1", "2.0" or "latest" to a Version.
func ParseVersion(s string) (Version, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "1.0", "1":
		return Version1_0, nil
	case "1.1":
		return Version1_1, nil
	case "2.0", "2", "latest", "":
		return Version2_0, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownVersion, s)
	}
}

// Options control a parse.
type Options struct {
	// DesignTime keeps whitespace in markup instead of handing it to the
	// surrounding code block.
	DesignTime bool

	// LanguageVersion selects the grammar revision.
	LanguageVersion Version

	// Directives registers additional directives. They take precedence over
	// built-in directives with the same name. Ignored before Version2_0.
	Directives []DirectiveDescriptor

	// ParseLeadingDirectivesOnly stops parsing after the directives at the
	// top of the document; the rest becomes a single markup span.
	ParseLeadingDirectivesOnly bool
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{LanguageVersion: VersionLatest}
}

func (o Options) version() Version {
	if o.LanguageVersion == 0 {
		return VersionLatest
	}
	return o.LanguageVersion
}

// DirectiveKind selects how a directive's body is parsed.
type DirectiveKind uint8

// Directive kinds.
const (
	// DirectiveSingleLine ends at the end of the line.
	DirectiveSingleLine DirectiveKind = iota
	// DirectiveRazorBlock is followed by a braced markup block.
	DirectiveRazorBlock
	// DirectiveCodeBlock is followed by a braced code block.
	DirectiveCodeBlock
)

// String returns the configuration name of the kind.
func (k DirectiveKind) String() string {
	switch k {
	case DirectiveRazorBlock:
		return "razor-block"
	case DirectiveCodeBlock:
		return "code-block"
	default:
		return "single-line"
	}
}

// ParseDirectiveKind converts a configuration name to a DirectiveKind.
func ParseDirectiveKind(s string) (DirectiveKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single-line", "singleline", "":
		return DirectiveSingleLine, nil
	case "razor-block", "razorblock":
		return DirectiveRazorBlock, nil
	case "code-block", "codeblock":
		return DirectiveCodeBlock, nil
	default:
		return 0, fmt.Errorf("%w: unknown directive kind %q", ErrInvalidDirective, s)
	}
}

// DirectiveTokenKind is the shape of one directive argument.
type DirectiveTokenKind uint8

// Directive token kinds.
const (
	TokenType DirectiveTokenKind = iota
	TokenNamespace
	TokenMember
	TokenString
)

// String returns the lower-case kind name used in messages and config.
func (k DirectiveTokenKind) String() string {
	switch k {
	case TokenNamespace:
		return "namespace"
	case TokenMember:
		return "member"
	case TokenString:
		return "string"
	default:
		return "type"
	}
}

// ParseDirectiveTokenKind converts a configuration name to a DirectiveTokenKind.
func ParseDirectiveTokenKind(s string) (DirectiveTokenKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "type":
		return TokenType, nil
	case "namespace":
		return TokenNamespace, nil
	case "member":
		return TokenMember, nil
	case "string":
		return TokenString, nil
	default:
		return 0, fmt.Errorf("%w: unknown directive token kind %q", ErrInvalidDirective, s)
	}
}

// DirectiveToken describes one argument of a directive.
type DirectiveToken struct {
	Kind     DirectiveTokenKind
	Optional bool
}

// DirectiveDescriptor declares the grammar of a directive.
type DirectiveDescriptor struct {
	Name   string
	Kind   DirectiveKind
	Tokens []DirectiveToken
}

// ErrInvalidDirective reports a malformed directive descriptor.
var ErrInvalidDirective = errors.New("invalid directive descriptor")

// Validate checks that the name is an identifier and that optional tokens
// only appear at the end.
func (d DirectiveDescriptor) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidDirective)
	}
	for i, r := range d.Name {
		if (i == 0 && !tokenizer.IsIdentifierStart(r)) || (i > 0 && !tokenizer.IsIdentifierPart(r)) {
			return fmt.Errorf("%w: %q is not an identifier", ErrInvalidDirective, d.Name)
		}
	}
	seenOptional := false
	for i, tok := range d.Tokens {
		if tok.Optional {
			seenOptional = true
		} else if seenOptional {
			return fmt.Errorf("%w: %s: required token %d follows an optional token", ErrInvalidDirective, d.Name, i)
		}
	}
	return nil
}

// Built-in directives.
//
//nolint:gochecknoglobals // Immutable descriptor values.
var (
	SectionDirective = DirectiveDescriptor{
		Name:   "section",
		Kind:   DirectiveRazorBlock,
		Tokens: []DirectiveToken{{Kind: TokenMember}},
	}
	FunctionsDirective = DirectiveDescriptor{
		Name: "functions",
		Kind: DirectiveCodeBlock,
	}
	InheritsDirective = DirectiveDescriptor{
		Name:   "inherits",
		Kind:   DirectiveSingleLine,
		Tokens: []DirectiveToken{{Kind: TokenType}},
	}
)

// BuiltinDirectives returns the directives every parse understands.
func BuiltinDirectives() []DirectiveDescriptor {
	return []DirectiveDescriptor{SectionDirective, FunctionsDirective, InheritsDirective}
}

// Tag helper directive keywords.
const (
	addTagHelperKeyword    = "addTagHelper"
	removeTagHelperKeyword = "removeTagHelper"
	tagHelperPrefixKeyword = "tagHelperPrefix"
)
