package syntax

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/razorlint/pkg/source"
)

// SpanKind classifies leaf nodes.
type SpanKind uint8

// Span kinds.
const (
	SpanMarkup SpanKind = iota
	SpanTransition
	SpanMetaCode
	SpanComment
	SpanCode
)

// String returns the span kind name.
func (k SpanKind) String() string {
	switch k {
	case SpanTransition:
		return "Transition"
	case SpanMetaCode:
		return "MetaCode"
	case SpanComment:
		return "Comment"
	case SpanCode:
		return "Code"
	default:
		return "Markup"
	}
}

// BlockKind classifies interior nodes.
type BlockKind uint8

// Block kinds.
const (
	BlockMarkup BlockKind = iota
	BlockStatement
	BlockDirective
	BlockExpression
	BlockTag
	BlockTemplate
	BlockComment
	BlockFunctions
	BlockHelper
	BlockSection
	BlockHTMLComment
	BlockTagHelper
)

//nolint:gochecknoglobals // Read-only lookup table.
var blockKindNames = [...]string{
	BlockMarkup:      "Markup",
	BlockStatement:   "Statement",
	BlockDirective:   "Directive",
	BlockExpression:  "Expression",
	BlockTag:         "Tag",
	BlockTemplate:    "Template",
	BlockComment:     "Comment",
	BlockFunctions:   "Functions",
	BlockHelper:      "Helper",
	BlockSection:     "Section",
	BlockHTMLComment: "HtmlComment",
	BlockTagHelper:   "TagHelper",
}

// String returns the block kind name.
func (k BlockKind) String() string {
	if int(k) < len(blockKindNames) {
		return blockKindNames[k]
	}
	return fmt.Sprintf("BlockKind(%d)", k)
}

// AcceptedCharacters describes which edits a span absorbs without a reparse.
type AcceptedCharacters uint8

// Accepted character sets.
const (
	AcceptNone          AcceptedCharacters = 0
	AcceptNewLine       AcceptedCharacters = 1
	AcceptWhiteSpace    AcceptedCharacters = 2
	AcceptNonWhiteSpace AcceptedCharacters = 4

	AcceptAllWhiteSpace    = AcceptNewLine | AcceptWhiteSpace
	AcceptAnyExceptNewline = AcceptNonWhiteSpace | AcceptWhiteSpace
	AcceptAny              = AcceptAllWhiteSpace | AcceptNonWhiteSpace
)

// String returns the accepted set name.
func (a AcceptedCharacters) String() string {
	switch a {
	case AcceptNone:
		return "None"
	case AcceptAny:
		return "Any"
	case AcceptAllWhiteSpace:
		return "AllWhiteSpace"
	case AcceptAnyExceptNewline:
		return "AnyExceptNewline"
	case AcceptNewLine:
		return "NewLine"
	case AcceptWhiteSpace:
		return "WhiteSpace"
	case AcceptNonWhiteSpace:
		return "NonWhiteSpace"
	default:
		return fmt.Sprintf("Accepted(%d)", uint8(a))
	}
}

// Has reports whether all flags in other are set.
func (a AcceptedCharacters) Has(other AcceptedCharacters) bool {
	return a&other == other
}

// EditHandlerKind selects the edit behavior of a span.
type EditHandlerKind uint8

// Edit handler kinds.
const (
	EditSpan EditHandlerKind = iota
	EditImplicitExpression
	EditAutoComplete
	EditDirectiveToken
)

// String returns the edit handler name.
func (k EditHandlerKind) String() string {
	switch k {
	case EditImplicitExpression:
		return "ImplicitExpression"
	case EditAutoComplete:
		return "AutoComplete"
	case EditDirectiveToken:
		return "DirectiveToken"
	default:
		return "Span"
	}
}

// EditHandler carries the editor-facing metadata of a span.
type EditHandler struct {
	Kind     EditHandlerKind
	Accepted AcceptedCharacters

	// AutoComplete is the text an editor should insert to close the construct.
	AutoComplete      string
	AutoCompleteAtEnd bool

	// Keywords and AcceptTrailingDot apply to implicit expressions.
	Keywords          []string
	AcceptTrailingDot bool
}

// DefaultEditHandler accepts any edit.
func DefaultEditHandler() EditHandler {
	return EditHandler{Kind: EditSpan, Accepted: AcceptAny}
}

// Equal compares all fields.
func (h EditHandler) Equal(other EditHandler) bool {
	return h.Kind == other.Kind &&
		h.Accepted == other.Accepted &&
		h.AutoComplete == other.AutoComplete &&
		h.AutoCompleteAtEnd == other.AutoCompleteAtEnd &&
		h.AcceptTrailingDot == other.AcceptTrailingDot &&
		slices.Equal(h.Keywords, other.Keywords)
}

// String formats the handler for tree dumps.
func (h EditHandler) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Accepts:%s", h.Accepted)
	switch h.Kind {
	case EditImplicitExpression:
		fmt.Fprintf(&sb, " ImplicitExpression[%s]", ternary(h.AcceptTrailingDot, "ATD", "RTD"))
	case EditAutoComplete:
		fmt.Fprintf(&sb, " AutoComplete:[%s]%s", h.AutoComplete, ternary(h.AutoCompleteAtEnd, ";AtEnd", ""))
	case EditDirectiveToken:
		sb.WriteString(" DirectiveToken")
	case EditSpan:
	}
	return sb.String()
}

func ternary(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}

// GeneratorKind identifies what a node contributes to generated code.
type GeneratorKind uint8

// Generator kinds. GenNull is the zero value: the node generates nothing.
const (
	GenNull GeneratorKind = iota
	GenMarkup
	GenExpression
	GenStatement
	GenTypeMember
	GenDirective
	GenDirectiveToken
	GenSection
	GenTemplate
	GenRazorComment
	GenAttribute
	GenLiteralAttribute
	GenDynamicAttribute
	GenSetBaseType
	GenAddImport
	GenAddTagHelper
	GenRemoveTagHelper
	GenTagHelperPrefix
)

//nolint:gochecknoglobals // Read-only lookup table.
var generatorNames = [...]string{
	GenNull:             "None",
	GenMarkup:           "Markup",
	GenExpression:       "Expr",
	GenStatement:        "Stmt",
	GenTypeMember:       "TypeMember",
	GenDirective:        "Directive",
	GenDirectiveToken:   "DirectiveToken",
	GenSection:          "Section",
	GenTemplate:         "Template",
	GenRazorComment:     "RazorComment",
	GenAttribute:        "Attr",
	GenLiteralAttribute: "LitAttr",
	GenDynamicAttribute: "DynAttr",
	GenSetBaseType:      "Base",
	GenAddImport:        "Import",
	GenAddTagHelper:     "AddTagHelper",
	GenRemoveTagHelper:  "RemoveTagHelper",
	GenTagHelperPrefix:  "TagHelperPrefix",
}

// String returns the generator name.
func (k GeneratorKind) String() string {
	if int(k) < len(generatorNames) {
		return generatorNames[k]
	}
	return fmt.Sprintf("GeneratorKind(%d)", k)
}

// Tagged is a string value anchored at a source location.
type Tagged struct {
	Value    string
	Location source.Location
}

// Tag creates a tagged value.
func Tag(value string, loc source.Location) Tagged {
	return Tagged{Value: value, Location: loc}
}

// ChunkGenerator describes how a node contributes to generated code.
// It is comparable with ==.
type ChunkGenerator struct {
	Kind GeneratorKind

	// Name holds the attribute, section, or directive name, the base type,
	// the imported namespace, or the tag helper lookup text.
	Name string

	// Prefix, Suffix and Value describe attribute pieces.
	Prefix Tagged
	Suffix Tagged
	Value  Tagged

	// ValueStart anchors the value of a dynamic attribute.
	ValueStart source.Location

	// Detail carries the directive token kind for directive token spans.
	Detail string
}

// NullGenerator generates nothing.
func NullGenerator() ChunkGenerator { return ChunkGenerator{Kind: GenNull} }

// MarkupGenerator emits literal markup.
func MarkupGenerator() ChunkGenerator { return ChunkGenerator{Kind: GenMarkup} }

// ExpressionGenerator emits an expression.
func ExpressionGenerator() ChunkGenerator { return ChunkGenerator{Kind: GenExpression} }

// StatementGenerator emits a statement.
func StatementGenerator() ChunkGenerator { return ChunkGenerator{Kind: GenStatement} }

// TypeMemberGenerator emits class members.
func TypeMemberGenerator() ChunkGenerator { return ChunkGenerator{Kind: GenTypeMember} }

// TemplateGenerator emits an inline template.
func TemplateGenerator() ChunkGenerator { return ChunkGenerator{Kind: GenTemplate} }

// RazorCommentGenerator marks a comment block.
func RazorCommentGenerator() ChunkGenerator { return ChunkGenerator{Kind: GenRazorComment} }

// DirectiveGenerator marks a descriptor-driven directive block.
func DirectiveGenerator(name string) ChunkGenerator {
	return ChunkGenerator{Kind: GenDirective, Name: name}
}

// DirectiveTokenGenerator marks one directive argument.
func DirectiveTokenGenerator(directive, tokenKind string) ChunkGenerator {
	return ChunkGenerator{Kind: GenDirectiveToken, Name: directive, Detail: tokenKind}
}

// SectionGenerator marks a section block.
func SectionGenerator(name string) ChunkGenerator {
	return ChunkGenerator{Kind: GenSection, Name: name}
}

// SetBaseTypeGenerator records an inherits directive.
func SetBaseTypeGenerator(baseType string) ChunkGenerator {
	return ChunkGenerator{Kind: GenSetBaseType, Name: baseType}
}

// AddImportGenerator records a using directive.
func AddImportGenerator(namespace string) ChunkGenerator {
	return ChunkGenerator{Kind: GenAddImport, Name: namespace}
}

// TagHelperDirectiveGenerator records a tag helper directive of the given kind.
func TagHelperDirectiveGenerator(kind GeneratorKind, value string) ChunkGenerator {
	return ChunkGenerator{Kind: kind, Name: value}
}

// AttributeGenerator marks a conditional attribute block.
func AttributeGenerator(name string, prefix, suffix Tagged) ChunkGenerator {
	return ChunkGenerator{Kind: GenAttribute, Name: name, Prefix: prefix, Suffix: suffix}
}

// LiteralAttributeGenerator marks a literal piece of an attribute value.
func LiteralAttributeGenerator(prefix, value Tagged) ChunkGenerator {
	return ChunkGenerator{Kind: GenLiteralAttribute, Prefix: prefix, Value: value}
}

// DynamicAttributeGenerator marks a code piece of an attribute value.
func DynamicAttributeGenerator(prefix Tagged, valueStart source.Location) ChunkGenerator {
	return ChunkGenerator{Kind: GenDynamicAttribute, Prefix: prefix, ValueStart: valueStart}
}

// String formats the generator for tree dumps.
func (g ChunkGenerator) String() string {
	switch g.Kind {
	case GenAttribute:
		return fmt.Sprintf("Attr:%s,%q,%q", g.Name, g.Prefix.Value, g.Suffix.Value)
	case GenLiteralAttribute:
		return fmt.Sprintf("LitAttr:%q,%q", g.Prefix.Value, g.Value.Value)
	case GenDynamicAttribute:
		return fmt.Sprintf("DynAttr:%q", g.Prefix.Value)
	case GenDirectiveToken:
		return fmt.Sprintf("DirectiveToken:%s:%s", g.Name, g.Detail)
	case GenDirective, GenSection, GenSetBaseType, GenAddImport,
		GenAddTagHelper, GenRemoveTagHelper, GenTagHelperPrefix:
		return fmt.Sprintf("%s:%s", g.Kind, g.Name)
	case GenNull, GenMarkup, GenExpression, GenStatement, GenTypeMember, GenTemplate, GenRazorComment:
		return g.Kind.String()
	default:
		return g.Kind.String()
	}
}
