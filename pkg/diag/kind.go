// Package diag defines the parser diagnostic taxonomy and the ordered sink
// that collects diagnostics during a parse.
package diag

import "slices"

// Kind is a stable diagnostic code.
type Kind string

// Diagnostic kinds reported by the tokenizers and the parser.
const (
	// Literals and comments.
	UnterminatedStringLiteral Kind = "RZ1000"
	UnterminatedBlockComment  Kind = "RZ1001"
	UnterminatedCharLiteral   Kind = "RZ1002"
	RazorCommentNotTerminated Kind = "RZ1004"

	// Code block entry.
	UnexpectedCharacterAtStartOfCodeBlock  Kind = "RZ1005"
	ExpectedEndOfBlockBeforeEOF            Kind = "RZ1006"
	UnexpectedEndOfFileAtStartOfCodeBlock  Kind = "RZ1007"
	SingleLineControlFlowNotAllowed        Kind = "RZ1008"
	UnexpectedWhiteSpaceAtStartOfCodeBlock Kind = "RZ1009"
	UnexpectedNestedCodeBlock              Kind = "RZ1010"
	UnexpectedKeywordAfterAt               Kind = "RZ1011"
	ReservedWord                           Kind = "RZ1012"
	ExpectedCloseBracketBeforeEOF          Kind = "RZ1013"
	Expected                               Kind = "RZ1014"
	AtInCodeMustBeFollowed                 Kind = "RZ1015"
	NamespaceImportWithinCodeBlock         Kind = "RZ1016"

	// Markup.
	MissingEndTag                  Kind = "RZ1025"
	UnexpectedEndTag               Kind = "RZ1026"
	UnfinishedTag                  Kind = "RZ1027"
	OuterTagMissingName            Kind = "RZ1028"
	MarkupBlockMustStartWithTag    Kind = "RZ1029"
	TextTagCannotContainAttributes Kind = "RZ1030"
	InlineMarkupBlocksCannotNest   Kind = "RZ1031"

	// Directives.
	SectionsCannotBeNested              Kind = "RZ2002"
	DirectiveMustAppearAtStartOfLine    Kind = "RZ2005"
	UnexpectedEOFAfterDirective         Kind = "RZ1017"
	DirectiveExpectsTypeName            Kind = "RZ1018"
	DirectiveExpectsNamespace           Kind = "RZ1019"
	DirectiveExpectsIdentifier          Kind = "RZ1020"
	DirectiveExpectsQuotedStringLiteral Kind = "RZ1021"
	UnexpectedDirectiveLiteral          Kind = "RZ1022"
	DirectiveMustHaveValue              Kind = "RZ1023"
	IncompleteQuotesAroundDirective     Kind = "RZ1024"
)

type kindInfo struct {
	name     string
	template string
}

//nolint:gochecknoglobals // Read-only lookup table.
var kindTable = map[Kind]kindInfo{
	UnterminatedStringLiteral: {"unterminated-string-literal", "Unterminated string literal. Strings that start with a quotation mark (\") must be terminated before the end of the line."},
	UnterminatedBlockComment:  {"unterminated-block-comment", "End of file was reached before the end of the block comment. All comments started with \"/*\" sequence must be terminated with a matching \"*/\" sequence."},
	UnterminatedCharLiteral:   {"unterminated-char-literal", "Unterminated character literal. Character literals must be terminated before the end of the line."},
	RazorCommentNotTerminated: {"razor-comment-not-terminated", "End of file was reached before the end of the comment. All comments started with \"@*\" sequence must be terminated with a matching \"*@\" sequence."},

	UnexpectedCharacterAtStartOfCodeBlock:  {"unexpected-character-at-start-of-code-block", "\"%s\" is not valid at the start of a code block. Only identifiers, keywords, comments, \"(\" and \"{\" are valid."},
	ExpectedEndOfBlockBeforeEOF:            {"expected-end-of-block-before-eof", "The %[1]s block is missing a closing \"%[2]s\" character. Make sure you have a matching \"%[2]s\" character for all the \"%[3]s\" characters within this block."},
	UnexpectedEndOfFileAtStartOfCodeBlock:  {"unexpected-eof-at-start-of-code-block", "End-of-file was found after the \"@\" character. \"@\" must be followed by a valid code block."},
	SingleLineControlFlowNotAllowed:        {"single-line-control-flow-not-allowed", "Expected a \"%s\" but found a \"%s\". Block statements must be enclosed in \"{\" and \"}\"."},
	UnexpectedWhiteSpaceAtStartOfCodeBlock: {"unexpected-whitespace-at-start-of-code-block", "A space or line break was encountered after the \"@\" character. Only valid identifiers, keywords, comments, \"(\" and \"{\" are valid at the start of a code block and they must occur immediately following \"@\" with no space in between."},
	UnexpectedNestedCodeBlock:              {"unexpected-nested-code-block", "Unexpected \"{\" after \"@\" character. Once inside the body of a code block (@if {}, @{}, etc.) you do not need to use \"@{\" to switch to code."},
	UnexpectedKeywordAfterAt:               {"unexpected-keyword-after-at", "Unexpected \"%[1]s\" keyword after \"@\" character. Once inside code, you do not need to prefix constructs like \"%[1]s\" with \"@\"."},
	ReservedWord:                           {"reserved-word", "\"%s\" is a reserved word and cannot be used in implicit expressions. An explicit expression (\"@()\") must be used."},
	ExpectedCloseBracketBeforeEOF:          {"expected-close-bracket-before-eof", "An opening \"%s\" is missing the corresponding closing \"%s\"."},
	Expected:                               {"expected", "Expected \"%s\"."},
	AtInCodeMustBeFollowed:                 {"at-in-code-must-be-followed", "The \"@\" character must be followed by a \":\", \"(\", or a C# identifier. If you intended to switch to markup, use an HTML start tag, for example:\n\n@if(isLoggedIn) {\n    <p>Hello, @user!</p>\n}"},
	NamespaceImportWithinCodeBlock:         {"namespace-import-within-code-block", "A using directive cannot exist within a code block. Namespace imports and type aliases must be at the top level of the document."},

	MissingEndTag:                  {"missing-end-tag", "The \"%s\" element was not closed. All elements must be either self-closing or have a matching end tag."},
	UnexpectedEndTag:               {"unexpected-end-tag", "Encountered end tag \"%s\" with no matching start tag. Are your start/end tags properly balanced?"},
	UnfinishedTag:                  {"unfinished-tag", "End of file or an unexpected character was reached before the \"%s\" tag could be parsed. Elements inside markup blocks must be complete. They must either be self-closing (\"<br />\") or have matching end tags (\"<p>Hello</p>\"). If you intended to display a \"<\" character, use the \"&lt;\" HTML entity."},
	OuterTagMissingName:            {"outer-tag-missing-name", "Outer tag is missing a name. The first character of a markup block must be an HTML tag with a valid name."},
	MarkupBlockMustStartWithTag:    {"markup-block-must-start-with-tag", "Markup in a code block must start with a tag and all start tags must be matched with end tags. Do not use unclosed tags like \"<br>\". Instead use self-closing tags like \"<br/>\"."},
	TextTagCannotContainAttributes: {"text-tag-cannot-contain-attributes", "\"<text>\" and \"</text>\" tags cannot contain attributes."},
	InlineMarkupBlocksCannotNest:   {"inline-markup-blocks-cannot-be-nested", "Inline markup blocks (@<p>Content</p>) cannot be nested. Only one level of inline markup is allowed."},

	SectionsCannotBeNested:              {"sections-cannot-be-nested", "Section blocks (\"%s\") cannot be nested. Only one level of section blocks are allowed."},
	DirectiveMustAppearAtStartOfLine:    {"directive-must-appear-at-start-of-line", "The \"%s\" directive must appear at the start of the line."},
	UnexpectedEOFAfterDirective:         {"unexpected-eof-after-directive", "Unexpected end of file following the \"%s\" directive. Expected \"%s\"."},
	DirectiveExpectsTypeName:            {"directive-expects-type-name", "The \"%s\" directive expects a type name."},
	DirectiveExpectsNamespace:           {"directive-expects-namespace", "The \"%s\" directive expects a namespace name."},
	DirectiveExpectsIdentifier:          {"directive-expects-identifier", "The \"%s\" directive expects an identifier."},
	DirectiveExpectsQuotedStringLiteral: {"directive-expects-quoted-string-literal", "The \"%s\" directive expects a string surrounded by double quotes."},
	UnexpectedDirectiveLiteral:          {"unexpected-directive-literal", "Unexpected literal following the \"%s\" directive. Expected \"%s\"."},
	DirectiveMustHaveValue:              {"directive-must-have-value", "Directive \"%s\" must have a value."},
	IncompleteQuotesAroundDirective:     {"incomplete-quotes-around-directive", "Optional quote around the directive \"%s\" is missing the corresponding opening or closing quote."},
}

// Name returns the kebab-case name of the kind, or the code itself when unknown.
func (k Kind) Name() string {
	if info, ok := kindTable[k]; ok {
		return info.name
	}
	return string(k)
}

// Template returns the default fmt message template of the kind.
func (k Kind) Template() string {
	return kindTable[k].template
}

// Known reports whether k is a registered kind.
func (k Kind) Known() bool {
	_, ok := kindTable[k]
	return ok
}

// AllKinds returns every registered kind.
func AllKinds() []Kind {
	kinds := make([]Kind, 0, len(kindTable))
	for k := range kindTable {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// KindByName looks up a kind by code or kebab-case name.
func KindByName(name string) (Kind, bool) {
	if _, ok := kindTable[Kind(name)]; ok {
		return Kind(name), true
	}
	for k, info := range kindTable {
		if info.name == name {
			return k, true
		}
	}
	return "", false
}
