package tokenizer

import (
	"unicode"

	"github.com/yaklabco/razorlint/pkg/source"
)

// IsIdentifierStart reports whether r may begin a code identifier.
func IsIdentifierStart(r rune) bool {
	return r == '_' || isLetter(r)
}

// IsIdentifierPart reports whether r may continue a code identifier.
func IsIdentifierPart(r rune) bool {
	return IsIdentifierStart(r) ||
		unicode.In(r, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc, unicode.Cf)
}

func isLetter(r rune) bool {
	return unicode.In(r, unicode.Lu, unicode.Ll, unicode.Lt, unicode.Lm, unicode.Lo, unicode.Nl)
}

// IsLetterOrDigit reports whether r is a letter or a decimal digit of any script.
func IsLetterOrDigit(r rune) bool {
	return isLetter(r) || unicode.Is(unicode.Nd, r)
}

func isDecimalDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDecimalDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isWhiteSpace(r rune) bool {
	return source.IsWhiteSpace(r)
}

func isNewLine(r rune) bool {
	return source.IsNewLine(r)
}

//nolint:gochecknoglobals // Read-only after init.
var keywords = map[string]struct{}{}

func init() {
	for _, kw := range []string{
		"abstract", "as", "await", "base", "bool", "break", "byte", "case", "catch", "char", "checked",
		"class", "const", "continue", "decimal", "default", "delegate", "do", "double", "else",
		"enum", "event", "explicit", "extern", "false", "finally", "fixed", "float", "for",
		"foreach", "goto", "if", "implicit", "in", "int", "interface", "internal", "is", "lock",
		"long", "namespace", "new", "null", "object", "operator", "out", "override", "params",
		"private", "protected", "public", "readonly", "ref", "return", "sbyte", "sealed", "short",
		"sizeof", "stackalloc", "static", "string", "struct", "switch", "this", "throw", "true",
		"try", "typeof", "uint", "ulong", "unchecked", "unsafe", "ushort", "using", "virtual",
		"void", "volatile", "when", "while",
	} {
		keywords[kw] = struct{}{}
	}
}

// IsKeyword reports whether s is a reserved code keyword. Matching is case-sensitive.
func IsKeyword(s string) bool {
	_, ok := keywords[s]
	return ok
}
