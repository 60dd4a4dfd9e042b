// Package langdetect recognises Razor template files.
// It uses go-enry for extension and filename based detection and falls back
// to a handful of Razor-specific content patterns for files whose name says
// nothing useful (".html", no extension).
package langdetect

import (
	"bufio"
	"bytes"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language names as reported by enry.
const (
	LanguageRazor  = "HTML+Razor"
	LanguageHTML   = "HTML"
	LanguageText   = "Text"
	languageNone   = ""
	vbTemplateExt  = ".vbhtml"
	maxProbedLines = 64
)

// razorLineStarts are line prefixes that only make sense in a Razor template.
var razorLineStarts = []string{
	"@model ",
	"@using ",
	"@inherits ",
	"@section ",
	"@functions",
	"@addTagHelper ",
	"@removeTagHelper ",
	"@tagHelperPrefix ",
	"@page",
	"@inject ",
	"@{",
	"@*",
}

// Detect returns the language of the file at path. content may be nil, in
// which case only the name is considered.
func Detect(path string, content []byte) string {
	if strings.EqualFold(filepath.Ext(path), vbTemplateExt) {
		return LanguageRazor
	}

	if lang, safe := enry.GetLanguageByExtension(path); safe && lang != languageNone {
		if lang == LanguageHTML && looksLikeRazor(content) {
			return LanguageRazor
		}
		return lang
	}

	if lang, safe := enry.GetLanguageByFilename(path); safe && lang != languageNone {
		return lang
	}

	if looksLikeRazor(content) {
		return LanguageRazor
	}

	if len(content) == 0 {
		return LanguageText
	}

	if lang := enry.GetLanguage(filepath.Base(path), content); lang != languageNone {
		return lang
	}
	return LanguageText
}

// IsTemplate reports whether the file at path is a Razor template.
func IsTemplate(path string, content []byte) bool {
	return Detect(path, content) == LanguageRazor
}

// looksLikeRazor probes the first lines of content for Razor directives and
// code blocks.
func looksLikeRazor(content []byte) bool {
	if len(content) == 0 {
		return false
	}

	scanner := bufio.NewScanner(bytes.NewReader(content))
	for lines := 0; scanner.Scan() && lines < maxProbedLines; lines++ {
		line := strings.TrimSpace(scanner.Text())
		for _, prefix := range razorLineStarts {
			if strings.HasPrefix(line, prefix) {
				return true
			}
		}
	}
	return false
}
