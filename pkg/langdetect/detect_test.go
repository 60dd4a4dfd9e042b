package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/razorlint/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		content  string
		expected string
	}{
		{
			name:     "cshtml extension",
			path:     "Views/Home/Index.cshtml",
			expected: langdetect.LanguageRazor,
		},
		{
			name:     "vbhtml extension",
			path:     "Views/Home/Index.vbhtml",
			expected: langdetect.LanguageRazor,
		},
		{
			name:     "vbhtml extension is case-insensitive",
			path:     "INDEX.VBHTML",
			expected: langdetect.LanguageRazor,
		},
		{
			name:     "html file holding razor",
			path:     "layout.html",
			content:  "@model HomeViewModel\n<p>@Model.Name</p>\n",
			expected: langdetect.LanguageRazor,
		},
		{
			name:     "extensionless razor",
			path:     "template",
			content:  "<div>\n  @{ var x = 1; }\n</div>\n",
			expected: langdetect.LanguageRazor,
		},
		{
			name:     "empty extensionless file",
			path:     "template",
			expected: langdetect.LanguageText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := langdetect.Detect(tt.path, []byte(tt.content))
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestIsTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		content string
		want    bool
	}{
		{"cshtml", "a.cshtml", "", true},
		{"html with directive", "a.html", "@using System.Text\n<p></p>", true},
		{"html with email", "a.html", "<p>mail me at a@b.com</p>", false},
		{"go source", "main.go", "package main\n", false},
		{"markdown", "README.md", "# Title\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, langdetect.IsTemplate(tt.path, []byte(tt.content)))
		})
	}
}
