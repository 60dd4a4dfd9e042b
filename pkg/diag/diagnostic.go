package diag

import (
	"fmt"
	"slices"

	"github.com/yaklabco/razorlint/pkg/source"
)

// Diagnostic is a recoverable problem found while tokenizing or parsing.
type Diagnostic struct {
	// Kind classifies the problem.
	Kind Kind

	// Span anchors the problem in the source.
	Span source.Span

	// Args are substituted into the kind's message template.
	Args []any
}

// New creates a diagnostic.
func New(kind Kind, span source.Span, args ...any) Diagnostic {
	return Diagnostic{Kind: kind, Span: span, Args: args}
}

// At creates a diagnostic anchored at loc with the given length.
func At(kind Kind, loc source.Location, length int, args ...any) Diagnostic {
	return New(kind, source.NewSpan(loc, length), args...)
}

// Message renders the default English message.
func (d Diagnostic) Message() string {
	tmpl := d.Kind.Template()
	if tmpl == "" {
		return string(d.Kind)
	}
	if len(d.Args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, d.Args...)
}

// String formats the diagnostic with its code and position.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s: %s", d.Span, d.Kind, d.Message())
}

// Equal compares kind, span and rendered message.
func (d Diagnostic) Equal(other Diagnostic) bool {
	return d.Kind == other.Kind &&
		d.Span.Length == other.Span.Length &&
		d.Span.Location.Equal(other.Span.Location) &&
		d.Message() == other.Message()
}

// Sink accumulates diagnostics in emission order.
// A Sink belongs to a single parse and is not safe for concurrent use.
type Sink struct {
	items []Diagnostic
}

// NewSink creates an empty sink.
func NewSink() *Sink {
	return &Sink{}
}

// Add appends diagnostics.
func (s *Sink) Add(diags ...Diagnostic) {
	s.items = append(s.items, diags...)
}

// Report appends a new diagnostic built from its parts.
func (s *Sink) Report(kind Kind, loc source.Location, length int, args ...any) {
	s.Add(At(kind, loc, length, args...))
}

// Len returns the number of diagnostics collected.
func (s *Sink) Len() int {
	return len(s.items)
}

// Diagnostics returns a copy of the diagnostics in emission order.
func (s *Sink) Diagnostics() []Diagnostic {
	return slices.Clone(s.items)
}

// Sorted returns a copy ordered by absolute position, ties in emission order.
func (s *Sink) Sorted() []Diagnostic {
	return SortByPosition(s.items)
}

// SortByPosition returns a stable position-ordered copy of diags.
func SortByPosition(diags []Diagnostic) []Diagnostic {
	out := slices.Clone(diags)
	slices.SortStableFunc(out, func(a, b Diagnostic) int {
		return a.Span.Compare(b.Span.Location)
	})
	return out
}
