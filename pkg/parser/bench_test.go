package parser_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/razorlint/pkg/parser"
	"github.com/yaklabco/razorlint/pkg/source"
)

const benchTemplate = `@using System.Linq
@section Scripts { <script src="~/app.js"></script> }
<ul class="items">
@foreach (var item in Model.Items.Where(i => i.Visible)) {
    <li data-id="@item.Id" class="@(item.Active ? "on" : "off")">@item.Name</li>
}
</ul>
@* footer *@
<p>Contact: support@example.com</p>
`

func BenchmarkParse(b *testing.B) {
	doc := source.NewDocument("bench.cshtml", strings.Repeat(benchTemplate, 50))
	opts := parser.DefaultOptions()

	b.ReportAllocs()
	for b.Loop() {
		parser.Parse(doc, opts)
	}
}

func BenchmarkParseCode(b *testing.B) {
	doc := source.NewDocument("", "{ "+strings.Repeat(`var s = "x"; if (a) { foo(s); } `, 200)+"}")
	opts := parser.DefaultOptions()

	b.ReportAllocs()
	for b.Loop() {
		parser.ParseCode(doc, opts)
	}
}
