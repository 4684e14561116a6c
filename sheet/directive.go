package sheet

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Directive is one ChordPro-style line such as "{title: Yellow}" or "{soc}".
type Directive struct {
	Name  string `parser:"\"{\" Whitespace? @Ident Whitespace?"`
	Value string `parser:"( \":\" @( Ident | Text | \":\" | Whitespace )* )? \"}\""`
}

// Ident comes before Text so directive names lex as a single token.
var directiveLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Punct", Pattern: `[{}:]`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Text", Pattern: `[^{}:\s]+`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})

var directiveParser = participle.MustBuild[Directive](
	participle.Lexer(directiveLexer),
)

// parseDirective reports false for anything that is not a whole-line
// directive; such lines are song content.
func parseDirective(line string) (Directive, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "{") || !strings.HasSuffix(line, "}") {
		return Directive{}, false
	}
	d, err := directiveParser.ParseString("", line)
	if err != nil {
		return Directive{}, false
	}
	d.Name = strings.ToLower(d.Name)
	d.Value = strings.TrimSpace(d.Value)
	return *d, true
}
