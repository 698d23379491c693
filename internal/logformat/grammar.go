package logformat

import (
	"regexp"
	"strings"
	"sync"
)

// grammarCache memoizes compiled templates by template text, since the
// same LogFormat is matched against every line of a run.
var grammarCache sync.Map // map[string]*regexp.Regexp

// CompileGrammar turns a <Field>-annotated template into an anchored regex
// with one named lazy-capture group per field. Runs of literal whitespace
// in the template are collapsed to `\s+` so templates tolerate irregular
// spacing in the lines they match against.
//
// Field names are taken verbatim from inside the angle brackets and become
// the capture group names; the <Content> placeholder becomes the named
// group "Content", the field a tokenizer extracts and splits on whitespace.
func CompileGrammar(template string) (*regexp.Regexp, error) {
	if cached, ok := grammarCache.Load(template); ok {
		return cached.(*regexp.Regexp), nil
	}

	pattern := buildPattern(template)
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}

	actual, _ := grammarCache.LoadOrStore(template, re)
	return actual.(*regexp.Regexp), nil
}

var fieldPattern = regexp.MustCompile(`<([A-Za-z0-9_]+)>`)

// buildPattern walks the template left to right, replacing each <Field>
// placeholder with a named lazy-capture group and collapsing runs of
// literal space characters between placeholders to `\s+`. Everything else
// in the template (including regex metacharacters the template author
// wrote deliberately, e.g. `\[` `\|`) passes through unchanged, since
// templates are themselves regex fragments around the field markers.
func buildPattern(template string) string {
	var b strings.Builder
	b.WriteString("^")

	matches := fieldPattern.FindAllStringSubmatchIndex(template, -1)
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		name := template[m[2]:m[3]]

		writeLiteralSegment(&b, template[last:start])
		b.WriteString("(?P<")
		b.WriteString(name)
		b.WriteString(">.*?)")
		last = end
	}
	writeLiteralSegment(&b, template[last:])

	b.WriteString("$")
	return b.String()
}

// writeLiteralSegment copies a literal template segment, collapsing any
// maximal run of space characters into `\s+`.
func writeLiteralSegment(b *strings.Builder, segment string) {
	i := 0
	for i < len(segment) {
		if segment[i] == ' ' {
			j := i
			for j < len(segment) && segment[j] == ' ' {
				j++
			}
			b.WriteString(`\s+`)
			i = j
			continue
		}
		b.WriteByte(segment[i])
		i++
	}
}
