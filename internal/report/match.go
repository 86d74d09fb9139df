package report

import (
	"regexp"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/labreport-cli/internal/model"
)

// testPattern pairs one compiled keyword alternation with its canonical
// field name.
type testPattern struct {
	re        *regexp.Regexp
	fieldName string
}

// TestMatcher matches known test keywords inside classified blocks. Patterns
// are compiled once at construction and read-only afterwards, so one matcher
// may serve concurrent extraction calls.
type TestMatcher struct {
	byCategory map[model.Category][]testPattern
}

// NewTestMatcher compiles one word-bounded alternation per catalog entry,
// grouped by owning category. Internal whitespace in a keyword matches one
// or more whitespace characters in the input. Word boundaries are applied
// per keyword and only where the keyword's edge is a word character: a
// trailing `\b` after ")" or "+" could never match anything.
func NewTestMatcher(catalog *model.Catalog) (*TestMatcher, error) {
	m := &TestMatcher{byCategory: make(map[model.Category][]testPattern)}

	for _, entry := range catalog.Entries {
		alternates := make([]string, 0, len(entry.Keywords))
		for _, kw := range entry.Keywords {
			if kw == "" {
				continue
			}
			alternates = append(alternates, keywordExpr(kw))
		}
		if len(alternates) == 0 {
			continue
		}

		re, err := regexp.Compile(`(?i)(?:` + strings.Join(alternates, "|") + `)`)
		if err != nil {
			return nil, eris.Wrapf(err, "report: compile pattern for %q", entry.FieldName)
		}
		m.byCategory[entry.Section] = append(m.byCategory[entry.Section], testPattern{
			re:        re,
			fieldName: entry.FieldName,
		})
	}
	return m, nil
}

// keywordExpr turns one keyword into its pattern fragment: literal text with
// spaces widened to `\s+` and word boundaries on word-character edges.
func keywordExpr(kw string) string {
	expr := strings.ReplaceAll(regexp.QuoteMeta(kw), " ", `\s+`)
	if isWordChar(kw[0]) {
		expr = `\b` + expr
	}
	if isWordChar(kw[len(kw)-1]) {
		expr += `\b`
	}
	return `(?:` + expr + `)`
}

func isWordChar(c byte) bool {
	return c == '_' ||
		('0' <= c && c <= '9') ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z')
}

// Matches returns the canonical field name of every pattern in the given
// category found in text. Patterns use substring search, not full-line
// anchoring, so a dense block listing several results yields several
// candidates; the merge engine resolves the overlap.
func (m *TestMatcher) Matches(category model.Category, text string) []string {
	var names []string
	for _, p := range m.byCategory[category] {
		if p.re.MatchString(text) {
			names = append(names, p.fieldName)
		}
	}
	return names
}
