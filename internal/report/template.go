package report

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/labreport-cli/internal/model"
)

// templatePattern is one compiled row of the external test-field table.
type templatePattern struct {
	row model.TemplateRow
	re  *regexp.Regexp
}

// TemplateMatcher is the third extraction strategy: it searches the whole
// document text for each known template row. It requires the exact test name
// from the table, so it is the most precise strategy and the least resilient
// to naming variance. Segmentation and category state are ignored entirely.
type TemplateMatcher struct {
	patterns []templatePattern
	warnings []string
}

// NewTemplateMatcher compiles one pattern per template row: the literal test
// name, an optional parenthesized suffix, a numeric value, an optional flag,
// and an optional literal match of the row's units. Malformed rows are
// skipped with a recorded warning; an error is returned only when no usable
// row survives.
func NewTemplateMatcher(rows []model.TemplateRow) (*TemplateMatcher, error) {
	m := &TemplateMatcher{}

	for i, row := range rows {
		name := strings.TrimSpace(row.TestName)
		if name == "" {
			m.warnings = append(m.warnings, fmt.Sprintf("template row %d skipped: empty test name", i+1))
			continue
		}

		expr := `(?i)` + regexp.QuoteMeta(name) +
			`(?:\s*\([^)]*\))?\s*[\s:]*([\d.]+)\s*(?:([LH])\s*)?`
		if units := strings.TrimSpace(row.Units); units != "" {
			expr += `(?:\s*` + regexp.QuoteMeta(units) + `\s*)?`
		}

		re, err := regexp.Compile(expr)
		if err != nil {
			m.warnings = append(m.warnings, fmt.Sprintf("template row %d (%s) skipped: %v", i+1, name, err))
			continue
		}

		if !row.Category.Valid() {
			// Table rows without a category column default to haematology.
			row.Category = model.CategoryHaematology
		}
		m.patterns = append(m.patterns, templatePattern{row: row, re: re})
	}

	if len(m.patterns) == 0 {
		return nil, eris.New("report: template has no usable rows")
	}
	return m, nil
}

// Warnings returns the warnings recorded while compiling the template.
func (m *TemplateMatcher) Warnings() []string {
	return m.warnings
}

// Match searches fullText for every template row. First match per row wins;
// rows with no match contribute nothing. A value that fails numeric
// conversion drops only that row's candidate, with a warning.
func (m *TemplateMatcher) Match(fullText string) ([]model.Investigation, []string) {
	var out []model.Investigation
	var warnings []string

	for _, p := range m.patterns {
		sm := p.re.FindStringSubmatch(fullText)
		if sm == nil {
			continue
		}

		value, err := strconv.ParseFloat(sm[1], 64)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("template match for %q skipped: value %q not numeric", p.row.TestName, sm[1]))
			continue
		}

		out = append(out, model.Investigation{
			Category: p.row.Category,
			TestName: p.row.TestName,
			Result: model.ParsedValue{
				Value:          model.Float64(value),
				Units:          strings.TrimSpace(p.row.Units),
				Flag:           strings.ToUpper(sm[2]),
				ReferenceRange: strings.TrimSpace(p.row.ReferenceValue),
				Specimen:       strings.TrimSpace(p.row.Specimen),
				Method:         strings.TrimSpace(p.row.Method),
			},
		})
	}
	return out, warnings
}
