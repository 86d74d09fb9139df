package report

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sells-group/labreport-cli/internal/model"
)

// tableHeaderPrefixes identify column header lines emitted by tabular
// report layouts.
var tableHeaderPrefixes = []string{"specimen", "test name", "result", "reference"}

// tableSeparatorPrefixes identify decorative separator lines.
var tableSeparatorPrefixes = []string{"---", "===", "___", "|||"}

// tableLineRe matches one structured table row: optional leading specimen
// (pipe- or space-delimited), test name (parenthesized method allowed),
// numeric value, optional H/L flag, optional units, optional trailing
// reference range, all optionally pipe-delimited.
var tableLineRe = regexp.MustCompile(
	`(?i)^\s*` +
		`(?:(?P<specimen>edta|serum|plasma|urine|whole)\b\s*\|?\s*)?` +
		`(?P<test>[^|]{2,}?)\s*` +
		`\|?\s*(?P<value>\d+(?:\.\d+)?)` +
		`(?:\s*\|?\s*(?P<flag>[HL])\b)?` +
		`(?:\s*\|?\s*(?P<units>[^|]+?))?` +
		`(?:\s*\|?\s*(?P<range>(?:male|female)?\s*:?\s*\d[^|]*?))?` +
		`\s*$`)

// methodSuffixRe captures a parenthesized method suffix on a test name cell.
var methodSuffixRe = regexp.MustCompile(`\(([^)]+)\)\s*$`)

// genderPrefixRe strips a leading gender label from a raw reference range.
var genderPrefixRe = regexp.MustCompile(`(?i)^(?:male|female)\s*:?\s*`)

// rangeSeparatorRe normalizes range separators ("to", "-", en-dash) to a
// single "-"-surrounded form.
var rangeSeparatorRe = regexp.MustCompile(`\s*(?:to|[-–])\s*`)

// TableLineParser parses individual column/delimiter-formatted lines. It is
// the second extraction strategy and runs per raw line, independent of block
// and category state.
type TableLineParser struct{}

// NewTableLineParser returns a TableLineParser.
func NewTableLineParser() *TableLineParser {
	return &TableLineParser{}
}

// Parse extracts one investigation candidate from a table-formatted line.
// Returns false for headers, separators, and lines missing a test name of at
// least two characters or a numeric value.
func (p *TableLineParser) Parse(line string) (model.Investigation, bool) {
	if p.shouldSkip(line) {
		return model.Investigation{}, false
	}

	m := tableLineRe.FindStringSubmatch(line)
	if m == nil {
		return model.Investigation{}, false
	}
	groups := namedGroups(tableLineRe, m)

	testName := strings.TrimSpace(groups["test"])
	if len(testName) < 2 {
		return model.Investigation{}, false
	}

	value, err := strconv.ParseFloat(groups["value"], 64)
	if err != nil {
		return model.Investigation{}, false
	}

	var method string
	if mm := methodSuffixRe.FindStringSubmatch(testName); mm != nil {
		method = strings.TrimSpace(mm[1])
	}

	inv := model.Investigation{
		TestName: testName,
		Result: model.ParsedValue{
			Value:          model.Float64(value),
			Units:          NormalizeUnits(groups["units"]),
			ReferenceRange: cleanReferenceRange(groups["range"]),
			Flag:           strings.ToUpper(groups["flag"]),
			Specimen:       strings.TrimSpace(groups["specimen"]),
			Method:         method,
		},
	}
	return inv, true
}

// shouldSkip reports whether line is a header, separator, or blank.
func (p *TableLineParser) shouldSkip(line string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(line))
	if trimmed == "" {
		return true
	}
	for _, prefix := range tableHeaderPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	for _, prefix := range tableSeparatorPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	onlySeparators := true
	for _, r := range trimmed {
		if r != '-' && r != '=' && r != '|' && r != ' ' {
			onlySeparators = false
			break
		}
	}
	return onlySeparators
}

// cleanReferenceRange strips a leading gender label and normalizes range
// separators to " - ".
func cleanReferenceRange(raw string) string {
	cleaned := genderPrefixRe.ReplaceAllString(strings.TrimSpace(raw), "")
	cleaned = rangeSeparatorRe.ReplaceAllString(cleaned, " - ")
	return strings.TrimSpace(cleaned)
}

// namedGroups maps a regexp's named subexpressions to their submatches.
func namedGroups(re *regexp.Regexp, match []string) map[string]string {
	groups := make(map[string]string)
	for i, name := range re.SubexpNames() {
		if name != "" && i < len(match) {
			groups[name] = match[i]
		}
	}
	return groups
}
