package report

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sells-group/labreport-cli/internal/model"
)

var (
	// numberRe matches the first decimal-or-integer token in a blob.
	numberRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

	// bareRangeRe matches a reference-range-shaped substring. Accepts the
	// en-dash some OCR engines emit for a hyphen.
	bareRangeRe = regexp.MustCompile(`\d+(?:\.\d+)?\s*[-–]\s*\d+(?:\.\d+)?`)

	// rangePhraseRes are the explicit-phrase fallbacks, tried in order when
	// no bare range was found adjacent to the value.
	rangePhraseRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:ref\.?|reference)\s*:\s*([\d.]+\s*[-–]\s*[\d.]+)`),
		regexp.MustCompile(`(?i)([\d.]+\s*[-–]\s*[\d.]+)\s*\(?ref\.?\)?`),
		regexp.MustCompile(`\(([\d.]+\s*[-–]\s*[\d.]+)\)`),
		regexp.MustCompile(`(?i)(?:range|normal)\s*:\s*([\d.]+\s*[-–]\s*[\d.]+)`),
		regexp.MustCompile(`(?m)[\d.]+\s*[-–]\s*[\d.]+\s*$`),
	}
)

// ParseTestValue extracts value, units, reference range, flag and specimen
// from a block's text blob. Returns false when the blob holds no parseable
// numeric value; the enclosing block is unaffected.
func ParseTestValue(text string) (model.ParsedValue, bool) {
	loc := numberRe.FindStringIndex(text)
	if loc == nil {
		return model.ParsedValue{}, false
	}
	valueStr := text[loc[0]:loc[1]]
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return model.ParsedValue{}, false
	}

	rest := text[loc[1]:]

	// Units candidate runs from the value to the first range-shaped
	// substring; the range itself becomes the reference range.
	var unitsRaw, refRange string
	if rloc := bareRangeRe.FindStringIndex(rest); rloc != nil {
		unitsRaw = rest[:rloc[0]]
		refRange = strings.TrimSpace(rest[rloc[0]:rloc[1]])
	} else {
		unitsRaw = rest
		refRange = findRangePhrase(text)
	}

	pv := model.ParsedValue{
		Value:          model.Float64(value),
		Units:          NormalizeUnits(unitsRaw),
		ReferenceRange: refRange,
		Flag:           extractFlag(text, valueStr),
		Specimen:       extractSpecimen(text),
	}
	return pv, true
}

// findRangePhrase tries each explicit range phrase pattern in order and
// returns the first hit, "" when none matches.
func findRangePhrase(text string) string {
	for _, re := range rangePhraseRes {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if len(m) > 1 && m[1] != "" {
			return strings.TrimSpace(m[1])
		}
		return strings.TrimSpace(m[0])
	}
	return ""
}

// extractFlag finds a standalone H or L token immediately following the
// value token.
func extractFlag(text, valueStr string) string {
	re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(valueStr) + `\s*([HL])\b`)
	if err != nil {
		return ""
	}
	if m := re.FindStringSubmatch(text); m != nil {
		return strings.ToUpper(m[1])
	}
	return ""
}

// extractSpecimen returns the first specimen marker present anywhere in the
// blob, "" when absent (the caller inherits the block's opening marker).
func extractSpecimen(text string) string {
	if marker, ok := DetectSpecimen(text); ok {
		return marker
	}
	return ""
}
