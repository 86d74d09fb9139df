package report

import (
	"sort"
	"strings"
)

// commonUnits is the fixed catalog of known unit strings. Matching is
// longest-entry-first so "millions/cumm" wins over a shorter suffix.
var commonUnits = []string{
	"g/dL", "mg/dL", "ng/mL", "pg", "fl", "fL", "IU/L", "U/L", "%",
	"Cells/cumm", "Lakhs/cumm", "millions/cumm", "thousands/cumm",
	"mEq/L", "mmol/L", "g/L", "mg/L", "ng/dL", "pg/mL", "mm/hr",
	"mIU/L", "gm/dL",
}

// unitsByLength is commonUnits sorted longest-first, built once at init.
var unitsByLength = func() []string {
	sorted := make([]string, len(commonUnits))
	copy(sorted, commonUnits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})
	return sorted
}()

// NormalizeUnits matches raw against the unit catalog, case- and
// whitespace-insensitive. On a hit the catalog string is returned verbatim,
// which also strips noise glued onto the unit by OCR (a gender label run
// into "millions/cummMale:", say). On a miss the raw candidate is filtered
// to letters, '%' and '/'.
func NormalizeUnits(raw string) string {
	collapsed := collapseUnits(raw)
	if collapsed == "" {
		return ""
	}
	for _, unit := range unitsByLength {
		if strings.Contains(collapsed, collapseUnits(unit)) {
			return unit
		}
	}
	return filterUnitChars(raw)
}

// collapseUnits lowercases and drops all whitespace for catalog comparison.
func collapseUnits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// filterUnitChars keeps only letters, '%' and '/' from s.
func filterUnitChars(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '%' || r == '/' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
