package report

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sells-group/labreport-cli/internal/model"
)

// MergeCandidates reconciles the candidate streams of all strategies into
// one deduplicated investigation list. It is the single reconciliation
// authority: strategies can be added or reordered without touching the
// semantics here.
//
// Candidates lacking a test name or a present value are silently excluded
// (recorded as warnings, not errors). Each surviving name goes through
// canonical resolution, then candidates fold into a map keyed by
// canonical name + value rounded to two decimals (half-up): the first entry
// for a key becomes the primary record and later duplicates may only
// backfill subordinate fields that are still empty, never replace them. The
// returned list preserves first-insertion order.
func MergeCandidates(catalog *model.Catalog, candidates []model.Investigation) ([]model.Investigation, []string) {
	byKey := make(map[string]int)
	var merged []model.Investigation
	var warnings []string

	for _, cand := range candidates {
		if cand.TestName == "" {
			warnings = append(warnings, "skipped investigation with empty test name")
			continue
		}
		if cand.Result.Value == nil {
			warnings = append(warnings, fmt.Sprintf("skipped investigation %q: no value", cand.TestName))
			continue
		}

		cand.TestName = catalog.CanonicalName(cand.TestName)
		key := mergeKey(cand.TestName, *cand.Result.Value)

		idx, seen := byKey[key]
		if !seen {
			byKey[key] = len(merged)
			merged = append(merged, cand)
			continue
		}

		backfill(&merged[idx], cand)
	}

	return merged, warnings
}

// backfill copies subordinate fields from dup onto the primary record where
// the primary's field is still empty. Populated fields are never replaced.
func backfill(primary *model.Investigation, dup model.Investigation) {
	if primary.Category == "" {
		primary.Category = dup.Category
	}
	if primary.Result.Units == "" {
		primary.Result.Units = dup.Result.Units
	}
	if primary.Result.ReferenceRange == "" {
		primary.Result.ReferenceRange = dup.Result.ReferenceRange
	}
	if primary.Result.Flag == "" {
		primary.Result.Flag = dup.Result.Flag
	}
	if primary.Result.Specimen == "" {
		primary.Result.Specimen = dup.Result.Specimen
	}
	if primary.Result.Method == "" {
		primary.Result.Method = dup.Result.Method
	}
}

// mergeKey builds the dedup key: canonical test name plus the value rounded
// to two decimal places, half-up. Rounding goes through decimal so halves on
// representational edges (2.675) still round up.
func mergeKey(name string, value float64) string {
	return name + ":" + decimal.NewFromFloat(value).Round(2).StringFixed(2)
}
