package report

import (
	"strings"

	"github.com/sells-group/labreport-cli/internal/model"
)

// ClassifiedBlock is a block with its assigned category. Classified is false
// when neither the block nor any earlier block named a category; such blocks
// are excluded from test matching.
type ClassifiedBlock struct {
	Block
	Category   model.Category
	Classified bool
}

// ClassifyBlocks assigns a category to each block. The classification is an
// explicit fold over the block sequence: a block without its own category
// marker inherits the last known category, so a report that states
// "BIOCHEMISTRY" once covers every following block until the next marker.
func ClassifyBlocks(blocks []Block) []ClassifiedBlock {
	out := make([]ClassifiedBlock, 0, len(blocks))

	var last model.Category
	var haveLast bool
	for _, b := range blocks {
		if cat, ok := detectCategory(b.Text()); ok {
			last, haveLast = cat, true
		}
		out = append(out, ClassifiedBlock{Block: b, Category: last, Classified: haveLast})
	}
	return out
}

// detectCategory returns the first category whose label appears in text,
// either bare or immediately followed by one of the marker suffixes.
// Categories are checked in the fixed priority order of AllCategories, so
// ties resolve deterministically.
func detectCategory(text string) (model.Category, bool) {
	lower := strings.ToLower(text)
	for _, cat := range model.AllCategories() {
		label := string(cat)
		if strings.Contains(lower, label) ||
			strings.Contains(lower, label+":") ||
			strings.Contains(lower, label+" test") ||
			strings.Contains(lower, label+" report") ||
			strings.Contains(lower, label+" -") {
			return cat, true
		}
	}
	return "", false
}
