// Package report implements the extraction pipeline that turns OCR line
// streams from scanned lab reports into structured investigations. Three
// strategies (keyword block matching, table-line parsing, template matching)
// run over the same input and are reconciled by the merge engine.
package report

import "strings"

// specimenMarkers is the fixed specimen vocabulary. A line containing any of
// these (case-insensitive substring) closes the current block and opens a
// new one.
var specimenMarkers = []string{"EDTA", "URINE", "PLASMA", "SERUM", "WHOLE"}

// Block is a contiguous run of lines bounded by specimen markers. Specimen
// holds the marker that opened the block, "" for the leading block.
type Block struct {
	Lines    []string
	Specimen string
}

// Text returns the block's lines joined into a single blob.
func (b Block) Text() string {
	return strings.Join(b.Lines, " ")
}

// SegmentOptions bounds segmentation on pathological inputs.
type SegmentOptions struct {
	// MaxBlockLines force-closes a block after this many lines even without
	// a specimen marker. Zero means unbounded.
	MaxBlockLines int
}

// SegmentLines groups raw lines into specimen-delimited blocks, preserving
// order. Input with zero specimen markers yields exactly one block holding
// every line.
func SegmentLines(lines []string, opts SegmentOptions) []Block {
	var blocks []Block
	var current Block

	flush := func() {
		if len(current.Lines) > 0 {
			blocks = append(blocks, current)
		}
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)

		if marker, ok := DetectSpecimen(line); ok {
			flush()
			current = Block{Lines: []string{line}, Specimen: marker}
			continue
		}

		current.Lines = append(current.Lines, line)
		if opts.MaxBlockLines > 0 && len(current.Lines) >= opts.MaxBlockLines {
			flush()
			current = Block{Specimen: current.Specimen}
		}
	}
	flush()

	return blocks
}

// DetectSpecimen reports the first specimen marker contained in line.
func DetectSpecimen(line string) (string, bool) {
	upper := strings.ToUpper(line)
	for _, marker := range specimenMarkers {
		if strings.Contains(upper, marker) {
			return marker, true
		}
	}
	return "", false
}
