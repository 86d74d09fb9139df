package report

import (
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/labreport-cli/internal/model"
)

// sourceTag labels every extraction result.
const sourceTag = "OCR Document"

// Options tunes extraction behavior.
type Options struct {
	// MaxBlockLines force-closes a block after this many lines even without
	// a specimen marker. Zero means unbounded.
	MaxBlockLines int
}

// Extractor runs the full extraction pipeline. All pattern tables are built
// once at construction and read-only afterwards, so a single Extractor
// serves any number of concurrent Extract calls without locking.
type Extractor struct {
	catalog  *model.Catalog
	matcher  *TestMatcher
	table    *TableLineParser
	template *TemplateMatcher
	patient  *PatientInfoExtractor
	opts     Options
}

// New builds an Extractor from the test name catalog and an optional
// template table. templateRows may be nil to disable the template strategy;
// a non-nil table with no usable row is a configuration error.
func New(entries []model.TestNameEntry, templateRows []model.TemplateRow, opts Options) (*Extractor, error) {
	catalog, err := model.NewCatalog(entries)
	if err != nil {
		return nil, err
	}

	matcher, err := NewTestMatcher(catalog)
	if err != nil {
		return nil, err
	}

	e := &Extractor{
		catalog: catalog,
		matcher: matcher,
		table:   NewTableLineParser(),
		patient: NewPatientInfoExtractor(),
		opts:    opts,
	}

	if templateRows != nil {
		tm, err := NewTemplateMatcher(templateRows)
		if err != nil {
			return nil, err
		}
		e.template = tm
	}

	return e, nil
}

// Extract runs every strategy over the given OCR lines and reconciles their
// candidates into one ExtractionResult. The input must be the complete,
// final line list; an empty list is a caller error.
func (e *Extractor) Extract(lines []string) (*model.ExtractionResult, error) {
	if len(lines) == 0 {
		return nil, eris.New("report: empty input line list")
	}

	fullText := strings.Join(lines, "\n")
	var warnings []string

	// Strategy A: specimen-delimited blocks, category classification,
	// keyword pattern matching.
	blocks := SegmentLines(lines, SegmentOptions{MaxBlockLines: e.opts.MaxBlockLines})
	classified := ClassifyBlocks(blocks)
	zap.L().Debug("report: segmented input",
		zap.Int("lines", len(lines)),
		zap.Int("blocks", len(blocks)),
	)

	var candidates []model.Investigation
	for _, cb := range classified {
		if !cb.Classified {
			continue
		}
		text := cb.Text()
		for _, name := range e.matcher.Matches(cb.Category, text) {
			pv, ok := ParseTestValue(text)
			if !ok {
				continue
			}
			if pv.Specimen == "" {
				pv.Specimen = cb.Specimen
			}
			candidates = append(candidates, model.Investigation{
				Category: cb.Category,
				TestName: name,
				Result:   pv,
			})
		}
	}

	// Strategy B: per-line table parsing, independent of block state.
	for _, line := range lines {
		if inv, ok := e.table.Parse(line); ok {
			candidates = append(candidates, inv)
		}
	}

	// Strategy C: template table against the whole document text.
	if e.template != nil {
		matched, tmplWarnings := e.template.Match(fullText)
		candidates = append(candidates, matched...)
		warnings = append(warnings, e.template.Warnings()...)
		warnings = append(warnings, tmplWarnings...)
	}

	merged, mergeWarnings := MergeCandidates(e.catalog, candidates)
	warnings = append(warnings, mergeWarnings...)

	zap.L().Info("report: extraction complete",
		zap.Int("candidates", len(candidates)),
		zap.Int("investigations", len(merged)),
		zap.Int("warnings", len(warnings)),
	)

	return &model.ExtractionResult{
		PatientInformation: e.patient.Extract(fullText),
		Investigations:     merged,
		Source:             sourceTag,
		Warnings:           warnings,
	}, nil
}
