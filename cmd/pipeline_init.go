package main

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/labreport-cli/internal/fetcher"
	"github.com/sells-group/labreport-cli/internal/model"
	"github.com/sells-group/labreport-cli/internal/ocr"
	"github.com/sells-group/labreport-cli/internal/report"
)

// pipelineEnv bundles the collaborators a command needs to turn a document
// into an extraction result.
type pipelineEnv struct {
	Extractor *report.Extractor
	OCR       ocr.Extractor
}

// initPipeline builds the extraction pipeline from config. templatePath
// overrides the configured template table when non-empty; an empty path
// with no configured template disables the template strategy.
func initPipeline(templatePath string) (*pipelineEnv, error) {
	if templatePath == "" {
		templatePath = cfg.Template.Path
	}

	var templateRows []model.TemplateRow
	if templatePath != "" {
		rows, warnings, err := fetcher.LoadTemplate(templatePath)
		if err != nil {
			return nil, eris.Wrap(err, "init: load template table")
		}
		for _, w := range warnings {
			zap.L().Warn("template table row skipped", zap.String("detail", w))
		}
		templateRows = rows
		zap.L().Info("template table loaded",
			zap.String("path", templatePath),
			zap.Int("rows", len(rows)),
		)
	}

	extractor, err := report.New(model.BuiltinCatalog(), templateRows, report.Options{
		MaxBlockLines: cfg.Extract.MaxBlockLines,
	})
	if err != nil {
		return nil, eris.Wrap(err, "init: build extractor")
	}

	ocrClient, err := ocr.NewExtractor(cfg.OCR)
	if err != nil {
		return nil, eris.Wrap(err, "init: build ocr client")
	}

	return &pipelineEnv{Extractor: extractor, OCR: ocrClient}, nil
}
