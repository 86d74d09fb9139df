package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/labreport-cli/internal/model"
	"github.com/sells-group/labreport-cli/internal/ocr"
)

var (
	extractTemplate string
	extractOutDir   string
)

var extractCmd = &cobra.Command{
	Use:   "extract <path>",
	Short: "Extract investigations from a report document or a directory of documents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initPipeline(extractTemplate)
		if err != nil {
			return err
		}

		path := args[0]
		info, err := os.Stat(path)
		if err != nil {
			return eris.Wrapf(err, "extract: stat %s", path)
		}

		if info.IsDir() {
			return extractBatch(ctx, env, path)
		}

		result, err := extractOne(ctx, env, path)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractTemplate, "template", "", "path to XLSX test-field table (default from config)")
	extractCmd.Flags().StringVar(&extractOutDir, "out", "", "directory for per-document JSON output (batch mode, default alongside input)")
	rootCmd.AddCommand(extractCmd)
}

// extractOne turns a single document into an ExtractionResult. Plain .txt
// files bypass OCR and are read directly.
func extractOne(ctx context.Context, env *pipelineEnv, path string) (*model.ExtractionResult, error) {
	var (
		lines []string
		err   error
	)

	if strings.EqualFold(filepath.Ext(path), ".txt") {
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, eris.Wrapf(readErr, "extract: read %s", path)
		}
		lines = ocr.SplitLines(string(data))
	} else {
		lines, err = env.OCR.ExtractLines(ctx, path)
		if err != nil {
			return nil, eris.Wrapf(err, "extract: ocr %s", path)
		}
	}

	result, err := env.Extractor.Extract(lines)
	if err != nil {
		return nil, eris.Wrapf(err, "extract: parse %s", path)
	}

	zap.L().Info("document extracted",
		zap.String("path", path),
		zap.Int("investigations", len(result.Investigations)),
		zap.Int("warnings", len(result.Warnings)),
	)
	return result, nil
}

// extractBatch processes every .pdf and .txt file in dir concurrently,
// writing one JSON file per document. Individual failures are logged and
// counted without aborting the batch.
func extractBatch(ctx context.Context, env *pipelineEnv, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return eris.Wrapf(err, "extract: read directory %s", dir)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".pdf", ".txt":
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}

	if len(paths) == 0 {
		zap.L().Info("no documents found", zap.String("dir", dir))
		return nil
	}

	outDir := extractOutDir
	if outDir == "" {
		outDir = dir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return eris.Wrapf(err, "extract: create output directory %s", outDir)
	}

	zap.L().Info("processing batch",
		zap.Int("documents", len(paths)),
		zap.Int("workers", cfg.Extract.Workers),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Extract.Workers)

	var succeeded, failed atomic.Int64

	for _, path := range paths {
		g.Go(func() error {
			log := zap.L().With(zap.String("path", path))

			result, err := extractOne(gctx, env, path)
			if err != nil {
				failed.Add(1)
				log.Error("extraction failed", zap.Error(err))
				return nil // don't abort batch on individual failure
			}

			outPath := filepath.Join(outDir, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))+".json")
			if err := writeResultJSON(outPath, result); err != nil {
				failed.Add(1)
				log.Error("write output failed", zap.Error(err))
				return nil
			}

			succeeded.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return eris.Wrap(err, "extract: batch processing")
	}

	zap.L().Info("batch complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)
	return nil
}

func writeResultJSON(path string, result *model.ExtractionResult) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "extract: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return eris.Wrapf(err, "extract: encode %s", path)
	}
	return f.Close()
}
