package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/labreport-cli/internal/fetcher"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Inspect test-field template tables",
}

var templateValidateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Validate an XLSX test-field table and print its parsed rows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, warnings, err := fetcher.LoadTemplate(args[0])
		if err != nil {
			return err
		}

		for _, w := range warnings {
			zap.L().Warn("template table row skipped", zap.String("detail", w))
		}
		zap.L().Info("template table valid",
			zap.String("path", args[0]),
			zap.Int("rows", len(rows)),
			zap.Int("warnings", len(warnings)),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	},
}

func init() {
	templateCmd.AddCommand(templateValidateCmd)
	rootCmd.AddCommand(templateCmd)
}
