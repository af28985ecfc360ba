// profitcalc is the offline CLI: extract transactions from a single
// file and print or export them without running the daemon.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/profitcalc/profitcalc/internal/categorize"
	"github.com/profitcalc/profitcalc/internal/common"
	"github.com/profitcalc/profitcalc/internal/model"
	"github.com/profitcalc/profitcalc/internal/ocr"
	"github.com/profitcalc/profitcalc/internal/pipeline"
	"github.com/profitcalc/profitcalc/internal/report"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "profitcalc",
		Short:         "Extract and summarize transactions from financial files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newProcessCmd())
	return root
}

func newProcessCmd() *cobra.Command {
	var (
		out          string
		taxonomyPath string
		asJSON       bool
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:   "process <file>",
		Short: "Run one file through the extraction pipeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelInfo
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)

			cfg := common.LoadConfig()
			ocrExt := ocr.NewExtractor(ocr.Config{
				Pdftotext:     cfg.OCR.Pdftotext,
				Tesseract:     cfg.OCR.Tesseract,
				TesseractLang: cfg.OCR.TesseractLang,
			}, logger)

			var opts []pipeline.Option
			if taxonomyPath != "" {
				taxonomy, err := categorize.LoadTaxonomy(taxonomyPath)
				if err != nil {
					return err
				}
				opts = append(opts, pipeline.WithTaxonomy(taxonomy))
			}
			coord := pipeline.NewCoordinator(logger, ocrExt, opts...)

			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			txs, err := coord.Process(context.Background(), data, filepath.Ext(path))
			if err != nil {
				return err
			}

			if out != "" {
				return writeExport(cmd, txs, out)
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(txs)
			}
			printTable(cmd, txs)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "export to a file (.xlsx or .csv)")
	cmd.Flags().StringVar(&taxonomyPath, "taxonomy", "", "YAML file overriding the default category list")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print transactions as JSON")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline stages")
	return cmd
}

func writeExport(cmd *cobra.Command, txs []model.Transaction, out string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(out)) {
	case ".xlsx":
		data, err = report.ExportXLSX(txs)
	case ".csv":
		data, err = report.ExportCSV(txs)
	default:
		return fmt.Errorf("unsupported export extension %q, use .xlsx or .csv", filepath.Ext(out))
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d transactions to %s\n", len(txs), out)
	return nil
}

func printTable(cmd *cobra.Command, txs []model.Transaction) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%-12s  %-40s  %12s  %-8s  %s\n", "DATE", "DESCRIPTION", "AMOUNT", "TYPE", "CATEGORY")
	for _, tx := range txs {
		desc := tx.Description
		if len(desc) > 40 {
			desc = desc[:39] + "…"
		}
		fmt.Fprintf(w, "%-12s  %-40s  %12s  %-8s  %s\n",
			tx.Date.Format("2006-01-02"), desc, tx.Amount.StringFixed(2), tx.Type, tx.Category)
	}

	s := report.Summarize(txs)
	fmt.Fprintf(w, "\n%d transactions, revenue %s, expenses %s, net %s\n",
		s.Total, s.Revenue.StringFixed(2), s.Expenses.StringFixed(2), s.Net.StringFixed(2))
}
