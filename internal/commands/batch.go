package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/swissfort-mfg/entrydesk/internal/calc"
	"github.com/swissfort-mfg/entrydesk/internal/entry"
	"github.com/swissfort-mfg/entrydesk/internal/export"
	"github.com/swissfort-mfg/entrydesk/internal/model"
	"github.com/swissfort-mfg/entrydesk/internal/workspace"
)

type batchOptions struct {
	form     string
	out      string
	format   string
	activity string
	header   map[string]string
}

func newBatchCommand() *cobra.Command {
	var opts batchOptions

	cmd := &cobra.Command{
		Use:   "batch <inputs.csv>",
		Short: "Enter line items from a CSV file and export the resulting table",
		Long: `Reads rows with the columns sku, category, quantity, rate,
discount_percent, tax_percent_a and tax_percent_b, commits each through a
form session, and exports the committed table with its totals row.
Incomplete rows are reported and skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(cmd)
			if err != nil {
				return err
			}
			if err := p.applyEnv(); err != nil {
				return err
			}
			return runBatch(cmd, p, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.form, "form", string(model.FormFabricEntry), "form to enter the rows into")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output file (.csv or .xlsx); stdout when empty")
	cmd.Flags().StringVar(&opts.format, "format", "", "export format (default from --out extension, else csv)")
	cmd.Flags().StringVar(&opts.activity, "activity", "", "also write the activity log as CSV to this file")
	cmd.Flags().StringToStringVar(&opts.header, "header", nil, "bill header fields, e.g. party=Party1,trn_no=7")

	return cmd
}

func runBatch(cmd *cobra.Command, p *project, inputPath string, opts batchOptions) error {
	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("opening inputs: %w", err)
	}
	items, err := entry.ReadInputs(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}

	exporter, err := pickExporter(opts)
	if err != nil {
		return err
	}

	ws := workspace.New(workspace.Options{
		Forms:    p.Config.FormSpecs(),
		Catalog:  p.Catalog,
		Strict:   p.Config.Validation.Strict,
		PageSize: p.Config.PageSize(),
	})
	sess, err := ws.OpenForm(model.FormKind(opts.form))
	if err != nil {
		return err
	}
	for k, v := range opts.header {
		if _, err := sess.SetHeaderField(model.HeaderField(k), v); err != nil {
			return err
		}
	}

	var committed, skipped int
	for i, li := range items {
		for _, field := range model.InputFields() {
			v, _ := li.Input(field)
			if _, err := sess.EditDraftField(field, v); err != nil {
				return fmt.Errorf("row %d: %w", i+2, err)
			}
		}
		if _, err := sess.CommitDraft(); err != nil {
			if !errors.Is(err, entry.ErrIncompleteEntry) {
				return fmt.Errorf("row %d: %w", i+2, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "row %d skipped: %v\n", i+2, err)
			skipped++
			continue
		}
		committed++
	}

	sheet := export.Sheet{
		Title:     sess.Form().Label,
		Header:    sess.Header(),
		Rows:      sess.Rows(),
		Formatter: calc.Formatter{HideZero: p.Config.Display.HideZero},
	}
	write := func(w io.Writer) error { return exporter.Export(w, sheet) }
	if opts.out == "" {
		if err := write(cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("exporting: %w", err)
		}
	} else if err := writeFile(opts.out, write); err != nil {
		return fmt.Errorf("writing %s: %w", opts.out, err)
	}

	if opts.activity != "" {
		if err := writeFile(opts.activity, ws.Activity().WriteCSV); err != nil {
			return fmt.Errorf("writing %s: %w", opts.activity, err)
		}
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Committed %d rows, skipped %d\n", committed, skipped)
	return nil
}

func pickExporter(opts batchOptions) (export.Exporter, error) {
	format := opts.format
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(opts.out), ".")
	}
	if format == "" {
		format = "csv"
	}
	reg := export.DefaultRegistry()
	e := reg.Get(format)
	if e == nil {
		return nil, fmt.Errorf("unknown export format %q (available: %s)", format, strings.Join(reg.Formats(), ", "))
	}
	return e, nil
}
