package master

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/swissfort-mfg/entrydesk/internal/model"
)

const (
	numFields = 4
	colKind   = 0
	colForm   = 1
	colValue  = 2
	colLabel  = 3
)

// ReadOptions reads master.csv.
func ReadOptions(r io.Reader) ([]model.MasterOption, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading master CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var opts []model.MasterOption
	for i, rec := range records[1:] {
		opt, err := UnmarshalOption(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		opts = append(opts, opt)
	}
	return opts, nil
}

// WriteOptions writes master.csv.
func WriteOptions(w io.Writer, opts []model.MasterOption) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"kind", "form", "value", "label"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, opt := range opts {
		if err := cw.Write(MarshalOption(opt)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalOption converts a MasterOption to a CSV row.
func MarshalOption(opt model.MasterOption) []string {
	row := make([]string, numFields)
	row[colKind] = string(opt.Kind)
	row[colForm] = string(opt.Form)
	row[colValue] = opt.Value
	row[colLabel] = opt.Label
	return row
}

// UnmarshalOption converts a CSV row to a MasterOption.
func UnmarshalOption(record []string) (model.MasterOption, error) {
	if len(record) != numFields {
		return model.MasterOption{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	kind := model.OptionKind(record[colKind])
	switch kind {
	case model.OptionMaster, model.OptionParty:
	case model.OptionCategory:
		if record[colForm] == "" {
			return model.MasterOption{}, fmt.Errorf("category %q has no form", record[colValue])
		}
	default:
		return model.MasterOption{}, fmt.Errorf("unknown option kind %q", record[colKind])
	}

	if record[colValue] == "" {
		return model.MasterOption{}, fmt.Errorf("empty value for %s option", kind)
	}

	label := record[colLabel]
	if label == "" {
		label = record[colValue]
	}

	return model.MasterOption{
		Kind:  kind,
		Form:  model.FormKind(record[colForm]),
		Value: record[colValue],
		Label: label,
	}, nil
}
