package entry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/swissfort-mfg/entrydesk/internal/calc"
	"github.com/swissfort-mfg/entrydesk/internal/model"
)

// ErrIncompleteEntry is wrapped by the error CommitDraft returns when the
// draft fails validation.
var ErrIncompleteEntry = errors.New("incomplete entry")

// ValidationError describes a single reason a draft cannot be committed.
type ValidationError struct {
	Field  model.Field
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// IncompleteError lists every problem found on a rejected draft.
type IncompleteError struct {
	ItemID   string
	Problems []ValidationError
}

func (e *IncompleteError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.Error()
	}
	return fmt.Sprintf("incomplete entry %s: %s", e.ItemID, strings.Join(msgs, "; "))
}

func (e *IncompleteError) Unwrap() error { return ErrIncompleteEntry }

// CategoryChecker tests whether a category belongs to a form.
type CategoryChecker interface {
	IsCategory(form model.FormKind, value string) bool
}

// Validator decides whether a draft may be committed.
//
// The zero Validator only requires every input to be non-empty. Strict
// also rejects numeric fields that are not plain non-negative numbers and,
// when Categories is set, categories the form does not offer.
type Validator struct {
	Strict     bool
	Form       model.FormKind
	Categories CategoryChecker
}

// Validate returns every problem with item, or nil.
func (v Validator) Validate(item model.LineItem) []ValidationError {
	var errs []ValidationError

	for _, f := range model.InputFields() {
		raw, _ := item.Input(f)
		if strings.TrimSpace(raw) == "" {
			errs = append(errs, ValidationError{Field: f, Reason: "required"})
			continue
		}
		if !v.Strict {
			continue
		}
		if calc.IsNumericInput(f) {
			if !calc.IsNumeric(raw) {
				errs = append(errs, ValidationError{Field: f, Reason: fmt.Sprintf("%q is not a number", raw)})
			} else if calc.ParseAmount(raw).IsNegative() {
				errs = append(errs, ValidationError{Field: f, Reason: "must not be negative"})
			}
		}
		if f == model.FieldCategory && v.Categories != nil && !v.Categories.IsCategory(v.Form, raw) {
			errs = append(errs, ValidationError{Field: f, Reason: fmt.Sprintf("unknown category %q", raw)})
		}
	}

	return errs
}

// IsComplete reports whether every input of item is filled in. It checks
// presence only, not numeric validity.
func IsComplete(item model.LineItem) bool {
	return len(Validator{}.Validate(item)) == 0
}
