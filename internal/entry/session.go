package entry

import (
	"errors"
	"fmt"

	"github.com/swissfort-mfg/entrydesk/internal/activity"
	"github.com/swissfort-mfg/entrydesk/internal/calc"
	"github.com/swissfort-mfg/entrydesk/internal/id"
	"github.com/swissfort-mfg/entrydesk/internal/model"
)

var (
	// ErrReadOnlyField is returned when an edit targets a derived or
	// unknown line-item field.
	ErrReadOnlyField = errors.New("field is not editable")
	// ErrUnknownHeaderField is returned for an unknown bill header field.
	ErrUnknownHeaderField = errors.New("unknown header field")
)

// Options configures a Session.
type Options struct {
	Form       model.FormSpec
	Strict     bool
	Categories CategoryChecker
	PageSize   int
	Activity   *activity.Log // optional
}

// ViewState is the transient table view a clerk has chosen.
type ViewState struct {
	Search   string
	Column   string
	SortKey  string
	SortDir  SortDir
	Page     int
	PageSize int
}

// Session owns the draft and committed rows of one open transaction form.
type Session struct {
	form      model.FormSpec
	minter    *id.Minter
	validator Validator
	header    model.Header
	draft     model.LineItem
	table     *Table
	view      ViewState
	log       *activity.Log
}

// NewSession opens a form with an empty draft.
func NewSession(opts Options) *Session {
	prefix := opts.Form.IDPrefix
	if prefix == "" {
		prefix = string(opts.Form.Kind)
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	s := &Session{
		form:   opts.Form,
		minter: id.NewMinter(prefix),
		validator: Validator{
			Strict:     opts.Strict,
			Form:       opts.Form.Kind,
			Categories: opts.Categories,
		},
		table: NewTable(),
		view: ViewState{
			Column:   ColumnAll,
			SortKey:  string(model.FieldSerial),
			SortDir:  SortAsc,
			Page:     1,
			PageSize: pageSize,
		},
		log: opts.Activity,
	}
	s.draft = model.NewLineItem(s.minter.Next())
	return s
}

// Form returns the form this session edits.
func (s *Session) Form() model.FormSpec { return s.form }

// Draft returns the line item being edited.
func (s *Session) Draft() model.LineItem { return s.draft }

// Header returns the bill header.
func (s *Session) Header() model.Header { return s.header }

// Rows returns the committed rows in serial order.
func (s *Session) Rows() []model.LineItem { return s.table.Rows() }

// EditDraftField applies one keystroke-level edit to the draft.
func (s *Session) EditDraftField(field model.Field, value string) (model.LineItem, error) {
	if !calc.IsInput(field) {
		return s.draft, fmt.Errorf("%w: %s", ErrReadOnlyField, field)
	}
	s.draft = calc.Recompute(s.draft, field, value)
	return s.draft, nil
}

// SetHeaderField sets one field of the bill header.
func (s *Session) SetHeaderField(field model.HeaderField, value string) (model.Header, error) {
	h, ok := s.header.Set(field, value)
	if !ok {
		return s.header, fmt.Errorf("%w: %s", ErrUnknownHeaderField, field)
	}
	s.header = h
	return s.header, nil
}

// CommitDraft moves a complete draft into the table and starts a new one.
// An incomplete draft is left untouched and an *IncompleteError is
// returned.
func (s *Session) CommitDraft() (model.LineItem, error) {
	if problems := s.validator.Validate(s.draft); len(problems) > 0 {
		err := &IncompleteError{ItemID: s.draft.ID, Problems: problems}
		s.log.Record(string(s.form.Kind), activity.ActionRejected, s.draft.ID, err.Error())
		return model.LineItem{}, err
	}

	committed := s.table.Append(calc.Derive(s.draft))
	s.draft = model.NewLineItem(s.minter.Next())
	s.log.Record(string(s.form.Kind), activity.ActionCommit, committed.ID,
		fmt.Sprintf("serial %d final %s", committed.Serial, committed.FinalAmount.StringFixed(2)))
	return committed, nil
}

// RemoveRow deletes a committed row. Unknown ids are a no-op.
func (s *Session) RemoveRow(id string) bool {
	if !s.table.Remove(id) {
		return false
	}
	s.log.Record(string(s.form.Kind), activity.ActionRemove, id, "")
	return true
}

// SetSearch changes the filter and returns to the first page.
func (s *Session) SetSearch(term, column string) {
	if column == "" {
		column = ColumnAll
	}
	s.view.Search = term
	s.view.Column = column
	s.view.Page = 1
}

// SetSort changes the sort. Only serial has an effect.
func (s *Session) SetSort(key string, dir SortDir) {
	if dir != SortDesc {
		dir = SortAsc
	}
	s.view.SortKey = key
	s.view.SortDir = dir
}

// SetPage selects a page; out-of-range pages are clamped when viewed.
func (s *Session) SetPage(page int) {
	s.view.Page = page
}

// ViewState returns the current view settings.
func (s *Session) ViewState() ViewState { return s.view }

// View runs the current view against the table. The stored page is
// clamped to the result so it always names a valid page.
func (s *Session) View() Page {
	p := s.table.Query(Query{
		Search:   s.view.Search,
		Column:   s.view.Column,
		SortKey:  s.view.SortKey,
		SortDir:  s.view.SortDir,
		Page:     s.view.Page,
		PageSize: s.view.PageSize,
	})
	s.view.Page = p.Page
	return p
}
