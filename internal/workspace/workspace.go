// Package workspace is the controller behind one open entry application:
// the menu sections, the strip of open transaction forms, and the keyboard
// chords that drive them.
package workspace

import (
	"errors"
	"fmt"
	"slices"

	"github.com/swissfort-mfg/entrydesk/internal/activity"
	"github.com/swissfort-mfg/entrydesk/internal/entry"
	"github.com/swissfort-mfg/entrydesk/internal/master"
	"github.com/swissfort-mfg/entrydesk/internal/model"
	"github.com/swissfort-mfg/entrydesk/internal/shortcut"
)

var (
	ErrUnknownForm         = errors.New("unknown form")
	ErrFormNotOpen         = errors.New("form is not open")
	ErrUnknownSection      = errors.New("unknown section")
	ErrUnknownMasterOption = errors.New("unknown master option")
)

// Options configures a Workspace.
type Options struct {
	Forms    []model.FormSpec
	Catalog  *master.Service // optional; supplies categories and master menu
	Strict   bool
	PageSize int
	Activity *activity.Log // optional; a fresh log is created when nil
}

// MenuItem is one entry of a menu dropdown.
type MenuItem struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Menu lists the options under each section.
type Menu struct {
	Master      []MenuItem `json:"master"`
	Transaction []MenuItem `json:"transaction"`
}

// Workspace holds the UI state of one entry application instance. It is
// not safe for concurrent use.
type Workspace struct {
	forms    []model.FormSpec
	catalog  *master.Service
	strict   bool
	pageSize int
	log      *activity.Log

	section  model.Section
	selected string // last chosen master option
	open     []model.FormKind
	active   model.FormKind
	sessions map[model.FormKind]*entry.Session
	keys     *shortcut.Dispatcher // nil while unmounted
}

// New creates an unmounted workspace showing the Master section.
func New(opts Options) *Workspace {
	forms := slices.Clone(opts.Forms)
	if opts.Catalog != nil {
		for i := range forms {
			if len(forms[i].Categories) > 0 {
				continue
			}
			for _, c := range opts.Catalog.Categories(forms[i].Kind) {
				forms[i].Categories = append(forms[i].Categories, c.Value)
			}
		}
	}
	log := opts.Activity
	if log == nil {
		log = activity.New()
	}
	return &Workspace{
		forms:    forms,
		catalog:  opts.Catalog,
		strict:   opts.Strict,
		pageSize: opts.PageSize,
		log:      log,
		section:  model.SectionMaster,
		sessions: make(map[model.FormKind]*entry.Session),
	}
}

// Mount installs the keyboard dispatcher. Mounting twice keeps the
// existing dispatcher.
func (w *Workspace) Mount() {
	if w.keys == nil {
		w.keys = shortcut.New(w.forms)
	}
}

// Unmount removes the keyboard dispatcher; keys are ignored until the next
// Mount.
func (w *Workspace) Unmount() {
	w.keys = nil
}

// Mounted reports whether keys are being interpreted.
func (w *Workspace) Mounted() bool { return w.keys != nil }

// KeyState returns the dispatcher state, Idle while unmounted.
func (w *Workspace) KeyState() shortcut.State {
	if w.keys == nil {
		return shortcut.Idle
	}
	return w.keys.State()
}

// HandleKey feeds one key to the dispatcher and applies the resulting
// action.
func (w *Workspace) HandleKey(k shortcut.Key) (shortcut.Action, error) {
	if w.keys == nil {
		return shortcut.Action{}, nil
	}
	a := w.keys.Handle(k)
	switch a.Kind {
	case shortcut.ActionSwitchSection:
		if err := w.SetSection(a.Section); err != nil {
			return a, err
		}
	case shortcut.ActionOpenForm:
		if _, err := w.OpenForm(a.Form); err != nil {
			return a, err
		}
	}
	return a, nil
}

// Section returns the visible section.
func (w *Workspace) Section() model.Section { return w.section }

// SetSection switches the visible section.
func (w *Workspace) SetSection(s model.Section) error {
	switch s {
	case model.SectionMaster, model.SectionTransaction:
		w.section = s
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownSection, s)
}

// SelectMaster chooses a master option and shows the Master section.
func (w *Workspace) SelectMaster(value string) error {
	if w.catalog != nil && !w.catalog.Exists(model.OptionMaster, value) {
		return fmt.Errorf("%w: %q", ErrUnknownMasterOption, value)
	}
	w.selected = value
	w.section = model.SectionMaster
	return nil
}

// SelectedMaster returns the last chosen master option.
func (w *Workspace) SelectedMaster() string { return w.selected }

// Menu returns the dropdown contents of both sections.
func (w *Workspace) Menu() Menu {
	m := Menu{Master: []MenuItem{}, Transaction: []MenuItem{}}
	if w.catalog != nil {
		for _, o := range w.catalog.ByKind(model.OptionMaster) {
			m.Master = append(m.Master, MenuItem{Label: o.Label, Value: o.Value})
		}
	}
	for _, f := range w.forms {
		m.Transaction = append(m.Transaction, MenuItem{Label: f.Label, Value: string(f.Kind)})
	}
	return m
}

// Forms returns the configured transaction forms.
func (w *Workspace) Forms() []model.FormSpec { return slices.Clone(w.forms) }

// Spec returns the configuration of one form.
func (w *Workspace) Spec(kind model.FormKind) (model.FormSpec, bool) {
	i := slices.IndexFunc(w.forms, func(f model.FormSpec) bool { return f.Kind == kind })
	if i < 0 {
		return model.FormSpec{}, false
	}
	return w.forms[i], true
}

// OpenForms returns the open tabs in the order they were opened.
func (w *Workspace) OpenForms() []model.FormKind { return slices.Clone(w.open) }

// Active returns the active tab, or "" when none is open.
func (w *Workspace) Active() model.FormKind { return w.active }

// Activity returns the workspace's activity log.
func (w *Workspace) Activity() *activity.Log { return w.log }

// OpenForm opens kind in a new tab, or re-activates the existing tab, and
// shows the Transaction section.
func (w *Workspace) OpenForm(kind model.FormKind) (*entry.Session, error) {
	spec, ok := w.Spec(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownForm, kind)
	}

	s, ok := w.sessions[kind]
	if !ok {
		var cats entry.CategoryChecker
		if w.catalog != nil {
			cats = w.catalog
		}
		s = entry.NewSession(entry.Options{
			Form:       spec,
			Strict:     w.strict,
			Categories: cats,
			PageSize:   w.pageSize,
			Activity:   w.log,
		})
		w.sessions[kind] = s
		w.open = append(w.open, kind)
		w.log.Record(string(kind), activity.ActionOpen, "", "")
	}
	w.active = kind
	w.section = model.SectionTransaction
	return s, nil
}

// CloseForm closes a tab and discards its rows. If it was active, the most
// recently opened remaining tab becomes active.
func (w *Workspace) CloseForm(kind model.FormKind) error {
	i := slices.Index(w.open, kind)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrFormNotOpen, kind)
	}
	w.open = slices.Delete(w.open, i, i+1)
	delete(w.sessions, kind)
	w.log.Record(string(kind), activity.ActionClose, "", "")

	if w.active == kind {
		w.active = ""
		if n := len(w.open); n > 0 {
			w.active = w.open[n-1]
		}
	}
	return nil
}

// Activate switches to an open tab.
func (w *Workspace) Activate(kind model.FormKind) error {
	if !slices.Contains(w.open, kind) {
		return fmt.Errorf("%w: %q", ErrFormNotOpen, kind)
	}
	w.active = kind
	w.section = model.SectionTransaction
	return nil
}

// Session returns the form session behind an open tab.
func (w *Workspace) Session(kind model.FormKind) (*entry.Session, error) {
	s, ok := w.sessions[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFormNotOpen, kind)
	}
	return s, nil
}
