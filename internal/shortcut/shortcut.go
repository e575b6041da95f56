// Package shortcut interprets the two-key chords of the entry application:
// Alt+T followed by a form letter opens that transaction form, Alt+M
// switches to the Master section.
package shortcut

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/swissfort-mfg/entrydesk/internal/model"
)

// State is the dispatcher's position in a chord.
type State int

const (
	Idle State = iota
	AwaitingTransactionKey
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingTransactionKey:
		return "awaiting_transaction_key"
	}
	return "unknown"
}

// Key is one keydown event as reported by the shell.
type Key struct {
	Key     string `json:"key"`
	Alt     bool   `json:"alt"`
	InInput bool   `json:"in_input"` // focus is in a text field or select
}

// ActionKind says what the shell should do in response to a key.
type ActionKind string

const (
	ActionNone          ActionKind = ""
	ActionSwitchSection ActionKind = "switch_section"
	ActionOpenForm      ActionKind = "open_form"
)

// Action is the result of handling a key. Handled means the shell should
// swallow the event.
type Action struct {
	Kind    ActionKind     `json:"kind,omitempty"`
	Section model.Section  `json:"section,omitempty"`
	Form    model.FormKind `json:"form,omitempty"`
	Handled bool           `json:"handled"`
}

// Dispatcher is the chord state machine. It is not safe for concurrent use.
type Dispatcher struct {
	state    State
	bindings map[rune]model.FormKind
}

// New creates an idle Dispatcher. Each form with a Shortcut letter is bound
// to the key pressed after Alt+T.
func New(forms []model.FormSpec) *Dispatcher {
	b := make(map[rune]model.FormKind, len(forms))
	for _, f := range forms {
		if f.Shortcut != 0 {
			b[unicode.ToUpper(f.Shortcut)] = f.Kind
		}
	}
	return &Dispatcher{bindings: b}
}

// State returns the current state.
func (d *Dispatcher) State() State { return d.state }

// Reset returns to Idle.
func (d *Dispatcher) Reset() { d.state = Idle }

// Handle advances the state machine by one key.
//
// Keys typed while focus is in an input are never interpreted and abandon
// a pending chord. Bare modifier presses leave the state alone.
func (d *Dispatcher) Handle(k Key) Action {
	if k.InInput {
		d.state = Idle
		return Action{}
	}
	if isModifier(k.Key) {
		return Action{}
	}

	letter, ok := letterOf(k.Key)

	if k.Alt && ok && letter == 'T' {
		d.state = AwaitingTransactionKey
		return Action{Kind: ActionSwitchSection, Section: model.SectionTransaction, Handled: true}
	}

	if d.state == AwaitingTransactionKey {
		d.state = Idle
		if form, bound := d.bindings[letter]; ok && bound {
			return Action{Kind: ActionOpenForm, Section: model.SectionTransaction, Form: form, Handled: true}
		}
		return Action{}
	}

	if k.Alt && ok && letter == 'M' {
		return Action{Kind: ActionSwitchSection, Section: model.SectionMaster, Handled: true}
	}
	return Action{}
}

func letterOf(key string) (rune, bool) {
	r, size := utf8.DecodeRuneInString(key)
	if size == 0 || size != len(key) || !unicode.IsLetter(r) {
		return 0, false
	}
	return unicode.ToUpper(r), true
}

func isModifier(key string) bool {
	switch strings.ToLower(key) {
	case "alt", "altgraph", "control", "shift", "meta":
		return true
	}
	return false
}
