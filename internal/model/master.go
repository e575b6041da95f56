package model

// OptionKind classifies a master option.
type OptionKind string

const (
	OptionMaster   OptionKind = "master"   // entries of the Master menu
	OptionParty    OptionKind = "party"    // bill header parties
	OptionCategory OptionKind = "category" // per-form line-item categories
)

// MasterOption represents a row in master.csv.
type MasterOption struct {
	Kind  OptionKind
	Form  FormKind // set for categories only
	Value string
	Label string
}
