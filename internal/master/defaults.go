package master

import "github.com/swissfort-mfg/entrydesk/internal/model"

// DefaultCatalog returns the options the shop floor starts with.
func DefaultCatalog() []model.MasterOption {
	return []model.MasterOption{
		{Kind: model.OptionMaster, Value: "MasterOption1", Label: "M Option 1"},
		{Kind: model.OptionMaster, Value: "MasterOption2", Label: "M Option 2"},
		{Kind: model.OptionMaster, Value: "MasterOption3", Label: "M Option 3"},
		{Kind: model.OptionParty, Value: "Party1", Label: "Party 1"},
		{Kind: model.OptionParty, Value: "Party2", Label: "Party 2"},
		{Kind: model.OptionCategory, Form: model.FormFabricEntry, Value: "Fabric1", Label: "Fabric 1"},
		{Kind: model.OptionCategory, Form: model.FormFabricEntry, Value: "Fabric2", Label: "Fabric 2"},
		{Kind: model.OptionCategory, Form: model.FormCuttingEntry, Value: "Shirt", Label: "Shirt"},
		{Kind: model.OptionCategory, Form: model.FormCuttingEntry, Value: "Trouser", Label: "Trouser"},
		{Kind: model.OptionCategory, Form: model.FormWorkEntry, Value: "Stitching", Label: "Stitching"},
		{Kind: model.OptionCategory, Form: model.FormWorkEntry, Value: "Embroidery", Label: "Embroidery"},
	}
}
