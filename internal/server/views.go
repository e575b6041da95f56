package server

import (
	"github.com/swissfort-mfg/entrydesk/internal/calc"
	"github.com/swissfort-mfg/entrydesk/internal/entry"
	"github.com/swissfort-mfg/entrydesk/internal/model"
	"github.com/swissfort-mfg/entrydesk/internal/workspace"
)

type formView struct {
	Kind          string   `json:"kind"`
	Label         string   `json:"label"`
	IDPrefix      string   `json:"id_prefix"`
	Shortcut      string   `json:"shortcut,omitempty"`
	CategoryLabel string   `json:"category_label"`
	QuantityLabel string   `json:"quantity_label"`
	Categories    []string `json:"categories"`
}

type workspaceView struct {
	ID             string         `json:"id"`
	Section        string         `json:"section"`
	SelectedMaster string         `json:"selected_master,omitempty"`
	KeyState       string         `json:"key_state"`
	Mounted        bool           `json:"mounted"`
	Open           []string       `json:"open"`
	Active         string         `json:"active,omitempty"`
	Forms          []formView     `json:"forms"`
	Menu           workspace.Menu `json:"menu"`
}

type headerView struct {
	TrnNo       string `json:"trn_no"`
	InvoiceNo   string `json:"invoice_no"`
	InvoiceDate string `json:"invoice_date"`
	Party       string `json:"party"`
	TrnDate     string `json:"trn_date"`
}

type pageView struct {
	Items      []map[string]string `json:"items"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	TotalCount int                 `json:"total_count"`
	TotalPages int                 `json:"total_pages"`
	Totals     map[string]string   `json:"totals"`
}

type viewStateView struct {
	Search  string `json:"search"`
	Column  string `json:"column"`
	SortKey string `json:"sort_key"`
	SortDir string `json:"sort_dir"`
}

type sessionView struct {
	Form   formView          `json:"form"`
	Header headerView        `json:"header"`
	Draft  map[string]string `json:"draft"`
	State  viewStateView     `json:"state"`
	View   pageView          `json:"view"`
}

func newFormView(f model.FormSpec) formView {
	v := formView{
		Kind:          string(f.Kind),
		Label:         f.Label,
		IDPrefix:      f.IDPrefix,
		CategoryLabel: f.CategoryLabel,
		QuantityLabel: f.QuantityLabel,
		Categories:    append([]string{}, f.Categories...),
	}
	if f.Shortcut != 0 {
		v.Shortcut = string(f.Shortcut)
	}
	return v
}

func newWorkspaceView(id string, ws *workspace.Workspace) workspaceView {
	v := workspaceView{
		ID:             id,
		Section:        string(ws.Section()),
		SelectedMaster: ws.SelectedMaster(),
		KeyState:       ws.KeyState().String(),
		Mounted:        ws.Mounted(),
		Open:           []string{},
		Active:         string(ws.Active()),
		Forms:          []formView{},
		Menu:           ws.Menu(),
	}
	for _, k := range ws.OpenForms() {
		v.Open = append(v.Open, string(k))
	}
	for _, f := range ws.Forms() {
		v.Forms = append(v.Forms, newFormView(f))
	}
	return v
}

func newHeaderView(h model.Header) headerView {
	return headerView{
		TrnNo:       h.TrnNo,
		InvoiceNo:   h.InvoiceNo,
		InvoiceDate: h.InvoiceDate,
		Party:       h.Party,
		TrnDate:     h.TrnDate,
	}
}

func newPageView(p entry.Page, f calc.Formatter) pageView {
	v := pageView{
		Items:      make([]map[string]string, 0, len(p.Items)),
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalCount: p.TotalCount,
		TotalPages: p.TotalPages,
		Totals:     f.Totals(p.Totals),
	}
	for _, li := range p.Items {
		v.Items = append(v.Items, f.Map(li))
	}
	return v
}

func newSessionView(s *entry.Session, f calc.Formatter) sessionView {
	st := s.ViewState()
	return sessionView{
		Form:   newFormView(s.Form()),
		Header: newHeaderView(s.Header()),
		Draft:  f.Map(s.Draft()),
		State: viewStateView{
			Search:  st.Search,
			Column:  st.Column,
			SortKey: st.SortKey,
			SortDir: string(st.SortDir),
		},
		View: newPageView(s.View(), f),
	}
}
