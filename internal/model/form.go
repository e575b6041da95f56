package model

// Section is a top-level menu section of the entry application.
type Section string

const (
	SectionMaster      Section = "Master"
	SectionTransaction Section = "Transaction"
)

// FormKind identifies a transaction form, e.g. "FabricEntry".
type FormKind string

const (
	FormFabricEntry  FormKind = "FabricEntry"
	FormCuttingEntry FormKind = "CuttingEntry"
	FormWorkEntry    FormKind = "WorkEntry"
)

// FormSpec parameterizes one transaction form. The three entry forms share
// the same line-item contract and differ only in labels and categories.
type FormSpec struct {
	Kind          FormKind
	Label         string
	IDPrefix      string
	Shortcut      rune
	CategoryLabel string
	QuantityLabel string
	Categories    []string
}

// HeaderField names a field of the "Party and Bill Detail" header.
type HeaderField string

const (
	HeaderTrnNo       HeaderField = "trn_no"
	HeaderInvoiceNo   HeaderField = "invoice_no"
	HeaderInvoiceDate HeaderField = "invoice_date"
	HeaderParty       HeaderField = "party"
	HeaderTrnDate     HeaderField = "trn_date"
)

// Header is the bill-level detail shared by every row of a form instance.
type Header struct {
	TrnNo       string
	InvoiceNo   string
	InvoiceDate string
	Party       string
	TrnDate     string
}

// Set returns a copy of h with f set to value, and false if f is unknown.
func (h Header) Set(f HeaderField, value string) (Header, bool) {
	switch f {
	case HeaderTrnNo:
		h.TrnNo = value
	case HeaderInvoiceNo:
		h.InvoiceNo = value
	case HeaderInvoiceDate:
		h.InvoiceDate = value
	case HeaderParty:
		h.Party = value
	case HeaderTrnDate:
		h.TrnDate = value
	default:
		return h, false
	}
	return h, true
}
