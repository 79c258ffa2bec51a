package domain

import (
	"github.com/SscSPs/moneyfield/pkg/moneyfield"
	"github.com/SscSPs/moneyfield/pkg/moneyform"
)

// RecordPage is one page of a keyset-paginated listing.
type RecordPage struct {
	Records   []*moneyfield.Record
	NextToken *string
}

// ListRecordsParams holds the pagination parameters of a listing.
type ListRecordsParams struct {
	Limit     int
	NextToken *string
}

// DefaultListLimit is used when a listing asks for no limit, MaxListLimit caps it.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Normalize clamps the limit into [1, MaxListLimit].
func (p ListRecordsParams) Normalize() ListRecordsParams {
	if p.Limit <= 0 {
		p.Limit = DefaultListLimit
	}
	if p.Limit > MaxListLimit {
		p.Limit = MaxListLimit
	}
	return p
}

// RecordForm is a model form of one kind together with the raw input values to
// display in it. RecordID is empty for a blank form.
type RecordForm struct {
	Kind     string
	RecordID string
	Form     *moneyform.ModelForm
	Initial  map[string]string
}
