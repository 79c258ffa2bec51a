package dto

import (
	"github.com/SscSPs/moneyfield/internal/core/domain"
	"github.com/SscSPs/moneyfield/pkg/config"
	"github.com/SscSPs/moneyfield/pkg/money"
	"github.com/SscSPs/moneyfield/pkg/moneyfield"
	"github.com/shopspring/decimal"
)

// RecordResponse defines the data returned for a record. Columns holds every raw
// column, money sub-columns included; Money holds the composed values, null when
// the attribute is missing.
type RecordResponse struct {
	ID      string                  `json:"id"`
	Kind    string                  `json:"kind"`
	Columns map[string]*string      `json:"columns"`
	Money   map[string]*money.Money `json:"money"`
}

// ListRecordsResponse defines one page of records.
type ListRecordsResponse struct {
	Records   []RecordResponse `json:"records"`
	NextToken *string          `json:"nextToken,omitempty"`
}

// KindsResponse lists the record kinds served.
type KindsResponse struct {
	Kinds []string `json:"kinds"`
}

// FormFieldResponse describes one input of a model form. Money inputs are split
// into the raw inputs named in Inputs.
type FormFieldResponse struct {
	Name             string          `json:"name"`
	Label            string          `json:"label"`
	Required         bool            `json:"required"`
	Money            bool            `json:"money"`
	Inputs           []string        `json:"inputs"`
	ReadOnlyCurrency bool            `json:"readOnlyCurrency,omitempty"`
	Choices          []config.Choice `json:"choices,omitempty"`
	MaxLength        int             `json:"maxLength,omitempty"`
	MaxDigits        int             `json:"maxDigits,omitempty"`
	DecimalPlaces    *int            `json:"decimalPlaces,omitempty"`
}

// FormResponse defines a model form and the raw values to display in it.
type FormResponse struct {
	Kind     string              `json:"kind"`
	RecordID string              `json:"recordId,omitempty"`
	Fields   []FormFieldResponse `json:"fields"`
	Initial  map[string]string   `json:"initial"`
}

// ErrorResponse is returned on failure. Details maps a field name to its messages.
type ErrorResponse struct {
	Error   string              `json:"error"`
	Details map[string][]string `json:"details,omitempty"`
}

// ToRecordResponse converts a record of kind to its response DTO.
func ToRecordResponse(kind string, rec *moneyfield.Record) RecordResponse {
	schema := rec.Schema()
	res := RecordResponse{
		ID:      rec.ID(),
		Kind:    kind,
		Columns: make(map[string]*string),
		Money:   make(map[string]*money.Money),
	}
	for _, name := range schema.ColumnNames() {
		if name == moneyfield.IDColumn {
			continue
		}
		v, ok := rec.Get(name)
		if !ok {
			res.Columns[name] = nil
			continue
		}
		s := formatColumn(v)
		res.Columns[name] = &s
	}
	for _, f := range schema.MoneyFields() {
		m, _ := rec.Money(f.Name())
		res.Money[f.Name()] = m
	}
	return res
}

// ToListRecordsResponse converts a page of records to its response DTO.
func ToListRecordsResponse(kind string, page *domain.RecordPage) ListRecordsResponse {
	return ListRecordsResponse{
		Records:   ToRecordResponseList(kind, page.Records),
		NextToken: page.NextToken,
	}
}

// ToRecordResponseList converts records to response DTOs.
func ToRecordResponseList(kind string, records []*moneyfield.Record) []RecordResponse {
	res := make([]RecordResponse, len(records))
	for i, rec := range records {
		res[i] = ToRecordResponse(kind, rec)
	}
	return res
}

// ToFormResponse converts a record form to its response DTO.
func ToFormResponse(rf *domain.RecordForm) FormResponse {
	res := FormResponse{
		Kind:     rf.Kind,
		RecordID: rf.RecordID,
		Initial:  rf.Initial,
	}
	for _, m := range rf.Form.Fields() {
		field := FormFieldResponse{
			Name:     m.Name,
			Label:    m.Label,
			Required: m.Required(),
			Money:    m.IsMoney(),
		}
		if m.IsMoney() {
			f := m.Money.Field()
			dp := f.DecimalPlaces()
			field.Inputs = m.Money.RawNames()
			if m.Money.Fixed() {
				field.Inputs = field.Inputs[:1]
			}
			field.ReadOnlyCurrency = m.Money.ReadOnlyCurrency()
			field.Choices = m.Money.Choices()
			field.MaxDigits = f.MaxDigits()
			field.DecimalPlaces = &dp
		} else {
			field.Inputs = []string{m.Name}
			field.Choices = m.Column.Choices
			field.MaxLength = m.Column.MaxLength
		}
		res.Fields = append(res.Fields, field)
	}
	return res
}

func formatColumn(v any) string {
	switch val := v.(type) {
	case decimal.Decimal:
		return val.String()
	case string:
		return val
	}
	return ""
}
