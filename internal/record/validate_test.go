package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateGenerated(t *testing.T) {
	g := New(77)
	for _, k := range Kinds {
		records, err := g.GenerateMany(k, 50)
		require.NoError(t, err)
		for _, r := range records {
			require.NoError(t, Validate(r, g.Ranges()), "record %s", r.UID)
		}
	}
}

func TestValidateRejects(t *testing.T) {
	rg := DefaultRanges()

	tests := []struct {
		name   string
		mutate func(r *Record)
	}{
		{"empty uid", func(r *Record) { r.UID = "" }},
		{"unknown kind", func(r *Record) { r.Kind = "teacher" }},
		{"bad dob layout", func(r *Record) { r.DateOfBirth = "01/02/1990" }},
		{"hire before birth", func(r *Record) { r.HireDate = "1900-01-01" }},
		{"hire equals birth", func(r *Record) { r.HireDate = r.DateOfBirth }},
		{"no phones", func(r *Record) { r.ContactNumbers = nil }},
		{"bad phone type", func(r *Record) { r.ContactNumbers[0].Type = "Fax" }},
		{"tax code", func(r *Record) { r.TaxCode = "BR" }},
		{"nationality", func(r *Record) { r.Nationality = "Martian" }},
		{"two managers", func(r *Record) { r.Managers = r.Managers[:2] }},
		{"manager without uid", func(r *Record) { r.Managers[0].UID = "" }},
		{"grade", func(r *Record) { r.Grade = "Wizard" }},
		{"unit", func(r *Record) { r.Unit = "Moon Base" }},
		{"amount below", func(r *Record) { r.Amount = rg.MinAmount - 1 }},
		{"amount above", func(r *Record) { r.Amount = rg.MinAmount + rg.AmountRange }},
		{"bonus above", func(r *Record) { r.Bonus = rg.BonusRange }},
		{"sex", func(r *Record) { r.Sex = "" }},
		{"account number", func(r *Record) { r.BankDetails.AccountNumber = "12ab" }},
		{"birth country", func(r *Record) { r.BirthLocation.Country = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(1).Employee()
			tt.mutate(&r)
			err := Validate(r, rg)
			assert.ErrorIs(t, err, ErrInvalidRecord)
		})
	}
}

func TestValidateRanges(t *testing.T) {
	require.NoError(t, ValidateRanges(DefaultRanges()))

	bad := DefaultRanges()
	bad.AmountRange = 0
	assert.Error(t, ValidateRanges(bad))

	bad = DefaultRanges()
	bad.MaxAge = bad.MinAge - 1
	assert.Error(t, ValidateRanges(bad))

	bad = DefaultRanges()
	bad.MinTreeHeight = 0
	assert.Error(t, ValidateRanges(bad))
}
