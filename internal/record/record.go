// Package record generates synthetic employee and student profiles.
// All generation draws from one seeded faker so output is reproducible.
package record

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zarlcorp/zsynth/internal/hierarchy"
)

// ErrUnknownKind is returned when a record kind is not recognised.
var ErrUnknownKind = errors.New("unknown record kind")

// Kind selects the profile a record is generated from.
type Kind string

const (
	KindEmployee Kind = "employee"
	KindStudent  Kind = "student"
)

// Kinds lists every supported kind.
var Kinds = []Kind{KindEmployee, KindStudent}

// ParseKind converts a user supplied name into a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindEmployee, KindStudent:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Valid reports whether k is a supported kind.
func (k Kind) Valid() bool {
	return k == KindEmployee || k == KindStudent
}

// Title is the display name used when rendering records.
func (k Kind) Title() string {
	switch k {
	case KindEmployee:
		return "Employee"
	case KindStudent:
		return "Student"
	}
	return "Record"
}

// Record is one generated profile.
type Record struct {
	Kind              Kind               `json:"kind" validate:"enum"`
	UID               string             `json:"uid" validate:"required"`
	Name              string             `json:"name" validate:"required"`
	DateOfBirth       string             `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	ContactNumbers    []PhoneNumber      `json:"contact_numbers" validate:"min=1,max=3,dive"`
	EmergencyContacts []EmergencyContact `json:"emergency_contacts" validate:"min=1,max=3,dive"`
	Address           Address            `json:"address"`
	BankDetails       BankDetails        `json:"bank_details"`
	TaxCode           string             `json:"tax_code" validate:"eq=11500L"`
	Nationality       Nationality        `json:"nationality" validate:"enum"`
	Managers          []hierarchy.Node   `json:"managers" validate:"len=3,dive"`
	HireDate          string             `json:"hire_date" validate:"required,datetime=2006-01-02"`
	Grade             Grade              `json:"grade" validate:"enum"`
	Unit              Unit               `json:"unit" validate:"enum"`
	Amount            int                `json:"amount" validate:"gte=0"`
	Bonus             int                `json:"bonus" validate:"gte=0"`
	BirthLocation     BirthLocation      `json:"birth_location"`
	Sex               Sex                `json:"sex" validate:"enum"`
}

// PhoneNumber is a typed contact number.
type PhoneNumber struct {
	Type   PhoneType `json:"type" validate:"enum"`
	Number string    `json:"number" validate:"required"`
}

func (p PhoneNumber) String() string {
	return fmt.Sprintf("PhoneNumber[type=%s, number='%s']", p.Type, p.Number)
}

// EmergencyContact is a person to call on the record holder's behalf.
type EmergencyContact struct {
	Name           string        `json:"name" validate:"required"`
	Relation       string        `json:"relation" validate:"required"`
	ContactNumbers []PhoneNumber `json:"contact_numbers" validate:"min=1,max=3,dive"`
}

func (c EmergencyContact) String() string {
	return fmt.Sprintf("EmergencyContact[name='%s', relation='%s', contactNumbers=%s]",
		c.Name, c.Relation, joinList(c.ContactNumbers))
}

// Address is a postal address.
type Address struct {
	StreetAddressNumber string `json:"street_address_number" validate:"required"`
	StreetName          string `json:"street_name" validate:"required"`
	City                string `json:"city" validate:"required"`
	State               string `json:"state" validate:"required"`
	PostCode            string `json:"post_code" validate:"required"`
}

func (a Address) String() string {
	return fmt.Sprintf("Address[streetAddressNumber='%s', streetName='%s', city='%s', state='%s', postCode='%s']",
		a.StreetAddressNumber, a.StreetName, a.City, a.State, a.PostCode)
}

// BankDetails holds a UK style sort code and account number.
type BankDetails struct {
	SortCode      string `json:"sort_code" validate:"required,len=8"`
	AccountNumber string `json:"account_number" validate:"required,len=8,numeric"`
}

func (b BankDetails) String() string {
	return fmt.Sprintf("BankDetails[sortCode='%s', accountNumber='%s']", b.SortCode, b.AccountNumber)
}

// BirthLocation is where the record holder was born.
type BirthLocation struct {
	City    string `json:"city" validate:"required"`
	Country string `json:"country" validate:"required"`
}

func (l BirthLocation) String() string {
	return fmt.Sprintf("BirthLocation[city='%s', country='%s']", l.City, l.Country)
}

// String renders the record on one line in bracketed field=value form.
func (r Record) String() string {
	fields := []string{
		"uid=" + r.UID,
		"name='" + r.Name + "'",
		"dateOfBirth='" + r.DateOfBirth + "'",
		"contactNumbers=" + joinList(r.ContactNumbers),
		"emergencyContacts=" + joinList(r.EmergencyContacts),
		"address=" + r.Address.String(),
		"bankDetails=" + r.BankDetails.String(),
		"taxCode='" + r.TaxCode + "'",
		"nationality=" + string(r.Nationality),
		"managers=" + joinList(r.Managers),
		"hireDate='" + r.HireDate + "'",
		"grade=" + string(r.Grade),
		"unit=" + string(r.Unit),
		fmt.Sprintf("amount=%d", r.Amount),
		fmt.Sprintf("bonus=%d", r.Bonus),
		"birthLocation=" + r.BirthLocation.String(),
		"sex=" + string(r.Sex),
	}
	return r.Kind.Title() + "[" + strings.Join(fields, ", ") + "]"
}

func joinList[T fmt.Stringer](items []T) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
