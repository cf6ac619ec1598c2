package record

import "slices"

// taxCode is the standard UK personal allowance code carried by every record.
const taxCode = "11500L"

// PhoneType labels a contact number.
type PhoneType string

const (
	PhoneHome   PhoneType = "Home"
	PhoneWork   PhoneType = "Work"
	PhoneMobile PhoneType = "Mobile"
)

var phoneTypes = []PhoneType{PhoneHome, PhoneWork, PhoneMobile}

// Valid reports whether t is a known phone type.
func (t PhoneType) Valid() bool { return slices.Contains(phoneTypes, t) }

// Nationality of the record holder.
type Nationality string

var nationalities = []Nationality{
	"British", "Spanish", "French", "German", "Italian", "Portuguese",
	"Irish", "Dutch", "Belgian", "Polish", "Swedish", "Norwegian",
	"Danish", "Greek", "Austrian", "Swiss", "Mexican", "Argentinian",
	"Colombian", "Venezuelan", "Cuban", "Moroccan", "American", "Canadian",
}

// Valid reports whether n is a known nationality.
func (n Nationality) Valid() bool { return slices.Contains(nationalities, n) }

// Grade is the pay band of an employee or the year of a student.
type Grade string

var employeeGrades = []Grade{
	"Trainee", "Junior", "Associate", "Senior", "Principal", "Executive",
}

var studentGrades = []Grade{
	"First Year", "Second Year", "Third Year", "Fourth Year", "Master", "Doctorate",
}

// Valid reports whether g is a grade of either profile.
func (g Grade) Valid() bool {
	return slices.Contains(employeeGrades, g) || slices.Contains(studentGrades, g)
}

// Unit is the department an employee works in or the campus a student
// attends.
type Unit string

var departments = []Unit{
	"Engineering", "Finance", "Human Resources", "Legal", "Marketing",
	"Operations", "Research", "Sales",
}

var campuses = []Unit{
	"Anchieta", "Central", "Guajara", "Ofra", "Santa Cruz", "La Palma",
}

// Valid reports whether u is a department or campus.
func (u Unit) Valid() bool {
	return slices.Contains(departments, u) || slices.Contains(campuses, u)
}

// Sex of the record holder.
type Sex string

const (
	SexMale   Sex = "Male"
	SexFemale Sex = "Female"
)

var sexes = []Sex{SexMale, SexFemale}

// Valid reports whether s is a known value.
func (s Sex) Valid() bool { return slices.Contains(sexes, s) }

var relations = []string{
	"Spouse", "Partner", "Parent", "Sibling", "Child", "Friend", "Guardian", "Neighbour",
}

// profile holds the per-kind vocabulary a generator draws from.
type profile struct {
	uidPrefix string
	ranks     []string
	grades    []Grade
	units     []Unit
}

var profiles = map[Kind]profile{
	KindEmployee: {
		uidPrefix: "emp",
		ranks:     []string{"Line Manager", "Area Manager", "Director"},
		grades:    employeeGrades,
		units:     departments,
	},
	KindStudent: {
		uidPrefix: "alu",
		ranks:     []string{"Profesor Adjunto", "Profesor de Laboratorio", "Profesor Titular"},
		grades:    studentGrades,
		units:     campuses,
	},
}
