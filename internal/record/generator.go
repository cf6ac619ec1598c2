package record

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/zarlcorp/zsynth/internal/hierarchy"
)

const dateLayout = "2006-01-02"

// ErrNegativeCount is returned when asked for fewer than zero records.
var ErrNegativeCount = errors.New("record count must not be negative")

// minWorkingAge is the youngest age at which a hire or enrolment date is placed.
const minWorkingAge = 16

// DefaultReferenceDate anchors generated dates when no other date is given,
// keeping a seed's output stable from one day to the next.
var DefaultReferenceDate = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// Ranges bounds the numeric fields of generated records.
type Ranges struct {
	MinAmount            int `yaml:"min_amount" validate:"gte=0"`
	AmountRange          int `yaml:"amount_range" validate:"gt=0"`
	BonusRange           int `yaml:"bonus_range" validate:"gt=0"`
	MinTreeHeight        int `yaml:"min_tree_height" validate:"gte=1,lte=6"`
	ExtraTreeHeightRange int `yaml:"extra_tree_height_range" validate:"gte=1,lte=4"`
	MinAge               int `yaml:"min_age" validate:"gte=17"`
	MaxAge               int `yaml:"max_age" validate:"gtefield=MinAge,lte=100"`
}

// DefaultRanges returns the stock bounds.
func DefaultRanges() Ranges {
	return Ranges{
		MinAmount:            900,
		AmountRange:          1_000,
		BonusRange:           2_500,
		MinTreeHeight:        2,
		ExtraTreeHeightRange: 3,
		MinAge:               18,
		MaxAge:               65,
	}
}

// Generator produces records from a seeded faker. A Generator is not safe
// for concurrent use.
type Generator struct {
	faker  *gofakeit.Faker
	ref    time.Time
	ranges Ranges
}

// Option configures a Generator.
type Option func(*Generator)

// WithReferenceDate sets the "today" that birth and hire dates are computed
// against.
func WithReferenceDate(t time.Time) Option {
	return func(g *Generator) {
		g.ref = t.UTC().Truncate(24 * time.Hour)
	}
}

// WithRanges overrides the numeric bounds.
func WithRanges(r Ranges) Option {
	return func(g *Generator) {
		g.ranges = r
	}
}

// New creates a generator whose output is fully determined by seed and the
// order of calls made on it.
func New(seed uint64, opts ...Option) *Generator {
	g := &Generator{
		faker:  gofakeit.NewFaker(rand.NewPCG(seed, seed), false),
		ref:    DefaultReferenceDate,
		ranges: DefaultRanges(),
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Ranges returns the bounds this generator was built with.
func (g *Generator) Ranges() Ranges {
	return g.ranges
}

// Employee generates one employee record.
func (g *Generator) Employee() Record {
	return g.generate(KindEmployee, profiles[KindEmployee])
}

// Student generates one student record.
func (g *Generator) Student() Record {
	return g.generate(KindStudent, profiles[KindStudent])
}

// Generate produces one record of the given kind.
func (g *Generator) Generate(kind Kind) (Record, error) {
	p, ok := profiles[kind]
	if !ok {
		return Record{}, fmt.Errorf("generate: %w: %q", ErrUnknownKind, kind)
	}
	return g.generate(kind, p), nil
}

// GenerateMany produces n records of the given kind in sequence.
func (g *Generator) GenerateMany(kind Kind, n int) ([]Record, error) {
	if n < 0 {
		return nil, fmt.Errorf("generate many: %w: %d", ErrNegativeCount, n)
	}
	p, ok := profiles[kind]
	if !ok {
		return nil, fmt.Errorf("generate many: %w: %q", ErrUnknownKind, kind)
	}
	out := make([]Record, n)
	for i := range out {
		out[i] = g.generate(kind, p)
	}
	return out, nil
}

// generate fills every field in a fixed order; changing the order changes
// the output for a given seed.
func (g *Generator) generate(kind Kind, p profile) Record {
	r := Record{Kind: kind}
	r.UID = g.uid(p.uidPrefix)
	r.Name = g.faker.FirstName() + " " + g.faker.LastName()
	dob := g.dateOfBirth()
	r.DateOfBirth = dob.Format(dateLayout)
	r.ContactNumbers = g.phoneNumbers()
	r.EmergencyContacts = g.emergencyContacts()
	r.Address = g.address()
	r.BankDetails = g.bankDetails()
	r.TaxCode = taxCode
	r.Nationality = pick(g, nationalities)

	height := g.ranges.MinTreeHeight + g.intn(g.ranges.ExtraTreeHeightRange)
	r.Managers = hierarchy.Generate(height, p.ranks, func() string { return g.uid(p.uidPrefix) })

	r.HireDate = g.hireDate(dob).Format(dateLayout)
	r.Grade = pick(g, p.grades)
	r.Unit = pick(g, p.units)
	r.Amount = g.ranges.MinAmount + g.intn(g.ranges.AmountRange)
	r.Bonus = g.intn(g.ranges.BonusRange)
	r.BirthLocation = BirthLocation{City: g.faker.City(), Country: g.faker.Country()}
	r.Sex = pick(g, sexes)
	return r
}

// uid is the profile prefix followed by a non-negative int32.
func (g *Generator) uid(prefix string) string {
	return prefix + strconv.Itoa(g.intn(math.MaxInt32))
}

// dateOfBirth places the birthday between MinAge and MaxAge years before
// the reference date.
func (g *Generator) dateOfBirth() time.Time {
	youngest := g.ref.AddDate(-g.ranges.MinAge, 0, 0)
	oldest := g.ref.AddDate(-g.ranges.MaxAge, 0, 0)
	return g.dayBetween(oldest, youngest)
}

// hireDate falls strictly after dob, no earlier than minWorkingAge and no
// later than the reference date.
func (g *Generator) hireDate(dob time.Time) time.Time {
	earliest := dob.AddDate(minWorkingAge, 0, 0)
	if !earliest.Before(g.ref) {
		return dob.AddDate(0, 0, 1)
	}
	return g.dayBetween(earliest, g.ref)
}

// dayBetween returns a whole day in [from, to].
func (g *Generator) dayBetween(from, to time.Time) time.Time {
	days := int(to.Sub(from).Hours() / 24)
	return from.AddDate(0, 0, g.intn(days+1))
}

// phoneNumbers returns one to three numbers with distinct types.
func (g *Generator) phoneNumbers() []PhoneNumber {
	n := 1 + g.intn(len(phoneTypes))
	start := g.intn(len(phoneTypes))
	out := make([]PhoneNumber, n)
	for i := range out {
		out[i] = PhoneNumber{
			Type:   phoneTypes[(start+i)%len(phoneTypes)],
			Number: g.faker.Numerify("+44 #### ######"),
		}
	}
	return out
}

func (g *Generator) emergencyContacts() []EmergencyContact {
	n := 1 + g.intn(3)
	out := make([]EmergencyContact, n)
	for i := range out {
		out[i] = EmergencyContact{
			Name:           g.faker.FirstName() + " " + g.faker.LastName(),
			Relation:       pick(g, relations),
			ContactNumbers: g.phoneNumbers(),
		}
	}
	return out
}

func (g *Generator) address() Address {
	return Address{
		StreetAddressNumber: g.faker.StreetNumber(),
		StreetName:          g.faker.StreetName(),
		City:                g.faker.City(),
		State:               g.faker.State(),
		PostCode:            g.faker.Zip(),
	}
}

func (g *Generator) bankDetails() BankDetails {
	return BankDetails{
		SortCode:      g.faker.Numerify("##-##-##"),
		AccountNumber: g.faker.Numerify("########"),
	}
}

// intn returns an int in [0, n); n <= 0 yields 0.
func (g *Generator) intn(n int) int {
	if n <= 0 {
		return 0
	}
	return g.faker.Number(0, n-1)
}

// pick returns a random element of s.
func pick[T any](g *Generator, s []T) T {
	return s[g.intn(len(s))]
}
