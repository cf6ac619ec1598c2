package record

import (
	"encoding/json"
	"errors"
	"regexp"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zarlcorp/zsynth/internal/hierarchy"
)

func TestGenerateFields(t *testing.T) {
	g := New(42)
	r := g.Employee()

	tests := []struct {
		name  string
		check func() bool
	}{
		{"kind", func() bool { return r.Kind == KindEmployee }},
		{"uid prefix", func() bool { return regexp.MustCompile(`^emp\d+$`).MatchString(r.UID) }},
		{"name has two parts", func() bool { return len(strings.Fields(r.Name)) >= 2 }},
		{"dob layout", func() bool { return regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`).MatchString(r.DateOfBirth) }},
		{"contact numbers", func() bool { return len(r.ContactNumbers) >= 1 && len(r.ContactNumbers) <= 3 }},
		{"emergency contacts", func() bool { return len(r.EmergencyContacts) >= 1 && len(r.EmergencyContacts) <= 3 }},
		{"street", func() bool { return r.Address.StreetName != "" }},
		{"sort code", func() bool { return regexp.MustCompile(`^\d{2}-\d{2}-\d{2}$`).MatchString(r.BankDetails.SortCode) }},
		{"account number", func() bool { return regexp.MustCompile(`^\d{8}$`).MatchString(r.BankDetails.AccountNumber) }},
		{"tax code", func() bool { return r.TaxCode == "11500L" }},
		{"nationality", func() bool { return r.Nationality.Valid() }},
		{"three managers", func() bool { return len(r.Managers) == 3 }},
		{"grade", func() bool { return slices.Contains(employeeGrades, r.Grade) }},
		{"department", func() bool { return slices.Contains(departments, r.Unit) }},
		{"birth city", func() bool { return r.BirthLocation.City != "" }},
		{"sex", func() bool { return r.Sex.Valid() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.check() {
				t.Errorf("check failed for record: %s", r)
			}
		})
	}
}

func TestStudentProfile(t *testing.T) {
	g := New(7)
	r := g.Student()

	assert.Equal(t, KindStudent, r.Kind)
	assert.Regexp(t, `^alu\d+$`, r.UID)
	assert.Contains(t, campuses, r.Unit)
	assert.Contains(t, studentGrades, r.Grade)

	labels := []string{r.Managers[0].Label, r.Managers[1].Label, r.Managers[2].Label}
	assert.Equal(t, []string{"Profesor Adjunto", "Profesor de Laboratorio", "Profesor Titular"}, labels)
}

func TestPhoneNumberFormat(t *testing.T) {
	g := New(3)
	re := regexp.MustCompile(`^\+44 \d{4} \d{6}$`)
	for range 20 {
		r := g.Employee()
		seen := map[PhoneType]bool{}
		for _, p := range r.ContactNumbers {
			assert.Regexp(t, re, p.Number)
			assert.False(t, seen[p.Type], "duplicate phone type %s", p.Type)
			seen[p.Type] = true
		}
	}
}

func TestAmountsWithinRanges(t *testing.T) {
	g := New(99)
	rg := g.Ranges()

	records, err := g.GenerateMany(KindStudent, 500)
	require.NoError(t, err)

	for _, r := range records {
		assert.GreaterOrEqual(t, r.Amount, rg.MinAmount)
		assert.Less(t, r.Amount, rg.MinAmount+rg.AmountRange)
		assert.GreaterOrEqual(t, r.Bonus, 0)
		assert.Less(t, r.Bonus, rg.BonusRange)
	}
}

func TestCustomRanges(t *testing.T) {
	rg := Ranges{
		MinAmount:            10,
		AmountRange:          5,
		BonusRange:           3,
		MinTreeHeight:        1,
		ExtraTreeHeightRange: 1,
		MinAge:               20,
		MaxAge:               21,
	}
	g := New(5, WithRanges(rg))

	for range 50 {
		r := g.Employee()
		assert.True(t, r.Amount >= 10 && r.Amount < 15, "amount %d", r.Amount)
		assert.True(t, r.Bonus >= 0 && r.Bonus < 3, "bonus %d", r.Bonus)
		assert.Equal(t, 1, hierarchy.Depth(r.Managers))
		require.NoError(t, Validate(r, rg))
	}
}

func TestHireDateAfterBirth(t *testing.T) {
	ref := time.Date(2030, time.June, 1, 12, 0, 0, 0, time.UTC)
	g := New(11, WithReferenceDate(ref))

	for range 500 {
		r := g.Employee()
		dob, err := time.Parse(dateLayout, r.DateOfBirth)
		require.NoError(t, err)
		hired, err := time.Parse(dateLayout, r.HireDate)
		require.NoError(t, err)

		assert.True(t, hired.After(dob), "hire %s not after dob %s", r.HireDate, r.DateOfBirth)
		assert.False(t, hired.After(ref), "hire %s after reference date", r.HireDate)
	}
}

func TestDateOfBirthAgeRange(t *testing.T) {
	g := New(13)
	minDOB := DefaultReferenceDate.AddDate(-65, 0, 0)
	maxDOB := DefaultReferenceDate.AddDate(-18, 0, 0)

	for range 200 {
		r := g.Student()
		dob, err := time.Parse(dateLayout, r.DateOfBirth)
		require.NoError(t, err)
		assert.False(t, dob.Before(minDOB), "dob %s too old", r.DateOfBirth)
		assert.False(t, dob.After(maxDOB), "dob %s too young", r.DateOfBirth)
	}
}

func TestHierarchyLeafCount(t *testing.T) {
	g := New(21)
	seenDepths := map[int]bool{}

	for range 100 {
		r := g.Employee()
		depth := hierarchy.Depth(r.Managers)
		seenDepths[depth] = true

		assert.GreaterOrEqual(t, depth, 2)
		assert.LessOrEqual(t, depth, 4)

		want := 1
		for range depth {
			want *= 3
		}
		assert.Equal(t, want, hierarchy.CountLeaves(r.Managers))
	}

	assert.Greater(t, len(seenDepths), 1, "tree height should vary")
}

func TestSameSeedSameOutput(t *testing.T) {
	a, err := New(1234).GenerateMany(KindEmployee, 25)
	require.NoError(t, err)
	b, err := New(1234).GenerateMany(KindEmployee, 25)
	require.NoError(t, err)

	assert.Equal(t, a, b)

	ja, err := json.Marshal(a)
	require.NoError(t, err)
	jb, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, ja, jb)

	for i := range a {
		assert.Equal(t, a[i].String(), b[i].String())
	}
}

func TestSeedZeroIsDeterministic(t *testing.T) {
	assert.Equal(t, New(0).Student(), New(0).Student())
}

func TestDifferentSeedsDiffer(t *testing.T) {
	a := New(1).Employee()
	b := New(2).Employee()
	assert.NotEqual(t, a, b)
}

func TestGenerateKinds(t *testing.T) {
	g := New(8)

	for _, k := range Kinds {
		r, err := g.Generate(k)
		require.NoError(t, err)
		assert.Equal(t, k, r.Kind)
	}

	_, err := g.Generate(Kind("teacher"))
	assert.True(t, errors.Is(err, ErrUnknownKind))
}

func TestGenerateMany(t *testing.T) {
	g := New(8)

	records, err := g.GenerateMany(KindEmployee, 0)
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = g.GenerateMany(KindEmployee, -1)
	assert.True(t, errors.Is(err, ErrNegativeCount))

	_, err = g.GenerateMany(Kind("nope"), 1)
	assert.True(t, errors.Is(err, ErrUnknownKind))
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"employee", KindEmployee, false},
		{"Student", KindStudent, false},
		{"  EMPLOYEE ", KindEmployee, false},
		{"alumno", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownKind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecordString(t *testing.T) {
	r := New(4).Employee()
	s := r.String()

	assert.True(t, strings.HasPrefix(s, "Employee[uid="+r.UID+", name='"+r.Name+"'"))
	assert.Contains(t, s, "taxCode='11500L'")
	assert.Contains(t, s, "address=Address[")
	assert.True(t, strings.HasSuffix(s, "sex="+string(r.Sex)+"]"))
}
