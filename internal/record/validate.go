package record

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidRecord wraps every validation failure.
var ErrInvalidRecord = errors.New("invalid record")

type enum interface {
	Valid() bool
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// registration only fails for an empty tag or nil func
	_ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		e, ok := fl.Field().Interface().(enum)
		return ok && e.Valid()
	})
	return v
}

// Validate checks r's field shapes and the cross-field rules: hire date
// after date of birth and amounts within rg.
func Validate(r Record, rg Ranges) error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w %s: %w", ErrInvalidRecord, r.UID, err)
	}

	dob, err := time.Parse(dateLayout, r.DateOfBirth)
	if err != nil {
		return fmt.Errorf("%w %s: date of birth: %w", ErrInvalidRecord, r.UID, err)
	}
	hired, err := time.Parse(dateLayout, r.HireDate)
	if err != nil {
		return fmt.Errorf("%w %s: hire date: %w", ErrInvalidRecord, r.UID, err)
	}
	if !hired.After(dob) {
		return fmt.Errorf("%w %s: hire date %s not after date of birth %s",
			ErrInvalidRecord, r.UID, r.HireDate, r.DateOfBirth)
	}

	if r.Amount < rg.MinAmount || r.Amount >= rg.MinAmount+rg.AmountRange {
		return fmt.Errorf("%w %s: amount %d outside [%d, %d)",
			ErrInvalidRecord, r.UID, r.Amount, rg.MinAmount, rg.MinAmount+rg.AmountRange)
	}
	if r.Bonus < 0 || r.Bonus >= rg.BonusRange {
		return fmt.Errorf("%w %s: bonus %d outside [0, %d)", ErrInvalidRecord, r.UID, r.Bonus, rg.BonusRange)
	}

	return nil
}

// ValidateRanges checks that rg describes usable bounds.
func ValidateRanges(rg Ranges) error {
	if err := validate.Struct(rg); err != nil {
		return fmt.Errorf("invalid ranges: %w", err)
	}
	return nil
}
