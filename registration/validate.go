package registration

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/go-playground/validator/v10"
)

// Matches the set of characters the registration form accepts for phone
// numbers: digits, +, -, spaces, and parentheses.
var phoneRegexp = regexp.MustCompile(`^[0-9+\-\s()]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return fld.Name
		}
		return name
	})

	err := v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRegexp.MatchString(fl.Field().String())
	})
	if err != nil {
		panic("failed to register phone validation")
	}

	return v
}

type SubmitInput struct {
	FullName     string       `json:"fullName" validate:"required"`
	Email        string       `json:"email" validate:"required,email"`
	MobileNumber string       `json:"mobileNumber" validate:"required,phone"`
	Address      string       `json:"address" validate:"required"`
	Enterprise   string       `json:"enterprise" validate:"required"`
	SponsorName  string       `json:"sponsorName" validate:"required"`
	SponsorPhone string       `json:"sponsorPhone" validate:"required,phone"`
	Amount       *money.Money `json:"amount" validate:"required"`
}

// Validate checks every field and reports all violations at once, so a caller
// can surface them together instead of one per resubmission.
func (in SubmitInput) Validate() error {
	var fields []FieldViolation

	err := validate.Struct(in)
	if err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return fmt.Errorf("unexpected validation failure: %w", err)
		}

		for _, fieldErr := range validationErrs {
			fields = append(fields, FieldViolation{
				Field:  fieldErr.Field(),
				Reason: violationReason(fieldErr.Tag()),
			})
		}
	}

	if in.Amount != nil && (in.Amount.IsZero() || in.Amount.IsNegative()) {
		fields = append(fields, FieldViolation{
			Field:  "amount",
			Reason: "must be greater than zero",
		})
	}

	if len(fields) > 0 {
		return NewInvalidInputError(fields)
	}

	return nil
}

func violationReason(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "phone":
		return "must only contain digits, +, -, spaces, and parentheses"
	default:
		return "is invalid"
	}
}
