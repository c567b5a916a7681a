package validation

import (
	"regexp"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	personNameRe = regexp.MustCompile(`^[\p{L}][\p{L} '-]*$`)
	frVATRe      = regexp.MustCompile(`^FR[0-9A-Z]{2}[0-9]{9}$`)
)

// Register installs the custom rules on gin's binding validator. Must run
// before the first request is bound.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)

	if !ok {
		return nil
	}

	if err := v.RegisterValidation("strongpassword", strongPassword); err != nil {
		return err
	}

	if err := v.RegisterValidation("personname", personName); err != nil {
		return err
	}

	return v.RegisterValidation("frvat", frVAT)
}

// strongPassword requires at least 8 characters with one lowercase, one
// uppercase, one digit and one symbol.
func strongPassword(fl validator.FieldLevel) bool {
	s := fl.Field().String()

	if len(s) < 8 {
		return false
	}

	var lower, upper, digit, symbol bool

	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}

	return lower && upper && digit && symbol
}

func personName(fl validator.FieldLevel) bool {
	return personNameRe.MatchString(fl.Field().String())
}

func frVAT(fl validator.FieldLevel) bool {
	return frVATRe.MatchString(fl.Field().String())
}
