// Package contact normalizes and validates the customer fields collected by
// the checkout widget.
package contact

import (
	"regexp"
	"strings"

	validator "github.com/go-playground/validator/v10"
)

// DefaultEmail is substituted when the optional email field is left blank.
const DefaultEmail = "customer@ronginpran.com"

const maxPhoneDigits = 11

// bdPhonePattern matches a Bangladeshi mobile number: 0, operator digit
// 3-9, then eight more digits.
var bdPhonePattern = regexp.MustCompile(`^01[3-9]\d{8}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("bdphone", func(fl validator.FieldLevel) bool {
		return bdPhonePattern.MatchString(fl.Field().String())
	})
	return v
}

// NormalizePhone canonicalizes raw phone input: digits only, the 880
// country prefix collapsed to a leading zero, a zero prepended when
// missing, truncated to eleven digits. Applied on every keystroke
// client-side, and again server-side before validation. Idempotent.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if strings.HasPrefix(digits, "880") {
		digits = "0" + digits[3:]
	}
	if digits != "" && !strings.HasPrefix(digits, "0") {
		digits = "0" + digits
	}
	if len(digits) > maxPhoneDigits {
		digits = digits[:maxPhoneDigits]
	}
	return digits
}

// ValidPhone reports whether a normalized phone number is a valid
// Bangladeshi mobile number.
func ValidPhone(phone string) bool {
	return bdPhonePattern.MatchString(phone)
}

// Details is the customer contact block of an order submission.
type Details struct {
	FirstName string `validate:"required"`
	Phone     string `validate:"required,bdphone"`
	Address   string `validate:"required"`
	Email     string `validate:"omitempty,email"`
}

// Normalize trims all fields, canonicalizes the phone, and fills in the
// default email when absent.
func (d Details) Normalize() Details {
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.Phone = NormalizePhone(strings.TrimSpace(d.Phone))
	d.Address = strings.TrimSpace(d.Address)
	d.Email = strings.TrimSpace(d.Email)
	if d.Email == "" {
		d.Email = DefaultEmail
	}
	return d
}

// Validate returns user-facing field errors for a normalized Details.
// An empty slice means the contact block is acceptable.
func (d Details) Validate() []string {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}
	invalid, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{"invalid contact details"}
	}
	var out []string
	for _, fe := range invalid {
		switch fe.Field() {
		case "FirstName":
			out = append(out, "Name is required")
		case "Phone":
			if fe.Tag() == "required" {
				out = append(out, "Phone is required")
			} else {
				out = append(out, "Invalid phone number")
			}
		case "Address":
			out = append(out, "Address is required")
		case "Email":
			out = append(out, "Invalid email address")
		}
	}
	return out
}
