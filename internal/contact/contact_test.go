package contact_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ronginpran/checkout-api/internal/contact"
)

func TestNormalizePhone(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"+880 1712-345678": "01712345678",
		"8801712345678":    "01712345678",
		"01712345678":      "01712345678",
		"1712345678":       "01712345678",
		"017123456789999":  "01712345678",
		"":                 "",
		"abc":              "",
	}
	for in, want := range cases {
		require.Equal(t, want, contact.NormalizePhone(in), "input %q", in)
	}

	t.Run("idempotent", func(t *testing.T) {
		inputs := []string{"+880 1712-345678", "1712345678", "0", "880", "call me maybe", "8801898989898989"}
		for _, in := range inputs {
			once := contact.NormalizePhone(in)
			require.Equal(t, once, contact.NormalizePhone(once), "input %q", in)
		}
	})
}

func TestValidPhone(t *testing.T) {
	t.Parallel()

	require.True(t, contact.ValidPhone("01712345678"))
	require.True(t, contact.ValidPhone("01912345678"))
	require.False(t, contact.ValidPhone("01212345678"), "operator digit 2 is outside [3-9]")
	require.False(t, contact.ValidPhone("0171234567"))
	require.False(t, contact.ValidPhone("017123456789"))
	require.False(t, contact.ValidPhone(""))
	require.False(t, contact.ValidPhone("8801712345678"))
}

func TestDetailsNormalize(t *testing.T) {
	t.Parallel()

	d := contact.Details{
		FirstName: "  Rahim ",
		Phone:     "+880 1712-345678",
		Address:   " Mirpur 10, Dhaka ",
	}.Normalize()

	require.Equal(t, "Rahim", d.FirstName)
	require.Equal(t, "01712345678", d.Phone)
	require.Equal(t, "Mirpur 10, Dhaka", d.Address)
	require.Equal(t, contact.DefaultEmail, d.Email)

	withEmail := contact.Details{Email: "rahim@example.com"}.Normalize()
	require.Equal(t, "rahim@example.com", withEmail.Email)
}

func TestDetailsValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		d := contact.Details{
			FirstName: "Rahim",
			Phone:     "01712345678",
			Address:   "Mirpur 10, Dhaka",
			Email:     contact.DefaultEmail,
		}
		require.Empty(t, d.Validate())
	})

	t.Run("missing required fields", func(t *testing.T) {
		errs := contact.Details{}.Validate()
		require.Contains(t, errs, "Name is required")
		require.Contains(t, errs, "Phone is required")
		require.Contains(t, errs, "Address is required")
	})

	t.Run("bad phone", func(t *testing.T) {
		d := contact.Details{FirstName: "Rahim", Phone: "01212345678", Address: "Dhaka"}
		require.Contains(t, d.Validate(), "Invalid phone number")
	})

	t.Run("bad email", func(t *testing.T) {
		d := contact.Details{FirstName: "Rahim", Phone: "01712345678", Address: "Dhaka", Email: "nope"}
		require.Contains(t, d.Validate(), "Invalid email address")
	})
}
