package validation_test

import (
	"testing"

	"github.com/ftmlabs/directory-api/internal/http/validation"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func engine(t *testing.T) *validator.Validate {
	t.Helper()

	if err := validation.Register(); err != nil {
		t.Fatalf("Register: %v", err)
	}

	v, ok := binding.Validator.Engine().(*validator.Validate)

	if !ok {
		t.Fatal("gin binding engine is not validator.Validate")
	}

	return v
}

func TestStrongPassword(t *testing.T) {
	v := engine(t)

	cases := []struct {
		in string
		ok bool
	}{
		{"Aa1!aaaa", true},
		{"Str0ng&Pass", true},
		{"short1!", false},    // too short
		{"alllower1!", false}, // no upper
		{"ALLUPPER1!", false}, // no lower
		{"NoDigits!!", false},
		{"NoSymbol11a", false},
	}

	for _, tc := range cases {
		err := v.Var(tc.in, "strongpassword")

		if (err == nil) != tc.ok {
			t.Fatalf("strongpassword(%q): got err=%v, want ok=%v", tc.in, err, tc.ok)
		}
	}
}

func TestPersonName(t *testing.T) {
	v := engine(t)

	cases := []struct {
		in string
		ok bool
	}{
		{"Jean", true},
		{"Anne-Marie", true},
		{"O'Connor", true},
		{"Éloïse", true},
		{"x55", false},
		{"<script>", false},
		{" leading", false},
	}

	for _, tc := range cases {
		err := v.Var(tc.in, "personname")

		if (err == nil) != tc.ok {
			t.Fatalf("personname(%q): got err=%v, want ok=%v", tc.in, err, tc.ok)
		}
	}
}

func TestFRVAT(t *testing.T) {
	v := engine(t)

	cases := []struct {
		in string
		ok bool
	}{
		{"FR12345678901", true},
		{"FRAB123456789", true},
		{"DE123456789", false},
		{"FR1234567890", false},  // too short
		{"FR123456789012", false}, // too long
		{"fr12345678901", false},  // lowercase prefix
	}

	for _, tc := range cases {
		err := v.Var(tc.in, "frvat")

		if (err == nil) != tc.ok {
			t.Fatalf("frvat(%q): got err=%v, want ok=%v", tc.in, err, tc.ok)
		}
	}
}
