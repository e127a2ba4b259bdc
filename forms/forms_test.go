package forms_test

import (
	"testing"

	"github.com/jrsteele09/quickserve-session/forms"
	"github.com/jrsteele09/quickserve-session/internal/utils"
	"github.com/stretchr/testify/require"
)

func validProviderSignup() forms.ProviderSignup {
	return forms.ProviderSignup{
		FullName:       "Ravi Kumar",
		Email:          "ravi@example.com",
		Phone:          "+91 98765-43210",
		Password:       "password123",
		AadharNumber:   "123456789012",
		Address:        "12 MG Road",
		City:           "Bengaluru",
		State:          "Karnataka",
		Pincode:        "560001",
		PrimaryService: "Plumbing",
		Experience:     utils.Ptr(4),
	}
}

func TestValidate_Login(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.NoError(t, forms.Validate(forms.Login{Email: "a@b.com", Password: "x"}))
	})

	t.Run("bad email", func(t *testing.T) {
		err := forms.Validate(forms.Login{Email: "not-an-email", Password: "x"})
		require.Error(t, err)

		var ve forms.ValidationErrors
		require.ErrorAs(t, err, &ve)
		require.Equal(t, "Please provide a valid email address", ve["email"])
	})

	t.Run("missing password", func(t *testing.T) {
		err := forms.Validate(forms.Login{Email: "a@b.com"})
		var ve forms.ValidationErrors
		require.ErrorAs(t, err, &ve)
		require.Equal(t, "Password is required", ve["password"])
	})
}

func TestValidate_ProviderSignup(t *testing.T) {
	require.NoError(t, forms.Validate(validProviderSignup()))

	tests := []struct {
		name    string
		mutate  func(f *forms.ProviderSignup)
		field   string
		message string
	}{
		{"short password", func(f *forms.ProviderSignup) { f.Password = "short" }, "password", "Password must be at least 8 characters"},
		{"bad aadhar", func(f *forms.ProviderSignup) { f.AadharNumber = "1234" }, "aadharNumber", "Aadhar number must be 12 digits"},
		{"bad pincode", func(f *forms.ProviderSignup) { f.Pincode = "56001" }, "pincode", "Pincode must be 6 digits"},
		{"bad phone", func(f *forms.ProviderSignup) { f.Phone = "12ab" }, "phone", "Please provide a valid phone number"},
		{"missing experience", func(f *forms.ProviderSignup) { f.Experience = nil }, "experience", "Experience is required"},
		{"negative experience", func(f *forms.ProviderSignup) { f.Experience = utils.Ptr(-1) }, "experience", "Experience cannot be negative"},
		{"short name", func(f *forms.ProviderSignup) { f.FullName = "R" }, "fullName", "Full name must be between 2 and 100 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validProviderSignup()
			tt.mutate(&f)

			var ve forms.ValidationErrors
			require.ErrorAs(t, forms.Validate(f), &ve)
			require.Equal(t, tt.message, ve[tt.field])
		})
	}
}

func TestValidate_CustomerSignupOptionalPincode(t *testing.T) {
	f := forms.CustomerSignup{
		FullName: "Meera",
		Email:    "meera@example.com",
		Phone:    "9876543210",
		Password: "password123",
		City:     "Pune",
		State:    "Maharashtra",
	}
	require.NoError(t, forms.Validate(f))

	f.Pincode = "12"
	require.Error(t, forms.Validate(f))
}

func TestProviderSignup_WithDefaults(t *testing.T) {
	require.Equal(t, 5, validProviderSignup().WithDefaults().ServiceRadius)
}

func TestValidationErrors_Error(t *testing.T) {
	ve := forms.ValidationErrors{"password": "b", "email": "a"}
	require.Equal(t, "a; b", ve.Error())
}
