package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func fieldErrors(t *testing.T, err error) FieldErrors {
	t.Helper()
	require.Error(t, err)
	errs, ok := err.(FieldErrors)
	require.True(t, ok, "expected FieldErrors, got %T", err)
	return errs
}

func TestSignupForm_Valid(t *testing.T) {
	form := SignupForm{Username: "asha.k+shop@home", Password: "turmeric-42", Confirmation: "turmeric-42"}
	require.NoError(t, form.Validate())
}

func TestSignupForm_Rules(t *testing.T) {
	cases := []struct {
		name  string
		form  SignupForm
		field string
	}{
		{"missing username", SignupForm{Password: "turmeric-42", Confirmation: "turmeric-42"}, FieldUsername},
		{"long username", SignupForm{Username: strings.Repeat("a", 151), Password: "turmeric-42", Confirmation: "turmeric-42"}, FieldUsername},
		{"bad characters", SignupForm{Username: "asha k", Password: "turmeric-42", Confirmation: "turmeric-42"}, FieldUsername},
		{"short password", SignupForm{Username: "asha", Password: "short", Confirmation: "short"}, FieldPassword},
		{"numeric password", SignupForm{Username: "asha", Password: "12345678", Confirmation: "12345678"}, FieldPassword},
		{"password equals username", SignupForm{Username: "asharani1", Password: "ASHARANI1", Confirmation: "ASHARANI1"}, FieldPassword},
		{"password over bcrypt limit", SignupForm{Username: "asha", Password: strings.Repeat("masala-", 11), Confirmation: strings.Repeat("masala-", 11)}, FieldPassword},
		{"mismatch", SignupForm{Username: "asha", Password: "turmeric-42", Confirmation: "turmeric-43"}, FieldConfirmation},
		{"missing confirmation", SignupForm{Username: "asha", Password: "turmeric-42"}, FieldConfirmation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := fieldErrors(t, tc.form.Validate())
			require.True(t, errs.Has(tc.field), "expected error on %s, got %v", tc.field, errs)
		})
	}
}

func TestSignupForm_UsernameAtLimitAccepted(t *testing.T) {
	username := strings.Repeat("a", MaxUsernameLength)
	form := SignupForm{Username: username, Password: "turmeric-42", Confirmation: "turmeric-42"}
	require.NoError(t, form.Validate())
}

func TestUserPasswordHashing(t *testing.T) {
	user, err := NewUser("asha", "turmeric-42", 4)
	require.NoError(t, err)
	require.NotEqual(t, "turmeric-42", user.PasswordHash)
	require.True(t, user.CheckPassword("turmeric-42"))
	require.False(t, user.CheckPassword("turmeric-43"))
	require.False(t, user.CheckPassword(""))
}

func TestSignupForm_PasswordAtByteLimitAccepted(t *testing.T) {
	password := strings.Repeat("k", MaxPasswordBytes-1) + "9"
	form := SignupForm{Username: "asha", Password: password, Confirmation: password}
	require.NoError(t, form.Validate())
}

func TestNewUserReportsOverlongPasswordAsFieldError(t *testing.T) {
	_, err := NewUser("asha", strings.Repeat("a", 80), 4)
	errs := fieldErrors(t, err)
	require.True(t, errs.Has(FieldPassword))
}
