package registration

import (
	"testing"

	"github.com/Rhymond/go-money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Run("valid input passes", func(t *testing.T) {
		assert.NoError(t, validInput().Validate())
	})

	tests := []struct {
		name       string
		mutate     func(in *SubmitInput)
		wantField  string
		wantReason string
	}{
		{
			name:       "missing full name",
			mutate:     func(in *SubmitInput) { in.FullName = "" },
			wantField:  "fullName",
			wantReason: "is required",
		},
		{
			name:       "missing email",
			mutate:     func(in *SubmitInput) { in.Email = "" },
			wantField:  "email",
			wantReason: "is required",
		},
		{
			name:       "malformed email",
			mutate:     func(in *SubmitInput) { in.Email = "not-an-email" },
			wantField:  "email",
			wantReason: "must be a valid email address",
		},
		{
			name:       "malformed mobile number",
			mutate:     func(in *SubmitInput) { in.MobileNumber = "017!BADPHONE" },
			wantField:  "mobileNumber",
			wantReason: "must only contain digits, +, -, spaces, and parentheses",
		},
		{
			name:       "missing address",
			mutate:     func(in *SubmitInput) { in.Address = "" },
			wantField:  "address",
			wantReason: "is required",
		},
		{
			name:       "missing enterprise",
			mutate:     func(in *SubmitInput) { in.Enterprise = "" },
			wantField:  "enterprise",
			wantReason: "is required",
		},
		{
			name:       "missing sponsor name",
			mutate:     func(in *SubmitInput) { in.SponsorName = "" },
			wantField:  "sponsorName",
			wantReason: "is required",
		},
		{
			name:       "malformed sponsor phone",
			mutate:     func(in *SubmitInput) { in.SponsorPhone = "01811111111x" },
			wantField:  "sponsorPhone",
			wantReason: "must only contain digits, +, -, spaces, and parentheses",
		},
		{
			name:       "zero amount",
			mutate:     func(in *SubmitInput) { in.Amount = money.New(0, money.BDT) },
			wantField:  "amount",
			wantReason: "must be greater than zero",
		},
		{
			name:       "negative amount",
			mutate:     func(in *SubmitInput) { in.Amount = money.New(-420000, money.BDT) },
			wantField:  "amount",
			wantReason: "must be greater than zero",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)

			err := input.Validate()
			require.Error(t, err)

			var registrationErr *Error
			require.ErrorAs(t, err, &registrationErr)
			assert.Equal(t, REASON_INVALID_INPUT, registrationErr.Reason)
			require.Len(t, registrationErr.Fields, 1)
			assert.Equal(t, tt.wantField, registrationErr.Fields[0].Field)
			assert.Equal(t, tt.wantReason, registrationErr.Fields[0].Reason)
		})
	}

	t.Run("all violations are reported together", func(t *testing.T) {
		err := SubmitInput{}.Validate()
		require.Error(t, err)

		var registrationErr *Error
		require.ErrorAs(t, err, &registrationErr)
		assert.Equal(t, REASON_INVALID_INPUT, registrationErr.Reason)

		violatedFields := make([]string, len(registrationErr.Fields))
		for i, f := range registrationErr.Fields {
			violatedFields[i] = f.Field
		}

		assert.ElementsMatch(t, []string{
			"fullName", "email", "mobileNumber", "address",
			"enterprise", "sponsorName", "sponsorPhone", "amount",
		}, violatedFields)
	})
}
