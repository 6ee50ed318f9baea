package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValid(t *testing.T) {
	v := NewEmailValidator()
	cases := map[string]bool{
		"teste_email@gmail.com": true,
		"valid_email@email.com": true,
		"invalid_email":         false,
		"missing@":              false,
		"@example.com":          false,
		"":                      false,
	}
	for email, want := range cases {
		got, err := v.IsValid(email)
		require.NoError(t, err, email)
		assert.Equal(t, want, got, email)
	}
}

func TestIsValidWithZeroValue(t *testing.T) {
	_, err := EmailValidator{}.IsValid("a@b.com")
	assert.Error(t, err)
}
