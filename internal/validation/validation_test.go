package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	valid := []string{
		"user@example.com",
		"first.last@sub.domain.org",
		"a+tag@b.co",
	}
	for _, email := range valid {
		assert.NoError(t, ValidateEmail(email), email)
	}

	invalid := []string{
		"",
		"plain",
		"@example.com",
		"user@",
		"user@nodot",
		"two words@example.com",
	}
	for _, email := range invalid {
		assert.Error(t, ValidateEmail(email), email)
	}
}

func TestValidateDisplayName(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateDisplayName("Alice"))
	assert.NoError(t, ValidateDisplayName("  padded  "))
	assert.NoError(t, ValidateDisplayName(strings.Repeat("x", 80)))

	assert.Error(t, ValidateDisplayName(""))
	assert.Error(t, ValidateDisplayName("   "))
	assert.Error(t, ValidateDisplayName(strings.Repeat("x", 81)))
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		password string
		wantErr  string
	}{
		{"valid", "Sup3r$ecretPass!", ""},
		{"too short", "Ab1!def", "at least 12 characters"},
		{"too long", strings.Repeat("Ab1!", 33), "must not exceed 128"},
		{"no uppercase", "sup3r$ecretpass!", "uppercase"},
		{"no lowercase", "SUP3R$ECRETPASS!", "lowercase"},
		{"no digit", "Super$ecretPass!", "digit"},
		{"no special", "Sup3rSecretPass1", "special"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePassword(tc.password)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}
