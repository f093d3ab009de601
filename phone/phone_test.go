package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		dialCode string
		want     string
	}{
		{"TrunkPrefixWithSeparators", "0812-345 678", "+62", "+62812345678"},
		{"BareCountryCode", "62812345678", "+62", "+62812345678"},
		{"AlreadyInternational", "+62812345678", "+62", "+62812345678"},
		{"DefaultDialCode", "081234567890", "", "+6281234567890"},
		{"DialCodeWithoutPlus", "0812345678", "62", "+62812345678"},
		{"OtherCountry", "0123 456 789", "+60", "+60123456789"},
		{"OtherCountryBare", "60123456789", "+60", "+60123456789"},
		{"OtherCountryIntl", "+60123456789", "+60", "+60123456789"},
		{"TabsAndNewlines", "\t0812\n345678 ", "+62", "+62812345678"},
		{"FullWidthDigits", "０８１２３４５６７８", "+62", "+62812345678"},
		{"NoPrefixLeftAlone", "812345678", "+62", "812345678"},
		{"ForeignNumberLeftAlone", "+1 555-0100", "+62", "+15550100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw, tt.dialCode)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_Empty(t *testing.T) {
	for _, raw := range []string{"", "   ", " - - ", "\t\n"} {
		_, err := Normalize(raw, "+62")
		assert.ErrorIs(t, err, ErrValidation, "input %q", raw)
	}
}

func TestValidDialCode(t *testing.T) {
	assert.True(t, ValidDialCode("+62"))
	assert.True(t, ValidDialCode("+1"))
	assert.True(t, ValidDialCode("+1868"))
	assert.False(t, ValidDialCode("62"))
	assert.False(t, ValidDialCode("+"))
	assert.False(t, ValidDialCode("+12345"))
	assert.False(t, ValidDialCode("+6a"))
}
