package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDollars(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"10.50", 1050},
		{"10", 1000},
		{"0.01", 1},
		{"0.1", 10},
		{"1.", 100},
		{".50", 50},
		{" 25.00 ", 2500},
		{"+3.25", 325},
		{"-5", -500},
		{"0", 0},
		{"0.005", 1},    // half-up
		{"0.004", 0},    // rounds down
		{"2.999", 300},  // half-up on third digit
		{"1.2345", 123}, // digits past the third are ignored
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDollars(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDollars_Malformed(t *testing.T) {
	for _, in := range []string{"", " ", ".", "-", "abc", "1.2.3", "1,50", "10.5x", "$5"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseDollars(in)
			require.Error(t, err)
		})
	}
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "10.50", FormatCents(1050))
	assert.Equal(t, "0.01", FormatCents(1))
	assert.Equal(t, "0.00", FormatCents(0))
	assert.Equal(t, "123.00", FormatCents(12300))
	assert.Equal(t, "-5.25", FormatCents(-525))
}

func TestRoundtrip_NoDrift(t *testing.T) {
	// 500 deposits of one cent sum to exactly 500 cents.
	var sum int64
	for i := 0; i < 500; i++ {
		cents, err := ParseDollars("0.01")
		require.NoError(t, err)
		sum += cents
	}
	assert.Equal(t, int64(500), sum)
}
