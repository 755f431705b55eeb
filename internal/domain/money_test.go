package domain

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   string
		want Money
	}{
		{"1.0", 10_000},
		{"2", 20_000},
		{"5.0", 50_000},
		{".1111", 1_111},
		{"4.8766", 48_766},
		{"0", 0},
		{"0.00005", 1}, // rounds half away from zero
		{"1.00004", 10_000},
	}

	for _, c := range cases {
		got, err := ParseMoney(c.in)
		require.NoError(t, err, "parse %q", c.in)
		assert.Equal(t, c.want, got, "parse %q", c.in)
	}
}

func TestParseMoneyRejectsNegative(t *testing.T) {
	_, err := ParseMoney("-1.5")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNegativeAmount))
}

func TestParseMoneyRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "abc", "1.2.3", "1,5"} {
		_, err := ParseMoney(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestParseMoneyRejectsOverflow(t *testing.T) {
	_, err := ParseMoney("99999999999999999999999999")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAmountTooLarge))
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		in   Money
		want string
	}{
		{15_000, "1.5"},
		{20_000, "2"},
		{0, "0"},
		{48_766, "4.8766"},
		{1_111, "0.1111"},
		{50_000, "5"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, c.in.String())
	}
}

func TestMoneyRoundTrip(t *testing.T) {
	for _, s := range []string{"1.5", "2", "0.1111", "4.8766"} {
		m, err := ParseMoney(s)
		require.NoError(t, err)
		assert.Equal(t, s, m.String())
	}
}
