package treatments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	cases := map[string]string{
		"2025-05-12":          "2025-05-12",
		" 2025-05-12 ":        "2025-05-12",
		"2025-05-12T00:00:00": "2025-05-12",
		"2024-02-29":          "2024-02-29",
	}
	for in, want := range cases {
		d, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, d.String())
	}

	for _, bad := range []string{"", "12/05/2025", "2025-13-01", "2023-02-29"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock("10:30")
	require.NoError(t, err)
	assert.Equal(t, "10:30:00", c.String())

	c, err = ParseClock("23:59:59")
	require.NoError(t, err)
	assert.Equal(t, Clock{Hour: 23, Minute: 59, Second: 59}, c)

	c, err = ParseClock("08:05:09.250")
	require.NoError(t, err)
	assert.Equal(t, "08:05:09", c.String())

	for _, bad := range []string{"", "25:00", "10h30", "10:61", "1030"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestDateCompare(t *testing.T) {
	a := Date{Year: 2025, Month: time.May, Day: 12}
	b := Date{Year: 2025, Month: time.June, Day: 1}

	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.Zero(t, a.Compare(a))
	assert.Equal(t, time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC), a.In(time.UTC))
	assert.True(t, Date{}.IsZero())
}

func TestClockCompare(t *testing.T) {
	assert.Negative(t, Clock{Hour: 9, Minute: 15}.Compare(Clock{Hour: 16}))
	assert.Positive(t, Clock{Hour: 9, Second: 1}.Compare(Clock{Hour: 9}))
	assert.Equal(t, Clock{Hour: 14, Minute: 5}, ClockOf(time.Date(2025, 1, 1, 14, 5, 0, 0, time.UTC)))
}
