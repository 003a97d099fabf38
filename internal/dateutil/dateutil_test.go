package dateutil_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/granahq/grana/internal/dateutil"
)

// Formatting then re-parsing must land on the same calendar day regardless of
// the offset the original time carried.
func TestFormatLocalRoundTrip(t *testing.T) {
	zones := []*time.Location{
		time.UTC,
		time.FixedZone("UTC-3", -3*3600),
		time.FixedZone("UTC+13", 13*3600),
	}

	for _, loc := range zones {
		// Late evening, the classic UTC-shift trap.
		orig := time.Date(2024, 3, 31, 23, 30, 0, 0, loc)

		s := dateutil.FormatLocal(orig)
		assert.Equal(t, "2024-03-31", s)

		parsed, err := dateutil.ParseLocal(s)
		require.NoError(t, err)
		assert.Equal(t, orig.Year(), parsed.Year())
		assert.Equal(t, orig.Month(), parsed.Month())
		assert.Equal(t, orig.Day(), parsed.Day())
	}
}

func TestParseLocalInvalid(t *testing.T) {
	_, err := dateutil.ParseLocal("31/03/2024")
	assert.Error(t, err)
}

func TestFormatBrazilian(t *testing.T) {
	d := time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)
	assert.Equal(t, "15/01/2024", dateutil.FormatBrazilian(d))
}

func TestParseBrazilian(t *testing.T) {
	d, err := dateutil.ParseBrazilian("15/01/2024")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local), d)

	_, err = dateutil.ParseBrazilian("2024-01-15")
	assert.Error(t, err)
}

func TestMonthStart(t *testing.T) {
	d := time.Date(2024, 2, 29, 18, 4, 5, 0, time.UTC)
	start := dateutil.MonthStart(d)

	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), start)
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, 5, 10, 0, 0, 1, 0, time.UTC)
	b := time.Date(2024, 5, 10, 23, 59, 59, 0, time.UTC)

	assert.True(t, dateutil.SameDay(a, b))
	assert.False(t, dateutil.SameDay(a, b.AddDate(0, 0, 1)))
}
