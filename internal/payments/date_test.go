package payments

import (
	"encoding/json"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tradeDate struct{ d civil.Date }

func (t tradeDate) CivilDate() civil.Date { return t.d }

func TestCoerceDate_Native(t *testing.T) {
	want := civil.Date{Year: 2020, Month: time.April, Day: 1}
	sydney := time.FixedZone("AEST", 10*3600)
	ts := time.Date(2020, 4, 1, 23, 59, 59, 0, sydney)

	tests := []struct {
		name string
		raw  any
	}{
		{"civil date", want},
		{"civil datetime", civil.DateTime{Date: want, Time: civil.Time{Hour: 12}}},
		{"time keeps local calendar date", ts},
		{"time pointer", &ts},
		{"day cell", DayOf(want)},
		{"dater", tradeDate{want}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CoerceDate(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestCoerceDate_StringFormatsRoundTrip(t *testing.T) {
	want := civil.Date{Year: 2021, Month: time.January, Day: 7}
	for _, s := range []string{"2021-01-07", "01/07/2021", "2021-01-07T12:30:08.483694"} {
		got, err := CoerceDate(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, got, s)
	}
}

func TestCoerceDate_DateTimeWithoutFraction(t *testing.T) {
	got, err := CoerceDate("2021-01-07T00:00:00")
	require.NoError(t, err)
	assert.Equal(t, civil.Date{Year: 2021, Month: time.January, Day: 7}, got)
}

func TestCoerceDate_UnknownFormat(t *testing.T) {
	for _, s := range []string{"01 Jan 21", "2021/01/07", "07.01.2021", "", "2021-02-30", "13/01/2021"} {
		_, err := CoerceDate(s)
		require.Error(t, err, s)
		assert.ErrorIs(t, err, ErrDateParse, s)

		var pe *DateParseError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, s, pe.Input)
	}
}

func TestCoerceDate_DateTimeShapeIsStrict(t *testing.T) {
	got, err := CoerceDate("2021-01-07T09:05:01.1")
	require.NoError(t, err)
	assert.Equal(t, civil.Date{Year: 2021, Month: time.January, Day: 7}, got)

	for _, s := range []string{
		"2021-01-07T9:05:01",
		"2021-01-07T09:05:01.1234567",
		"2021-01-07T09:05:01.",
		"2021-01-07T09:05",
	} {
		_, err := CoerceDate(s)
		assert.ErrorIs(t, err, ErrDateParse, s)
	}
}

func TestCoerceDate_TypeMismatch(t *testing.T) {
	var nilTime *time.Time
	for _, raw := range []any{18262, int64(18262), 18262.0, json.Number("18262"), nil, nilTime, true, civil.Date{Year: 2021, Month: 2, Day: 30}} {
		_, err := CoerceDate(raw)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTypeMismatch, "%#v", raw)
		assert.NotErrorIs(t, err, ErrDateParse)
	}
}

func TestDay_Epoch(t *testing.T) {
	assert.Equal(t, civil.Date{Year: 1970, Month: time.January, Day: 1}, Day(0).CivilDate())
	assert.Equal(t, civil.Date{Year: 2020, Month: time.January, Day: 1}, Day(18262).CivilDate())
	assert.Equal(t, Day(18628), DayOf(civil.Date{Year: 2021, Month: time.January, Day: 1}))
	assert.Equal(t, civil.Date{Year: 1969, Month: time.December, Day: 31}, Day(-1).CivilDate())
}
