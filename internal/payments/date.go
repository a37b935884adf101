package payments

import (
	"regexp"
	"time"

	"cloud.google.com/go/civil"
)

// Dater is implemented by caller types that carry a calendar date.
type Dater interface {
	CivilDate() civil.Date
}

// Day is a day-granularity temporal cell: a count of days since 1970-01-01.
type Day int64

var epoch = civil.Date{Year: 1970, Month: time.January, Day: 1}

// CivilDate returns the calendar date the cell denotes.
func (d Day) CivilDate() civil.Date {
	return epoch.AddDays(int(d))
}

// DayOf returns the cell for a calendar date.
func DayOf(d civil.Date) Day {
	return Day(d.DaysSince(epoch))
}

const dateTimeLayout = "2006-01-02T15:04:05.999999"

// dateLayouts are tried in order; the first full match wins.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	dateTimeLayout,
}

// time.Parse accepts a one-digit hour and any number of fractional digits
// for dateTimeLayout; datetimes must be HH:MM:SS with at most six.
var dateTimeShape = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d{1,6})?$`)

// CoerceDate converts a raw value into a calendar date.
//
// Native date values come first (time of day is dropped), then Day cells, then
// strings in one of the fixed layouts. A string matching no layout fails with a
// *DateParseError; any other value fails with a *TypeMismatchError. Bare
// numbers are not dates: day ordinals are only accepted through a DayColumn.
func CoerceDate(raw any) (civil.Date, error) {
	switch v := raw.(type) {
	case civil.Date:
		if !v.IsValid() {
			return civil.Date{}, mismatch("date", raw)
		}
		return v, nil
	case civil.DateTime:
		if !v.Date.IsValid() {
			return civil.Date{}, mismatch("date", raw)
		}
		return v.Date, nil
	case time.Time:
		return civil.DateOf(v), nil
	case *time.Time:
		if v == nil {
			return civil.Date{}, mismatch("date", raw)
		}
		return civil.DateOf(*v), nil
	case Day:
		return v.CivilDate(), nil
	case Dater:
		return v.CivilDate(), nil
	case string:
		return ParseDate(v)
	default:
		return civil.Date{}, mismatch("date", raw)
	}
}

// ParseDate parses s against the accepted layouts in order.
func ParseDate(s string) (civil.Date, error) {
	for _, layout := range dateLayouts {
		if layout == dateTimeLayout && !dateTimeShape.MatchString(s) {
			continue
		}
		if t, err := time.Parse(layout, s); err == nil {
			return civil.DateOf(t), nil
		}
	}
	return civil.Date{}, &DateParseError{Input: s}
}
