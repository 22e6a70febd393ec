package filter

import (
	"fmt"
	"net/url"
	"regexp"
	"time"

	sq "github.com/Masterminds/squirrel"
)

const dateLayout = "2006-01-02"

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// DateFilter строит предикат по параметрам date, from и upTo.
// date задаёт один день целиком, from - начало дня включительно, upTo - конец дня включительно
func DateFilter(query url.Values) (sq.Sqlizer, error) {
	hasDate, hasFrom, hasUpTo := query.Has("date"), query.Has("from"), query.Has("upTo")

	if hasDate && (hasFrom || hasUpTo) {
		return nil, ErrConflictingFilter
	}

	if hasDate {
		day, err := parseDay(query.Get("date"))
		if err != nil {
			return nil, err
		}
		return sq.And{
			sq.GtOrEq{DateColumn: day},
			sq.LtOrEq{DateColumn: endOfDay(day)},
		}, nil
	}

	if !hasFrom && !hasUpTo {
		return unconstrained(), nil
	}

	pred := sq.And{}
	if hasFrom {
		from, err := parseDay(query.Get("from"))
		if err != nil {
			return nil, err
		}
		pred = append(pred, sq.GtOrEq{DateColumn: from})
	}
	if hasUpTo {
		upTo, err := parseDay(query.Get("upTo"))
		if err != nil {
			return nil, err
		}
		pred = append(pred, sq.LtOrEq{DateColumn: endOfDay(upTo)})
	}

	return pred, nil
}

// parseDay - строка YYYY-MM-DD в начало этого дня по UTC
func parseDay(value string) (time.Time, error) {
	if !datePattern.MatchString(value) {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidFormat, value)
	}
	day, err := time.ParseInLocation(dateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q: %v", ErrInvalidFormat, value, err)
	}
	return day, nil
}

// endOfDay - 23:59:59.999 того же дня
func endOfDay(day time.Time) time.Time {
	return day.Add(24*time.Hour - time.Millisecond)
}
