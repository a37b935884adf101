package payments

import (
	"fmt"

	"cloud.google.com/go/civil"

	"github.com/bobmcallan/xirr/internal/models"
)

// Build normalizes a raw payment source into a schedule. The first element
// that fails coercion fails the whole build. Sequences are consumed once.
//
// Build checks structure only (shape and equal lengths); use Extract to also
// enforce the sign-mix invariant.
func Build(src Source) (models.Schedule, error) {
	switch s := src.(type) {
	case nil:
		return nil, invalid("no payments supplied")
	case Mapping:
		return buildMapping(s)
	case Pairs:
		return buildPairs(s)
	case Frame:
		return buildFrame(s)
	case Series:
		return buildSeries(s)
	case Parallel:
		return buildParallel(s)
	default:
		return nil, mismatch("payments", src)
	}
}

// Extract builds and validates a schedule in one step.
func Extract(src Source) (models.Schedule, error) {
	schedule, err := Build(src)
	if err != nil {
		return nil, err
	}
	if err := ValidateSchedule(schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

func buildMapping(m Mapping) (models.Schedule, error) {
	schedule := make(models.Schedule, 0, len(m))
	for key, value := range m {
		date, err := CoerceDate(key)
		if err != nil {
			return nil, fmt.Errorf("payment %v: %w", key, err)
		}
		amount, err := CoerceAmount(value)
		if err != nil {
			return nil, fmt.Errorf("payment %v: %w", key, err)
		}
		schedule = append(schedule, models.Payment{Date: date, Amount: amount})
	}
	// Map iteration order is random; sort so results are reproducible.
	return schedule.Sorted(), nil
}

func buildPairs(pairs Pairs) (models.Schedule, error) {
	var schedule models.Schedule
	i := 0
	for entry := range pairs {
		rawDate, rawAmount, err := splitPair(entry)
		if err != nil {
			return nil, fmt.Errorf("payment %d: %w", i, err)
		}
		date, err := CoerceDate(rawDate)
		if err != nil {
			return nil, fmt.Errorf("payment %d: %w", i, err)
		}
		amount, err := CoerceAmount(rawAmount)
		if err != nil {
			return nil, fmt.Errorf("payment %d: %w", i, err)
		}
		schedule = append(schedule, models.Payment{Date: date, Amount: amount})
		i++
	}
	return schedule, nil
}

func splitPair(entry any) (date, amount any, err error) {
	switch v := entry.(type) {
	case Pair:
		return v.Date, v.Amount, nil
	case *Pair:
		if v != nil {
			return v.Date, v.Amount, nil
		}
	case models.Payment:
		return v.Date, v.Amount, nil
	case [2]any:
		return v[0], v[1], nil
	case []any:
		if len(v) == 2 {
			return v[0], v[1], nil
		}
	}
	return nil, nil, mismatch("pair", entry)
}

func buildFrame(f Frame) (models.Schedule, error) {
	if len(f.Columns) != 2 {
		return nil, invalid("expected 2 columns (dates, amounts), got %d", len(f.Columns))
	}
	return buildColumns(f.Columns[0], f.Columns[1])
}

func buildSeries(s Series) (models.Schedule, error) {
	if s.Index == nil || s.Values == nil {
		return nil, invalid("series requires an index and a value column")
	}
	return buildColumns(s.Index, s.Values)
}

func buildParallel(p Parallel) (models.Schedule, error) {
	if p.Dates == nil || p.Amounts == nil {
		return nil, invalid("both dates and amounts are required")
	}
	return buildColumns(p.Dates, p.Amounts)
}

func buildColumns(dates, amounts Sequence) (models.Schedule, error) {
	ds, err := collectDates(dates)
	if err != nil {
		return nil, err
	}
	as, err := collectAmounts(amounts)
	if err != nil {
		return nil, err
	}
	return pair(ds, as)
}

// collectDates drains a sequence of date-likes. A column declared with a
// numeric kind is not a date column at all and is rejected as a type
// mismatch before any element is read.
func collectDates(seq Sequence) ([]civil.Date, error) {
	if col, ok := seq.(Column); ok && col.Kind().numeric() {
		return nil, &TypeMismatchError{Expected: "date", Type: col.Kind().String() + " column"}
	}
	var dates []civil.Date
	i := 0
	for raw := range seq.Values() {
		date, err := CoerceDate(raw)
		if err != nil {
			return nil, fmt.Errorf("date %d: %w", i, err)
		}
		dates = append(dates, date)
		i++
	}
	return dates, nil
}

func collectAmounts(seq Sequence) ([]float64, error) {
	if col, ok := seq.(Column); ok && col.Kind().temporal() {
		return nil, &TypeMismatchError{Expected: "amount", Type: col.Kind().String() + " column"}
	}
	var amounts []float64
	i := 0
	for raw := range seq.Values() {
		amount, err := CoerceAmount(raw)
		if err != nil {
			return nil, fmt.Errorf("amount %d: %w", i, err)
		}
		amounts = append(amounts, amount)
		i++
	}
	return amounts, nil
}
