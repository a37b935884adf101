package payload

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bobmcallan/xirr/internal/payments"
	"github.com/shopspring/decimal"
)

// column builds a typed column from decoded JSON values. Typed kinds
// convert every cell up front; object columns defer to the builder.
func column(values []any, kindName string) (payments.Column, error) {
	kind, err := payments.ParseKind(kindName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}

	switch kind {
	case payments.KindFloat:
		col, err := convert(values, "float", func(n json.Number) (float64, error) { return n.Float64() })
		if err != nil {
			return nil, err
		}
		return payments.FloatColumn(col), nil
	case payments.KindInt:
		col, err := convert(values, "int", func(n json.Number) (int64, error) { return n.Int64() })
		if err != nil {
			return nil, err
		}
		return payments.IntColumn(col), nil
	case payments.KindDecimal:
		col, err := convert(values, "decimal", func(n json.Number) (decimal.Decimal, error) {
			return decimal.NewFromString(n.String())
		})
		if err != nil {
			return nil, err
		}
		return payments.DecimalColumn(col), nil
	case payments.KindDays:
		col, err := convert(values, "days", func(n json.Number) (payments.Day, error) {
			d, err := n.Int64()
			return payments.Day(d), err
		})
		if err != nil {
			return nil, err
		}
		return payments.DayColumn(col), nil
	case payments.KindDatetime:
		col, err := datetimes(values)
		if err != nil {
			return nil, err
		}
		return col, nil
	}
	return payments.ObjectColumn(values), nil
}

// convert maps numeric cells with fn. Anything other than a JSON number,
// or a number fn rejects, is a type mismatch.
func convert[T any](values []any, kind string, fn func(json.Number) (T, error)) ([]T, error) {
	out := make([]T, len(values))
	for i, v := range values {
		n, ok := v.(json.Number)
		if !ok {
			return nil, fmt.Errorf("row %d: %w", i, &payments.TypeMismatchError{Expected: kind, Type: jsonType(v), Value: v})
		}
		x, err := fn(n)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, &payments.TypeMismatchError{Expected: kind, Type: "number", Value: v})
		}
		out[i] = x
	}
	return out, nil
}

func datetimes(values []any) (payments.DatetimeColumn, error) {
	out := make(payments.DatetimeColumn, len(values))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("row %d: %w", i, &payments.TypeMismatchError{Expected: "datetime", Type: jsonType(v), Value: v})
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, &payments.DateParseError{Input: s})
		}
		out[i] = t
	}
	return out, nil
}
