package payments

import (
	"encoding/json"
	"math"

	"github.com/shopspring/decimal"
)

// Amounter is implemented by caller types that carry their own numeric value.
type Amounter interface {
	Amount() (float64, error)
}

// CoerceAmount converts a raw value into a finite signed amount.
//
// Go numeric types, decimal.Decimal, json.Number, Amounter values and
// one-element wrappers of any of these are accepted. Strings, booleans, nil
// and everything else fail with a *TypeMismatchError.
func CoerceAmount(raw any) (float64, error) {
	var f float64
	switch v := raw.(type) {
	case nil, string, bool:
		return 0, mismatch("amount", raw)
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int8:
		f = float64(v)
	case int16:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint8:
		f = float64(v)
	case uint16:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint64:
		f = float64(v)
	case decimal.Decimal:
		f = decimalFloat(v)
	case *decimal.Decimal:
		if v == nil {
			return 0, mismatch("amount", raw)
		}
		f = decimalFloat(*v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, mismatch("amount", raw)
		}
		f = parsed
	case Amounter:
		amount, err := v.Amount()
		if err != nil {
			return 0, err
		}
		f = amount
	case []any:
		if len(v) != 1 {
			return 0, mismatch("amount", raw)
		}
		return CoerceAmount(v[0])
	case [1]any:
		return CoerceAmount(v[0])
	case []float64:
		if len(v) != 1 {
			return 0, mismatch("amount", raw)
		}
		f = v[0]
	case []decimal.Decimal:
		if len(v) != 1 {
			return 0, mismatch("amount", raw)
		}
		f = decimalFloat(v[0])
	default:
		return 0, mismatch("amount", raw)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, mismatch("amount", raw)
	}
	return f, nil
}

// decimalFloat returns the float64 nearest to the exact rational value of d.
func decimalFloat(d decimal.Decimal) float64 {
	f, _ := d.Rat().Float64()
	return f
}
