// Package payload binds JSON request bodies to payment sources.
//
// A body carries its schedule in exactly one of four shapes, checked in
// this order:
//
//	{"payments": {"2020-01-01": -1000, ...}}           Mapping
//	{"payments": [["2020-01-01", -1000], ...]}         Pairs
//	{"payments": [{"date": "...", "amount": ...}]}     Pairs
//	{"table": {"columns": [[...], [...]], "kinds": ["object", "decimal"]}}
//	{"series": {"index": [...], "index_kind": "...", "values": [...]}}
//	{"dates": [...], "amounts": [...], "date_kind": "...", "amount_kind": "..."}
//
// Numbers are decoded as json.Number so decimal text survives until it
// reaches the amount coercion.
package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/bobmcallan/xirr/internal/interfaces"
	"github.com/bobmcallan/xirr/internal/payments"
)

// ErrBadPayload is returned for bodies that are not valid JSON or name an
// unknown column kind.
var ErrBadPayload = errors.New("bad payload")

// Schedule is the schedule-carrying part of a request body.
type Schedule struct {
	Payments   any     `json:"payments,omitempty"`
	Table      *Table  `json:"table,omitempty"`
	Series     *Series `json:"series,omitempty"`
	Dates      []any   `json:"dates,omitempty"`
	Amounts    []any   `json:"amounts,omitempty"`
	DateKind   string  `json:"date_kind,omitempty"`
	AmountKind string  `json:"amount_kind,omitempty"`
}

// Table is a column-oriented frame; column 0 holds dates, column 1 amounts.
type Table struct {
	Columns [][]any  `json:"columns"`
	Kinds   []string `json:"kinds,omitempty"`
}

// Series is a value column with a date index.
type Series struct {
	Index      []any  `json:"index"`
	IndexKind  string `json:"index_kind,omitempty"`
	Values     []any  `json:"values"`
	ValuesKind string `json:"values_kind,omitempty"`
}

// CalcRequest is the body of an XIRR calculation.
type CalcRequest struct {
	Schedule
	Guess             *float64 `json:"guess,omitempty"`
	DayCount          string   `json:"day_count,omitempty"`
	MaxIterations     int      `json:"max_iterations,omitempty"`
	BisectionFallback *bool    `json:"bisection_fallback,omitempty"`
}

// Options returns the solver overrides carried by the request.
func (r *CalcRequest) Options() interfaces.CalcOptions {
	return interfaces.CalcOptions{
		Guess:             r.Guess,
		DayCount:          r.DayCount,
		MaxIterations:     r.MaxIterations,
		BisectionFallback: r.BisectionFallback,
	}
}

// NPVRequest is the body of an XNPV calculation.
type NPVRequest struct {
	CalcRequest
	Rate *float64 `json:"rate"`
}

// ProfileRequest is the body of an NPV profile request.
type ProfileRequest struct {
	CalcRequest
	Low    float64 `json:"low,omitempty"`
	High   float64 `json:"high,omitempty"`
	Steps  int     `json:"steps,omitempty"`
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
}

// ProfileOptions returns the sampling and rendering options carried by the request.
func (r *ProfileRequest) ProfileOptions() interfaces.ProfileOptions {
	return interfaces.ProfileOptions{
		CalcOptions: r.Options(),
		Low:         r.Low,
		High:        r.High,
		Steps:       r.Steps,
		Width:       r.Width,
		Height:      r.Height,
	}
}

// SaveRequest is the body of a saved-schedule create.
type SaveRequest struct {
	Schedule
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Decode reads one JSON value from r into v, keeping numbers as json.Number.
func Decode(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return nil
}

// FromArguments re-decodes already-parsed arguments (an MCP tool call) into v.
func FromArguments(args any, v any) error {
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return Decode(bytes.NewReader(data), v)
}

// Source converts the body into a payments.Source.
func (s *Schedule) Source() (payments.Source, error) {
	switch {
	case s.Payments != nil:
		return paymentsSource(s.Payments)
	case s.Table != nil:
		return s.Table.frame()
	case s.Series != nil:
		return s.Series.series()
	case s.Dates != nil || s.Amounts != nil:
		return s.parallel()
	}
	return nil, &payments.InvalidPaymentsError{Reason: "no payments supplied: expected payments, table, series or dates/amounts"}
}

func paymentsSource(raw any) (payments.Source, error) {
	switch v := raw.(type) {
	case map[string]any:
		m := make(payments.Mapping, len(v))
		for date, amount := range v {
			m[date] = amount
		}
		return m, nil
	case []any:
		return payments.Pairs(func(yield func(any) bool) {
			for _, entry := range v {
				if !yield(pairEntry(entry)) {
					return
				}
			}
		}), nil
	}
	return nil, &payments.TypeMismatchError{Expected: "payments", Type: jsonType(raw), Value: raw}
}

// pairEntry turns {"date": ..., "amount": ...} into a Pair. Arrays pass
// through for the builder to check.
func pairEntry(entry any) any {
	obj, ok := entry.(map[string]any)
	if !ok {
		return entry
	}
	date, hasDate := obj["date"]
	amount, hasAmount := obj["amount"]
	if !hasDate || !hasAmount || len(obj) != 2 {
		return entry
	}
	return payments.Pair{Date: date, Amount: amount}
}

func (t *Table) frame() (payments.Source, error) {
	if len(t.Kinds) > len(t.Columns) {
		return nil, fmt.Errorf("%w: %d kinds for %d columns", ErrBadPayload, len(t.Kinds), len(t.Columns))
	}
	cols := make([]payments.Column, len(t.Columns))
	for i, values := range t.Columns {
		kind := ""
		if i < len(t.Kinds) {
			kind = t.Kinds[i]
		}
		col, err := column(values, kind)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
		cols[i] = col
	}
	return payments.Frame{Columns: cols}, nil
}

func (s *Series) series() (payments.Source, error) {
	index, err := optionalColumn(s.Index, s.IndexKind)
	if err != nil {
		return nil, fmt.Errorf("index: %w", err)
	}
	values, err := optionalColumn(s.Values, s.ValuesKind)
	if err != nil {
		return nil, fmt.Errorf("values: %w", err)
	}
	return payments.Series{Index: index, Values: values}, nil
}

func (s *Schedule) parallel() (payments.Source, error) {
	dates, err := optionalColumn(s.Dates, s.DateKind)
	if err != nil {
		return nil, fmt.Errorf("dates: %w", err)
	}
	amounts, err := optionalColumn(s.Amounts, s.AmountKind)
	if err != nil {
		return nil, fmt.Errorf("amounts: %w", err)
	}
	return payments.Parallel{Dates: dates, Amounts: amounts}, nil
}

func optionalColumn(values []any, kind string) (payments.Column, error) {
	if values == nil {
		return nil, nil
	}
	return column(values, kind)
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	}
	return fmt.Sprintf("%T", v)
}
