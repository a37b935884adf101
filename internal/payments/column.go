package payments

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind is the declared element type of a Column.
type Kind int

const (
	KindObject Kind = iota
	KindFloat
	KindInt
	KindDecimal
	KindDatetime
	KindDays
)

var kindNames = map[Kind]string{
	KindObject:   "object",
	KindFloat:    "float",
	KindInt:      "int",
	KindDecimal:  "decimal",
	KindDatetime: "datetime",
	KindDays:     "days",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a kind name to its Kind. The empty string is KindObject.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return KindObject, nil
	}
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return KindObject, fmt.Errorf("unknown column kind %q", s)
}

// numeric reports whether the kind holds plain numbers rather than dates.
func (k Kind) numeric() bool {
	return k == KindInt || k == KindFloat || k == KindDecimal
}

// temporal reports whether the kind holds dates.
func (k Kind) temporal() bool {
	return k == KindDatetime || k == KindDays
}

// Sequence is a single-pass source of raw values.
type Sequence interface {
	Values() iter.Seq[any]
}

// Iter adapts a lazy sequence. It is consumed once and never rewound.
type Iter iter.Seq[any]

func (it Iter) Values() iter.Seq[any] { return iter.Seq[any](it) }

// IterOf returns an Iter over the given values.
func IterOf(values ...any) Iter {
	return Iter(slices.Values(values))
}

// Column is a typed array whose elements share a declared Kind.
type Column interface {
	Sequence
	Kind() Kind
	Len() int
}

// ObjectColumn holds heterogeneous values, each coerced on its own.
type ObjectColumn []any

func (c ObjectColumn) Kind() Kind            { return KindObject }
func (c ObjectColumn) Len() int              { return len(c) }
func (c ObjectColumn) Values() iter.Seq[any] { return slices.Values(c) }

type FloatColumn []float64

func (c FloatColumn) Kind() Kind { return KindFloat }
func (c FloatColumn) Len() int   { return len(c) }
func (c FloatColumn) Values() iter.Seq[any] {
	return boxed(c)
}

type IntColumn []int64

func (c IntColumn) Kind() Kind { return KindInt }
func (c IntColumn) Len() int   { return len(c) }
func (c IntColumn) Values() iter.Seq[any] {
	return boxed(c)
}

type DecimalColumn []decimal.Decimal

func (c DecimalColumn) Kind() Kind { return KindDecimal }
func (c DecimalColumn) Len() int   { return len(c) }
func (c DecimalColumn) Values() iter.Seq[any] {
	return boxed(c)
}

// DatetimeColumn holds timestamps; only the calendar date is used.
type DatetimeColumn []time.Time

func (c DatetimeColumn) Kind() Kind { return KindDatetime }
func (c DatetimeColumn) Len() int   { return len(c) }
func (c DatetimeColumn) Values() iter.Seq[any] {
	return boxed(c)
}

// DayColumn holds day-granularity temporal cells.
type DayColumn []Day

func (c DayColumn) Kind() Kind { return KindDays }
func (c DayColumn) Len() int   { return len(c) }
func (c DayColumn) Values() iter.Seq[any] {
	return boxed(c)
}

func boxed[T any](values []T) iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, v := range values {
			if !yield(v) {
				return
			}
		}
	}
}
