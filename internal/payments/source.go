package payments

import (
	"iter"
	"slices"
)

// Source is the closed set of raw payment shapes accepted by Build:
// Mapping, Pairs, Frame, Series and Parallel.
type Source interface {
	source()
}

// Mapping maps date-like keys to amount-like values.
type Mapping map[any]any

// Pair is a single (date-like, amount-like) entry.
type Pair struct {
	Date   any
	Amount any
}

// Pairs is a lazy sequence of pair-like entries: Pair, models.Payment,
// [2]any or a two-element []any.
type Pairs iter.Seq[any]

// PairsOf returns Pairs over the given entries.
func PairsOf(entries ...any) Pairs {
	return Pairs(slices.Values(entries))
}

// Frame is a two-column table: dates first, amounts second.
type Frame struct {
	Columns []Column
}

// Series is a single value column carrying a date-valued row index.
type Series struct {
	Index  Column
	Values Column
}

// Parallel holds dates and amounts as separate sequences.
type Parallel struct {
	Dates   Sequence
	Amounts Sequence
}

func (Mapping) source()  {}
func (Pairs) source()    {}
func (Frame) source()    {}
func (Series) source()   {}
func (Parallel) source() {}
