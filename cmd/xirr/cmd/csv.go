package cmd

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/xirr/internal/payments"
)

// csvSource streams date,amount rows from r as Pairs. Amounts are parsed
// as decimals; a cell that is not a number is passed through as text so
// extraction reports it as a type mismatch. Read errors are recorded in
// *readErr and end the sequence.
func csvSource(r io.Reader, skipHeader bool, readErr *error) payments.Pairs {
	return func(yield func(any) bool) {
		reader := csv.NewReader(r)
		reader.FieldsPerRecord = -1
		reader.TrimLeadingSpace = true
		reader.Comment = '#'

		first := true
		for {
			record, err := reader.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				*readErr = fmt.Errorf("read csv: %w", err)
				return
			}
			if first && skipHeader {
				first = false
				continue
			}
			first = false

			if !yield(csvEntry(record)) {
				return
			}
		}
	}
}

func csvEntry(record []string) any {
	if len(record) != 2 {
		row := make([]any, len(record))
		for i, cell := range record {
			row[i] = cell
		}
		return row
	}
	date := strings.TrimSpace(record[0])
	cell := strings.TrimSpace(record[1])
	if d, err := decimal.NewFromString(cell); err == nil {
		return payments.Pair{Date: date, Amount: d}
	}
	return payments.Pair{Date: date, Amount: cell}
}

// openInput opens path, or stdin for "-" or an empty path.
func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}
