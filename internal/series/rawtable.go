package series

import "time"

// RawTable is a provider result before normalization. Column names arrive
// however the provider shaped them: arbitrary casing, duplicates, and an
// optional second symbol level when the response covered multiple symbols.
type RawTable struct {
	Index   []time.Time
	Columns []RawColumn
}

// RawColumn is one column of a RawTable. Symbol is the inner level of a
// two-level column scheme and is empty for single-symbol responses.
type RawColumn struct {
	Name   string
	Symbol string
	Values []float64
}

// Rows returns the number of rows in the table.
func (t RawTable) Rows() int { return len(t.Index) }
