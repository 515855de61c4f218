package series

import (
	"fmt"
	"math"
	"strings"
)

var canonicalColumns = []string{"Open", "High", "Low", "Close", "Volume"}

// Normalize flattens a raw provider table into a canonical OHLCV series.
//
// Nested (two-level) columns are flattened by keeping only the field level
// and discarding the symbol level. For each canonical column an exact name
// match is preferred; otherwise the first case-insensitive match in column
// order wins. A column still absent after that search stays absent: Volume
// is tolerated and reported through HasVolume, any other absent field is
// filled with NaN and dependent features are skipped downstream.
//
// Rows where all five fields are missing are dropped. An empty table or a
// non-increasing timestamp index yields ErrNoData.
func Normalize(raw RawTable) (*Series, error) {
	if raw.Rows() == 0 {
		return nil, ErrNoData
	}
	n := raw.Rows()
	for i := 1; i < n; i++ {
		if !raw.Index[i].After(raw.Index[i-1]) {
			return nil, fmt.Errorf("timestamp index not strictly increasing at row %d: %w", i, ErrNoData)
		}
	}

	pick := func(want string) []float64 {
		// Exact match first; duplicates keep the first occurrence.
		for _, col := range raw.Columns {
			if col.Name == want && len(col.Values) == n {
				return col.Values
			}
		}
		for _, col := range raw.Columns {
			if strings.EqualFold(col.Name, want) && len(col.Values) == n {
				return col.Values
			}
		}
		return nil
	}

	cols := make(map[string][]float64, len(canonicalColumns))
	for _, name := range canonicalColumns {
		cols[name] = pick(name)
	}

	out := &Series{hasVolume: cols["Volume"] != nil}
	valueAt := func(vals []float64, i int) float64 {
		if vals == nil {
			return math.NaN()
		}
		return vals[i]
	}
	for i := 0; i < n; i++ {
		o := valueAt(cols["Open"], i)
		h := valueAt(cols["High"], i)
		l := valueAt(cols["Low"], i)
		c := valueAt(cols["Close"], i)
		v := valueAt(cols["Volume"], i)
		if math.IsNaN(o) && math.IsNaN(h) && math.IsNaN(l) && math.IsNaN(c) && math.IsNaN(v) {
			continue
		}
		out.Timestamps = append(out.Timestamps, raw.Index[i])
		out.Open = append(out.Open, o)
		out.High = append(out.High, h)
		out.Low = append(out.Low, l)
		out.Close = append(out.Close, c)
		out.Volume = append(out.Volume, v)
	}
	if out.Len() == 0 {
		return nil, ErrNoData
	}
	return out, nil
}
