package series

import (
	"errors"
	"math"
	"time"
)

// ErrNoData indicates the provider returned an empty or unusable table.
var ErrNoData = errors.New("no data")

// Series is a canonical OHLCV series. Columns are parallel to Timestamps,
// which are unique and strictly increasing. A field the provider did not
// supply is NaN for every row. Treat a Series as read-only once built.
type Series struct {
	Timestamps []time.Time
	Open       []float64
	High       []float64
	Low        []float64
	Close      []float64
	Volume     []float64

	hasVolume bool
}

func (s *Series) Len() int { return len(s.Timestamps) }

// HasVolume reports whether the volume column survived normalization.
// Renderers skip the volume panel when it did not.
func (s *Series) HasVolume() bool { return s.hasVolume }

// FirstClose returns the first defined close value, or NaN when none exists.
func (s *Series) FirstClose() float64 {
	for _, v := range s.Close {
		if !math.IsNaN(v) {
			return v
		}
	}
	return math.NaN()
}

// LastClose returns the most recent defined close value, or NaN.
func (s *Series) LastClose() float64 {
	for i := len(s.Close) - 1; i >= 0; i-- {
		if !math.IsNaN(s.Close[i]) {
			return s.Close[i]
		}
	}
	return math.NaN()
}

// Interval infers the sampling interval from consecutive timestamps.
// Zero when the series is too short to tell.
func (s *Series) Interval() time.Duration {
	if s.Len() < 2 {
		return 0
	}
	return s.Timestamps[1].Sub(s.Timestamps[0])
}
