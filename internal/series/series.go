// Package series holds an ordered OHLCV bar sequence together with named
// derived columns, the unit of data every indicator consumes and annotates.
package series

import (
	"fmt"
	"sort"
	"time"

	"TrendCouncil/internal/model"
)

// Series is an ascending-time bar sequence plus derived float64 columns.
// Undefined column cells are NaN. Bars are shared read-only between clones;
// columns are owned per clone, so concurrent indicators never collide.
type Series struct {
	bars  []model.Bar
	cols  map[string][]float64
	order []string
}

// New builds a Series from bars, sorting them ascending by time.
func New(bars []model.Bar) *Series {
	sorted := make([]model.Bar, len(bars))
	copy(sorted, bars)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time.Before(sorted[j].Time) })
	return &Series{bars: sorted, cols: make(map[string][]float64)}
}

// Len returns the number of bars.
func (s *Series) Len() int { return len(s.bars) }

// Bar returns the bar at index i.
func (s *Series) Bar(i int) model.Bar { return s.bars[i] }

// Last returns the most recent bar. Panics on an empty series.
func (s *Series) Last() model.Bar { return s.bars[len(s.bars)-1] }

// Closes returns a fresh copy of the close column.
func (s *Series) Closes() []float64 {
	out := make([]float64, len(s.bars))
	for i, b := range s.bars {
		out[i] = b.Close
	}
	return out
}

// Highs returns a fresh copy of the high column.
func (s *Series) Highs() []float64 {
	out := make([]float64, len(s.bars))
	for i, b := range s.bars {
		out[i] = b.High
	}
	return out
}

// Lows returns a fresh copy of the low column.
func (s *Series) Lows() []float64 {
	out := make([]float64, len(s.bars))
	for i, b := range s.bars {
		out[i] = b.Low
	}
	return out
}

// SetColumn attaches a derived column. The column must have exactly one
// value per bar; a mismatch is a programming error.
func (s *Series) SetColumn(name string, values []float64) {
	if len(values) != len(s.bars) {
		panic(fmt.Sprintf("series: column %s has %d values for %d bars", name, len(values), len(s.bars)))
	}
	if _, exists := s.cols[name]; !exists {
		s.order = append(s.order, name)
	}
	s.cols[name] = values
}

// Column returns a derived column by name.
func (s *Series) Column(name string) ([]float64, bool) {
	c, ok := s.cols[name]
	return c, ok
}

// ColumnNames returns the derived column names in attach order.
func (s *Series) ColumnNames() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Clone returns a series sharing the bar slice but owning a deep copy of
// the derived columns.
func (s *Series) Clone() *Series {
	c := &Series{
		bars:  s.bars,
		cols:  make(map[string][]float64, len(s.cols)),
		order: append([]string(nil), s.order...),
	}
	for name, vals := range s.cols {
		cp := make([]float64, len(vals))
		copy(cp, vals)
		c.cols[name] = cp
	}
	return c
}

// ResampleMonthly aggregates daily bars into calendar-month bars:
// open = first, high = max, low = min, close = last, volume = sum.
// Each output bar is stamped with the first day of its month. Derived
// columns are not carried over.
func ResampleMonthly(s *Series) *Series {
	if s == nil || s.Len() == 0 {
		return New(nil)
	}
	var out []model.Bar
	var cur model.Bar
	var curMonth time.Time
	open := false
	for i := 0; i < s.Len(); i++ {
		b := s.Bar(i)
		m := time.Date(b.Time.Year(), b.Time.Month(), 1, 0, 0, 0, 0, b.Time.Location())
		if !open || !m.Equal(curMonth) {
			if open {
				out = append(out, cur)
			}
			curMonth = m
			cur = model.Bar{Time: m, Open: b.Open, High: b.High, Low: b.Low, Close: b.Close, Volume: b.Volume}
			open = true
			continue
		}
		if b.High > cur.High {
			cur.High = b.High
		}
		if b.Low < cur.Low {
			cur.Low = b.Low
		}
		cur.Close = b.Close
		cur.Volume += b.Volume
	}
	if open {
		out = append(out, cur)
	}
	return New(out)
}
