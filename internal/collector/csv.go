package collector

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"TrendCouncil/internal/model"
)

// CSVFetcher implements Fetcher over local CSV exports. It expects
// <dir>/<SYMBOL>_daily.csv and <dir>/<SYMBOL>_monthly.csv.
type CSVFetcher struct {
	Dir string
}

func (f *CSVFetcher) Name() string { return "csv" }

func (f *CSVFetcher) FetchDailyBars(symbol string, days int) ([]model.Bar, error) {
	bars, err := LoadCSV(filepath.Join(f.Dir, symbol+"_daily.csv"))
	if err != nil {
		return nil, err
	}
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}

func (f *CSVFetcher) FetchMonthlyBars(symbol string, months int) ([]model.Bar, error) {
	bars, err := LoadCSV(filepath.Join(f.Dir, symbol+"_monthly.csv"))
	if err != nil {
		return nil, err
	}
	if len(bars) > months {
		bars = bars[len(bars)-months:]
	}
	return bars, nil
}

// Accepted timestamp layouts, tried in order. Day-first layouts cover
// UK-style exports.
var csvTimeLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
	"02/01/2006 15:04",
}

// LoadCSV reads OHLCV bars from a CSV file. Headers are matched case
// insensitively ("Date"/"time", "Open", ...); a missing volume column
// defaults every bar to 0. Bars come back sorted ascending.
func LoadCSV(path string) ([]model.Bar, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("csv %s has no data rows", path)
	}

	idx, err := headerIndex(records[0])
	if err != nil {
		return nil, fmt.Errorf("csv %s: %w", path, err)
	}

	bars := make([]model.Bar, 0, len(records)-1)
	for rowNum, row := range records[1:] {
		bar, err := parseRow(row, idx)
		if err != nil {
			return nil, fmt.Errorf("csv %s row %d: %w", path, rowNum+2, err)
		}
		bars = append(bars, bar)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

// LoadCSVRange filters the loaded bars to [from, to]. Zero bounds are
// open ended.
func LoadCSVRange(path string, from, to time.Time) ([]model.Bar, error) {
	bars, err := LoadCSV(path)
	if err != nil {
		return nil, err
	}
	out := bars[:0]
	for _, b := range bars {
		if !from.IsZero() && b.Time.Before(from) {
			continue
		}
		if !to.IsZero() && b.Time.After(to) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

type columnIndex struct {
	time, open, high, low, close, volume int
}

func headerIndex(header []string) (columnIndex, error) {
	idx := columnIndex{time: -1, open: -1, high: -1, low: -1, close: -1, volume: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "time", "date", "datetime", "timestamp":
			idx.time = i
		case "open":
			idx.open = i
		case "high":
			idx.high = i
		case "low":
			idx.low = i
		case "close", "adj close":
			if idx.close == -1 {
				idx.close = i
			}
		case "volume", "vol":
			idx.volume = i
		}
	}
	if idx.time == -1 || idx.open == -1 || idx.high == -1 || idx.low == -1 || idx.close == -1 {
		return idx, fmt.Errorf("missing required columns (need time/date, open, high, low, close)")
	}
	return idx, nil
}

func parseRow(row []string, idx columnIndex) (model.Bar, error) {
	ts, err := parseTime(row[idx.time])
	if err != nil {
		return model.Bar{}, err
	}
	o, err := strconv.ParseFloat(strings.TrimSpace(row[idx.open]), 64)
	if err != nil {
		return model.Bar{}, fmt.Errorf("open: %w", err)
	}
	h, err := strconv.ParseFloat(strings.TrimSpace(row[idx.high]), 64)
	if err != nil {
		return model.Bar{}, fmt.Errorf("high: %w", err)
	}
	l, err := strconv.ParseFloat(strings.TrimSpace(row[idx.low]), 64)
	if err != nil {
		return model.Bar{}, fmt.Errorf("low: %w", err)
	}
	c, err := strconv.ParseFloat(strings.TrimSpace(row[idx.close]), 64)
	if err != nil {
		return model.Bar{}, fmt.Errorf("close: %w", err)
	}
	var vol float64
	if idx.volume != -1 && idx.volume < len(row) && strings.TrimSpace(row[idx.volume]) != "" {
		vol, err = strconv.ParseFloat(strings.TrimSpace(row[idx.volume]), 64)
		if err != nil {
			return model.Bar{}, fmt.Errorf("volume: %w", err)
		}
	}
	return model.Bar{Time: ts, Open: o, High: h, Low: l, Close: c, Volume: vol}, nil
}

func parseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range csvTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	// Unix seconds as a last resort
	if secs, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", raw)
}
