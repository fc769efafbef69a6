package store

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/gocarina/gocsv"

	"options-analytics/internal/models"
)

// csvDate parses the date column of daily bar exports.
type csvDate struct {
	time.Time
}

// UnmarshalCSV implements gocsv unmarshaling for YYYY-MM-DD dates.
func (d *csvDate) UnmarshalCSV(value string) error {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return fmt.Errorf("parsing date %q: %w", value, err)
	}
	d.Time = t
	return nil
}

// csvBar mirrors one row of a daily OHLCV export.
type csvBar struct {
	Date   csvDate `csv:"date"`
	Open   float64 `csv:"open"`
	High   float64 `csv:"high"`
	Low    float64 `csv:"low"`
	Close  float64 `csv:"close"`
	Volume int64   `csv:"volume"`
}

// LoadCandlesCSV reads a daily OHLCV CSV file into a date-ordered candle
// series. Expected header: date,open,high,low,close,volume.
func LoadCandlesCSV(path string) ([]models.Candle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening csv: %w", err)
	}
	defer f.Close()

	var bars []csvBar
	if err := gocsv.UnmarshalFile(f, &bars); err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}

	candles := make([]models.Candle, 0, len(bars))
	for _, b := range bars {
		candles = append(candles, models.Candle{
			Date:   b.Date.Time,
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		})
	}
	sort.Slice(candles, func(i, j int) bool {
		return candles[i].Date.Before(candles[j].Date)
	})
	return candles, nil
}
