package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bars.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing temp csv: %v", err)
	}
	return path
}

func TestLoadCandlesCSV(t *testing.T) {
	path := writeTempCSV(t, `date,open,high,low,close,volume
2023-01-04,102.0,103.5,101.0,103.0,1200
2023-01-03,101.0,102.5,100.5,102.0,1100
2023-01-02,100.0,101.5,99.5,101.0,1000
`)

	candles, err := LoadCandlesCSV(path)
	if err != nil {
		t.Fatalf("LoadCandlesCSV returned error: %v", err)
	}
	if len(candles) != 3 {
		t.Fatalf("got %d candles, want 3", len(candles))
	}

	// Rows arrive newest-first but must come back date-ordered.
	want := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	if !candles[0].Date.Equal(want) {
		t.Errorf("first candle date = %v, want %v", candles[0].Date, want)
	}
	if candles[0].Close != 101.0 || candles[0].Volume != 1000 {
		t.Errorf("first candle = %+v", candles[0])
	}
	if candles[2].High != 103.5 {
		t.Errorf("last candle high = %v, want 103.5", candles[2].High)
	}
}

func TestLoadCandlesCSVBadDate(t *testing.T) {
	path := writeTempCSV(t, `date,open,high,low,close,volume
01/02/2023,100.0,101.5,99.5,101.0,1000
`)
	if _, err := LoadCandlesCSV(path); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestLoadCandlesCSVMissingFile(t *testing.T) {
	if _, err := LoadCandlesCSV(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}
