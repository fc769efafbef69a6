package models

import (
	"testing"
	"time"
)

func TestRightValid(t *testing.T) {
	if !Call.Valid() || !Put.Valid() {
		t.Error("known rights reported invalid")
	}
	if Right("strangle").Valid() {
		t.Error("unknown right reported valid")
	}
}

func TestPositionSideSign(t *testing.T) {
	if Long.Sign() != 1 || Short.Sign() != -1 {
		t.Errorf("signs = %v, %v, want 1, -1", Long.Sign(), Short.Sign())
	}
	if !Long.Valid() || !Short.Valid() || PositionSide("flat").Valid() {
		t.Error("side validity mismatch")
	}
}

func TestCandleSameDay(t *testing.T) {
	c := Candle{Date: time.Date(2023, 6, 16, 0, 0, 0, 0, time.UTC)}
	if !c.SameDay(time.Date(2023, 6, 16, 15, 30, 0, 0, time.UTC)) {
		t.Error("same calendar date not matched")
	}
	if c.SameDay(time.Date(2023, 6, 17, 0, 0, 0, 0, time.UTC)) {
		t.Error("different date matched")
	}
}

func TestCloses(t *testing.T) {
	candles := []Candle{{Close: 100}, {Close: 101.5}, {Close: 99}}
	closes := Closes(candles)
	want := []float64{100, 101.5, 99}
	for i := range want {
		if closes[i] != want[i] {
			t.Errorf("closes[%d] = %v, want %v", i, closes[i], want[i])
		}
	}
}
