package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/text/encoding/unicode"

	domrepo "EconPull/internal/domain/repository"
)

func writePriceFile(t *testing.T, dir, name string, data []byte) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		t.Fatalf("write price file: %v", err)
	}
}

const commaCSV = `Time,Open,High,Low,Close,Volume
2025.01.06 08:00,1.0300,1.0350,1.0290,1.0340,1200
2025.01.06 09:00,1.0340,1.0360,1.0320,1.0330,900
2025.01.06 07:00,1.0280,1.0310,1.0270,1.0300,800
`

func TestLoadBarsCommaDelimited(t *testing.T) {
	dir := t.TempDir()
	writePriceFile(t, dir, "EURUSD_PERIOD_H1.csv", []byte(commaCSV))

	bars, err := NewCSVPriceSource(dir).LoadBars(context.Background(), "EURUSD", domrepo.PeriodH1)
	if err != nil {
		t.Fatalf("load bars: %v", err)
	}
	if len(bars) != 3 {
		t.Fatalf("expected 3 bars, got %d", len(bars))
	}

	// Rows come back sorted even when the file is not.
	first := time.Date(2025, 1, 6, 7, 0, 0, 0, time.UTC)
	if !bars[0].BarStart.Equal(first) {
		t.Fatalf("bars not sorted: first is %v", bars[0].BarStart)
	}
	if bars[1].Open != 1.0300 || bars[1].Close != 1.0340 {
		t.Fatalf("unexpected bar values %+v", bars[1])
	}
	if bars[0].Pair != "EURUSD" {
		t.Fatalf("pair not stamped: %q", bars[0].Pair)
	}
}

func TestLoadBarsTabDelimited(t *testing.T) {
	dir := t.TempDir()
	tabCSV := "Time\tOpen\tHigh\tLow\tClose\n" +
		"2025.01.06 08:00\t1.0300\t1.0350\t1.0290\t1.0340\n"
	writePriceFile(t, dir, "GBPUSD_PERIOD_H1.csv", []byte(tabCSV))

	bars, err := NewCSVPriceSource(dir).LoadBars(context.Background(), "GBPUSD", domrepo.PeriodH1)
	if err != nil {
		t.Fatalf("load bars: %v", err)
	}
	if len(bars) != 1 {
		t.Fatalf("expected 1 bar, got %d", len(bars))
	}
	if bars[0].High != 1.0350 {
		t.Fatalf("unexpected high %v", bars[0].High)
	}
}

func TestLoadBarsUTF16(t *testing.T) {
	dir := t.TempDir()
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	data, err := enc.Bytes([]byte(commaCSV))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	writePriceFile(t, dir, "USDJPY_PERIOD_H4.csv", data)

	bars, err := NewCSVPriceSource(dir).LoadBars(context.Background(), "USDJPY", domrepo.PeriodH4)
	if err != nil {
		t.Fatalf("load bars: %v", err)
	}
	if len(bars) != 3 {
		t.Fatalf("expected 3 bars, got %d", len(bars))
	}
}

func TestLoadBarsSkipsMalformedRows(t *testing.T) {
	dir := t.TempDir()
	csv := "Time,Open,High,Low,Close\n" +
		"not a time,1.0,1.0,1.0,1.0\n" +
		"2025.01.06 08:00,oops,1.0,1.0,1.0\n" +
		"2025.01.06 09:00,1.1\n" +
		"2025.01.06 09:00,1.0,1.1,0.9,1.05\n"
	writePriceFile(t, dir, "EURUSD_PERIOD_H1.csv", []byte(csv))

	bars, err := NewCSVPriceSource(dir).LoadBars(context.Background(), "EURUSD", domrepo.PeriodH1)
	if err != nil {
		t.Fatalf("load bars: %v", err)
	}
	if len(bars) != 1 {
		t.Fatalf("expected 1 bar, got %d", len(bars))
	}
	if bars[0].Close != 1.05 {
		t.Fatalf("unexpected close %v", bars[0].Close)
	}
}

func TestLoadBarsMissingColumn(t *testing.T) {
	dir := t.TempDir()
	writePriceFile(t, dir, "EURUSD_PERIOD_H1.csv", []byte("Time,Open,High,Low\n"))

	if _, err := NewCSVPriceSource(dir).LoadBars(context.Background(), "EURUSD", domrepo.PeriodH1); err == nil {
		t.Fatalf("expected error for missing close column")
	}
}

func TestLoadBarsMissingFile(t *testing.T) {
	if _, err := NewCSVPriceSource(t.TempDir()).LoadBars(context.Background(), "EURUSD", domrepo.PeriodH1); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
