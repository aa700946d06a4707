package repository

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"EconPull/internal/domain/models"
	domrepo "EconPull/internal/domain/repository"
)

// barTimeLayout matches the exported series' time column, e.g. "2025.01.06 08:00".
const barTimeLayout = "2006.01.02 15:04"

// CSVPriceSource loads per-pair bar series from terminal CSV exports named
// <pair>_PERIOD_<period>.csv. Exports come UTF-16 encoded with a BOM; plain
// UTF-8 files load as well.
type CSVPriceSource struct {
	dir string
}

func NewCSVPriceSource(dir string) *CSVPriceSource {
	return &CSVPriceSource{dir: dir}
}

func (s *CSVPriceSource) LoadBars(ctx context.Context, pair string, period domrepo.Period) ([]models.PriceBar, error) {
	path := filepath.Join(s.dir, fmt.Sprintf("%s_PERIOD_%s.csv", pair, period))
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open price file: %w", err)
	}
	defer f.Close()

	bars, err := s.parse(ctx, decodeText(f), pair)
	if err != nil {
		return nil, fmt.Errorf("parse price file %s: %w", path, err)
	}

	sort.SliceStable(bars, func(i, j int) bool { return bars[i].BarStart.Before(bars[j].BarStart) })
	return bars, nil
}

func (s *CSVPriceSource) parse(ctx context.Context, r io.Reader, pair string) ([]models.PriceBar, error) {
	br := bufio.NewReader(r)

	// Sniff the delimiter from the header line.
	header, err := br.Peek(512)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read header: %w", err)
	}
	line := header
	if i := bytes.IndexByte(header, '\n'); i >= 0 {
		line = header[:i]
	}
	comma := ','
	if bytes.ContainsRune(line, '\t') {
		comma = '\t'
	}

	cr := csv.NewReader(br)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}
	col := columnIndex(head)
	maxCol := 0
	for _, name := range []string{"time", "open", "high", "low", "close"} {
		i, ok := col[name]
		if !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
		if i > maxCol {
			maxCol = i
		}
	}

	var bars []models.PriceBar
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		// Truncated export lines are noise, like unparsable ones.
		if len(rec) <= maxCol {
			continue
		}

		ts, err := time.ParseInLocation(barTimeLayout, strings.TrimSpace(rec[col["time"]]), time.UTC)
		if err != nil {
			// Malformed rows in exports are noise, not a contract violation.
			continue
		}
		bar := models.PriceBar{BarStart: ts, Pair: pair}
		if bar.Open, err = strconv.ParseFloat(rec[col["open"]], 64); err != nil {
			continue
		}
		if bar.High, err = strconv.ParseFloat(rec[col["high"]], 64); err != nil {
			continue
		}
		if bar.Low, err = strconv.ParseFloat(rec[col["low"]], 64); err != nil {
			continue
		}
		if bar.Close, err = strconv.ParseFloat(rec[col["close"]], 64); err != nil {
			continue
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

func columnIndex(head []string) map[string]int {
	col := make(map[string]int, len(head))
	for i, name := range head {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return col
}

// decodeText wraps r so UTF-16 input (detected by BOM) is transparently
// decoded; BOM-less input is treated as UTF-8, with any UTF-8 BOM stripped.
func decodeText(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}

var _ domrepo.PriceSource = (*CSVPriceSource)(nil)
