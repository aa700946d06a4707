package usecase

import (
	"sort"

	"EconPull/internal/domain/models"
	domrepo "EconPull/internal/domain/repository"
	"EconPull/internal/services/surprise"
)

// PriceAligner joins classified calendar events against a price bar series by
// truncating event timestamps to the bar boundary: which trading bar was the
// news released into.
type PriceAligner struct {
	period  domrepo.Period
	metrics domrepo.Metrics
}

func NewPriceAligner(period domrepo.Period, metrics domrepo.Metrics) *PriceAligner {
	return &PriceAligner{period: period, metrics: metrics}
}

// DeriveLag sorts bars ascending by BarStart and fills PrevClose/PctChange
// from each bar's immediate predecessor. The chronologically first bar has no
// predecessor and keeps both nil.
func DeriveLag(bars []models.PriceBar) []models.PriceBar {
	out := make([]models.PriceBar, len(bars))
	copy(out, bars)
	sort.SliceStable(out, func(i, j int) bool { return out[i].BarStart.Before(out[j].BarStart) })

	for i := range out {
		out[i].PrevClose = nil
		out[i].PctChange = nil
		if i == 0 {
			continue
		}
		prev := out[i-1].Close
		out[i].PrevClose = &prev
		if prev != 0 {
			chg := (out[i].Close - prev) / prev * 100
			out[i].PctChange = &chg
		}
	}
	return out
}

// Align left-joins events to bars. Events with no matching bar are retained
// with nil price fields so missing price data stays auditable. Output order
// is stable on (timestamp, currency) so downstream grouping is deterministic.
func (a *PriceAligner) Align(events []models.CalendarEvent, bars []models.PriceBar, pair string) []models.AlignedRecord {
	byStart := make(map[int64]*models.PriceBar, len(bars))
	for i := range bars {
		byStart[bars[i].BarStart.Unix()] = &bars[i]
	}

	sorted := make([]models.CalendarEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Timestamp.Equal(sorted[j].Timestamp) {
			return sorted[i].Timestamp.Before(sorted[j].Timestamp)
		}
		return sorted[i].Currency < sorted[j].Currency
	})

	records := make([]models.AlignedRecord, 0, len(sorted))
	for _, ev := range sorted {
		rec := models.AlignedRecord{
			DateTime:        a.period.Truncate(ev.Timestamp),
			Currency:        ev.Currency,
			Impact:          ev.Impact,
			EventName:       ev.EventName,
			Actual:          ev.Actual,
			Forecast:        ev.Forecast,
			Diff:            diffOf(ev),
			GoodForCurrency: ev.Favorability,
			Pair:            pair,
		}
		if bar, ok := byStart[rec.DateTime.Unix()]; ok {
			rec.PctChange = bar.PctChange
		} else if a.metrics != nil {
			a.metrics.RecordUnmatchedJoin(pair)
		}
		records = append(records, rec)
	}
	return records
}

// GroupByBar collapses records sharing one truncated timestamp into a single
// comparison row per bar using a sum-of-signs policy: the grouped label is
// the sign of the summed favorabilities. The aligner itself never collapses
// rows; this is a consumer-side step.
func GroupByBar(records []models.AlignedRecord) []models.AlignedRecord {
	type key struct {
		ts   int64
		pair string
	}
	order := make([]key, 0)
	grouped := make(map[key]*models.AlignedRecord)
	sums := make(map[key]int)

	for _, rec := range records {
		k := key{ts: rec.DateTime.Unix(), pair: rec.Pair}
		if _, ok := grouped[k]; !ok {
			r := rec
			grouped[k] = &r
			order = append(order, k)
		}
		sums[k] += int(rec.GoodForCurrency)
	}

	out := make([]models.AlignedRecord, 0, len(order))
	for _, k := range order {
		rec := grouped[k]
		rec.GoodForCurrency = signOf(sums[k])
		rec.EventName = ""
		rec.Actual = ""
		rec.Forecast = ""
		rec.Diff = nil
		out = append(out, *rec)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DateTime.Before(out[j].DateTime) })
	return out
}

func signOf(n int) models.Favorability {
	switch {
	case n > 0:
		return models.Favorable
	case n < 0:
		return models.Unfavorable
	default:
		return models.Neutral
	}
}

func diffOf(ev models.CalendarEvent) *float64 {
	return surprise.Diff(ev.Actual, ev.Forecast)
}

// FilterPriced drops records without a pct-change value. Aggregate statistics
// downstream must never include rows the price series could not explain.
func FilterPriced(records []models.AlignedRecord) []models.AlignedRecord {
	out := make([]models.AlignedRecord, 0, len(records))
	for _, rec := range records {
		if rec.PctChange != nil {
			out = append(out, rec)
		}
	}
	return out
}
