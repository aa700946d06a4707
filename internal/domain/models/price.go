package models

import "time"

// PriceBar is one fixed-duration OHLC aggregate for a currency pair.
// PrevClose and PctChange are derived from the immediately preceding bar in
// ascending BarStart order; the first bar in a series has neither.
type PriceBar struct {
	BarStart  time.Time `json:"bar_start"`
	Pair      string    `json:"pair"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	PrevClose *float64  `json:"prev_close,omitempty"`
	PctChange *float64  `json:"pct_change,omitempty"`
}

// AlignedRecord joins a classified CalendarEvent to the price bar its release
// fell into. Events without a matching bar keep nil price fields so missing
// price data stays visible downstream.
type AlignedRecord struct {
	DateTime        time.Time    `json:"datetime"`
	Currency        string       `json:"currency"`
	Impact          Impact       `json:"impact"`
	EventName       string       `json:"event"`
	Actual          string       `json:"actual,omitempty"`
	Forecast        string       `json:"forecast,omitempty"`
	Diff            *float64     `json:"diff,omitempty"`
	GoodForCurrency Favorability `json:"good_for_currency"`
	Pair            string       `json:"pair"`
	PctChange       *float64     `json:"pct_chg,omitempty"`
}
