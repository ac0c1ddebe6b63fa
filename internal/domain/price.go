package domain

import "time"

// PricePoint is a single close price observation.
type PricePoint struct {
	Time  time.Time `json:"time"`
	Close float64   `json:"close"`
}

// PriceSeries is ordered by Time, strictly increasing.
type PriceSeries []PricePoint

// PriceQuote is the latest close and its change against the previous close.
type PriceQuote struct {
	Ticker    string    `json:"ticker"`
	Price     float64   `json:"price"`
	ChangePct float64   `json:"change_pct"`
	AsOf      time.Time `json:"as_of"`
}
