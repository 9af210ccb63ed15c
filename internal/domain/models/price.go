package models

import "time"

// PriceQuote is an ephemeral market-data snapshot for one trading pair.
// It is produced fresh on every fetch and never persisted.
//
// The 24h fields are only populated by the extended ticker query; a plain
// latest-price lookup leaves them at zero.
type PriceQuote struct {
	Symbol            string    `json:"symbol" example:"BTCUSDT"`
	Price             float64   `json:"price" example:"30000.12"`
	Timestamp         time.Time `json:"timestamp"`
	Volume            float64   `json:"volume,omitempty"`
	High24h           float64   `json:"high24h,omitempty"`
	Low24h            float64   `json:"low24h,omitempty"`
	PriceChangePct24h float64   `json:"priceChangePercent24h,omitempty"`
}
