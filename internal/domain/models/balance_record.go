package models

import "time"

// BalanceRecord is a point-in-time snapshot of an account's balance.
//
// Records are immutable once created, except for EurValue which is computed
// at creation time for crypto accounts and left nil otherwise (or when the
// conversion failed). Many records reference one account; timelines order
// them by RecordedAt with the insert sequence breaking ties.
type BalanceRecord struct {
	ID         string    `json:"id"`
	AccountID  string    `json:"accountId"`
	Balance    float64   `json:"balance"`
	EurValue   *float64  `json:"eurValue,omitempty"`
	RecordedAt time.Time `json:"recordedAt"`
	Account    *Account  `json:"account,omitempty"`
}
