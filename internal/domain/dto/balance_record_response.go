package dto

import "time"

// BalanceRecordResponse is the JSON shape returned by the balance-record
// endpoints. EurValue is nil when conversion does not apply (non-crypto
// account) or when it failed at computation time.
type BalanceRecordResponse struct {
	ID         string           `json:"id"`
	Balance    float64          `json:"balance" example:"0.5"`
	EurValue   *float64         `json:"eurValue,omitempty" example:"13888.89"`
	RecordedAt time.Time        `json:"recordedAt"`
	Account    *AccountResponse `json:"account,omitempty"`
}

// CreateBalanceRecordRequest is the body accepted by
// POST /api/v1/balance-records.
type CreateBalanceRecordRequest struct {
	AccountID  string     `json:"accountId" binding:"required"`
	Balance    float64    `json:"balance"`
	RecordedAt *time.Time `json:"recordedAt"`
}

// TimelinePoint is one grid date of the unified multi-account timeline.
// Values maps account id to the account's normalized value at that date,
// with the last known value carried forward across dates lacking their own
// record. Accounts with no observation at or before the date are absent.
type TimelinePoint struct {
	Date   time.Time          `json:"date"`
	Values map[string]float64 `json:"values"`
	Total  float64            `json:"total"`
}
