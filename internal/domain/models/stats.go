package models

// StatsSnapshot is the on-demand summary computed from the live account and
// balance-record collections. It is never persisted; every request recomputes
// it from scratch.
//
// TotalBalanceByCurrency groups by the native currency code, so crypto
// symbols form their own buckets ("BTC" and "EUR" are separate entries) and
// sums are of native balances, not normalized values.
//
// swagger:model StatsSnapshot
type StatsSnapshot struct {
	TotalBalanceByCurrency map[string]float64 `json:"totalBalanceByCurrency"`
	TotalAccounts          int                `json:"totalAccounts" example:"5"`
	ActiveAccounts         int                `json:"activeAccounts" example:"4"`
	TotalBalanceRecords    int                `json:"totalBalanceRecords" example:"42"`
	AccountsByType         map[string]int     `json:"accountsByType"`
}
