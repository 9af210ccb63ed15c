package models

import "time"

// BankTransaction is one imported statement line.
//
// The table carries a uniqueness constraint on
// (date, sender, receiver, description, amount, currency) so re-importing
// the same statement is a no-op for already-known rows.
type BankTransaction struct {
	ID          int64     `json:"id"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	Sender      string    `json:"sender"`
	Receiver    string    `json:"receiver"`
	TagID       *int64    `json:"tagId,omitempty"`
	AccountID   *string   `json:"accountId,omitempty"`
}
