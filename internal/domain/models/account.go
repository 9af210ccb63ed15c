package models

import "time"

// AccountType classifies an account. Only AccountTypeCrypto triggers
// reference-currency conversion during valuation.
type AccountType string

const (
	AccountTypeBank    AccountType = "bank"
	AccountTypeCrypto  AccountType = "crypto"
	AccountTypeStocks  AccountType = "stocks"
	AccountTypeSavings AccountType = "savings"
	AccountTypeCash    AccountType = "cash"
	AccountTypeOther   AccountType = "other"
)

// ValidAccountType reports whether t is one of the known account types.
func ValidAccountType(t AccountType) bool {
	switch t {
	case AccountTypeBank, AccountTypeCrypto, AccountTypeStocks,
		AccountTypeSavings, AccountTypeCash, AccountTypeOther:
		return true
	}
	return false
}

// Account represents a tracked account with its cached current balance.
//
// Fields:
//   - Balance: the native balance in the account's own currency/unit. For
//     crypto accounts Currency is a ticker symbol (e.g. "BTC") and Balance
//     is an amount of that asset; for everything else Balance is assumed
//     to already be denominated in the reference currency.
//   - LastUpdated: refreshed whenever a new balance record is created for
//     the account.
//
// Invariant: Balance always equals the most recently recorded
// BalanceRecord.Balance for this account, or its initial value if no
// records exist yet. The repository enforces this inside the balance-record
// insert transaction.
type Account struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Description   string      `json:"description,omitempty"`
	Balance       float64     `json:"balance"`
	Currency      string      `json:"currency"`
	AccountType   AccountType `json:"accountType"`
	AccountNumber string      `json:"accountNumber,omitempty"`
	IsActive      bool        `json:"isActive"`
	LastUpdated   time.Time   `json:"lastUpdated"`
}
