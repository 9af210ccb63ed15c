package dto

import "time"

// AccountResponse is the JSON shape returned by the accounts endpoints.
//
// EurValue is the balance normalized to the reference currency. For crypto
// accounts it is computed through the live cross-rate; for every other type
// it simply mirrors the native balance (the system treats non-crypto
// balances as already reference-denominated).
type AccountResponse struct {
	ID            string    `json:"id" example:"7b0c7e1e-54d1-4f20-9b3e-0f1a2b3c4d5e"`
	Name          string    `json:"name" example:"Cold wallet"`
	Description   string    `json:"description,omitempty" example:"Hardware wallet"`
	Balance       float64   `json:"balance" example:"0.5"`
	Currency      string    `json:"currency" example:"BTC"`
	EurValue      float64   `json:"eurValue" example:"13888.89"`
	AccountType   string    `json:"accountType" example:"crypto"`
	AccountNumber string    `json:"accountNumber,omitempty" example:"PT50000201231234567890154"`
	IsActive      bool      `json:"isActive" example:"true"`
	LastUpdated   time.Time `json:"lastUpdated"`
}

// CreateAccountRequest is the body accepted by POST /api/v1/accounts.
type CreateAccountRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Balance       float64 `json:"balance"`
	Currency      string  `json:"currency" binding:"required"`
	AccountType   string  `json:"accountType" binding:"required"`
	AccountNumber string  `json:"accountNumber"`
	IsActive      *bool   `json:"isActive"`
}

// UpdateAccountRequest is the body accepted by PATCH /api/v1/accounts/:id.
// Nil fields are left untouched.
type UpdateAccountRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Balance       *float64 `json:"balance"`
	Currency      *string  `json:"currency"`
	AccountType   *string  `json:"accountType"`
	AccountNumber *string  `json:"accountNumber"`
	IsActive      *bool    `json:"isActive"`
}
