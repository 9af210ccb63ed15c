package dto

import "time"

// TransactionResponse is the JSON shape returned by GET /api/v1/transactions.
type TransactionResponse struct {
	ID          int64     `json:"id" example:"17"`
	Date        time.Time `json:"date"`
	Description string    `json:"description" example:"Grocery store"`
	Amount      float64   `json:"amount" example:"-42.10"`
	Currency    string    `json:"currency" example:"EUR"`
	Sender      string    `json:"sender"`
	Receiver    string    `json:"receiver"`
	TagID       *int64    `json:"tagId,omitempty"`
	AccountID   *string   `json:"accountId,omitempty"`
}

// CreateTagRequest is the body accepted by POST /api/v1/tags.
type CreateTagRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// UpdateTagRequest is the body accepted by PATCH /api/v1/tags/:id.
type UpdateTagRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}
