package models

// DefaultTagColor is used when a tag is created without an explicit color.
const DefaultTagColor = "#CCCCCC"

// Tag labels imported transactions for categorization.
type Tag struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color"`
}
