package domain

import "time"

// MaxTitleLength is the longest allowed product title
const MaxTitleLength = 100

// Product represents a listed product
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate checks field constraints and returns a ValidationError
// listing every violated field, or nil when the product is valid.
func (p *Product) Validate() error {
	messages := p.fieldMessages()
	if p.ImageURL == "" {
		messages = append(messages, "product image is required")
	}
	if len(messages) > 0 {
		return NewValidationError(messages...)
	}
	return nil
}

// ValidateFields checks every constraint except the image URL, which
// the caller only knows after the upload has been relayed.
func (p *Product) ValidateFields() error {
	if messages := p.fieldMessages(); len(messages) > 0 {
		return NewValidationError(messages...)
	}
	return nil
}

func (p *Product) fieldMessages() []string {
	var messages []string
	if p.Title == "" {
		messages = append(messages, "product title is required")
	}
	if len(p.Title) > MaxTitleLength {
		messages = append(messages, "product title cannot exceed 100 characters")
	}
	if p.Description == "" {
		messages = append(messages, "product description is required")
	}
	if p.Price < 0 {
		messages = append(messages, "product price cannot be negative")
	}
	return messages
}
