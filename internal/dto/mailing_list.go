package dto

import "strings"

// SubscribeRequest represents a public mailing-list signup
type SubscribeRequest struct {
	Name  string `json:"name" validate:"required,notblank,max=255"`
	Email string `json:"email" validate:"required,max=255,email"`
}

// Normalize trims both fields and lower-cases the email so lookups by email
// are case-insensitive.
func (r *SubscribeRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = NormalizeEmail(r.Email)
}

// NormalizeEmail is the canonical stored form of an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
