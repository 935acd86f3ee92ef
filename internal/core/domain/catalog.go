// internal/core/domain/catalog.go
package domain

import (
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Category groups products for the distribution statistics. Name is unique
// among active categories.
type Category struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// Validate performs domain validation on the category
func (c *Category) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	return nil
}

// PrepareForStorage prepares the category for database storage
func (c *Category) PrepareForStorage() {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	c.Active = true
}

// Colombian tax id (NIT with verification digit) and phone formats.
var (
	nitPattern   = regexp.MustCompile(`^\d{7,10}-\d{1}$`)
	phonePattern = regexp.MustCompile(`^(60[1245678]\d{7}|\d{7}|3\d{9})$`)
)

// Supplier identifies where products and supplies come from. NIT, phone and
// email are unique among active suppliers.
type Supplier struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	NIT       string     `json:"nit"`
	Phone     string     `json:"phone"`
	Email     string     `json:"email"`
	Address   string     `json:"address,omitempty"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Validate performs domain validation on the supplier
func (s *Supplier) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !nitPattern.MatchString(s.NIT) {
		return fmt.Errorf("%w: nit must match format 1234567-8", ErrValidation)
	}
	if !phonePattern.MatchString(s.Phone) {
		return fmt.Errorf("%w: phone is not a valid landline or mobile number", ErrValidation)
	}
	if s.Email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	return nil
}

// PrepareForStorage prepares the supplier for database storage
func (s *Supplier) PrepareForStorage() {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	now := time.Now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	s.Active = true
}
