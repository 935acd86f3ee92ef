// internal/core/domain/supply.go
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Supply is a raw material consumed by the operation. Supplies carry no
// category linkage; the category-distribution query over supplies stays a
// stub until that association is modeled.
type Supply struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Stock       int             `json:"stock"`
	SupplierID  *uuid.UUID      `json:"supplier_id,omitempty"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   *time.Time      `json:"deleted_at,omitempty"`
}

// Validate performs domain validation on the supply
func (s *Supply) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if s.Stock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", ErrValidation)
	}
	if s.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: unit_price cannot be negative", ErrValidation)
	}
	return nil
}

// StockValue returns unit_price * stock.
func (s *Supply) StockValue() decimal.Decimal {
	return s.UnitPrice.Mul(decimal.NewFromInt(int64(s.Stock)))
}

// PrepareForStorage prepares the supply for database storage
func (s *Supply) PrepareForStorage() {
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
