package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sheimsito/picm-server/internal/core/domain"
)

func TestSupplier_Validate(t *testing.T) {
	valid := func() *domain.Supplier {
		return &domain.Supplier{
			Name:  "Distribuidora El Roble",
			NIT:   "9001234567-1",
			Phone: "6015551234",
			Email: "ventas@elroble.co",
		}
	}

	tests := []struct {
		name      string
		mutate    func(*domain.Supplier)
		wantError bool
		errorMsg  string
	}{
		{
			name:   "valid_supplier",
			mutate: func(s *domain.Supplier) {},
		},
		{
			name:   "short_landline_phone",
			mutate: func(s *domain.Supplier) { s.Phone = "5551234" },
		},
		{
			name:   "mobile_phone",
			mutate: func(s *domain.Supplier) { s.Phone = "3001234567" },
		},
		{
			name:      "missing_name",
			mutate:    func(s *domain.Supplier) { s.Name = "" },
			wantError: true,
			errorMsg:  "name is required",
		},
		{
			name:      "nit_without_check_digit",
			mutate:    func(s *domain.Supplier) { s.NIT = "9001234567" },
			wantError: true,
			errorMsg:  "nit",
		},
		{
			name:      "nit_too_short",
			mutate:    func(s *domain.Supplier) { s.NIT = "12345-6" },
			wantError: true,
			errorMsg:  "nit",
		},
		{
			name:      "phone_with_bad_area_code",
			mutate:    func(s *domain.Supplier) { s.Phone = "6095551234" },
			wantError: true,
			errorMsg:  "phone",
		},
		{
			name:      "missing_email",
			mutate:    func(s *domain.Supplier) { s.Email = "" },
			wantError: true,
			errorMsg:  "email is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(s)

			err := s.Validate()
			if tt.wantError {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrValidation)
				if tt.errorMsg != "" {
					assert.Contains(t, err.Error(), tt.errorMsg)
				}
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestProduct_Validate(t *testing.T) {
	tests := []struct {
		name      string
		product   *domain.Product
		wantError bool
	}{
		{
			name: "valid_product",
			product: &domain.Product{
				Name:      "Café molido 500g",
				UnitPrice: decimal.NewFromFloat(18500),
				Stock:     40,
			},
		},
		{
			name:      "missing_name",
			product:   &domain.Product{Stock: 1},
			wantError: true,
		},
		{
			name: "negative_stock",
			product: &domain.Product{
				Name:  "Café molido 500g",
				Stock: -3,
			},
			wantError: true,
		},
		{
			name: "negative_price",
			product: &domain.Product{
				Name:      "Café molido 500g",
				UnitPrice: decimal.NewFromFloat(-1),
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.product.Validate()
			if tt.wantError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestProduct_StockValue(t *testing.T) {
	p := &domain.Product{
		UnitPrice: decimal.NewFromFloat(2500.50),
		Stock:     4,
	}
	assert.True(t, p.StockValue().Equal(decimal.NewFromFloat(10002)),
		"expected 10002, got %s", p.StockValue())
}

func TestUser_Password(t *testing.T) {
	u := &domain.User{Username: "marcela"}

	require.NoError(t, u.SetPassword("correct-horse-battery"))
	assert.True(t, u.CheckPassword("correct-horse-battery"))
	assert.False(t, u.CheckPassword("wrong"))

	err := u.SetPassword("short")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
