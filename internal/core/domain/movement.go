// internal/core/domain/movement.go
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EntityKind identifies which inventory class a movement belongs to
type EntityKind string

// Entity kind constants
const (
	KindProduct EntityKind = "product"
	KindSupply  EntityKind = "supply"
)

// ParseEntityKind parses the plural route segment used by the API
func ParseEntityKind(s string) (EntityKind, error) {
	switch s {
	case "product", "products", "productos":
		return KindProduct, nil
	case "supply", "supplies", "insumos":
		return KindSupply, nil
	}
	return "", fmt.Errorf("%w: unknown entity kind %q", ErrValidation, s)
}

// MovementType labels a single stock change. Products and supplies carry
// different historical vocabularies, kept verbatim for report compatibility.
type MovementType string

// Product movement types
const (
	ProductEntry MovementType = "Entrada"
	ProductExit  MovementType = "Salida"
)

// Supply movement types
const (
	SupplyEntry    MovementType = "ENTRY"
	SupplyExit     MovementType = "EXIT"
	SupplyIncrease MovementType = "Incremento"
	SupplyDecrease MovementType = "Disminución"
)

// MovementDirection is the normalized direction of a movement type,
// used by the aggregation queries.
type MovementDirection string

// Direction constants
const (
	DirectionEntry MovementDirection = "entry"
	DirectionExit  MovementDirection = "exit"
)

var movementVocabulary = map[EntityKind]map[MovementType]MovementDirection{
	KindProduct: {
		ProductEntry: DirectionEntry,
		ProductExit:  DirectionExit,
	},
	KindSupply: {
		SupplyEntry:    DirectionEntry,
		SupplyExit:     DirectionExit,
		SupplyIncrease: DirectionEntry,
		SupplyDecrease: DirectionExit,
	},
}

// ParseMovementType validates a type label against the vocabulary of the
// given entity kind.
func ParseMovementType(kind EntityKind, label string) (MovementType, error) {
	mt := MovementType(label)
	if _, ok := movementVocabulary[kind][mt]; !ok {
		return "", fmt.Errorf("%w: %q is not a valid %s movement type", ErrInvalidMovementType, label, kind)
	}
	return mt, nil
}

// Direction returns the normalized direction of the type within its kind's
// vocabulary, or false if the label does not belong to that kind.
func (t MovementType) Direction(kind EntityKind) (MovementDirection, bool) {
	dir, ok := movementVocabulary[kind][t]
	return dir, ok
}

// EntryTypes returns the entry-direction labels for a kind, for use in
// aggregation filters.
func EntryTypes(kind EntityKind) []MovementType {
	return typesByDirection(kind, DirectionEntry)
}

// ExitTypes returns the exit-direction labels for a kind.
func ExitTypes(kind EntityKind) []MovementType {
	return typesByDirection(kind, DirectionExit)
}

func typesByDirection(kind EntityKind, dir MovementDirection) []MovementType {
	var out []MovementType
	for mt, d := range movementVocabulary[kind] {
		if d == dir {
			out = append(out, mt)
		}
	}
	return out
}

// Movement is one immutable audit record of a stock change. Entity name and
// username are denormalized so the history reads correctly even after the
// entity is renamed or soft-deleted. ModifiedStock is the resulting stock
// AFTER the change, never a delta.
type Movement struct {
	ID            uuid.UUID    `json:"id"`
	EntityKind    EntityKind   `json:"entity_kind"`
	EntityID      uuid.UUID    `json:"entity_id"`
	EntityName    string       `json:"entity_name"`
	Username      string       `json:"username"`
	MovementType  MovementType `json:"movement_type"`
	ModifiedStock int          `json:"modified_stock"`
	Comment       string       `json:"comment,omitempty"`
	Active        bool         `json:"active"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
	DeletedAt     *time.Time   `json:"deleted_at,omitempty"`
}

// Validate performs domain validation on the movement
func (m *Movement) Validate() error {
	if m.EntityID == uuid.Nil {
		return fmt.Errorf("%w: entity_id is required", ErrValidation)
	}
	if m.EntityName == "" {
		return fmt.Errorf("%w: entity_name is required", ErrValidation)
	}
	if m.Username == "" {
		return fmt.Errorf("%w: username is required", ErrValidation)
	}
	if m.ModifiedStock < 0 {
		return fmt.Errorf("%w: modified_stock cannot be negative", ErrValidation)
	}
	if _, err := ParseMovementType(m.EntityKind, string(m.MovementType)); err != nil {
		return err
	}
	return nil
}

// PrepareForStorage sets identity and timestamps before the append.
// CreatedAt is immutable once set.
func (m *Movement) PrepareForStorage() {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	now := time.Now().UTC()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
	m.Active = true
}
