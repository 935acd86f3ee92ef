// internal/core/ports/movement_repository.go
package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Sheimsito/picm-server/internal/core/domain"
)

// MovementFilter holds filters for ledger listings.
type MovementFilter struct {
	Kind         domain.EntityKind
	Search       string
	MovementType string
	DateFrom     *time.Time
	DateTo       *time.Time
	SortBy       string
	SortOrder    string
	Page         int
	PageSize     int
}

// MovementPatch holds the retroactive corrections allowed on a ledger entry.
// Nil fields are left untouched. Corrections never re-validate against the
// entity's current stock and never change entity state.
type MovementPatch struct {
	EntityID      *uuid.UUID
	EntityName    *string
	MovementType  *string
	ModifiedStock *int
	Comment       *string
}

// MovementRepository defines the persistence port for the stock-movement
// ledger. The ledger is a dumb, faithful append target: it does not
// re-validate stock transitions, that is the stock service's job.
type MovementRepository interface {
	// Append inserts a validated movement. AppendTx does the same inside
	// the caller's transaction so the append commits with the stock update.
	Append(ctx context.Context, m *domain.Movement) error
	AppendTx(ctx context.Context, tx pgx.Tx, m *domain.Movement) error

	FindByID(ctx context.Context, id uuid.UUID, kind domain.EntityKind) (*domain.Movement, error)
	FindAll(ctx context.Context, filter MovementFilter) (*EntityPage[domain.Movement], error)
	Update(ctx context.Context, id uuid.UUID, kind domain.EntityKind, patch MovementPatch) (*domain.Movement, error)
	// SoftDelete hides the entry from audit listings. It does not reverse
	// the stock change it recorded.
	SoftDelete(ctx context.Context, id uuid.UUID, kind domain.EntityKind) error
}
