//go:build integration
// +build integration

package db_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/Sheimsito/picm-server/internal/adapters/db"
	"github.com/Sheimsito/picm-server/internal/core/domain"
	"github.com/Sheimsito/picm-server/internal/core/ports"
	"github.com/Sheimsito/picm-server/test/helpers"
)

type MovementRepositorySuite struct {
	suite.Suite
	testDB *helpers.TestDB
	repo   ports.MovementRepository
	ctx    context.Context
}

func (s *MovementRepositorySuite) SetupSuite() {
	s.testDB = helpers.SetupTestDB(s.T())
	s.repo = db.NewMovementRepository(s.testDB.Database, helpers.TestLogger())
	s.ctx = context.Background()
}

func (s *MovementRepositorySuite) SetupTest() {
	helpers.TruncateAllTables(s.T(), s.testDB.PgxPool)
}

func (s *MovementRepositorySuite) TestAppendAndFindByID() {
	m := helpers.CreateTestMovement()

	err := s.repo.Append(s.ctx, m)
	s.NoError(err)

	found, err := s.repo.FindByID(s.ctx, m.ID, domain.KindProduct)
	s.NoError(err)
	s.Require().NotNil(found)
	s.Equal(m.EntityName, found.EntityName)
	s.Equal(domain.ProductEntry, found.MovementType)
	s.Equal(m.ModifiedStock, found.ModifiedStock)

	// The same ID does not exist in the other kind's ledger.
	other, err := s.repo.FindByID(s.ctx, m.ID, domain.KindSupply)
	s.NoError(err)
	s.Nil(other)
}

func (s *MovementRepositorySuite) TestFindByID_Missing() {
	found, err := s.repo.FindByID(s.ctx, uuid.New(), domain.KindProduct)
	s.NoError(err)
	s.Nil(found)
}

func (s *MovementRepositorySuite) TestFindAll_KindAndPagination() {
	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 15; i++ {
		idx := i
		m := helpers.CreateTestMovement(func(m *domain.Movement) {
			m.EntityName = fmt.Sprintf("Producto %02d", idx)
			m.CreatedAt = base.Add(time.Duration(idx) * time.Minute)
			m.UpdatedAt = m.CreatedAt
		})
		s.NoError(s.repo.Append(s.ctx, m))
	}
	supply := helpers.CreateTestMovement(func(m *domain.Movement) {
		m.EntityKind = domain.KindSupply
		m.MovementType = domain.SupplyIncrease
		m.EntityName = "Bolsas"
	})
	s.NoError(s.repo.Append(s.ctx, supply))

	page, err := s.repo.FindAll(s.ctx, ports.MovementFilter{
		Kind: domain.KindProduct, Page: 1, PageSize: 10,
	})
	s.NoError(err)
	s.Len(page.Items, 10)
	s.Equal(int64(15), page.TotalCount)
	s.Equal(2, page.TotalPages)
	// Histories read oldest first by default.
	s.Equal("Producto 00", page.Items[0].EntityName)

	page, err = s.repo.FindAll(s.ctx, ports.MovementFilter{
		Kind: domain.KindProduct, Page: 2, PageSize: 10,
	})
	s.NoError(err)
	s.Len(page.Items, 5)

	// No kind spans both ledgers.
	page, err = s.repo.FindAll(s.ctx, ports.MovementFilter{Page: 1, PageSize: 50})
	s.NoError(err)
	s.Equal(int64(16), page.TotalCount)
}

func (s *MovementRepositorySuite) TestFindAll_Filters() {
	entry := helpers.CreateTestMovement(func(m *domain.Movement) {
		m.EntityName = "Agua pura 600ml"
		m.Username = "admin"
	})
	exit := helpers.CreateTestMovement(func(m *domain.Movement) {
		m.EntityName = "Gaseosa 2L"
		m.MovementType = domain.ProductExit
		m.Username = "mperez"
	})
	s.NoError(s.repo.Append(s.ctx, entry))
	s.NoError(s.repo.Append(s.ctx, exit))

	page, err := s.repo.FindAll(s.ctx, ports.MovementFilter{
		Kind: domain.KindProduct, MovementType: "Salida", Page: 1, PageSize: 10,
	})
	s.NoError(err)
	s.Require().Len(page.Items, 1)
	s.Equal("Gaseosa 2L", page.Items[0].EntityName)

	// Search matches entity name and username, case-insensitively.
	page, err = s.repo.FindAll(s.ctx, ports.MovementFilter{
		Kind: domain.KindProduct, Search: "AGUA", Page: 1, PageSize: 10,
	})
	s.NoError(err)
	s.Len(page.Items, 1)

	page, err = s.repo.FindAll(s.ctx, ports.MovementFilter{
		Kind: domain.KindProduct, Search: "mperez", Page: 1, PageSize: 10,
	})
	s.NoError(err)
	s.Require().Len(page.Items, 1)
	s.Equal("Gaseosa 2L", page.Items[0].EntityName)
}

func (s *MovementRepositorySuite) TestFindAll_DateRange() {
	old := helpers.CreateTestMovement(func(m *domain.Movement) {
		m.EntityName = "Viejo"
		m.CreatedAt = time.Now().UTC().AddDate(0, 0, -10)
		m.UpdatedAt = m.CreatedAt
	})
	recent := helpers.CreateTestMovement(func(m *domain.Movement) {
		m.EntityName = "Reciente"
	})
	s.NoError(s.repo.Append(s.ctx, old))
	s.NoError(s.repo.Append(s.ctx, recent))

	from := time.Now().UTC().AddDate(0, 0, -1)
	page, err := s.repo.FindAll(s.ctx, ports.MovementFilter{
		Kind: domain.KindProduct, DateFrom: &from, Page: 1, PageSize: 10,
	})
	s.NoError(err)
	s.Require().Len(page.Items, 1)
	s.Equal("Reciente", page.Items[0].EntityName)
}

func (s *MovementRepositorySuite) TestUpdate() {
	m := helpers.CreateTestMovement()
	s.NoError(s.repo.Append(s.ctx, m))

	newStock := 33
	comment := "corrección de conteo"
	updated, err := s.repo.Update(s.ctx, m.ID, domain.KindProduct, ports.MovementPatch{
		ModifiedStock: &newStock,
		Comment:       &comment,
	})
	s.NoError(err)
	s.Require().NotNil(updated)
	s.Equal(33, updated.ModifiedStock)
	s.Equal(comment, updated.Comment)
	// Untouched fields survive the patch; created_at is immutable.
	s.Equal(m.EntityName, updated.EntityName)
	s.WithinDuration(m.CreatedAt, updated.CreatedAt, time.Second)
}

func (s *MovementRepositorySuite) TestUpdate_Missing() {
	stock := 1
	_, err := s.repo.Update(s.ctx, uuid.New(), domain.KindProduct, ports.MovementPatch{
		ModifiedStock: &stock,
	})
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *MovementRepositorySuite) TestSoftDelete() {
	m := helpers.CreateTestMovement()
	s.NoError(s.repo.Append(s.ctx, m))

	s.NoError(s.repo.SoftDelete(s.ctx, m.ID, domain.KindProduct))

	found, err := s.repo.FindByID(s.ctx, m.ID, domain.KindProduct)
	s.NoError(err)
	s.Nil(found)

	// The row stays, flagged inactive.
	var deletedAt *time.Time
	err = s.testDB.PgxPool.QueryRow(s.ctx,
		`SELECT deleted_at FROM movements WHERE id = $1`, m.ID).Scan(&deletedAt)
	s.NoError(err)
	s.NotNil(deletedAt)

	// Deleting twice reports not found.
	s.ErrorIs(s.repo.SoftDelete(s.ctx, m.ID, domain.KindProduct), domain.ErrNotFound)
}

func TestMovementRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(MovementRepositorySuite))
}
