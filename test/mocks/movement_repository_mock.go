// Code generated by MockGen. DO NOT EDIT.
// Source: ../../internal/core/ports/movement_repository.go
//
// Generated by this command:
//
//	mockgen -source=../../internal/core/ports/movement_repository.go -destination=movement_repository_mock.go -package=mocks
//

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"

	domain "github.com/Sheimsito/picm-server/internal/core/domain"
	ports "github.com/Sheimsito/picm-server/internal/core/ports"
	uuid "github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	gomock "go.uber.org/mock/gomock"
)

// MockMovementRepository is a mock of MovementRepository interface.
type MockMovementRepository struct {
	ctrl     *gomock.Controller
	recorder *MockMovementRepositoryMockRecorder
	isgomock struct{}
}

// MockMovementRepositoryMockRecorder is the mock recorder for MockMovementRepository.
type MockMovementRepositoryMockRecorder struct {
	mock *MockMovementRepository
}

// NewMockMovementRepository creates a new mock instance.
func NewMockMovementRepository(ctrl *gomock.Controller) *MockMovementRepository {
	mock := &MockMovementRepository{ctrl: ctrl}
	mock.recorder = &MockMovementRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockMovementRepository) EXPECT() *MockMovementRepositoryMockRecorder {
	return m.recorder
}

// Append mocks base method.
func (m_2 *MockMovementRepository) Append(ctx context.Context, m *domain.Movement) error {
	m_2.ctrl.T.Helper()
	ret := m_2.ctrl.Call(m_2, "Append", ctx, m)
	ret0, _ := ret[0].(error)
	return ret0
}

// Append indicates an expected call of Append.
func (mr *MockMovementRepositoryMockRecorder) Append(ctx, m any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Append", reflect.TypeOf((*MockMovementRepository)(nil).Append), ctx, m)
}

// AppendTx mocks base method.
func (m_2 *MockMovementRepository) AppendTx(ctx context.Context, tx pgx.Tx, m *domain.Movement) error {
	m_2.ctrl.T.Helper()
	ret := m_2.ctrl.Call(m_2, "AppendTx", ctx, tx, m)
	ret0, _ := ret[0].(error)
	return ret0
}

// AppendTx indicates an expected call of AppendTx.
func (mr *MockMovementRepositoryMockRecorder) AppendTx(ctx, tx, m any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AppendTx", reflect.TypeOf((*MockMovementRepository)(nil).AppendTx), ctx, tx, m)
}

// FindAll mocks base method.
func (m *MockMovementRepository) FindAll(ctx context.Context, filter ports.MovementFilter) (*ports.EntityPage[domain.Movement], error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FindAll", ctx, filter)
	ret0, _ := ret[0].(*ports.EntityPage[domain.Movement])
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// FindAll indicates an expected call of FindAll.
func (mr *MockMovementRepositoryMockRecorder) FindAll(ctx, filter any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FindAll", reflect.TypeOf((*MockMovementRepository)(nil).FindAll), ctx, filter)
}

// FindByID mocks base method.
func (m *MockMovementRepository) FindByID(ctx context.Context, id uuid.UUID, kind domain.EntityKind) (*domain.Movement, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FindByID", ctx, id, kind)
	ret0, _ := ret[0].(*domain.Movement)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// FindByID indicates an expected call of FindByID.
func (mr *MockMovementRepositoryMockRecorder) FindByID(ctx, id, kind any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FindByID", reflect.TypeOf((*MockMovementRepository)(nil).FindByID), ctx, id, kind)
}

// SoftDelete mocks base method.
func (m *MockMovementRepository) SoftDelete(ctx context.Context, id uuid.UUID, kind domain.EntityKind) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SoftDelete", ctx, id, kind)
	ret0, _ := ret[0].(error)
	return ret0
}

// SoftDelete indicates an expected call of SoftDelete.
func (mr *MockMovementRepositoryMockRecorder) SoftDelete(ctx, id, kind any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SoftDelete", reflect.TypeOf((*MockMovementRepository)(nil).SoftDelete), ctx, id, kind)
}

// Update mocks base method.
func (m *MockMovementRepository) Update(ctx context.Context, id uuid.UUID, kind domain.EntityKind, patch ports.MovementPatch) (*domain.Movement, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", ctx, id, kind, patch)
	ret0, _ := ret[0].(*domain.Movement)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Update indicates an expected call of Update.
func (mr *MockMovementRepositoryMockRecorder) Update(ctx, id, kind, patch any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockMovementRepository)(nil).Update), ctx, id, kind, patch)
}
