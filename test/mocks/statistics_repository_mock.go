// Code generated by MockGen. DO NOT EDIT.
// Source: ../../internal/core/ports/statistics.go
//
// Generated by this command:
//
//	mockgen -source=../../internal/core/ports/statistics.go -destination=statistics_repository_mock.go -package=mocks
//

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"
	time "time"

	domain "github.com/Sheimsito/picm-server/internal/core/domain"
	ports "github.com/Sheimsito/picm-server/internal/core/ports"
	decimal "github.com/shopspring/decimal"
	gomock "go.uber.org/mock/gomock"
)

// MockStatisticsRepository is a mock of StatisticsRepository interface.
type MockStatisticsRepository struct {
	ctrl     *gomock.Controller
	recorder *MockStatisticsRepositoryMockRecorder
	isgomock struct{}
}

// MockStatisticsRepositoryMockRecorder is the mock recorder for MockStatisticsRepository.
type MockStatisticsRepositoryMockRecorder struct {
	mock *MockStatisticsRepository
}

// NewMockStatisticsRepository creates a new mock instance.
func NewMockStatisticsRepository(ctrl *gomock.Controller) *MockStatisticsRepository {
	mock := &MockStatisticsRepository{ctrl: ctrl}
	mock.recorder = &MockStatisticsRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockStatisticsRepository) EXPECT() *MockStatisticsRepositoryMockRecorder {
	return m.recorder
}

// CategoryTotals mocks base method.
func (m *MockStatisticsRepository) CategoryTotals(ctx context.Context) ([]ports.CategoryTotals, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CategoryTotals", ctx)
	ret0, _ := ret[0].([]ports.CategoryTotals)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CategoryTotals indicates an expected call of CategoryTotals.
func (mr *MockStatisticsRepositoryMockRecorder) CategoryTotals(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CategoryTotals", reflect.TypeOf((*MockStatisticsRepository)(nil).CategoryTotals), ctx)
}

// MonthlyTotals mocks base method.
func (m *MockStatisticsRepository) MonthlyTotals(ctx context.Context, kind domain.EntityKind, year int) ([]ports.MonthTotals, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MonthlyTotals", ctx, kind, year)
	ret0, _ := ret[0].([]ports.MonthTotals)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// MonthlyTotals indicates an expected call of MonthlyTotals.
func (mr *MockStatisticsRepositoryMockRecorder) MonthlyTotals(ctx, kind, year any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MonthlyTotals", reflect.TypeOf((*MockStatisticsRepository)(nil).MonthlyTotals), ctx, kind, year)
}

// TopByQuantity mocks base method.
func (m *MockStatisticsRepository) TopByQuantity(ctx context.Context, kind domain.EntityKind, direction domain.MovementDirection, since time.Time, limit int) ([]ports.TopEntityRow, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TopByQuantity", ctx, kind, direction, since, limit)
	ret0, _ := ret[0].([]ports.TopEntityRow)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// TopByQuantity indicates an expected call of TopByQuantity.
func (mr *MockStatisticsRepositoryMockRecorder) TopByQuantity(ctx, kind, direction, since, limit any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TopByQuantity", reflect.TypeOf((*MockStatisticsRepository)(nil).TopByQuantity), ctx, kind, direction, since, limit)
}

// TotalStock mocks base method.
func (m *MockStatisticsRepository) TotalStock(ctx context.Context, kind domain.EntityKind) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TotalStock", ctx, kind)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// TotalStock indicates an expected call of TotalStock.
func (mr *MockStatisticsRepositoryMockRecorder) TotalStock(ctx, kind any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TotalStock", reflect.TypeOf((*MockStatisticsRepository)(nil).TotalStock), ctx, kind)
}

// TotalValue mocks base method.
func (m *MockStatisticsRepository) TotalValue(ctx context.Context, kind domain.EntityKind) (decimal.Decimal, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TotalValue", ctx, kind)
	ret0, _ := ret[0].(decimal.Decimal)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// TotalValue indicates an expected call of TotalValue.
func (mr *MockStatisticsRepositoryMockRecorder) TotalValue(ctx, kind any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TotalValue", reflect.TypeOf((*MockStatisticsRepository)(nil).TotalValue), ctx, kind)
}

// Volume mocks base method.
func (m *MockStatisticsRepository) Volume(ctx context.Context, kind domain.EntityKind, since time.Time) (*ports.VolumeTotals, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Volume", ctx, kind, since)
	ret0, _ := ret[0].(*ports.VolumeTotals)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Volume indicates an expected call of Volume.
func (mr *MockStatisticsRepositoryMockRecorder) Volume(ctx, kind, since any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Volume", reflect.TypeOf((*MockStatisticsRepository)(nil).Volume), ctx, kind, since)
}
