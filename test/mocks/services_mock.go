// Code generated by MockGen. DO NOT EDIT.
// Source: ../../internal/core/ports/services.go
//
// Generated by this command:
//
//	mockgen -source=../../internal/core/ports/services.go -destination=services_mock.go -package=mocks
//

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"

	domain "github.com/Sheimsito/picm-server/internal/core/domain"
	ports "github.com/Sheimsito/picm-server/internal/core/ports"
	uuid "github.com/google/uuid"
	gomock "go.uber.org/mock/gomock"
)

// MockStockService is a mock of StockService interface.
type MockStockService struct {
	ctrl     *gomock.Controller
	recorder *MockStockServiceMockRecorder
	isgomock struct{}
}

// MockStockServiceMockRecorder is the mock recorder for MockStockService.
type MockStockServiceMockRecorder struct {
	mock *MockStockService
}

// NewMockStockService creates a new mock instance.
func NewMockStockService(ctrl *gomock.Controller) *MockStockService {
	mock := &MockStockService{ctrl: ctrl}
	mock.recorder = &MockStockServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockStockService) EXPECT() *MockStockServiceMockRecorder {
	return m.recorder
}

// AdjustStock mocks base method.
func (m *MockStockService) AdjustStock(ctx context.Context, kind domain.EntityKind, entityID uuid.UUID, params ports.AdjustStockParams) (*ports.AdjustStockResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AdjustStock", ctx, kind, entityID, params)
	ret0, _ := ret[0].(*ports.AdjustStockResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// AdjustStock indicates an expected call of AdjustStock.
func (mr *MockStockServiceMockRecorder) AdjustStock(ctx, kind, entityID, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AdjustStock", reflect.TypeOf((*MockStockService)(nil).AdjustStock), ctx, kind, entityID, params)
}

// MockMovementService is a mock of MovementService interface.
type MockMovementService struct {
	ctrl     *gomock.Controller
	recorder *MockMovementServiceMockRecorder
	isgomock struct{}
}

// MockMovementServiceMockRecorder is the mock recorder for MockMovementService.
type MockMovementServiceMockRecorder struct {
	mock *MockMovementService
}

// NewMockMovementService creates a new mock instance.
func NewMockMovementService(ctrl *gomock.Controller) *MockMovementService {
	mock := &MockMovementService{ctrl: ctrl}
	mock.recorder = &MockMovementServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockMovementService) EXPECT() *MockMovementServiceMockRecorder {
	return m.recorder
}

// Create mocks base method.
func (m *MockMovementService) Create(ctx context.Context, kind domain.EntityKind, params ports.CreateMovementParams) (*domain.Movement, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, kind, params)
	ret0, _ := ret[0].(*domain.Movement)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Create indicates an expected call of Create.
func (mr *MockMovementServiceMockRecorder) Create(ctx, kind, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockMovementService)(nil).Create), ctx, kind, params)
}

// GetByID mocks base method.
func (m *MockMovementService) GetByID(ctx context.Context, id uuid.UUID, kind domain.EntityKind) (*domain.Movement, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id, kind)
	ret0, _ := ret[0].(*domain.Movement)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID.
func (mr *MockMovementServiceMockRecorder) GetByID(ctx, id, kind any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockMovementService)(nil).GetByID), ctx, id, kind)
}

// List mocks base method.
func (m *MockMovementService) List(ctx context.Context, filter ports.MovementFilter) (*ports.EntityPage[domain.Movement], error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "List", ctx, filter)
	ret0, _ := ret[0].(*ports.EntityPage[domain.Movement])
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// List indicates an expected call of List.
func (mr *MockMovementServiceMockRecorder) List(ctx, filter any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "List", reflect.TypeOf((*MockMovementService)(nil).List), ctx, filter)
}

// SoftDelete mocks base method.
func (m *MockMovementService) SoftDelete(ctx context.Context, id uuid.UUID, kind domain.EntityKind) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SoftDelete", ctx, id, kind)
	ret0, _ := ret[0].(error)
	return ret0
}

// SoftDelete indicates an expected call of SoftDelete.
func (mr *MockMovementServiceMockRecorder) SoftDelete(ctx, id, kind any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SoftDelete", reflect.TypeOf((*MockMovementService)(nil).SoftDelete), ctx, id, kind)
}

// Update mocks base method.
func (m *MockMovementService) Update(ctx context.Context, id uuid.UUID, kind domain.EntityKind, patch ports.MovementPatch) (*domain.Movement, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", ctx, id, kind, patch)
	ret0, _ := ret[0].(*domain.Movement)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Update indicates an expected call of Update.
func (mr *MockMovementServiceMockRecorder) Update(ctx, id, kind, patch any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockMovementService)(nil).Update), ctx, id, kind, patch)
}

// MockStatisticsService is a mock of StatisticsService interface.
type MockStatisticsService struct {
	ctrl     *gomock.Controller
	recorder *MockStatisticsServiceMockRecorder
	isgomock struct{}
}

// MockStatisticsServiceMockRecorder is the mock recorder for MockStatisticsService.
type MockStatisticsServiceMockRecorder struct {
	mock *MockStatisticsService
}

// NewMockStatisticsService creates a new mock instance.
func NewMockStatisticsService(ctrl *gomock.Controller) *MockStatisticsService {
	mock := &MockStatisticsService{ctrl: ctrl}
	mock.recorder = &MockStatisticsServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockStatisticsService) EXPECT() *MockStatisticsServiceMockRecorder {
	return m.recorder
}

// CategoryDistribution mocks base method.
func (m *MockStatisticsService) CategoryDistribution(ctx context.Context, kind domain.EntityKind, metric ports.DistributionMetric) (*ports.CategoryDistributionResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CategoryDistribution", ctx, kind, metric)
	ret0, _ := ret[0].(*ports.CategoryDistributionResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CategoryDistribution indicates an expected call of CategoryDistribution.
func (mr *MockStatisticsServiceMockRecorder) CategoryDistribution(ctx, kind, metric any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CategoryDistribution", reflect.TypeOf((*MockStatisticsService)(nil).CategoryDistribution), ctx, kind, metric)
}

// MonthlySeries mocks base method.
func (m *MockStatisticsService) MonthlySeries(ctx context.Context, year int, kind ports.SeriesKind) (*ports.MonthlySeriesResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MonthlySeries", ctx, year, kind)
	ret0, _ := ret[0].(*ports.MonthlySeriesResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// MonthlySeries indicates an expected call of MonthlySeries.
func (mr *MockStatisticsServiceMockRecorder) MonthlySeries(ctx, year, kind any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MonthlySeries", reflect.TypeOf((*MockStatisticsService)(nil).MonthlySeries), ctx, year, kind)
}

// TopByQuantity mocks base method.
func (m *MockStatisticsService) TopByQuantity(ctx context.Context, kind domain.EntityKind, direction domain.MovementDirection, period ports.Period, limit int) (*ports.TopResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TopByQuantity", ctx, kind, direction, period, limit)
	ret0, _ := ret[0].(*ports.TopResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// TopByQuantity indicates an expected call of TopByQuantity.
func (mr *MockStatisticsServiceMockRecorder) TopByQuantity(ctx, kind, direction, period, limit any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TopByQuantity", reflect.TypeOf((*MockStatisticsService)(nil).TopByQuantity), ctx, kind, direction, period, limit)
}

// Totals mocks base method.
func (m *MockStatisticsService) Totals(ctx context.Context, kind domain.EntityKind) (*ports.TotalsResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Totals", ctx, kind)
	ret0, _ := ret[0].(*ports.TotalsResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Totals indicates an expected call of Totals.
func (mr *MockStatisticsServiceMockRecorder) Totals(ctx, kind any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Totals", reflect.TypeOf((*MockStatisticsService)(nil).Totals), ctx, kind)
}

// Volume mocks base method.
func (m *MockStatisticsService) Volume(ctx context.Context, kind domain.EntityKind, period ports.Period) (*ports.VolumeResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Volume", ctx, kind, period)
	ret0, _ := ret[0].(*ports.VolumeResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Volume indicates an expected call of Volume.
func (mr *MockStatisticsServiceMockRecorder) Volume(ctx, kind, period any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Volume", reflect.TypeOf((*MockStatisticsService)(nil).Volume), ctx, kind, period)
}

// MockAuthService is a mock of AuthService interface.
type MockAuthService struct {
	ctrl     *gomock.Controller
	recorder *MockAuthServiceMockRecorder
	isgomock struct{}
}

// MockAuthServiceMockRecorder is the mock recorder for MockAuthService.
type MockAuthServiceMockRecorder struct {
	mock *MockAuthService
}

// NewMockAuthService creates a new mock instance.
func NewMockAuthService(ctrl *gomock.Controller) *MockAuthService {
	mock := &MockAuthService{ctrl: ctrl}
	mock.recorder = &MockAuthServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockAuthService) EXPECT() *MockAuthServiceMockRecorder {
	return m.recorder
}

// Login mocks base method.
func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Login", ctx, username, password)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(*domain.User)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// Login indicates an expected call of Login.
func (mr *MockAuthServiceMockRecorder) Login(ctx, username, password any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Login", reflect.TypeOf((*MockAuthService)(nil).Login), ctx, username, password)
}
