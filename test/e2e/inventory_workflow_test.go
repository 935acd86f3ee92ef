//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/Sheimsito/picm-server/internal/adapters/db"
	redis_a "github.com/Sheimsito/picm-server/internal/adapters/redis_adapter"
	"github.com/Sheimsito/picm-server/internal/core/domain"
	"github.com/Sheimsito/picm-server/internal/core/services"
	"github.com/Sheimsito/picm-server/internal/handlers"
	"github.com/Sheimsito/picm-server/internal/handlers/middleware"
	"github.com/Sheimsito/picm-server/test/helpers"
)

const e2eJWTSecret = "e2e-test-secret-at-least-32-chars!!"

type InventoryE2ESuite struct {
	suite.Suite
	server    *httptest.Server
	client    *http.Client
	baseURL   string
	token     string
	testDB    *helpers.TestDB
	testRedis *helpers.TestRedis
}

func (s *InventoryE2ESuite) SetupSuite() {
	s.testDB = helpers.SetupTestDB(s.T())
	s.testRedis = helpers.SetupTestRedis(s.T())

	s.server = s.startTestServer()
	s.client = &http.Client{Timeout: 10 * time.Second}
	s.baseURL = s.server.URL + "/api/v1"

	s.seedAdmin()
	s.token = s.login("admin", "admin123!")
}

func (s *InventoryE2ESuite) TearDownSuite() {
	s.server.Close()
}

// startTestServer wires the real routing stack against the test backends.
func (s *InventoryE2ESuite) startTestServer() *httptest.Server {
	slogger := helpers.TestLogger()
	database := s.testDB.Database
	cache := redis_a.NewCache(s.testRedis.Client, time.Hour, slogger)

	productRepo := db.NewProductRepository(database, slogger)
	supplyRepo := db.NewSupplyRepository(database, slogger)
	categoryRepo := db.NewCategoryRepository(database, slogger)
	supplierRepo := db.NewSupplierRepository(database, slogger)
	userRepo := db.NewUserRepository(database, slogger)
	movementRepo := db.NewMovementRepository(database, slogger)
	statsRepo := db.NewStatisticsRepository(database, slogger)

	stockService := services.NewStockService(productRepo, supplyRepo, movementRepo, database, slogger)
	movementService := services.NewMovementService(movementRepo, productRepo, supplyRepo, userRepo, stockService, slogger)
	statsService := services.NewStatisticsService(statsRepo, false, slogger)
	authService := services.NewAuthService(userRepo, e2eJWTSecret, time.Hour, slogger)

	authHandler := handlers.NewAuthHandler(authService, slogger)
	productHandler := handlers.NewProductHandler(productRepo, stockService, slogger)
	supplyHandler := handlers.NewSupplyHandler(supplyRepo, stockService, slogger)
	categoryHandler := handlers.NewCategoryHandler(categoryRepo, slogger)
	supplierHandler := handlers.NewSupplierHandler(supplierRepo, slogger)
	movementHandler := handlers.NewMovementHandler(movementService, slogger)
	statisticsHandler := handlers.NewStatisticsHandler(statsService, cache, slogger)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)

	api := http.NewServeMux()
	api.HandleFunc("GET /api/v1/products", productHandler.List)
	api.HandleFunc("POST /api/v1/products", productHandler.Create)
	api.HandleFunc("GET /api/v1/products/{id}", productHandler.Get)
	api.HandleFunc("PUT /api/v1/products/{id}", productHandler.Update)
	api.HandleFunc("DELETE /api/v1/products/{id}", productHandler.Delete)
	api.HandleFunc("PUT /api/v1/products/{id}/stock", productHandler.UpdateStock)
	api.HandleFunc("GET /api/v1/supplies", supplyHandler.List)
	api.HandleFunc("POST /api/v1/supplies", supplyHandler.Create)
	api.HandleFunc("PUT /api/v1/supplies/{id}/stock", supplyHandler.UpdateStock)
	api.HandleFunc("GET /api/v1/categories", categoryHandler.List)
	api.HandleFunc("POST /api/v1/categories", categoryHandler.Create)
	api.HandleFunc("GET /api/v1/suppliers", supplierHandler.List)
	api.HandleFunc("POST /api/v1/suppliers", supplierHandler.Create)
	api.HandleFunc("GET /api/v1/movements", movementHandler.List)
	api.HandleFunc("POST /api/v1/movements/{kind}", movementHandler.Create)
	api.HandleFunc("GET /api/v1/statistics/total-stock", statisticsHandler.TotalStock)
	api.HandleFunc("GET /api/v1/statistics/total-value", statisticsHandler.TotalValue)
	mux.Handle("/api/v1/", middleware.Authenticate(e2eJWTSecret, slogger)(api))

	return httptest.NewServer(mux)
}

func (s *InventoryE2ESuite) seedAdmin() {
	slogger := helpers.TestLogger()
	userRepo := db.NewUserRepository(s.testDB.Database, slogger)

	u := &domain.User{Username: "admin", Email: "admin@picm.local", Role: domain.RoleAdmin}
	s.Require().NoError(u.SetPassword("admin123!"))
	u.PrepareForStorage()
	s.Require().NoError(userRepo.Save(s.T().Context(), u))
}

func (s *InventoryE2ESuite) login(username, password string) string {
	resp := s.makeRequest("POST", "/auth/login", map[string]interface{}{
		"username": username,
		"password": password,
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var loginResp map[string]interface{}
	s.decodeResponse(resp, &loginResp)
	token, _ := loginResp["token"].(string)
	s.Require().NotEmpty(token)
	return token
}

func (s *InventoryE2ESuite) TestProductStockWorkflow() {
	// 1. Create a product
	resp := s.makeRequest("POST", "/products", map[string]interface{}{
		"name":       "E2E Gaseosa 2L",
		"unit_price": "14.00",
		"stock":      60,
	})
	s.Equal(http.StatusCreated, resp.StatusCode)

	var created map[string]interface{}
	s.decodeResponse(resp, &created)
	productID := created["id"].(string)
	s.NotEmpty(productID)

	// 2. Increase stock to a new total
	resp = s.makeRequest("PUT", fmt.Sprintf("/products/%s/stock?increase=true", productID), map[string]interface{}{
		"stock":   80,
		"comment": "restock",
	})
	s.Equal(http.StatusOK, resp.StatusCode)

	var adjust map[string]interface{}
	s.decodeResponse(resp, &adjust)
	s.Equal(float64(80), adjust["stock"])

	movement := adjust["movement"].(map[string]interface{})
	s.Equal("Entrada", movement["movement_type"])
	s.Equal(float64(80), movement["modified_stock"])
	s.Equal("admin", movement["username"])

	// 3. Both flags at once is rejected
	resp = s.makeRequest("PUT", fmt.Sprintf("/products/%s/stock?increase=true&decrease=true", productID), map[string]interface{}{
		"stock": 90,
	})
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.drain(resp)

	// 4. Increase below current is rejected
	resp = s.makeRequest("PUT", fmt.Sprintf("/products/%s/stock?increase=true", productID), map[string]interface{}{
		"stock": 10,
	})
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.drain(resp)

	// 5. Decrease to a lower total
	resp = s.makeRequest("PUT", fmt.Sprintf("/products/%s/stock?decrease=true", productID), map[string]interface{}{
		"stock":   45,
		"comment": "sold",
	})
	s.Equal(http.StatusOK, resp.StatusCode)
	s.decodeResponse(resp, &adjust)
	s.Equal(float64(45), adjust["stock"])
	movement = adjust["movement"].(map[string]interface{})
	s.Equal("Salida", movement["movement_type"])

	// 6. The ledger holds both adjustments
	resp = s.makeRequest("GET", "/movements?kind=products", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var page map[string]interface{}
	s.decodeResponse(resp, &page)
	items := page["items"].([]interface{})
	s.GreaterOrEqual(len(items), 2)

	// 7. Soft delete hides the product
	resp = s.makeRequest("DELETE", fmt.Sprintf("/products/%s", productID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.drain(resp)

	resp = s.makeRequest("GET", fmt.Sprintf("/products/%s", productID), nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.drain(resp)
}

func (s *InventoryE2ESuite) TestSupplyMovementLabels() {
	resp := s.makeRequest("POST", "/supplies", map[string]interface{}{
		"name":       "E2E Cinta de empaque",
		"unit_price": "9.50",
		"stock":      20,
	})
	s.Equal(http.StatusCreated, resp.StatusCode)

	var created map[string]interface{}
	s.decodeResponse(resp, &created)
	supplyID := created["id"].(string)

	// The body's movement_type is ignored; supplies label themselves.
	resp = s.makeRequest("PUT", fmt.Sprintf("/supplies/%s/stock?increase=true", supplyID), map[string]interface{}{
		"stock":         30,
		"movement_type": "Entrada",
	})
	s.Equal(http.StatusOK, resp.StatusCode)

	var adjust map[string]interface{}
	s.decodeResponse(resp, &adjust)
	movement := adjust["movement"].(map[string]interface{})
	s.Equal("Incremento", movement["movement_type"])
}

func (s *InventoryE2ESuite) TestStatisticsTotals() {
	resp := s.makeRequest("GET", "/statistics/total-stock", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var totals map[string]interface{}
	s.decodeResponse(resp, &totals)
	s.Equal("product", totals["kind"])
	s.Contains(totals, "total_stock")
	s.Contains(totals, "total_value")

	// Second call is served from the cache and must agree.
	resp = s.makeRequest("GET", "/statistics/total-stock", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var cached map[string]interface{}
	s.decodeResponse(resp, &cached)
	s.Equal(totals, cached)
}

func (s *InventoryE2ESuite) TestUnauthenticatedRequestsRejected() {
	req, err := http.NewRequest("GET", s.baseURL+"/products", nil)
	s.NoError(err)

	resp, err := s.client.Do(req)
	s.NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

// Helper methods

func (s *InventoryE2ESuite) makeRequest(method, path string, body interface{}) *http.Response {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		s.NoError(err)
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, s.baseURL+path, reqBody)
	s.NoError(err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	s.NoError(err)

	return resp
}

func (s *InventoryE2ESuite) decodeResponse(resp *http.Response, v interface{}) {
	defer resp.Body.Close()
	err := json.NewDecoder(resp.Body).Decode(v)
	s.NoError(err)
}

func (s *InventoryE2ESuite) drain(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

func TestInventoryE2ESuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E tests in short mode")
	}
	suite.Run(t, new(InventoryE2ESuite))
}
