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
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	redis_a "github.com/Fatush13/simplestore/internal/adapters/redis_adapter"
	"github.com/Fatush13/simplestore/internal/core/services"
	"github.com/Fatush13/simplestore/internal/handlers"
	"github.com/Fatush13/simplestore/internal/handlers/middleware"
	"github.com/Fatush13/simplestore/test/helpers"

	"github.com/Fatush13/simplestore/internal/adapters/db"
)

type StoreE2ESuite struct {
	suite.Suite
	server    *httptest.Server
	client    *http.Client
	baseURL   string
	testDB    *helpers.TestDB
	testRedis *helpers.TestRedis
}

func (s *StoreE2ESuite) SetupSuite() {
	s.testDB = helpers.SetupTestDB(s.T())
	s.testRedis = helpers.SetupTestRedis(s.T())

	s.server = s.startTestServer()
	s.client = &http.Client{Timeout: 10 * time.Second}
	s.baseURL = s.server.URL + "/api/v1/store"
}

func (s *StoreE2ESuite) TearDownSuite() {
	s.server.Close()
}

func (s *StoreE2ESuite) SetupTest() {
	helpers.TruncateAllTables(s.T(), s.testDB.PgxPool)
}

// startTestServer wires the real repositories, service and handlers against
// the containerized database. Background task dispatch is disabled.
func (s *StoreE2ESuite) startTestServer() *httptest.Server {
	logger := helpers.TestLogger()

	itemRepo := db.NewItemRepository(s.testDB.Database, logger)
	saleRepo := db.NewSaleRepository(s.testDB.Database, logger)
	storeService := services.NewStoreService(itemRepo, saleRepo, s.testDB.Database, nil, 5, logger)

	cache := redis_a.NewCache(s.testRedis.Client, time.Hour, logger)

	storeHandler := handlers.NewStoreHandler(storeService, logger)
	exportHandler := handlers.NewExportHandler(s.testDB.Database, cache, logger)

	const store = "/api/v1/store"

	mux := http.NewServeMux()
	mux.HandleFunc("POST "+store+"/item", storeHandler.CreateItem)
	mux.HandleFunc("GET "+store+"/item/{itemId}", storeHandler.GetItem)
	mux.HandleFunc("PUT "+store+"/item/{itemId}", storeHandler.UpdateItem)
	mux.HandleFunc("DELETE "+store+"/item/{itemId}", storeHandler.DeleteItem)
	mux.HandleFunc("GET "+store+"/items", storeHandler.ListItems)
	mux.HandleFunc("POST "+store+"/item/{itemId}/sale", storeHandler.SellItem)
	mux.HandleFunc("GET "+store+"/item/{itemId}/sales", storeHandler.GetSoldItems)
	mux.HandleFunc("GET "+store+"/item/{itemId}/sales/total", storeHandler.GetTotalSold)
	mux.HandleFunc("GET "+store+"/item/{itemId}/stock", storeHandler.GetStock)
	mux.HandleFunc("GET "+store+"/export/excel", exportHandler.ExportExcel)
	mux.HandleFunc("GET "+store+"/export/json", exportHandler.ExportJSON)

	return httptest.NewServer(middleware.RequestID(mux))
}

func (s *StoreE2ESuite) TestCompleteStoreWorkflow() {
	// 1. Create an item
	createReq := map[string]interface{}{
		"name":     "E2E Test Mug",
		"price":    12.50,
		"quantity": 10,
	}

	resp := s.makeRequest("POST", "/item", createReq)
	s.Equal(http.StatusCreated, resp.StatusCode)

	var createdItem map[string]interface{}
	s.decodeResponse(resp, &createdItem)

	itemID := createdItem["id"].(string)
	s.NotEmpty(itemID)

	// 2. Retrieve the created item
	resp = s.makeRequest("GET", fmt.Sprintf("/item/%s", itemID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var retrievedItem map[string]interface{}
	s.decodeResponse(resp, &retrievedItem)
	s.Equal("E2E Test Mug", retrievedItem["name"])

	// 3. Update the item
	updateReq := map[string]interface{}{
		"name":     "Updated E2E Mug",
		"price":    15.00,
		"quantity": 8,
	}

	resp = s.makeRequest("PUT", fmt.Sprintf("/item/%s", itemID), updateReq)
	s.Equal(http.StatusOK, resp.StatusCode)

	// 4. List items
	resp = s.makeRequest("GET", "/items?limit=10", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var listResponse map[string]interface{}
	s.decodeResponse(resp, &listResponse)
	items := listResponse["items"].([]interface{})
	s.GreaterOrEqual(len(items), 1)

	// 5. Sell part of the stock
	resp = s.makeRequest("POST", fmt.Sprintf("/item/%s/sale?quantity=3", itemID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	// 6. Stock reflects the sale
	resp = s.makeRequest("GET", fmt.Sprintf("/item/%s/stock", itemID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var stockResponse map[string]interface{}
	s.decodeResponse(resp, &stockResponse)
	s.Equal(float64(5), stockResponse["quantity"])

	// 7. Overselling is rejected without touching stock
	resp = s.makeRequest("POST", fmt.Sprintf("/item/%s/sale?quantity=100", itemID), nil)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = s.makeRequest("GET", fmt.Sprintf("/item/%s/stock", itemID), nil)
	s.decodeResponse(resp, &stockResponse)
	s.Equal(float64(5), stockResponse["quantity"])

	// 8. Sale log and cumulative total
	resp = s.makeRequest("GET", fmt.Sprintf("/item/%s/sales", itemID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var salesResponse map[string]interface{}
	s.decodeResponse(resp, &salesResponse)
	sales := salesResponse["sales"].([]interface{})
	s.Len(sales, 1)

	resp = s.makeRequest("GET", fmt.Sprintf("/item/%s/sales/total", itemID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var totalResponse map[string]interface{}
	s.decodeResponse(resp, &totalResponse)
	s.Equal(float64(3), totalResponse["total_sold"])

	// 9. Export to Excel
	resp = s.makeRequest("GET", "/export/excel", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		resp.Header.Get("Content-Type"))
	resp.Body.Close()

	// 10. Soft-delete the item
	resp = s.makeRequest("DELETE", fmt.Sprintf("/item/%s", itemID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// 11. The item is hidden from reads and sales
	resp = s.makeRequest("GET", fmt.Sprintf("/item/%s", itemID), nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = s.makeRequest("POST", fmt.Sprintf("/item/%s/sale?quantity=1", itemID), nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// 12. The sale log survives the delete
	resp = s.makeRequest("GET", fmt.Sprintf("/item/%s/sales/total", itemID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.decodeResponse(resp, &totalResponse)
	s.Equal(float64(3), totalResponse["total_sold"])

	// 13. Deleting again still succeeds
	resp = s.makeRequest("DELETE", fmt.Sprintf("/item/%s", itemID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func (s *StoreE2ESuite) TestConcurrentSellsNeverOversell() {
	createReq := map[string]interface{}{
		"name":     "Contended Item",
		"price":    9.99,
		"quantity": 10,
	}

	resp := s.makeRequest("POST", "/item", createReq)
	s.Equal(http.StatusCreated, resp.StatusCode)

	var createdItem map[string]interface{}
	s.decodeResponse(resp, &createdItem)
	itemID := createdItem["id"].(string)

	// 10 units, 10 concurrent attempts to sell 3 each. Only three can win.
	const attempts = 10
	var wg sync.WaitGroup
	statuses := make([]int, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			resp := s.makeRequest("POST", fmt.Sprintf("/item/%s/sale?quantity=3", itemID), nil)
			statuses[idx] = resp.StatusCode
			resp.Body.Close()
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, status := range statuses {
		if status == http.StatusOK {
			succeeded++
		} else {
			s.Equal(http.StatusBadRequest, status)
		}
	}
	s.Equal(3, succeeded)

	resp = s.makeRequest("GET", fmt.Sprintf("/item/%s/stock", itemID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var stockResponse map[string]interface{}
	s.decodeResponse(resp, &stockResponse)
	s.Equal(float64(1), stockResponse["quantity"])

	resp = s.makeRequest("GET", fmt.Sprintf("/item/%s/sales/total", itemID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var totalResponse map[string]interface{}
	s.decodeResponse(resp, &totalResponse)
	s.Equal(float64(9), totalResponse["total_sold"])
}

func (s *StoreE2ESuite) TestListPagination() {
	for i := 0; i < 25; i++ {
		createReq := map[string]interface{}{
			"name":     fmt.Sprintf("Paginated Item %02d", i),
			"price":    1.00,
			"quantity": 1,
		}
		resp := s.makeRequest("POST", "/item", createReq)
		s.Equal(http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp := s.makeRequest("GET", "/items?page=2&limit=10", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var listResponse map[string]interface{}
	s.decodeResponse(resp, &listResponse)

	items := listResponse["items"].([]interface{})
	s.Len(items, 10)
	s.Equal(float64(25), listResponse["total_count"])
	s.Equal(float64(3), listResponse["total_pages"])
	s.Equal(float64(2), listResponse["page"])
}

// Helper methods

func (s *StoreE2ESuite) makeRequest(method, path string, body interface{}) *http.Response {
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

	resp, err := s.client.Do(req)
	s.NoError(err)

	return resp
}

func (s *StoreE2ESuite) decodeResponse(resp *http.Response, v interface{}) {
	defer resp.Body.Close()
	err := json.NewDecoder(resp.Body).Decode(v)
	s.NoError(err)
}

func TestStoreE2ESuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E tests in short mode")
	}
	suite.Run(t, new(StoreE2ESuite))
}
