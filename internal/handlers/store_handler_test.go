// internal/handlers/store_handler_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Fatush13/simplestore/internal/core/domain"
	"github.com/Fatush13/simplestore/internal/core/ports"
	"github.com/Fatush13/simplestore/internal/handlers"
	"github.com/Fatush13/simplestore/test/helpers"
	"github.com/Fatush13/simplestore/test/mocks"
)

func newStoreHandler(t *testing.T, ctrl *gomock.Controller) (*handlers.StoreHandler, *mocks.MockStoreService) {
	t.Helper()

	mockService := mocks.NewMockStoreService(ctrl)
	handler := handlers.NewStoreHandler(mockService, helpers.TestLogger())
	return handler, mockService
}

func itemRequestBody(t *testing.T, name string, price float64, quantity int64) *bytes.Buffer {
	t.Helper()

	body, err := json.Marshal(map[string]interface{}{
		"name":     name,
		"price":    price,
		"quantity": quantity,
	})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestStoreHandler_CreateItem(t *testing.T) {
	tests := []struct {
		name           string
		body           func(*testing.T) *bytes.Buffer
		setupMocks     func(*mocks.MockStoreService)
		expectedStatus int
		validateBody   func(*testing.T, []byte)
	}{
		{
			name: "successfully_creates_item",
			body: func(t *testing.T) *bytes.Buffer {
				return itemRequestBody(t, "Ceramic Mug", 12.50, 10)
			},
			setupMocks: func(m *mocks.MockStoreService) {
				m.EXPECT().
					AddItem(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			expectedStatus: http.StatusCreated,
			validateBody: func(t *testing.T, body []byte) {
				var response domain.Item
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "Ceramic Mug", response.Name)
				assert.Equal(t, int64(10), response.Quantity)
			},
		},
		{
			name: "invalid_json_body",
			body: func(t *testing.T) *bytes.Buffer {
				return bytes.NewBufferString("{not json")
			},
			setupMocks:     func(m *mocks.MockStoreService) {},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body []byte) {
				var response map[string]string
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "Invalid request body", response["error"])
			},
		},
		{
			name: "missing_name",
			body: func(t *testing.T) *bytes.Buffer {
				return itemRequestBody(t, "", 12.50, 10)
			},
			setupMocks:     func(m *mocks.MockStoreService) {},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body []byte) {
				var response map[string]string
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "name is required", response["error"])
			},
		},
		{
			name: "negative_price",
			body: func(t *testing.T) *bytes.Buffer {
				return itemRequestBody(t, "Ceramic Mug", -1.00, 10)
			},
			setupMocks:     func(m *mocks.MockStoreService) {},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body []byte) {
				var response map[string]string
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "price cannot be negative", response["error"])
			},
		},
		{
			name: "negative_quantity",
			body: func(t *testing.T) *bytes.Buffer {
				return itemRequestBody(t, "Ceramic Mug", 12.50, -3)
			},
			setupMocks:     func(m *mocks.MockStoreService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "service_error",
			body: func(t *testing.T) *bytes.Buffer {
				return itemRequestBody(t, "Ceramic Mug", 12.50, 10)
			},
			setupMocks: func(m *mocks.MockStoreService) {
				m.EXPECT().
					AddItem(gomock.Any(), gomock.Any()).
					Return(errors.New("database connection failed"))
			},
			expectedStatus: http.StatusInternalServerError,
			validateBody: func(t *testing.T, body []byte) {
				var response map[string]string
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "Failed to create item", response["error"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			handler, mockService := newStoreHandler(t, ctrl)
			tt.setupMocks(mockService)

			req := httptest.NewRequest("POST", "/api/v1/store/item", tt.body(t))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.CreateItem(w, req)

			resp := w.Result()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.validateBody != nil {
				tt.validateBody(t, w.Body.Bytes())
			}
		})
	}
}

func TestStoreHandler_GetItem(t *testing.T) {
	testItem := helpers.CreateTestItem()

	tests := []struct {
		name           string
		itemID         string
		setupMocks     func(*mocks.MockStoreService)
		expectedStatus int
		validateBody   func(*testing.T, []byte)
	}{
		{
			name:   "successfully_retrieves_item",
			itemID: testItem.ID.String(),
			setupMocks: func(m *mocks.MockStoreService) {
				m.EXPECT().
					GetItem(gomock.Any(), testItem.ID).
					Return(testItem, nil)
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body []byte) {
				var response domain.Item
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, testItem.ID, response.ID)
				assert.Equal(t, testItem.Name, response.Name)
			},
		},
		{
			name:           "invalid_uuid_format",
			itemID:         "not-a-uuid",
			setupMocks:     func(m *mocks.MockStoreService) {},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body []byte) {
				var response map[string]string
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "Invalid item ID format", response["error"])
			},
		},
		{
			name:   "item_not_found",
			itemID: uuid.New().String(),
			setupMocks: func(m *mocks.MockStoreService) {
				m.EXPECT().
					GetItem(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("get item: %w", domain.ErrItemNotFound))
			},
			expectedStatus: http.StatusNotFound,
			validateBody: func(t *testing.T, body []byte) {
				var response map[string]string
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "Item not found", response["error"])
			},
		},
		{
			name:   "service_error",
			itemID: testItem.ID.String(),
			setupMocks: func(m *mocks.MockStoreService) {
				m.EXPECT().
					GetItem(gomock.Any(), testItem.ID).
					Return(nil, errors.New("database connection failed"))
			},
			expectedStatus: http.StatusInternalServerError,
			validateBody: func(t *testing.T, body []byte) {
				var response map[string]string
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "Failed to retrieve item", response["error"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			handler, mockService := newStoreHandler(t, ctrl)
			tt.setupMocks(mockService)

			req := httptest.NewRequest("GET", "/api/v1/store/item/"+tt.itemID, nil)
			req.SetPathValue("itemId", tt.itemID)
			w := httptest.NewRecorder()

			handler.GetItem(w, req)

			resp := w.Result()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.validateBody != nil {
				tt.validateBody(t, w.Body.Bytes())
			}
		})
	}
}

func TestStoreHandler_UpdateItem(t *testing.T) {
	testItemID := uuid.New()

	tests := []struct {
		name           string
		itemID         string
		body           func(*testing.T) *bytes.Buffer
		setupMocks     func(*mocks.MockStoreService)
		expectedStatus int
	}{
		{
			name:   "successfully_updates_item",
			itemID: testItemID.String(),
			body: func(t *testing.T) *bytes.Buffer {
				return itemRequestBody(t, "Renamed Mug", 15.00, 20)
			},
			setupMocks: func(m *mocks.MockStoreService) {
				m.EXPECT().
					UpdateItem(gomock.Any(), testItemID, gomock.Any()).
					Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "invalid_uuid_format",
			itemID: "not-a-uuid",
			body: func(t *testing.T) *bytes.Buffer {
				return itemRequestBody(t, "Renamed Mug", 15.00, 20)
			},
			setupMocks:     func(m *mocks.MockStoreService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "invalid_json_body",
			itemID: testItemID.String(),
			body: func(t *testing.T) *bytes.Buffer {
				return bytes.NewBufferString("{not json")
			},
			setupMocks:     func(m *mocks.MockStoreService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "validation_failure",
			itemID: testItemID.String(),
			body: func(t *testing.T) *bytes.Buffer {
				return itemRequestBody(t, "", 15.00, 20)
			},
			setupMocks:     func(m *mocks.MockStoreService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "item_not_found",
			itemID: testItemID.String(),
			body: func(t *testing.T) *bytes.Buffer {
				return itemRequestBody(t, "Renamed Mug", 15.00, 20)
			},
			setupMocks: func(m *mocks.MockStoreService) {
				m.EXPECT().
					UpdateItem(gomock.Any(), testItemID, gomock.Any()).
					Return(fmt.Errorf("update item: %w", domain.ErrItemNotFound))
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "service_error",
			itemID: testItemID.String(),
			body: func(t *testing.T) *bytes.Buffer {
				return itemRequestBody(t, "Renamed Mug", 15.00, 20)
			},
			setupMocks: func(m *mocks.MockStoreService) {
				m.EXPECT().
					UpdateItem(gomock.Any(), testItemID, gomock.Any()).
					Return(errors.New("database connection failed"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			handler, mockService := newStoreHandler(t, ctrl)
			tt.setupMocks(mockService)

			req := httptest.NewRequest("PUT", "/api/v1/store/item/"+tt.itemID, tt.body(t))
			req.Header.Set("Content-Type", "application/json")
			req.SetPathValue("itemId", tt.itemID)
			w := httptest.NewRecorder()

			handler.UpdateItem(w, req)

			resp := w.Result()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestStoreHandler_DeleteItem(t *testing.T) {
	testItemID := uuid.New()

	tests := []struct {
		name           string
		itemID         string
		setupMocks     func(*mocks.MockStoreService)
		expectedStatus int
	}{
		{
			name:   "successfully_deletes_item",
			itemID: testItemID.String(),
			setupMocks: func(m *mocks.MockStoreService) {
				m.EXPECT().
					DeleteItem(gomock.Any(), testItemID).
					Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid_uuid_format",
			itemID:         "not-a-uuid",
			setupMocks:     func(m *mocks.MockStoreService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "item_never_existed",
			itemID: testItemID.String(),
			setupMocks: func(m *mocks.MockStoreService) {
				m.EXPECT().
					DeleteItem(gomock.Any(), testItemID).
					Return(fmt.Errorf("delete item: %w", domain.ErrItemNotFound))
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "service_error",
			itemID: testItemID.String(),
			setupMocks: func(m *mocks.MockStoreService) {
				m.EXPECT().
					DeleteItem(gomock.Any(), testItemID).
					Return(errors.New("database connection failed"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			handler, mockService := newStoreHandler(t, ctrl)
			tt.setupMocks(mockService)

			req := httptest.NewRequest("DELETE", "/api/v1/store/item/"+tt.itemID, nil)
			req.SetPathValue("itemId", tt.itemID)
			w := httptest.NewRecorder()

			handler.DeleteItem(w, req)

			resp := w.Result()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestStoreHandler_ListItems(t *testing.T) {
	testItems := []*domain.Item{helpers.CreateTestItem()}

	tests := []struct {
		name           string
		queryParams    string
		setupMocks     func(*mocks.MockStoreService)
		expectedStatus int
		validateBody   func(*testing.T, []byte)
	}{
		{
			name:        "lists_with_default_params",
			queryParams: "",
			setupMocks: func(m *mocks.MockStoreService) {
				m.EXPECT().
					ListItems(gomock.Any(), ports.ListParams{
						Page: 1, PageSize: 50, SortBy: "created_at", SortOrder: "desc",
					}).
					Return(&ports.ItemPage{
						Items: testItems, Page: 1, PageSize: 50, TotalCount: 1, TotalPages: 1,
					}, nil)
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body []byte) {
				var response ports.ItemPage
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Len(t, response.Items, 1)
				assert.Equal(t, int64(1), response.TotalCount)
			},
		},
		{
			name:        "parses_pagination_params",
			queryParams: "?page=3&limit=25&sort=name&order=asc",
			setupMocks: func(m *mocks.MockStoreService) {
				m.EXPECT().
					ListItems(gomock.Any(), ports.ListParams{
						Page: 3, PageSize: 25, SortBy: "name", SortOrder: "asc",
					}).
					Return(&ports.ItemPage{
						Items: testItems, Page: 3, PageSize: 25, TotalCount: 100, TotalPages: 4,
					}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "ignores_malformed_pagination_params",
			queryParams: "?page=abc&limit=-5",
			setupMocks: func(m *mocks.MockStoreService) {
				m.EXPECT().
					ListItems(gomock.Any(), ports.ListParams{
						Page: 1, PageSize: 50, SortBy: "created_at", SortOrder: "desc",
					}).
					Return(&ports.ItemPage{
						Items: testItems, Page: 1, PageSize: 50, TotalCount: 1, TotalPages: 1,
					}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "service_error",
			queryParams: "",
			setupMocks: func(m *mocks.MockStoreService) {
				m.EXPECT().
					ListItems(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("database connection failed"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			handler, mockService := newStoreHandler(t, ctrl)
			tt.setupMocks(mockService)

			req := httptest.NewRequest("GET", "/api/v1/store/items"+tt.queryParams, nil)
			w := httptest.NewRecorder()

			handler.ListItems(w, req)

			resp := w.Result()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.validateBody != nil {
				tt.validateBody(t, w.Body.Bytes())
			}
		})
	}
}

func TestStoreHandler_SellItem(t *testing.T) {
	testItemID := uuid.New()

	tests := []struct {
		name           string
		itemID         string
		query          string
		setupMocks     func(*mocks.MockStoreService)
		expectedStatus int
		validateBody   func(*testing.T, []byte)
	}{
		{
			name:   "successfully_sells_item",
			itemID: testItemID.String(),
			query:  "?quantity=3",
			setupMocks: func(m *mocks.MockStoreService) {
				m.EXPECT().
					SellItem(gomock.Any(), testItemID, int64(3)).
					Return(nil)
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body []byte) {
				var response map[string]interface{}
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "Sale recorded", response["message"])
				assert.Equal(t, float64(3), response["quantity"])
			},
		},
		{
			name:           "invalid_uuid_format",
			itemID:         "not-a-uuid",
			query:          "?quantity=3",
			setupMocks:     func(m *mocks.MockStoreService) {},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body []byte) {
				var response map[string]string
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "Invalid item ID format", response["error"])
			},
		},
		{
			name:           "missing_quantity",
			itemID:         testItemID.String(),
			query:          "",
			setupMocks:     func(m *mocks.MockStoreService) {},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body []byte) {
				var response map[string]string
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "quantity query parameter is required", response["error"])
			},
		},
		{
			name:           "non_integer_quantity",
			itemID:         testItemID.String(),
			query:          "?quantity=three",
			setupMocks:     func(m *mocks.MockStoreService) {},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body []byte) {
				var response map[string]string
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "quantity must be an integer", response["error"])
			},
		},
		{
			name:           "zero_quantity",
			itemID:         testItemID.String(),
			query:          "?quantity=0",
			setupMocks:     func(m *mocks.MockStoreService) {},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body []byte) {
				var response map[string]string
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "quantity must be positive", response["error"])
			},
		},
		{
			name:           "negative_quantity",
			itemID:         testItemID.String(),
			query:          "?quantity=-2",
			setupMocks:     func(m *mocks.MockStoreService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "item_not_found",
			itemID: testItemID.String(),
			query:  "?quantity=3",
			setupMocks: func(m *mocks.MockStoreService) {
				m.EXPECT().
					SellItem(gomock.Any(), testItemID, int64(3)).
					Return(fmt.Errorf("sell item: %w", domain.ErrItemNotFound))
			},
			expectedStatus: http.StatusNotFound,
			validateBody: func(t *testing.T, body []byte) {
				var response map[string]string
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "Item not found", response["error"])
			},
		},
		{
			name:   "insufficient_stock",
			itemID: testItemID.String(),
			query:  "?quantity=500",
			setupMocks: func(m *mocks.MockStoreService) {
				m.EXPECT().
					SellItem(gomock.Any(), testItemID, int64(500)).
					Return(fmt.Errorf("sell item: %w", domain.ErrInsufficientStock))
			},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body []byte) {
				var response map[string]string
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "Insufficient stock", response["error"])
			},
		},
		{
			name:   "service_error",
			itemID: testItemID.String(),
			query:  "?quantity=3",
			setupMocks: func(m *mocks.MockStoreService) {
				m.EXPECT().
					SellItem(gomock.Any(), testItemID, int64(3)).
					Return(errors.New("database connection failed"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			handler, mockService := newStoreHandler(t, ctrl)
			tt.setupMocks(mockService)

			req := httptest.NewRequest("POST", "/api/v1/store/item/"+tt.itemID+"/sale"+tt.query, nil)
			req.SetPathValue("itemId", tt.itemID)
			w := httptest.NewRecorder()

			handler.SellItem(w, req)

			resp := w.Result()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.validateBody != nil {
				tt.validateBody(t, w.Body.Bytes())
			}
		})
	}
}

func TestStoreHandler_GetSoldItems(t *testing.T) {
	testItemID := uuid.New()
	testSales := []*domain.Sale{helpers.CreateTestSale(testItemID)}

	tests := []struct {
		name           string
		itemID         string
		setupMocks     func(*mocks.MockStoreService)
		expectedStatus int
		validateBody   func(*testing.T, []byte)
	}{
		{
			name:   "successfully_lists_sales",
			itemID: testItemID.String(),
			setupMocks: func(m *mocks.MockStoreService) {
				m.EXPECT().
					GetSoldItems(gomock.Any(), testItemID, gomock.Any()).
					Return(&ports.SalePage{
						Sales: testSales, Page: 1, PageSize: 50, TotalCount: 1, TotalPages: 1,
					}, nil)
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body []byte) {
				var response ports.SalePage
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Len(t, response.Sales, 1)
				assert.Equal(t, testItemID, response.Sales[0].ItemID)
			},
		},
		{
			name:   "unknown_item_yields_empty_page",
			itemID: testItemID.String(),
			setupMocks: func(m *mocks.MockStoreService) {
				m.EXPECT().
					GetSoldItems(gomock.Any(), testItemID, gomock.Any()).
					Return(&ports.SalePage{
						Sales: []*domain.Sale{}, Page: 1, PageSize: 50, TotalCount: 0, TotalPages: 0,
					}, nil)
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body []byte) {
				var response ports.SalePage
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Empty(t, response.Sales)
			},
		},
		{
			name:           "invalid_uuid_format",
			itemID:         "not-a-uuid",
			setupMocks:     func(m *mocks.MockStoreService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "service_error",
			itemID: testItemID.String(),
			setupMocks: func(m *mocks.MockStoreService) {
				m.EXPECT().
					GetSoldItems(gomock.Any(), testItemID, gomock.Any()).
					Return(nil, errors.New("database connection failed"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			handler, mockService := newStoreHandler(t, ctrl)
			tt.setupMocks(mockService)

			req := httptest.NewRequest("GET", "/api/v1/store/item/"+tt.itemID+"/sales", nil)
			req.SetPathValue("itemId", tt.itemID)
			w := httptest.NewRecorder()

			handler.GetSoldItems(w, req)

			resp := w.Result()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.validateBody != nil {
				tt.validateBody(t, w.Body.Bytes())
			}
		})
	}
}

func TestStoreHandler_GetTotalSold(t *testing.T) {
	testItemID := uuid.New()

	tests := []struct {
		name           string
		itemID         string
		setupMocks     func(*mocks.MockStoreService)
		expectedStatus int
		validateBody   func(*testing.T, []byte)
	}{
		{
			name:   "returns_total_sold",
			itemID: testItemID.String(),
			setupMocks: func(m *mocks.MockStoreService) {
				m.EXPECT().
					GetTotalSold(gomock.Any(), testItemID).
					Return(int64(42), nil)
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body []byte) {
				var response map[string]interface{}
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, float64(42), response["total_sold"])
			},
		},
		{
			name:   "unknown_item_totals_zero",
			itemID: testItemID.String(),
			setupMocks: func(m *mocks.MockStoreService) {
				m.EXPECT().
					GetTotalSold(gomock.Any(), testItemID).
					Return(int64(0), nil)
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body []byte) {
				var response map[string]interface{}
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, float64(0), response["total_sold"])
			},
		},
		{
			name:           "invalid_uuid_format",
			itemID:         "not-a-uuid",
			setupMocks:     func(m *mocks.MockStoreService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "service_error",
			itemID: testItemID.String(),
			setupMocks: func(m *mocks.MockStoreService) {
				m.EXPECT().
					GetTotalSold(gomock.Any(), testItemID).
					Return(int64(0), errors.New("database connection failed"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			handler, mockService := newStoreHandler(t, ctrl)
			tt.setupMocks(mockService)

			req := httptest.NewRequest("GET", "/api/v1/store/item/"+tt.itemID+"/sales/total", nil)
			req.SetPathValue("itemId", tt.itemID)
			w := httptest.NewRecorder()

			handler.GetTotalSold(w, req)

			resp := w.Result()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.validateBody != nil {
				tt.validateBody(t, w.Body.Bytes())
			}
		})
	}
}

func TestStoreHandler_GetStock(t *testing.T) {
	testItemID := uuid.New()

	tests := []struct {
		name           string
		itemID         string
		setupMocks     func(*mocks.MockStoreService)
		expectedStatus int
		validateBody   func(*testing.T, []byte)
	}{
		{
			name:   "returns_current_stock",
			itemID: testItemID.String(),
			setupMocks: func(m *mocks.MockStoreService) {
				m.EXPECT().
					GetStockQuantity(gomock.Any(), testItemID).
					Return(int64(17), nil)
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body []byte) {
				var response map[string]interface{}
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, float64(17), response["quantity"])
			},
		},
		{
			name:           "invalid_uuid_format",
			itemID:         "not-a-uuid",
			setupMocks:     func(m *mocks.MockStoreService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "item_not_found",
			itemID: testItemID.String(),
			setupMocks: func(m *mocks.MockStoreService) {
				m.EXPECT().
					GetStockQuantity(gomock.Any(), testItemID).
					Return(int64(0), fmt.Errorf("stock: %w", domain.ErrItemNotFound))
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "service_error",
			itemID: testItemID.String(),
			setupMocks: func(m *mocks.MockStoreService) {
				m.EXPECT().
					GetStockQuantity(gomock.Any(), testItemID).
					Return(int64(0), errors.New("database connection failed"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			handler, mockService := newStoreHandler(t, ctrl)
			tt.setupMocks(mockService)

			req := httptest.NewRequest("GET", "/api/v1/store/item/"+tt.itemID+"/stock", nil)
			req.SetPathValue("itemId", tt.itemID)
			w := httptest.NewRecorder()

			handler.GetStock(w, req)

			resp := w.Result()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.validateBody != nil {
				tt.validateBody(t, w.Body.Bytes())
			}
		})
	}
}

func TestItemRequest_Validate(t *testing.T) {
	tests := []struct {
		name          string
		request       handlers.ItemRequest
		expectedError string
	}{
		{
			name: "valid_request",
			request: handlers.ItemRequest{
				Name: "Mug", Price: decimal.NewFromFloat(1.50), Quantity: 5,
			},
		},
		{
			name: "whitespace_only_name",
			request: handlers.ItemRequest{
				Name: "   ", Price: decimal.NewFromFloat(1.50), Quantity: 5,
			},
			expectedError: "name is required",
		},
		{
			name: "name_too_long",
			request: handlers.ItemRequest{
				Name: strings.Repeat("x", 300), Price: decimal.NewFromFloat(1.50), Quantity: 5,
			},
			expectedError: "name must be at most",
		},
		{
			name: "negative_price",
			request: handlers.ItemRequest{
				Name: "Mug", Price: decimal.NewFromFloat(-0.01), Quantity: 5,
			},
			expectedError: "price cannot be negative",
		},
		{
			name: "zero_price_is_allowed",
			request: handlers.ItemRequest{
				Name: "Mug", Price: decimal.Zero, Quantity: 5,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
