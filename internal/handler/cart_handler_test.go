package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/middleware"
	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCartService is a mock implementation of service.CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) AddToCart(ctx context.Context, userID, slug string) (string, error) {
	args := m.Called(ctx, userID, slug)
	return args.String(0), args.Error(1)
}

func (m *MockCartService) RemoveFromCart(ctx context.Context, userID, slug string) error {
	args := m.Called(ctx, userID, slug)
	return args.Error(0)
}

func (m *MockCartService) DecrementItem(ctx context.Context, userID, slug string) (string, error) {
	args := m.Called(ctx, userID, slug)
	return args.String(0), args.Error(1)
}

func (m *MockCartService) OrderSummary(ctx context.Context, userID string) (*model.OrderSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderSummary), args.Error(1)
}

func (m *MockCartService) ApplyCoupon(ctx context.Context, userID, code string) error {
	args := m.Called(ctx, userID, code)
	return args.Error(0)
}

// userRequest builds a request carrying an authenticated user identity.
func userRequest(method, target string, body []byte) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := middleware.WithUser(req.Context(), "user-1", "user@example.com")
	return req.WithContext(ctx)
}

func TestCartHandler_Add_Success(t *testing.T) {
	logger := zerolog.Nop()
	mockService := new(MockCartService)
	handler := NewCartHandler(mockService, logger)

	mockService.On("AddToCart", mock.Anything, "user-1", "test-shirt").
		Return(service.NoticeItemAdded, nil)

	req := userRequest(http.MethodPost, "/api/cart/add/test-shirt", nil)
	rec := httptest.NewRecorder()

	handler.Add(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp NoticeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, service.NoticeItemAdded, resp.Notice)
	assert.Equal(t, "/order-summary", resp.Redirect)
	mockService.AssertExpectations(t)
}

func TestCartHandler_Add_ItemNotFound(t *testing.T) {
	logger := zerolog.Nop()
	mockService := new(MockCartService)
	handler := NewCartHandler(mockService, logger)

	mockService.On("AddToCart", mock.Anything, "user-1", "missing").
		Return("", model.ErrItemNotFound)

	req := userRequest(http.MethodPost, "/api/cart/add/missing", nil)
	rec := httptest.NewRecorder()

	handler.Add(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, model.ErrCodeItemNotFound, resp.Error)
	assert.Equal(t, "This item does not exist", resp.Notice)
}

func TestCartHandler_Add_MethodNotAllowed(t *testing.T) {
	logger := zerolog.Nop()
	mockService := new(MockCartService)
	handler := NewCartHandler(mockService, logger)

	req := userRequest(http.MethodGet, "/api/cart/add/test-shirt", nil)
	rec := httptest.NewRecorder()

	handler.Add(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	mockService.AssertNotCalled(t, "AddToCart")
}

func TestCartHandler_Add_MissingUser(t *testing.T) {
	logger := zerolog.Nop()
	mockService := new(MockCartService)
	handler := NewCartHandler(mockService, logger)

	req := httptest.NewRequest(http.MethodPost, "/api/cart/add/test-shirt", nil)
	rec := httptest.NewRecorder()

	handler.Add(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	mockService.AssertNotCalled(t, "AddToCart")
}

func TestCartHandler_Add_MissingSlug(t *testing.T) {
	logger := zerolog.Nop()
	mockService := new(MockCartService)
	handler := NewCartHandler(mockService, logger)

	req := userRequest(http.MethodPost, "/api/cart/add/", nil)
	rec := httptest.NewRecorder()

	handler.Add(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartHandler_Remove_Success(t *testing.T) {
	logger := zerolog.Nop()
	mockService := new(MockCartService)
	handler := NewCartHandler(mockService, logger)

	mockService.On("RemoveFromCart", mock.Anything, "user-1", "test-shirt").Return(nil)

	req := userRequest(http.MethodPost, "/api/cart/remove/test-shirt", nil)
	rec := httptest.NewRecorder()

	handler.Remove(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp NoticeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, service.NoticeItemRemoved, resp.Notice)
}

func TestCartHandler_Remove_NotInCart(t *testing.T) {
	logger := zerolog.Nop()
	mockService := new(MockCartService)
	handler := NewCartHandler(mockService, logger)

	mockService.On("RemoveFromCart", mock.Anything, "user-1", "test-shirt").
		Return(model.ErrNotInCart)

	req := userRequest(http.MethodPost, "/api/cart/remove/test-shirt", nil)
	rec := httptest.NewRecorder()

	handler.Remove(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "This item was not in your cart", resp.Notice)
	assert.Equal(t, "/items/test-shirt", resp.Redirect)
}

func TestCartHandler_Decrement_Success(t *testing.T) {
	logger := zerolog.Nop()
	mockService := new(MockCartService)
	handler := NewCartHandler(mockService, logger)

	mockService.On("DecrementItem", mock.Anything, "user-1", "test-shirt").
		Return(service.NoticeQuantityChange, nil)

	req := userRequest(http.MethodPost, "/api/cart/decrement/test-shirt", nil)
	rec := httptest.NewRecorder()

	handler.Decrement(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp NoticeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, service.NoticeQuantityChange, resp.Notice)
}

func TestCartHandler_Summary_Success(t *testing.T) {
	logger := zerolog.Nop()
	mockService := new(MockCartService)
	handler := NewCartHandler(mockService, logger)

	summary := &model.OrderSummary{
		ID:    uuid.New(),
		Lines: []model.OrderLine{},
		Total: 29.99,
	}
	mockService.On("OrderSummary", mock.Anything, "user-1").Return(summary, nil)

	req := userRequest(http.MethodGet, "/api/order-summary", nil)
	rec := httptest.NewRecorder()

	handler.Summary(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp model.OrderSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, summary.ID, resp.ID)
	assert.InDelta(t, 29.99, resp.Total, 0.001)
}

func TestCartHandler_Summary_NoActiveOrder(t *testing.T) {
	logger := zerolog.Nop()
	mockService := new(MockCartService)
	handler := NewCartHandler(mockService, logger)

	mockService.On("OrderSummary", mock.Anything, "user-1").Return(nil, model.ErrNoActiveOrder)

	req := userRequest(http.MethodGet, "/api/order-summary", nil)
	rec := httptest.NewRecorder()

	handler.Summary(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "You do not have an active order", resp.Notice)
	assert.Equal(t, "/", resp.Redirect)
}

func TestCartHandler_ApplyCoupon_Success(t *testing.T) {
	logger := zerolog.Nop()
	mockService := new(MockCartService)
	handler := NewCartHandler(mockService, logger)

	mockService.On("ApplyCoupon", mock.Anything, "user-1", "SUMMER10").Return(nil)

	body, _ := json.Marshal(model.CouponRequest{Code: "SUMMER10"})
	req := userRequest(http.MethodPost, "/api/coupon", body)
	rec := httptest.NewRecorder()

	handler.ApplyCoupon(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp NoticeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Successfully added coupon", resp.Notice)
	assert.Equal(t, "/checkout", resp.Redirect)
}

func TestCartHandler_ApplyCoupon_UnknownCode(t *testing.T) {
	logger := zerolog.Nop()
	mockService := new(MockCartService)
	handler := NewCartHandler(mockService, logger)

	mockService.On("ApplyCoupon", mock.Anything, "user-1", "NOPE").Return(model.ErrCouponNotFound)

	body, _ := json.Marshal(model.CouponRequest{Code: "NOPE"})
	req := userRequest(http.MethodPost, "/api/coupon", body)
	rec := httptest.NewRecorder()

	handler.ApplyCoupon(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "This coupon does not exist", resp.Notice)
}

func TestCartHandler_ApplyCoupon_InvalidJSON(t *testing.T) {
	logger := zerolog.Nop()
	mockService := new(MockCartService)
	handler := NewCartHandler(mockService, logger)

	req := userRequest(http.MethodPost, "/api/coupon", []byte("{not json"))
	rec := httptest.NewRecorder()

	handler.ApplyCoupon(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockService.AssertNotCalled(t, "ApplyCoupon")
}
