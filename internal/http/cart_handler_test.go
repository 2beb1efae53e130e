package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Sarab71/fossnflories/internal/auth"
	"github.com/Sarab71/fossnflories/internal/domain"
	"github.com/Sarab71/fossnflories/internal/repository"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartServiceMock struct {
	cart *domain.Cart
	err  error
}

func (c cartServiceMock) GetCart(context.Context, string) (*domain.Cart, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.cart, nil
}

func (c cartServiceMock) AddItem(context.Context, string, domain.CartItem) (*domain.Cart, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.cart, nil
}

func (c cartServiceMock) UpdateQuantity(context.Context, string, string, int) (*domain.Cart, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.cart, nil
}

func (c cartServiceMock) RemoveItem(context.Context, string, string) (*domain.Cart, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.cart, nil
}

func (c cartServiceMock) ClearCart(context.Context, string) error {
	return c.err
}

func withPrincipal(r *http.Request, p auth.Principal) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), principalKey, p))
}

func testCart() *domain.Cart {
	return &domain.Cart{
		UserID: "u1",
		Items:  []domain.CartItem{{ProductID: "p1", Name: "Aviator", Price: 500, Quantity: 2}},
	}
}

func TestCartGetCart_Success(t *testing.T) {
	handler := NewCartHandler(cartServiceMock{cart: testCart()}, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := withPrincipal(httptest.NewRequest("GET", "/api/cart", nil), auth.Principal{UserID: "u1"})

	handler.GetCart(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var cart domain.Cart
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&cart))
	assert.Equal(t, "u1", cart.UserID)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestCartGetCart_Unauthenticated(t *testing.T) {
	handler := NewCartHandler(cartServiceMock{cart: testCart()}, 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.GetCart(recorder, httptest.NewRequest("GET", "/api/cart", nil))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestCartAddItem_Success(t *testing.T) {
	handler := NewCartHandler(cartServiceMock{cart: testCart()}, 5*time.Second)

	body, _ := json.Marshal(AddItemRequestDTO{
		ProductID:   "p1",
		Name:        "Aviator",
		Price:       500,
		ModelNumber: "AV-1",
		Quantity:    2,
	})
	recorder := httptest.NewRecorder()
	request := withPrincipal(httptest.NewRequest("POST", "/api/cart/items", bytes.NewReader(body)), auth.Principal{UserID: "u1"})

	handler.AddItem(recorder, request)

	assert.Equal(t, http.StatusCreated, recorder.Code)
}

func TestCartAddItem_InvalidQuantity(t *testing.T) {
	handler := NewCartHandler(cartServiceMock{cart: testCart()}, 5*time.Second)

	for _, quantity := range []int{0, -1, 100} {
		body, _ := json.Marshal(AddItemRequestDTO{ProductID: "p1", Quantity: quantity})
		recorder := httptest.NewRecorder()
		request := withPrincipal(httptest.NewRequest("POST", "/api/cart/items", bytes.NewReader(body)), auth.Principal{UserID: "u1"})

		handler.AddItem(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code, "quantity %d", quantity)
	}
}

func TestCartAddItem_MissingProductID(t *testing.T) {
	handler := NewCartHandler(cartServiceMock{cart: testCart()}, 5*time.Second)

	body, _ := json.Marshal(AddItemRequestDTO{Quantity: 1})
	recorder := httptest.NewRecorder()
	request := withPrincipal(httptest.NewRequest("POST", "/api/cart/items", bytes.NewReader(body)), auth.Principal{UserID: "u1"})

	handler.AddItem(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func newCartRouter(handler *CartHandler, p auth.Principal) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, withPrincipal(req, p))
		})
	})
	r.Put("/api/cart/items/{product_id}", handler.UpdateQuantity)
	r.Delete("/api/cart/items/{product_id}", handler.RemoveItem)
	return r
}

func TestCartUpdateQuantity_Success(t *testing.T) {
	handler := NewCartHandler(cartServiceMock{cart: testCart()}, 5*time.Second)
	router := newCartRouter(handler, auth.Principal{UserID: "u1"})

	body, _ := json.Marshal(map[string]int{"quantity": 5})
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("PUT", "/api/cart/items/p1", bytes.NewReader(body)))

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestCartUpdateQuantity_MissingLine(t *testing.T) {
	handler := NewCartHandler(cartServiceMock{err: repository.ErrItemNotFound}, 5*time.Second)
	router := newCartRouter(handler, auth.Principal{UserID: "u1"})

	body, _ := json.Marshal(map[string]int{"quantity": 5})
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("PUT", "/api/cart/items/p9", bytes.NewReader(body)))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestCartUpdateQuantity_MissingBodyQuantity(t *testing.T) {
	handler := NewCartHandler(cartServiceMock{cart: testCart()}, 5*time.Second)
	router := newCartRouter(handler, auth.Principal{UserID: "u1"})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("PUT", "/api/cart/items/p1", bytes.NewReader([]byte(`{}`))))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCartRemoveItem_Success(t *testing.T) {
	handler := NewCartHandler(cartServiceMock{cart: &domain.Cart{UserID: "u1", Items: []domain.CartItem{}}}, 5*time.Second)
	router := newCartRouter(handler, auth.Principal{UserID: "u1"})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("DELETE", "/api/cart/items/p1", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	var cart domain.Cart
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&cart))
	assert.Empty(t, cart.Items)
}

func TestCartRemoveItem_NoCart(t *testing.T) {
	handler := NewCartHandler(cartServiceMock{err: repository.ErrCartNotFound}, 5*time.Second)
	router := newCartRouter(handler, auth.Principal{UserID: "u1"})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("DELETE", "/api/cart/items/p1", nil))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
