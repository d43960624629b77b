package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/jeansstore/backend/internal/catalog"
	pkgerrors "github.com/jeansstore/backend/pkg/errors"
)

type stubCatalogService struct {
	products []catalog.ProductDTO
	product  *catalog.ProductDTO
	err      error

	lastQuery string
	lastID    int
}

func (s *stubCatalogService) ListProducts(ctx context.Context, query string) ([]catalog.ProductDTO, error) {
	s.lastQuery = query
	return s.products, s.err
}

func (s *stubCatalogService) GetProduct(ctx context.Context, id int) (*catalog.ProductDTO, error) {
	s.lastID = id
	return s.product, s.err
}

func TestListProductsSuccess(t *testing.T) {
	stub := &stubCatalogService{products: []catalog.ProductDTO{
		{ID: 1, Name: "Calça Jeans Skinny Azul", Price: decimal.RequireFromString("89.90"), Sizes: []string{"36", "38"}},
	}}
	handler := ListProducts(stub, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?q=skinny", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if stub.lastQuery != "skinny" {
		t.Fatalf("expected query passthrough, got %q", stub.lastQuery)
	}

	var envelope struct {
		Data []catalog.ProductDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].Name != "Calça Jeans Skinny Azul" {
		t.Fatalf("unexpected payload: %+v", envelope.Data)
	}
}

func TestGetProductSuccess(t *testing.T) {
	stub := &stubCatalogService{product: &catalog.ProductDTO{ID: 3, Name: "Calça Jeans Destroyed"}}
	handler := GetProduct(stub, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/3", nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("productId", "3")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if stub.lastID != 3 {
		t.Fatalf("expected id 3, got %d", stub.lastID)
	}
}

func TestGetProductInvalidID(t *testing.T) {
	handler := GetProduct(&stubCatalogService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/abc", nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("productId", "abc")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestGetProductNotFound(t *testing.T) {
	stub := &stubCatalogService{err: pkgerrors.New(pkgerrors.CodeNotFound, "produto não encontrado")}
	handler := GetProduct(stub, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/99", nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("productId", "99")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestListProductsNilService(t *testing.T) {
	handler := ListProducts(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
}
