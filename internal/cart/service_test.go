package cart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/jeansstore/backend/internal/catalog"
	pkgerrors "github.com/jeansstore/backend/pkg/errors"
)

type memoryStore struct {
	carts map[string]*Cart
}

func newMemoryStore() *memoryStore {
	return &memoryStore{carts: make(map[string]*Cart)}
}

func (m *memoryStore) Load(_ context.Context, sessionID string) (*Cart, error) {
	if cart, ok := m.carts[sessionID]; ok {
		copied := *cart
		copied.Items = append([]Item(nil), cart.Items...)
		return &copied, nil
	}
	return &Cart{}, nil
}

func (m *memoryStore) Save(_ context.Context, sessionID string, cart *Cart) error {
	m.carts[sessionID] = cart
	return nil
}

func (m *memoryStore) Clear(_ context.Context, sessionID string) error {
	delete(m.carts, sessionID)
	return nil
}

type fakeCatalog struct {
	products map[int]catalog.ProductDTO
}

func (f *fakeCatalog) ListProducts(_ context.Context, _ string) ([]catalog.ProductDTO, error) {
	out := make([]catalog.ProductDTO, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeCatalog) GetProduct(_ context.Context, id int) (*catalog.ProductDTO, error) {
	if p, ok := f.products[id]; ok {
		return &p, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func newTestService(t *testing.T) (Service, *memoryStore) {
	t.Helper()
	store := newMemoryStore()
	svc, err := NewService(store, &fakeCatalog{products: map[int]catalog.ProductDTO{
		1: {ID: 1, Name: "Calça Jeans Skinny Azul", Price: decimal.NewFromFloat(89.90), Sizes: []string{"36", "38", "40"}},
		2: {ID: 2, Name: "Calça Jeans Reta Escura", Price: decimal.NewFromFloat(99.90), Sizes: []string{"38", "40"}},
	}})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, store
}

func TestAddItemRequiresSize(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddItem(context.Background(), "sess", 1, "", 1)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if typed.Message() != "Selecione um tamanho" {
		t.Fatalf("unexpected message %q", typed.Message())
	}
}

func TestAddItemAccumulatesSameProductAndSize(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "sess", 1, "38", 1); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	result, err := svc.AddItem(ctx, "sess", 1, "38", 1)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	if len(result.Cart.Items) != 1 {
		t.Fatalf("expected a single line, got %d", len(result.Cart.Items))
	}
	if result.Cart.Items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", result.Cart.Items[0].Quantity)
	}
	if result.Notification.Title != "Produto adicionado!" {
		t.Fatalf("unexpected notification title %q", result.Notification.Title)
	}
}

func TestAddItemSameProductDifferentSizesAreSeparateLines(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "sess", 1, "38", 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	result, err := svc.AddItem(ctx, "sess", 1, "40", 1)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if len(result.Cart.Items) != 2 {
		t.Fatalf("expected two lines, got %d", len(result.Cart.Items))
	}
}

func TestAddItemRejectsUnknownSize(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddItem(context.Background(), "sess", 2, "36", 1)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "sess", 1, "38", 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	dto, err := svc.UpdateQuantity(ctx, "sess", 1, "38", 0)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(dto.Items) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(dto.Items))
	}
}

func TestUpdateQuantityMissingLine(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.UpdateQuantity(context.Background(), "sess", 1, "38", 3)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	dto, err := svc.RemoveItem(ctx, "sess", 1, "38")
	if err != nil {
		t.Fatalf("remove on empty cart failed: %v", err)
	}
	if len(dto.Items) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(dto.Items))
	}
}

func TestSubtotalSumsLines(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "sess", 1, "38", 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	result, err := svc.AddItem(ctx, "sess", 2, "40", 1)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	want := decimal.NewFromFloat(89.90).Mul(decimal.NewFromInt(2)).Add(decimal.NewFromFloat(99.90))
	if !result.Cart.Subtotal.Equal(want) {
		t.Fatalf("expected subtotal %s, got %s", want, result.Cart.Subtotal)
	}
	if result.Cart.ItemCount != 3 {
		t.Fatalf("expected item count 3, got %d", result.Cart.ItemCount)
	}
}

func TestClearEmptiesCart(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "sess", 1, "38", 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.Clear(ctx, "sess"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if _, ok := store.carts["sess"]; ok {
		t.Fatal("expected cart document removed")
	}
}
