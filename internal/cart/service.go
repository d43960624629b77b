package cart

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jeansstore/backend/internal/catalog"
	pkgerrors "github.com/jeansstore/backend/pkg/errors"
	"github.com/jeansstore/backend/pkg/types"
)

// Service exposes cart operations scoped to a browser session.
type Service interface {
	Get(ctx context.Context, sessionID string) (*CartDTO, error)
	AddItem(ctx context.Context, sessionID string, productID int, size string, quantity int) (*MutationResult, error)
	UpdateQuantity(ctx context.Context, sessionID string, productID int, size string, quantity int) (*CartDTO, error)
	RemoveItem(ctx context.Context, sessionID string, productID int, size string) (*CartDTO, error)
	Clear(ctx context.Context, sessionID string) error
}

// ItemDTO is the cart line read model.
type ItemDTO struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
}

// CartDTO is the cart read model returned by the API.
type CartDTO struct {
	Items     []ItemDTO       `json:"items"`
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// MutationResult pairs the updated cart with a user-facing notification.
type MutationResult struct {
	Cart         CartDTO            `json:"cart"`
	Notification types.Notification `json:"notification"`
}

type service struct {
	store   Store
	catalog catalog.Service
}

// NewService constructs a cart service instance.
func NewService(store Store, catalogSvc catalog.Service) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if catalogSvc == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	return &service{store: store, catalog: catalogSvc}, nil
}

// Get loads the session's cart.
func (s *service) Get(ctx context.Context, sessionID string) (*CartDTO, error) {
	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return newCartDTO(cart), nil
}

// AddItem adds one line to the cart, accumulating quantity when the same
// product and size is already present. A size is always required.
func (s *service) AddItem(ctx context.Context, sessionID string, productID int, size string, quantity int) (*MutationResult, error) {
	if size == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Selecione um tamanho").
			WithDetails(map[string]any{"description": "Por favor, escolha um tamanho antes de adicionar ao carrinho."})
	}
	if quantity <= 0 {
		quantity = 1
	}

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !containsSize(product.Sizes, size) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Tamanho indisponível para este produto").
			WithDetails(map[string]any{"size": size})
	}

	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	if line := cart.find(productID, size); line != nil {
		line.Quantity += quantity
	} else {
		cart.Items = append(cart.Items, Item{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Image:     product.Image,
			Size:      size,
			Quantity:  quantity,
		})
	}

	if err := s.store.Save(ctx, sessionID, cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}

	return &MutationResult{
		Cart: *newCartDTO(cart),
		Notification: types.Notify(
			"Produto adicionado!",
			fmt.Sprintf("%s (%s) foi adicionado ao carrinho.", product.Name, size),
		),
	}, nil
}

// UpdateQuantity sets the quantity on an existing line. Zero or negative
// quantities remove the line.
func (s *service) UpdateQuantity(ctx context.Context, sessionID string, productID int, size string, quantity int) (*CartDTO, error) {
	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	line := cart.find(productID, size)
	if line == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item não encontrado no carrinho")
	}

	if quantity <= 0 {
		cart.remove(productID, size)
	} else {
		line.Quantity = quantity
	}

	if err := s.store.Save(ctx, sessionID, cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return newCartDTO(cart), nil
}

// RemoveItem drops the line for (productID, size). Removing an absent line
// is a no-op.
func (s *service) RemoveItem(ctx context.Context, sessionID string, productID int, size string) (*CartDTO, error) {
	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	cart.remove(productID, size)

	if err := s.store.Save(ctx, sessionID, cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return newCartDTO(cart), nil
}

// Clear empties the session's cart.
func (s *service) Clear(ctx context.Context, sessionID string) error {
	if err := s.store.Clear(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

func newCartDTO(cart *Cart) *CartDTO {
	items := make([]ItemDTO, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, ItemDTO{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Image:     item.Image,
			Size:      item.Size,
			Quantity:  item.Quantity,
		})
	}
	return &CartDTO{
		Items:     items,
		ItemCount: cart.ItemCount(),
		Subtotal:  cart.Subtotal(),
	}
}

func containsSize(sizes []string, size string) bool {
	for _, s := range sizes {
		if s == size {
			return true
		}
	}
	return false
}
