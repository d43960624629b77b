package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jeansstore/backend/pkg/db/models"
	pkgerrors "github.com/jeansstore/backend/pkg/errors"
)

// Service exposes catalog read operations.
type Service interface {
	ListProducts(ctx context.Context, query string) ([]ProductDTO, error)
	GetProduct(ctx context.Context, id int) (*ProductDTO, error)
}

type productReader interface {
	FindByID(ctx context.Context, id int) (*models.Product, error)
	List(ctx context.Context, query string) ([]models.Product, error)
}

type service struct {
	repo productReader
}

// NewService constructs a catalog service instance.
func NewService(repo productReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

// ListProducts returns catalog products, optionally filtered by name.
func (s *service) ListProducts(ctx context.Context, query string) ([]ProductDTO, error) {
	products, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}
	dtos := make([]ProductDTO, 0, len(products))
	for i := range products {
		dtos = append(dtos, *NewProductDTO(&products[i]))
	}
	return dtos, nil
}

// GetProduct loads a single product by id.
func (s *service) GetProduct(ctx context.Context, id int) (*ProductDTO, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id must be positive")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	return NewProductDTO(product), nil
}
