package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/jeansstore/backend/pkg/db/models"
)

// ProductDTO is the catalog read model returned by the API.
type ProductDTO struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Sizes       []string        `json:"sizes"`
	Description string          `json:"description"`
}

// NewProductDTO maps the persistence model to the read model.
func NewProductDTO(product *models.Product) *ProductDTO {
	if product == nil {
		return nil
	}
	return &ProductDTO{
		ID:          product.ID,
		Name:        product.Name,
		Price:       product.Price,
		Image:       product.Image,
		Sizes:       product.SizeList(),
		Description: product.Description,
	}
}
