package catalog

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/jeansstore/backend/pkg/db/models"
)

// Repository wires together product persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a single product.
func (r *Repository) FindByID(ctx context.Context, id int) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns products matching the optional name filter, ordered by id.
// The filter is a case-insensitive substring match.
func (r *Repository) List(ctx context.Context, query string) ([]models.Product, error) {
	tx := r.db.WithContext(ctx).Order("id ASC")
	query = strings.TrimSpace(query)
	if query != "" {
		pattern := "%" + strings.ToLower(query) + "%"
		tx = tx.Where("LOWER(name) LIKE ?", pattern)
	}
	var products []models.Product
	if err := tx.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
