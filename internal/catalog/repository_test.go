package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jeansstore/backend/pkg/db/models"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS products (
  id INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  price NUMERIC(10,2) NOT NULL,
  image TEXT NOT NULL,
  sizes TEXT NOT NULL,
  description TEXT NOT NULL,
  created_at TIMESTAMP,
  updated_at TIMESTAMP
);`
	require.NoError(t, db.Exec(schema).Error)

	seed := []models.Product{
		{ID: 1, Name: "Calça Jeans Skinny Azul", Price: decimal.RequireFromString("89.90"), Image: "/images/jeans-skinny-azul.png", Sizes: "36,38,40,42,44", Description: "Calça jeans skinny de lavagem azul clássica"},
		{ID: 3, Name: "Calça Jeans Destroyed", Price: decimal.RequireFromString("79.90"), Image: "/images/jeans-destroyed.png", Sizes: "36,38,40,42", Description: "Calça jeans com detalhes destroyed"},
		{ID: 6, Name: "Calça Jeans Bootcut", Price: decimal.RequireFromString("119.90"), Image: "/images/jeans-bootcut.png", Sizes: "36,38,40,42,44,46", Description: "Calça jeans bootcut com leve abertura"},
	}
	require.NoError(t, db.Create(&seed).Error)

	return db
}

func TestRepositoryFindByID(t *testing.T) {
	repo := NewRepository(setupCatalogTestDB(t))

	product, err := repo.FindByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Calça Jeans Destroyed", product.Name)
	assert.Equal(t, []string{"36", "38", "40", "42"}, product.SizeList())

	_, err = repo.FindByID(context.Background(), 99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListOrdered(t *testing.T) {
	repo := NewRepository(setupCatalogTestDB(t))

	products, err := repo.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, 1, products[0].ID)
	assert.Equal(t, 6, products[2].ID)
}

func TestRepositoryListFiltersByName(t *testing.T) {
	repo := NewRepository(setupCatalogTestDB(t))

	products, err := repo.List(context.Background(), "  BOOTCUT ")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 6, products[0].ID)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("119.90")))

	none, err := repo.List(context.Background(), "cargo")
	require.NoError(t, err)
	assert.Empty(t, none)
}
