package repository

import (
	"context"
	"testing"

	"github.com/Sarab71/fossnflories/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_CRUD(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewMongoProductRepository(db)

	ctx := context.Background()
	product := &domain.Product{
		Name:        "Clubmaster",
		Price:       799.0,
		Description: "Classic frame",
		ModelNumber: "CM-200",
		Category:    []string{"men", "sunglasses"},
		Images:      []domain.ImageRef{{PublicID: "cm200", URL: "https://cdn.example/cm200.jpg"}},
	}
	require.NoError(t, repo.CreateProduct(ctx, product))
	require.NotEmpty(t, product.ID)

	got, err := repo.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Clubmaster", got.Name)
	assert.Equal(t, []string{"men", "sunglasses"}, got.Category)

	product.Price = 699.0
	product.Category = []string{"men"}
	require.NoError(t, repo.UpdateProduct(ctx, product))

	got, err = repo.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 699.0, got.Price)

	require.NoError(t, repo.DeleteProduct(ctx, product.ID))
	_, err = repo.GetProduct(ctx, product.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductRepository_ListByCategories(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewMongoProductRepository(db)

	ctx := context.Background()
	require.NoError(t, repo.CreateProduct(ctx, &domain.Product{Name: "A", Price: 1, Category: []string{"men"}}))
	require.NoError(t, repo.CreateProduct(ctx, &domain.Product{Name: "B", Price: 1, Category: []string{"women"}}))
	require.NoError(t, repo.CreateProduct(ctx, &domain.Product{Name: "C", Price: 1, Category: []string{"men", "polarized"}}))

	all, err := repo.ListProducts(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	men, err := repo.ListProducts(ctx, []string{"men"})
	require.NoError(t, err)
	assert.Len(t, men, 2)

	mixed, err := repo.ListProducts(ctx, []string{"women", "polarized"})
	require.NoError(t, err)
	assert.Len(t, mixed, 2)
}

func TestProductRepository_GetProduct_BadID(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewMongoProductRepository(db)

	_, err := repo.GetProduct(context.Background(), "not-a-hex-id")
	assert.ErrorIs(t, err, ErrProductNotFound)
}
