package application

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/foodordering/internal/catalog/domain"
	"github.com/wyfcoding/foodordering/pkg/apperr"
)

// mockProductRepository implements domain.ProductRepository for testing
type mockProductRepository struct {
	products     []*domain.Product
	product      *domain.Product
	categories   []*domain.Category
	err          error
	gotCategory  string
	gotProductID uint
}

func (m *mockProductRepository) ListProducts(_ context.Context, category string) ([]*domain.Product, error) {
	m.gotCategory = category
	return m.products, m.err
}

func (m *mockProductRepository) GetProduct(_ context.Context, id uint) (*domain.Product, error) {
	m.gotProductID = id
	return m.product, m.err
}

func (m *mockProductRepository) ListCategories(_ context.Context) ([]*domain.Category, error) {
	return m.categories, m.err
}

func TestListProducts(t *testing.T) {
	products := []*domain.Product{
		{ID: 1, Name: "Margherita", Price: decimal.NewFromFloat(12.50), CategoryName: "Pizza"},
	}
	repo := &mockProductRepository{products: products}
	svc := NewCatalogQueryService(repo)

	got, err := svc.ListProducts(context.Background(), "Pizza")
	require.NoError(t, err)
	assert.Equal(t, products, got)
	assert.Equal(t, "Pizza", repo.gotCategory)
}

func TestListProducts_NoFilter(t *testing.T) {
	repo := &mockProductRepository{products: []*domain.Product{}}
	svc := NewCatalogQueryService(repo)

	_, err := svc.ListProducts(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "", repo.gotCategory)
}

func TestGetProduct(t *testing.T) {
	product := &domain.Product{ID: 3, Name: "Tiramisu"}
	repo := &mockProductRepository{product: product}
	svc := NewCatalogQueryService(repo)

	got, err := svc.GetProduct(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, product, got)
	assert.Equal(t, uint(3), repo.gotProductID)
}

func TestGetProduct_NotFound(t *testing.T) {
	svc := NewCatalogQueryService(&mockProductRepository{})

	_, err := svc.GetProduct(context.Background(), 404)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, "Product not found", apperr.ClientMessage(err))
}

func TestListCategories(t *testing.T) {
	categories := []*domain.Category{{ID: 1, Name: "Pizza"}, {ID: 2, Name: "Dessert"}}
	svc := NewCatalogQueryService(&mockProductRepository{categories: categories})

	got, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, categories, got)
}

func TestCatalog_RepositoryError(t *testing.T) {
	repo := &mockProductRepository{err: errors.New("timeout")}
	svc := NewCatalogQueryService(repo)

	_, err := svc.ListProducts(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
	assert.NotContains(t, apperr.ClientMessage(err), "timeout")
}
