package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/foodordering/internal/admin/domain"
	"github.com/wyfcoding/foodordering/pkg/apperr"
)

// mockAdminRepository implements domain.Repository for testing
type mockAdminRepository struct {
	orders       []*domain.CustomerOrder
	users        []*domain.UserSummary
	gotStatus    string
	updateFound  bool
	updateCalled bool
	referenced   bool
	deleteFound  bool
	deleteCalled bool
	createdID    uint
	createdInput domain.ProductInput
	updFound     bool
	err          error
}

func (m *mockAdminRepository) ListOrders(_ context.Context, status string) ([]*domain.CustomerOrder, error) {
	m.gotStatus = status
	return m.orders, m.err
}

func (m *mockAdminRepository) UpdateOrderStatus(_ context.Context, _, status string) (bool, error) {
	m.updateCalled = true
	m.gotStatus = status
	return m.updateFound, m.err
}

func (m *mockAdminRepository) ListUsers(_ context.Context) ([]*domain.UserSummary, error) {
	return m.users, m.err
}

func (m *mockAdminRepository) CreateProduct(_ context.Context, input domain.ProductInput) (uint, error) {
	m.createdInput = input
	return m.createdID, m.err
}

func (m *mockAdminRepository) UpdateProduct(_ context.Context, _ uint, input domain.ProductInput) (bool, error) {
	m.createdInput = input
	return m.updFound, m.err
}

func (m *mockAdminRepository) ProductReferenced(_ context.Context, _ uint) (bool, error) {
	return m.referenced, m.err
}

func (m *mockAdminRepository) DeleteProduct(_ context.Context, _ uint) (bool, error) {
	m.deleteCalled = true
	return m.deleteFound, m.err
}

func validProduct() ProductCommand {
	return ProductCommand{
		Name:       "Margherita",
		Price:      decimal.NewFromFloat(12.50),
		CategoryID: 1,
	}
}

func TestListAllOrders(t *testing.T) {
	orders := []*domain.CustomerOrder{{CustomerName: "Alice"}}
	repo := &mockAdminRepository{orders: orders}
	svc := NewAdminService(repo)

	got, err := svc.ListAllOrders(context.Background(), "preparing")
	require.NoError(t, err)
	assert.Equal(t, orders, got)
	assert.Equal(t, "preparing", repo.gotStatus)
}

func TestListAllOrders_InvalidStatusFilter(t *testing.T) {
	svc := NewAdminService(&mockAdminRepository{})

	_, err := svc.ListAllOrders(context.Background(), "shipped")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, "Invalid status", apperr.ClientMessage(err))
}

func TestUpdateOrderStatus(t *testing.T) {
	repo := &mockAdminRepository{updateFound: true}
	svc := NewAdminService(repo)

	err := svc.UpdateOrderStatus(context.Background(), "ORD-123456001", "delivering")
	require.NoError(t, err)
	assert.Equal(t, "delivering", repo.gotStatus)
}

func TestUpdateOrderStatus_InvalidStatus(t *testing.T) {
	repo := &mockAdminRepository{}
	svc := NewAdminService(repo)

	err := svc.UpdateOrderStatus(context.Background(), "ORD-123456001", "shipped")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.False(t, repo.updateCalled)
}

func TestUpdateOrderStatus_NotFound(t *testing.T) {
	svc := NewAdminService(&mockAdminRepository{updateFound: false})

	err := svc.UpdateOrderStatus(context.Background(), "ORD-000000000", "cancelled")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, "Order not found", apperr.ClientMessage(err))
}

func TestCreateProduct(t *testing.T) {
	repo := &mockAdminRepository{createdID: 9}
	svc := NewAdminService(repo)

	id, err := svc.CreateProduct(context.Background(), validProduct())
	require.NoError(t, err)
	assert.Equal(t, uint(9), id)
	assert.Equal(t, "Margherita", repo.createdInput.Name)
}

func TestCreateProduct_Validation(t *testing.T) {
	svc := NewAdminService(&mockAdminRepository{})

	mutations := []func(*ProductCommand){
		func(c *ProductCommand) { c.Name = "" },
		func(c *ProductCommand) { c.Price = decimal.Zero },
		func(c *ProductCommand) { c.CategoryID = 0 },
	}
	for _, mutate := range mutations {
		cmd := validProduct()
		mutate(&cmd)

		_, err := svc.CreateProduct(context.Background(), cmd)
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		assert.Equal(t, "Name, price, and category are required", apperr.ClientMessage(err))
	}
}

func TestUpdateProduct_NotFound(t *testing.T) {
	svc := NewAdminService(&mockAdminRepository{updFound: false})

	err := svc.UpdateProduct(context.Background(), 404, validProduct())
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, "Product not found", apperr.ClientMessage(err))
}

func TestDeleteProduct(t *testing.T) {
	repo := &mockAdminRepository{deleteFound: true}
	svc := NewAdminService(repo)

	err := svc.DeleteProduct(context.Background(), 9)
	require.NoError(t, err)
	assert.True(t, repo.deleteCalled)
}

// 被订单引用的商品拒绝删除，保留历史订单的行项完整性。
func TestDeleteProduct_Referenced(t *testing.T) {
	repo := &mockAdminRepository{referenced: true}
	svc := NewAdminService(repo)

	err := svc.DeleteProduct(context.Background(), 9)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Equal(t, "Cannot delete product as it is associated with orders", apperr.ClientMessage(err))
	assert.False(t, repo.deleteCalled)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	svc := NewAdminService(&mockAdminRepository{deleteFound: false})

	err := svc.DeleteProduct(context.Background(), 404)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestListUsers(t *testing.T) {
	users := []*domain.UserSummary{{ID: 1, Name: "Alice", Role: "user"}}
	svc := NewAdminService(&mockAdminRepository{users: users})

	got, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, users, got)
}
