package mysql

import (
	"context"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/foodordering/internal/order/domain"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// 集成测试需要真实 MySQL，通过 FOODORDERING_TEST_DSN 注入，未设置时跳过。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("FOODORDERING_TEST_DSN")
	if dsn == "" {
		t.Skip("FOODORDERING_TEST_DSN not set, skipping integration test")
	}

	db, err := gorm.Open(gormmysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&OrderModel{}, &OrderItemModel{}))

	t.Cleanup(func() {
		db.Exec("DELETE FROM order_items WHERE order_id LIKE 'ORD-TEST%'")
		db.Exec("DELETE FROM orders WHERE id LIKE 'ORD-TEST%'")
	})
	return db
}

func testOrder(id string, items []domain.OrderItem) *domain.Order {
	return &domain.Order{
		ID:            id,
		UserID:        1,
		Total:         decimal.NewFromFloat(23.00),
		Status:        domain.OrderStatusPreparing,
		Address:       "1 Main St",
		Phone:         "13800000000",
		PaymentMethod: "cash",
		Items:         items,
	}
}

func TestCreate_PersistsHeaderAndItems(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := testOrder("ORD-TEST00001", []domain.OrderItem{
		{ProductID: 10, Quantity: 2, Price: decimal.NewFromFloat(9.50)},
		{ProductID: 11, Quantity: 1, Price: decimal.NewFromFloat(4.00)},
	})
	require.NoError(t, repo.Create(ctx, order))

	var headerCount, itemCount int64
	require.NoError(t, db.Model(&OrderModel{}).Where("id = ?", order.ID).Count(&headerCount).Error)
	require.NoError(t, db.Model(&OrderItemModel{}).Where("order_id = ?", order.ID).Count(&itemCount).Error)
	assert.Equal(t, int64(1), headerCount)
	assert.Equal(t, int64(2), itemCount)
}

// 任一行项写入失败时整个订单回滚，不留下半成品订单。
// 通过重复的显式行项主键强制第二条插入失败。
func TestCreate_RollsBackOnItemFailure(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := testOrder("ORD-TEST00002", []domain.OrderItem{
		{ID: 999001, ProductID: 10, Quantity: 2, Price: decimal.NewFromFloat(9.50)},
		{ID: 999001, ProductID: 11, Quantity: 1, Price: decimal.NewFromFloat(4.00)},
	})
	require.Error(t, repo.Create(ctx, order))

	var headerCount, itemCount int64
	require.NoError(t, db.Model(&OrderModel{}).Where("id = ?", order.ID).Count(&headerCount).Error)
	require.NoError(t, db.Model(&OrderItemModel{}).Where("order_id = ?", order.ID).Count(&itemCount).Error)
	assert.Equal(t, int64(0), headerCount, "order header must not survive a failed item insert")
	assert.Equal(t, int64(0), itemCount, "no orphan items after rollback")
}

func TestGetByUser_OwnershipScoped(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := testOrder("ORD-TEST00003", []domain.OrderItem{
		{ProductID: 10, Quantity: 1, Price: decimal.NewFromFloat(9.50)},
	})
	require.NoError(t, repo.Create(ctx, order))

	// 其他用户看不到该订单
	got, err := repo.GetByUser(ctx, order.ID, 2)
	require.NoError(t, err)
	assert.Nil(t, got)

	// 不存在的订单同样返回 nil
	got, err = repo.GetByUser(ctx, "ORD-TESTNONE", 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}
