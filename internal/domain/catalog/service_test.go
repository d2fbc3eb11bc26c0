package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: ":memory:"}),
		&gorm.Config{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&Shop{}, &Material{}))
	return db
}

func newService(t *testing.T) (*Service, *gorm.DB) {
	db := setupDB(t)
	return NewService(NewShopRepository(db), NewMaterialRepository(db)), db
}

func TestShopVisibilityFilter(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	shop, err := svc.SubmitShop(ctx, CreateShopRequest{Name: "S1", City: "Colombo"}, 5)
	require.NoError(t, err)
	assert.False(t, shop.Approved)

	public, err := svc.ListPublicShops(ctx)
	require.NoError(t, err)
	assert.Empty(t, public)

	pending, err := svc.ListPendingShops(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "pending", pending[0].Status)
	assert.Equal(t, shop.ID, pending[0].Shop.ID)

	_, err = svc.ApproveShop(ctx, shop.ID)
	require.NoError(t, err)

	public, err = svc.ListPublicShops(ctx)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, shop.ID, public[0].ID)

	pending, err = svc.ListPendingShops(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestShopReReview(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	shop, err := svc.SubmitShop(ctx, CreateShopRequest{Name: "S1"}, 5)
	require.NoError(t, err)

	_, err = svc.RejectShop(ctx, shop.ID, "")
	assert.ErrorIs(t, err, ErrReasonRequired)

	rejected, err := svc.RejectShop(ctx, shop.ID, "incomplete address")
	require.NoError(t, err)
	assert.False(t, rejected.Approved)
	assert.Equal(t, "incomplete address", rejected.ApprovalReason)

	// Unlike submissions the gate is re-reviewable; approval clears the reason.
	approved, err := svc.ApproveShop(ctx, shop.ID)
	require.NoError(t, err)
	assert.True(t, approved.Approved)
	assert.Empty(t, approved.ApprovalReason)
}

func TestMaterialVisibilityFilter(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	shop, err := svc.SubmitShop(ctx, CreateShopRequest{Name: "S1"}, 5)
	require.NoError(t, err)

	m, err := svc.SubmitMaterial(ctx, CreateMaterialRequest{
		Name:     "Cement",
		Code:     "CEM-01",
		Rate:     decimal.NewFromInt(350),
		Unit:     "bag",
		ShopID:   shop.ID,
		Category: "Cement",
	}, 5)
	require.NoError(t, err)
	assert.False(t, m.Approved)

	public, total, err := svc.ListPublicMaterials(ctx, MaterialFilters{})
	require.NoError(t, err)
	assert.Empty(t, public)
	assert.Zero(t, total)

	pending, err := svc.ListPendingMaterials(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "pending", pending[0].Status)

	_, err = svc.ApproveMaterial(ctx, m.ID)
	require.NoError(t, err)

	public, total, err = svc.ListPublicMaterials(ctx, MaterialFilters{Category: "Cement"})
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, int64(1), total)
	assert.True(t, public[0].Rate.Equal(decimal.NewFromInt(350)))
}

func TestSubmitMaterial_UnknownShop(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	_, err := svc.SubmitMaterial(ctx, CreateMaterialRequest{Name: "Cement", ShopID: 42}, 5)
	assert.ErrorIs(t, err, ErrShopNotFound)
}

func TestApproveShop_UnknownID(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	_, err := svc.ApproveShop(ctx, 42)
	assert.ErrorIs(t, err, ErrShopNotFound)

	_, err = svc.RejectMaterial(ctx, 42, "reason")
	assert.ErrorIs(t, err, ErrMaterialNotFound)
}
