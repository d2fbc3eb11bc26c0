package template

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"boqbase/internal/domain/catalog"
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

	require.NoError(t, db.AutoMigrate(
		&catalog.Shop{},
		&MaterialTemplate{},
		&catalog.Material{},
		&MaterialSubmission{},
	))
	return db
}

type stubCategoryLookup struct {
	ids map[string]int64
}

func (s *stubCategoryLookup) CategoryIDByName(ctx context.Context, name string) (int64, error) {
	return s.ids[name], nil
}

func newTestService(t *testing.T, db *gorm.DB) (*Service, *catalog.ShopRepository) {
	shopRepo := catalog.NewShopRepository(db)
	lookup := &stubCategoryLookup{ids: map[string]int64{"Cement": 1}}
	return NewService(NewRepository(db), shopRepo, lookup), shopRepo
}

func seedTemplateAndShop(t *testing.T, db *gorm.DB, svc *Service, shopRepo *catalog.ShopRepository) (*MaterialTemplate, *catalog.Shop) {
	ctx := context.Background()

	tpl, err := svc.CreateTemplate(ctx, CreateTemplateRequest{
		Name:     "Cement",
		Code:     "CEM-01",
		Category: "Cement",
	}, 1)
	require.NoError(t, err)

	shop := &catalog.Shop{Name: "S1", OwnerID: 5}
	require.NoError(t, shopRepo.Create(ctx, shop))
	return tpl, shop
}

func TestApproveSubmission_MaterializesMaterial(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	svc, shopRepo := newTestService(t, db)
	tpl, shop := seedTemplateAndShop(t, db, svc, shopRepo)

	sub, err := svc.CreateSubmission(ctx, CreateSubmissionRequest{
		TemplateID: tpl.ID,
		ShopID:     shop.ID,
		Rate:       decimal.NewFromInt(350),
		Unit:       "bag",
		Brand:      "Holcim",
	}, 7)
	require.NoError(t, err)
	require.Nil(t, sub.Approved)

	approved, material, err := svc.ApproveSubmission(ctx, sub.ID)
	require.NoError(t, err)

	require.NotNil(t, approved.Approved)
	assert.True(t, *approved.Approved)

	require.NotNil(t, material)
	assert.Equal(t, "Cement", material.Name)
	assert.Equal(t, "CEM-01", material.Code)
	assert.True(t, material.Rate.Equal(decimal.NewFromInt(350)))
	assert.Equal(t, shop.ID, material.ShopID)
	assert.Equal(t, "bag", material.Unit)
	assert.Equal(t, "Holcim", material.Brand)
	assert.True(t, material.Approved)
	require.NotNil(t, material.TemplateID)
	assert.Equal(t, tpl.ID, *material.TemplateID)
}

func TestApproveSubmission_SecondCallFails(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	svc, shopRepo := newTestService(t, db)
	tpl, shop := seedTemplateAndShop(t, db, svc, shopRepo)

	sub, err := svc.CreateSubmission(ctx, CreateSubmissionRequest{
		TemplateID: tpl.ID,
		ShopID:     shop.ID,
		Rate:       decimal.NewFromInt(100),
	}, 7)
	require.NoError(t, err)

	_, _, err = svc.ApproveSubmission(ctx, sub.ID)
	require.NoError(t, err)

	_, _, err = svc.ApproveSubmission(ctx, sub.ID)
	assert.ErrorIs(t, err, ErrAlreadyReviewed)

	// Exactly one material was created by the winning call.
	var count int64
	require.NoError(t, db.Model(&catalog.Material{}).
		Where("template_id = ?", tpl.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestApproveSubmission_ConcurrentCallers(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	svc, shopRepo := newTestService(t, db)
	tpl, shop := seedTemplateAndShop(t, db, svc, shopRepo)

	sub, err := svc.CreateSubmission(ctx, CreateSubmissionRequest{
		TemplateID: tpl.ID,
		ShopID:     shop.ID,
		Rate:       decimal.NewFromInt(100),
	}, 7)
	require.NoError(t, err)

	const callers = 8
	errs := make(chan error, callers)
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			_, _, err := svc.ApproveSubmission(ctx, sub.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var wins, losses int
	for err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrAlreadyReviewed):
			losses++
		default:
			t.Fatalf("unexpected approval error: %v", err)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, callers-1, losses)

	var count int64
	require.NoError(t, db.Model(&catalog.Material{}).
		Where("template_id = ?", tpl.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdateTemplate_UniqueBackstop(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	repo := NewRepository(db)
	svc, _ := newTestService(t, db)

	cement, err := svc.CreateTemplate(ctx, CreateTemplateRequest{
		Name:     "Cement",
		Code:     "CEM-01",
		Category: "Cement",
	}, 1)
	require.NoError(t, err)
	_, err = svc.CreateTemplate(ctx, CreateTemplateRequest{
		Name:     "Sand",
		Code:     "SND-01",
		Category: "Cement",
	}, 1)
	require.NoError(t, err)

	// Collisions at the index map to the domain errors, not raw
	// driver errors.
	cement.Code = "SND-01"
	assert.ErrorIs(t, repo.UpdateTemplate(ctx, cement), ErrCodeTaken)

	cement.Code = "CEM-01"
	cement.Name = "Sand"
	assert.ErrorIs(t, repo.UpdateTemplate(ctx, cement), ErrNameTaken)
}

func TestRejectSubmission_TerminalWithReason(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	svc, shopRepo := newTestService(t, db)
	tpl, shop := seedTemplateAndShop(t, db, svc, shopRepo)

	sub, err := svc.CreateSubmission(ctx, CreateSubmissionRequest{
		TemplateID: tpl.ID,
		ShopID:     shop.ID,
	}, 7)
	require.NoError(t, err)

	_, err = svc.RejectSubmission(ctx, sub.ID, "")
	assert.ErrorIs(t, err, ErrReasonRequired)

	rejected, err := svc.RejectSubmission(ctx, sub.ID, "rate out of range")
	require.NoError(t, err)
	require.NotNil(t, rejected.Approved)
	assert.False(t, *rejected.Approved)
	assert.Equal(t, "rate out of range", rejected.ApprovalReason)

	// No material, and the decision does not revert.
	var count int64
	require.NoError(t, db.Model(&catalog.Material{}).Count(&count).Error)
	assert.Zero(t, count)

	_, _, err = svc.ApproveSubmission(ctx, sub.ID)
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestCreateSubmission_UnknownReferences(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	svc, shopRepo := newTestService(t, db)
	tpl, shop := seedTemplateAndShop(t, db, svc, shopRepo)

	_, err := svc.CreateSubmission(ctx, CreateSubmissionRequest{TemplateID: 999, ShopID: shop.ID}, 7)
	assert.ErrorIs(t, err, ErrTemplateNotFound)

	_, err = svc.CreateSubmission(ctx, CreateSubmissionRequest{TemplateID: tpl.ID, ShopID: 999}, 7)
	assert.ErrorIs(t, err, catalog.ErrShopNotFound)
}

func TestUpdateTemplate_DoesNotTouchMaterializedRows(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	svc, shopRepo := newTestService(t, db)
	tpl, shop := seedTemplateAndShop(t, db, svc, shopRepo)

	sub, err := svc.CreateSubmission(ctx, CreateSubmissionRequest{
		TemplateID: tpl.ID,
		ShopID:     shop.ID,
	}, 7)
	require.NoError(t, err)

	_, material, err := svc.ApproveSubmission(ctx, sub.ID)
	require.NoError(t, err)

	_, err = svc.UpdateTemplate(ctx, tpl.ID, UpdateTemplateRequest{Name: "Cement OPC", Code: "CEM-02"})
	require.NoError(t, err)

	var stored catalog.Material
	require.NoError(t, db.First(&stored, "id = ?", material.ID).Error)
	assert.Equal(t, "Cement", stored.Name)
	assert.Equal(t, "CEM-01", stored.Code)
}

func TestDeleteTemplate_CascadesSubmissionsAndMaterials(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	svc, shopRepo := newTestService(t, db)
	tpl, shop := seedTemplateAndShop(t, db, svc, shopRepo)

	sub, err := svc.CreateSubmission(ctx, CreateSubmissionRequest{
		TemplateID: tpl.ID,
		ShopID:     shop.ID,
	}, 7)
	require.NoError(t, err)
	_, _, err = svc.ApproveSubmission(ctx, sub.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTemplate(ctx, tpl.ID))

	var templates, submissions, materials int64
	db.Model(&MaterialTemplate{}).Count(&templates)
	db.Model(&MaterialSubmission{}).Count(&submissions)
	db.Model(&catalog.Material{}).Count(&materials)
	assert.Zero(t, templates)
	assert.Zero(t, submissions)
	assert.Zero(t, materials)
}

func TestCreateTemplate_Conflicts(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	svc, shopRepo := newTestService(t, db)
	seedTemplateAndShop(t, db, svc, shopRepo)

	_, err := svc.CreateTemplate(ctx, CreateTemplateRequest{Name: "Cement", Code: "X-1"}, 1)
	assert.ErrorIs(t, err, ErrNameTaken)

	_, err = svc.CreateTemplate(ctx, CreateTemplateRequest{Name: "Other", Code: "CEM-01"}, 1)
	assert.ErrorIs(t, err, ErrCodeTaken)
}
