package boq

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

	require.NoError(t, db.AutoMigrate(&Project{}, &Version{}, &Item{}))
	return db
}

func newService(t *testing.T) (*Service, *gorm.DB) {
	db := setupDB(t)
	return NewService(NewRepository(db)), db
}

func createProject(t *testing.T, svc *Service) *Project {
	p, err := svc.CreateProject(context.Background(), CreateProjectRequest{
		Name:   "Tower A",
		Client: "Acme Builders",
		Budget: decimal.NewFromInt(500000),
	}, 9)
	require.NoError(t, err)
	return p
}

func TestVersionNumbering_Monotonic(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	p := createProject(t, svc)

	v1, err := svc.CreateVersion(ctx, p.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, v1.VersionNumber)

	v2, err := svc.CreateVersion(ctx, p.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, v2.VersionNumber)

	// Numbering is MAX+1, not a counter: deleting the newest version frees
	// its number for the next creation.
	require.NoError(t, svc.DeleteVersion(ctx, v2.ID))
	v3, err := svc.CreateVersion(ctx, p.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, v3.VersionNumber)

	_, err = svc.CreateVersion(ctx, "missing", nil)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestVersionSnapshot_SurvivesRename(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	p := createProject(t, svc)

	v1, err := svc.CreateVersion(ctx, p.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "Tower A", v1.ProjectName)
	assert.Equal(t, "Acme Builders", v1.ProjectClient)

	_, err = svc.UpdateProject(ctx, p.ID, UpdateProjectRequest{Name: "Tower B"})
	require.NoError(t, err)

	versions, err := svc.ListVersions(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, versions, 1)
	assert.Equal(t, "Tower A", versions[0].ProjectName)

	v2, err := svc.CreateVersion(ctx, p.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "Tower B", v2.ProjectName)
}

func TestCopyVersion_Fidelity(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	p := createProject(t, svc)

	v1, err := svc.CreateVersion(ctx, p.ID, nil)
	require.NoError(t, err)

	original, err := svc.AddItem(ctx, AddItemRequest{
		ProjectID:     p.ID,
		VersionID:     &v1.ID,
		EstimatorKind: "flooring",
		Payload:       map[string]interface{}{"qty": 10.0, "finish": "tile"},
	})
	require.NoError(t, err)

	v2, err := svc.CreateVersion(ctx, p.ID, &v1.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, v2.VersionNumber)

	copies, err := svc.ListItems(ctx, p.ID, &v2.ID)
	require.NoError(t, err)
	require.Len(t, copies, 1)
	assert.NotEqual(t, original.ID, copies[0].ID)
	assert.Equal(t, "flooring", copies[0].EstimatorKind)
	assert.Equal(t, original.Payload["qty"], copies[0].Payload["qty"])

	// Mutating the copy must not touch the source item.
	_, err = svc.UpdateItem(ctx, copies[0].ID, map[string]interface{}{"qty": 99.0})
	require.NoError(t, err)

	sources, err := svc.ListItems(ctx, p.ID, &v1.ID)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, 10.0, sources[0].Payload["qty"])

	unknown := "missing"
	_, err = svc.CreateVersion(ctx, p.ID, &unknown)
	assert.ErrorIs(t, err, ErrVersionNotFound)
}

func TestDeleteVersion_LeavesProjectAndOtherVersions(t *testing.T) {
	ctx := context.Background()
	svc, db := newService(t)
	p := createProject(t, svc)

	v1, err := svc.CreateVersion(ctx, p.ID, nil)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, AddItemRequest{
		ProjectID:     p.ID,
		VersionID:     &v1.ID,
		EstimatorKind: "flooring",
		Payload:       map[string]interface{}{"qty": 10.0},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteVersion(ctx, v1.ID))

	var items int64
	db.Model(&Item{}).Where("project_id = ?", p.ID).Count(&items)
	assert.Zero(t, items)

	_, err = svc.GetProject(ctx, p.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteVersion(ctx, v1.ID), ErrVersionNotFound)
}

func TestDeleteProject_Cascades(t *testing.T) {
	ctx := context.Background()
	svc, db := newService(t)
	p := createProject(t, svc)

	v1, err := svc.CreateVersion(ctx, p.ID, nil)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, AddItemRequest{
		ProjectID:     p.ID,
		VersionID:     &v1.ID,
		EstimatorKind: "plumbing",
		Payload:       map[string]interface{}{"qty": 3.0},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProject(ctx, p.ID))

	var projects, versions, items int64
	db.Model(&Project{}).Count(&projects)
	db.Model(&Version{}).Count(&versions)
	db.Model(&Item{}).Count(&items)
	assert.Zero(t, projects)
	assert.Zero(t, versions)
	assert.Zero(t, items)

	assert.ErrorIs(t, svc.DeleteProject(ctx, p.ID), ErrProjectNotFound)
}

func TestProjectStatus_ForwardOnly(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	p := createProject(t, svc)

	_, err := svc.UpdateProject(ctx, p.ID, UpdateProjectRequest{Status: "finalized"})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	updated, err := svc.UpdateProject(ctx, p.ID, UpdateProjectRequest{Status: "submitted"})
	require.NoError(t, err)
	assert.Equal(t, ProjectStatusSubmitted, updated.Status)

	_, err = svc.UpdateProject(ctx, p.ID, UpdateProjectRequest{Status: "draft"})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	updated, err = svc.UpdateProject(ctx, p.ID, UpdateProjectRequest{Status: "finalized"})
	require.NoError(t, err)
	assert.Equal(t, ProjectStatusFinalized, updated.Status)
}

func TestVersionStatus_ForwardOnly(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	p := createProject(t, svc)

	v, err := svc.CreateVersion(ctx, p.ID, nil)
	require.NoError(t, err)

	updated, err := svc.UpdateVersionStatus(ctx, v.ID, "submitted")
	require.NoError(t, err)
	assert.Equal(t, VersionStatusSubmitted, updated.Status)

	_, err = svc.UpdateVersionStatus(ctx, v.ID, "draft")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestListItems_FiltersSeededRows(t *testing.T) {
	ctx := context.Background()
	svc, db := newService(t)
	p := createProject(t, svc)

	_, err := svc.AddItem(ctx, AddItemRequest{
		ProjectID:     p.ID,
		EstimatorKind: "flooring",
		Payload:       map[string]interface{}{"qty": 1.0},
	})
	require.NoError(t, err)

	// A seeded row inserted outside the API must stay invisible.
	require.NoError(t, db.Create(&Item{
		ID:            "seeded-1",
		ProjectID:     p.ID,
		EstimatorKind: "flooring",
		UserAdded:     false,
	}).Error)

	// The false value must survive the insert; a column default would
	// overwrite it because gorm omits zero-valued bools.
	var seeded Item
	require.NoError(t, db.First(&seeded, "id = ?", "seeded-1").Error)
	assert.False(t, seeded.UserAdded)

	items, err := svc.ListItems(ctx, p.ID, nil)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].UserAdded)
}
