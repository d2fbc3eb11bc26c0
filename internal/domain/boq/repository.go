package boq

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// --- projects ---

func (r *Repository) CreateProject(ctx context.Context, p *Project) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *Repository) GetProject(ctx context.Context, id string) (*Project, error) {
	var p Project
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repository) ListProjects(ctx context.Context, createdBy int64) ([]Project, error) {
	var out []Project
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if createdBy > 0 {
		q = q.Where("created_by = ?", createdBy)
	}
	err := q.Find(&out).Error
	return out, err
}

func (r *Repository) UpdateProject(ctx context.Context, p *Project) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// DeleteProjectCascade removes items, then versions, then the project row,
// inside one transaction.
func (r *Repository) DeleteProjectCascade(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&Item{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&Version{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&Project{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrProjectNotFound
		}
		return nil
	})
}

// --- versions ---

// CreateVersion computes the next monotonic number, snapshots the project
// name/client, and optionally deep-copies items from a source version, all
// inside one transaction. The unique (project_id, version_number) index
// backstops concurrent creations that compute the same MAX+1.
func (r *Repository) CreateVersion(ctx context.Context, projectID string, copyFromVersionID *string) (*Version, error) {
	var v Version

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p Project
		if err := tx.First(&p, "id = ?", projectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProjectNotFound
			}
			return err
		}

		var maxNumber int
		if err := tx.Model(&Version{}).
			Where("project_id = ?", projectID).
			Select("COALESCE(MAX(version_number), 0)").
			Scan(&maxNumber).Error; err != nil {
			return err
		}

		v = Version{
			ID:            uuid.NewString(),
			ProjectID:     projectID,
			VersionNumber: maxNumber + 1,
			Status:        VersionStatusDraft,
			ProjectName:   p.Name,
			ProjectClient: p.Client,
		}
		if err := tx.Create(&v).Error; err != nil {
			return err
		}

		if copyFromVersionID == nil {
			return nil
		}

		var source Version
		if err := tx.First(&source, "id = ? AND project_id = ?", *copyFromVersionID, projectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVersionNotFound
			}
			return err
		}

		var items []Item
		if err := tx.Where("version_id = ?", source.ID).Find(&items).Error; err != nil {
			return err
		}
		for i := range items {
			copied := items[i]
			copied.ID = uuid.NewString()
			copied.VersionID = &v.ID
			if err := tx.Create(&copied).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *Repository) GetVersion(ctx context.Context, id string) (*Version, error) {
	var v Version
	if err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVersionNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *Repository) ListVersions(ctx context.Context, projectID string) ([]Version, error) {
	var out []Version
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("version_number ASC").
		Find(&out).Error
	return out, err
}

func (r *Repository) UpdateVersion(ctx context.Context, v *Version) error {
	return r.db.WithContext(ctx).Save(v).Error
}

// DeleteVersionCascade removes the version's items before the version row.
// Items scoped to other versions of the project are untouched.
func (r *Repository) DeleteVersionCascade(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("version_id = ?", id).Delete(&Item{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&Version{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrVersionNotFound
		}
		return nil
	})
}

// --- items ---

func (r *Repository) CreateItem(ctx context.Context, it *Item) error {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(it).Error
}

func (r *Repository) GetItem(ctx context.Context, id string) (*Item, error) {
	var it Item
	if err := r.db.WithContext(ctx).First(&it, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &it, nil
}

// ListItems returns only user-added rows; seeded rows stay invisible.
func (r *Repository) ListItems(ctx context.Context, projectID string, versionID *string) ([]Item, error) {
	var out []Item
	q := r.db.WithContext(ctx).
		Where("project_id = ? AND user_added = ?", projectID, true).
		Order("created_at ASC")
	if versionID != nil {
		q = q.Where("version_id = ?", *versionID)
	}
	err := q.Find(&out).Error
	return out, err
}

func (r *Repository) UpdateItem(ctx context.Context, it *Item) error {
	return r.db.WithContext(ctx).Save(it).Error
}

func (r *Repository) DeleteItem(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Item{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}
