package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

type MaterialFilters struct {
	Category    string
	SubCategory string
	ShopID      int64
	Search      string
	Limit       int
	Offset      int
}

type MaterialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

func (r *MaterialRepository) Create(ctx context.Context, m *Material) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MaterialRepository) GetByID(ctx context.Context, id int64) (*Material, error) {
	var m Material
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMaterialNotFound
		}
		return nil, err
	}
	return &m, nil
}

// ListApproved is the public catalog view consumed by estimator tooling.
func (r *MaterialRepository) ListApproved(ctx context.Context, f MaterialFilters) ([]Material, int64, error) {
	var materials []Material
	var total int64

	q := r.db.WithContext(ctx).
		Model(&Material{}).
		Where("approved = ?", true)

	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.SubCategory != "" {
		q = q.Where("sub_category = ?", f.SubCategory)
	}
	if f.ShopID > 0 {
		q = q.Where("shop_id = ?", f.ShopID)
	}
	if f.Search != "" {
		s := strings.ToLower(strings.TrimSpace(f.Search))
		if s != "" {
			q = q.Where("LOWER(name) LIKE ?", "%"+s+"%")
		}
	}

	countQuery := q.Session(&gorm.Session{})
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	err := q.Order("name ASC").Find(&materials).Error
	return materials, total, err
}

func (r *MaterialRepository) ListPending(ctx context.Context) ([]Material, error) {
	var out []Material
	err := r.db.WithContext(ctx).
		Where("approved IS NOT TRUE").
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

// SetApproval mirrors the shop gate: one conditional-free UPDATE, reason
// cleared on approve, stored on reject.
func (r *MaterialRepository) SetApproval(ctx context.Context, id int64, approved bool, reason string) (*Material, error) {
	res := r.db.WithContext(ctx).Model(&Material{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"approved":        approved,
			"approval_reason": reason,
			"updated_at":      time.Now(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrMaterialNotFound
	}
	return r.GetByID(ctx, id)
}
