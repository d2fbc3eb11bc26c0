package catalog

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type ShopRepository struct {
	db *gorm.DB
}

func NewShopRepository(db *gorm.DB) *ShopRepository {
	return &ShopRepository{db: db}
}

func (r *ShopRepository) Create(ctx context.Context, s *Shop) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ShopRepository) GetByID(ctx context.Context, id int64) (*Shop, error) {
	var s Shop
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListApproved is the public catalog view.
func (r *ShopRepository) ListApproved(ctx context.Context) ([]Shop, error) {
	var out []Shop
	err := r.db.WithContext(ctx).
		Where("approved = ?", true).
		Order("name ASC").
		Find(&out).Error
	return out, err
}

// ListPending captures both rejected rows and the legacy default state.
func (r *ShopRepository) ListPending(ctx context.Context) ([]Shop, error) {
	var out []Shop
	err := r.db.WithContext(ctx).
		Where("approved IS NOT TRUE").
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

// SetApproval flips the gate in a single UPDATE so two concurrent reviews
// cannot interleave a read-then-write. Approval clears any prior reason.
func (r *ShopRepository) SetApproval(ctx context.Context, id int64, approved bool, reason string) (*Shop, error) {
	res := r.db.WithContext(ctx).Model(&Shop{}).
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
		return nil, ErrShopNotFound
	}
	return r.GetByID(ctx, id)
}
