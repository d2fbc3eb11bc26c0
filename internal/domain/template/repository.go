package template

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"boqbase/internal/domain/catalog"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// --- templates ---

func (r *Repository) CreateTemplate(ctx context.Context, t *MaterialTemplate) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		if isUniqueViolation(err, "code") {
			return ErrCodeTaken
		}
		if isUniqueViolation(err, "name") {
			return ErrNameTaken
		}
		return err
	}
	return nil
}

// isUniqueViolation reports whether err is a duplicate-key failure on the
// given column, covering postgres (23505 + constraint name) and the sqlite
// driver used in tests.
func isUniqueViolation(err error, column string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, column)
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed") &&
		strings.Contains(err.Error(), column)
}

func (r *Repository) GetTemplateByID(ctx context.Context, id int64) (*MaterialTemplate, error) {
	var t MaterialTemplate
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *Repository) ListTemplates(ctx context.Context) ([]MaterialTemplate, error) {
	var out []MaterialTemplate
	err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error
	return out, err
}

func (r *Repository) CountTemplates(ctx context.Context, column, value string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&MaterialTemplate{}).
		Where(column+" = ?", value).
		Count(&n).Error
	return n, err
}

// UpdateTemplate touches only the template row. Materials already
// materialized from it are snapshots and keep their old name/code.
func (r *Repository) UpdateTemplate(ctx context.Context, t *MaterialTemplate) error {
	if err := r.db.WithContext(ctx).Save(t).Error; err != nil {
		if isUniqueViolation(err, "code") {
			return ErrCodeTaken
		}
		if isUniqueViolation(err, "name") {
			return ErrNameTaken
		}
		return err
	}
	return nil
}

// DeleteTemplateCascade removes the template's submissions and materials
// before the template itself, all-or-nothing.
func (r *Repository) DeleteTemplateCascade(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template_id = ?", id).Delete(&MaterialSubmission{}).Error; err != nil {
			return err
		}
		if err := tx.Where("template_id = ?", id).Delete(&catalog.Material{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&MaterialTemplate{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrTemplateNotFound
		}
		return nil
	})
}

// --- submissions ---

func (r *Repository) CreateSubmission(ctx context.Context, s *MaterialSubmission) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *Repository) GetSubmissionByID(ctx context.Context, id int64) (*MaterialSubmission, error) {
	var s MaterialSubmission
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *Repository) ListPendingSubmissions(ctx context.Context) ([]MaterialSubmission, error) {
	var out []MaterialSubmission
	err := r.db.WithContext(ctx).
		Where("approved IS NULL").
		Order("submitted_at ASC").
		Find(&out).Error
	return out, err
}

// ApproveSubmission performs the materialization as one atomic unit: the
// submission is flipped out of the pending state by a conditional UPDATE
// (WHERE approved IS NULL), and only the request that wins that update
// inserts the Material. A lost race or a re-invocation sees zero affected
// rows and fails with ErrAlreadyReviewed; the store, not the caller, is
// what makes the transition idempotent.
func (r *Repository) ApproveSubmission(ctx context.Context, id int64) (*MaterialSubmission, *catalog.Material, error) {
	var sub MaterialSubmission
	var mat *catalog.Material

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&sub, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSubmissionNotFound
			}
			return err
		}

		if !sub.IsPending() {
			return ErrAlreadyReviewed
		}

		var tpl MaterialTemplate
		if err := tx.First(&tpl, "id = ?", sub.TemplateID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTemplateNotFound
			}
			return err
		}

		res := tx.Model(&MaterialSubmission{}).
			Where("id = ? AND approved IS NULL", id).
			Updates(map[string]interface{}{
				"approved":        true,
				"approval_reason": "",
				"updated_at":      time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyReviewed
		}

		m := &catalog.Material{
			Name:       tpl.Name,
			Code:       tpl.Code,
			Category:   tpl.CategoryName,
			Rate:       sub.Rate,
			Unit:       sub.Unit,
			ShopID:     sub.ShopID,
			Brand:      sub.Brand,
			Model:      sub.Model,
			Spec:       sub.Spec,
			TemplateID: &tpl.ID,
			Approved:   true,
			CreatedBy:  sub.SubmittedBy,
		}
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		mat = m

		approved := true
		sub.Approved = &approved
		sub.ApprovalReason = ""
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &sub, mat, nil
}

// RejectSubmission is the symmetric terminal transition; no material is
// created and the reason is persisted.
func (r *Repository) RejectSubmission(ctx context.Context, id int64, reason string) (*MaterialSubmission, error) {
	var sub MaterialSubmission

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&sub, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSubmissionNotFound
			}
			return err
		}

		if !sub.IsPending() {
			return ErrAlreadyReviewed
		}

		res := tx.Model(&MaterialSubmission{}).
			Where("id = ? AND approved IS NULL", id).
			Updates(map[string]interface{}{
				"approved":        false,
				"approval_reason": reason,
				"updated_at":      time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyReviewed
		}

		rejected := false
		sub.Approved = &rejected
		sub.ApprovalReason = reason
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}
