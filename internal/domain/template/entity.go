package template

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaterialTemplate is the staff-authored master entry (name + code) that
// suppliers specialize into concrete submissions. The category name is a
// snapshot kept in sync by the taxonomy registry on rename.
type MaterialTemplate struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
	Code         string    `json:"code" gorm:"uniqueIndex;not null" validate:"required"`
	CategoryID   int64     `json:"category_id" gorm:"index"`
	CategoryName string    `json:"category_name"`
	CreatedBy    int64     `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (MaterialTemplate) TableName() string {
	return "material_templates"
}

// MaterialSubmission is a supplier proposal against a template. Approved is
// tri-state: nil while pending, then terminally true or false. Once non-nil
// it never reverts; approval consumes the submission into a Material.
type MaterialSubmission struct {
	ID             int64           `json:"id" gorm:"primaryKey"`
	TemplateID     int64           `json:"template_id" gorm:"not null;index"`
	ShopID         int64           `json:"shop_id" gorm:"not null;index"`
	Rate           decimal.Decimal `json:"rate" gorm:"type:decimal(12,2)"`
	Unit           string          `json:"unit"`
	Brand          string          `json:"brand,omitempty"`
	Model          string          `json:"model,omitempty"`
	Spec           string          `json:"spec,omitempty"`
	SubmittedBy    int64           `json:"submitted_by"`
	SubmittedAt    time.Time       `json:"submitted_at"`
	Approved       *bool           `json:"approved"`
	ApprovalReason string          `json:"approval_reason,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (MaterialSubmission) TableName() string {
	return "material_submissions"
}

// IsPending reports whether the submission is still reviewable.
func (s *MaterialSubmission) IsPending() bool {
	return s.Approved == nil
}
