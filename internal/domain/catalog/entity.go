package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Shop is a supplier outlet. It enters the catalog pending and becomes
// publicly visible only once a staff member approves it. Unlike material
// submissions the gate is re-reviewable: a rejected shop may be approved
// later.
type Shop struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"not null" validate:"required"`
	Address        string    `json:"address,omitempty"`
	City           string    `json:"city,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	OwnerID        int64     `json:"owner_id" gorm:"index"`
	Approved       bool      `json:"approved" gorm:"not null;default:false"`
	ApprovalReason string    `json:"approval_reason,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Shop) TableName() string {
	return "shops"
}

// Material is a concrete catalog entry. It is created either directly by
// staff/suppliers (pending until approved) or materialized from an approved
// submission, in which case TemplateID points at the origin template and the
// row is born approved. Taxonomy names are snapshots taken at creation time.
type Material struct {
	ID             int64           `json:"id" gorm:"primaryKey"`
	Name           string          `json:"name" gorm:"not null;index" validate:"required"`
	Code           string          `json:"code" gorm:"index"`
	Rate           decimal.Decimal `json:"rate" gorm:"type:decimal(12,2)"`
	Unit           string          `json:"unit"`
	ShopID         int64           `json:"shop_id" gorm:"index"`
	Category       string          `json:"category"`
	SubCategory    string          `json:"sub_category"`
	Product        string          `json:"product"`
	Brand          string          `json:"brand,omitempty"`
	Model          string          `json:"model,omitempty"`
	Spec           string          `json:"spec,omitempty"`
	TemplateID     *int64          `json:"template_id,omitempty" gorm:"index"`
	Approved       bool            `json:"approved" gorm:"not null;default:false"`
	ApprovalReason string          `json:"approval_reason,omitempty"`
	CreatedBy      int64           `json:"created_by"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (Material) TableName() string {
	return "materials"
}
