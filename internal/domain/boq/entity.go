package boq

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProjectStatus string

const (
	ProjectStatusDraft     ProjectStatus = "draft"
	ProjectStatusSubmitted ProjectStatus = "submitted"
	ProjectStatusFinalized ProjectStatus = "finalized"
)

type VersionStatus string

const (
	VersionStatusDraft     VersionStatus = "draft"
	VersionStatusSubmitted VersionStatus = "submitted"
)

// Project owns an ordered sequence of versions. IDs are uuid strings
// generated in code so the same entities work on postgres and sqlite.
type Project struct {
	ID        string          `json:"id" gorm:"primaryKey;size:36"`
	Name      string          `json:"name" gorm:"not null" validate:"required"`
	Client    string          `json:"client"`
	Budget    decimal.Decimal `json:"budget" gorm:"type:decimal(15,2)"`
	Status    ProjectStatus   `json:"status" gorm:"size:16;not null;default:'draft'"`
	CreatedBy int64           `json:"created_by" gorm:"index"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (Project) TableName() string {
	return "boq_projects"
}

// Version numbers are monotonic per project, starting at 1. The project
// name/client are denormalized onto the version at creation time so
// historical versions keep displaying what the project was called then.
type Version struct {
	ID            string        `json:"id" gorm:"primaryKey;size:36"`
	ProjectID     string        `json:"project_id" gorm:"size:36;not null;uniqueIndex:idx_version_project_number"`
	VersionNumber int           `json:"version_number" gorm:"not null;uniqueIndex:idx_version_project_number"`
	Status        VersionStatus `json:"status" gorm:"size:16;not null;default:'draft'"`
	ProjectName   string        `json:"project_name"`
	ProjectClient string        `json:"project_client"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (Version) TableName() string {
	return "boq_versions"
}

// Item is a line entry pushed by estimator tooling. The payload shape is
// owned by the estimator category, not this store. VersionID stays nullable
// for legacy unversioned rows; UserAdded=false is reserved for seeded rows
// that must never surface in listings. UserAdded carries no column default:
// gorm drops zero-valued plain bools from the INSERT when a default tag is
// present, which would silently flip seeded rows back to true.
type Item struct {
	ID            string                 `json:"id" gorm:"primaryKey;size:36"`
	ProjectID     string                 `json:"project_id" gorm:"size:36;not null;index"`
	VersionID     *string                `json:"version_id,omitempty" gorm:"size:36;index"`
	EstimatorKind string                 `json:"estimator_kind"`
	Payload       map[string]interface{} `json:"payload" gorm:"serializer:json"`
	UserAdded     bool                   `json:"user_added" gorm:"not null"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

func (Item) TableName() string {
	return "boq_items"
}
