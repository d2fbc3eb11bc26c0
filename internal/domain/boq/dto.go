package boq

import "github.com/shopspring/decimal"

type CreateProjectRequest struct {
	Name   string          `json:"name" binding:"required"`
	Client string          `json:"client"`
	Budget decimal.Decimal `json:"budget"`
}

type UpdateProjectRequest struct {
	Name   string           `json:"name"`
	Client string           `json:"client"`
	Budget *decimal.Decimal `json:"budget"`
	Status string           `json:"status"`
}

type CreateVersionRequest struct {
	CopyFromVersionID *string `json:"copy_from_version_id"`
}

type UpdateVersionRequest struct {
	Status string `json:"status" binding:"required"`
}

type AddItemRequest struct {
	ProjectID     string                 `json:"project_id" binding:"required"`
	VersionID     *string                `json:"version_id"`
	EstimatorKind string                 `json:"estimator_kind" binding:"required"`
	Payload       map[string]interface{} `json:"payload"`
}

type UpdateItemRequest struct {
	Payload map[string]interface{} `json:"payload" binding:"required"`
}
