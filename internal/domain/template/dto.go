package template

import "github.com/shopspring/decimal"

type CreateTemplateRequest struct {
	Name     string `json:"name" binding:"required"`
	Code     string `json:"code" binding:"required"`
	Category string `json:"category"`
}

type UpdateTemplateRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type CreateSubmissionRequest struct {
	TemplateID int64           `json:"template_id" binding:"required"`
	ShopID     int64           `json:"shop_id" binding:"required"`
	Rate       decimal.Decimal `json:"rate"`
	Unit       string          `json:"unit"`
	Brand      string          `json:"brand"`
	Model      string          `json:"model"`
	Spec       string          `json:"spec"`
}

type RejectSubmissionRequest struct {
	Reason string `json:"reason" binding:"required"`
}
