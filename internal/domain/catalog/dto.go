package catalog

import "github.com/shopspring/decimal"

type CreateShopRequest struct {
	Name    string `json:"name" binding:"required" validate:"required,min=2,max=120"`
	Address string `json:"address" validate:"max=255"`
	City    string `json:"city" validate:"max=80"`
	Phone   string `json:"phone" validate:"max=32"`
}

type CreateMaterialRequest struct {
	Name        string          `json:"name" binding:"required" validate:"required,min=2,max=160"`
	Code        string          `json:"code" validate:"max=64"`
	Rate        decimal.Decimal `json:"rate"`
	Unit        string          `json:"unit" validate:"max=32"`
	ShopID      int64           `json:"shop_id" binding:"required" validate:"required,gt=0"`
	Category    string          `json:"category"`
	SubCategory string          `json:"sub_category"`
	Product     string          `json:"product"`
	Brand       string          `json:"brand"`
	Model       string          `json:"model"`
	Spec        string          `json:"spec"`
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// Pending rows are the shape the review queues return.
type PendingMaterialRow struct {
	ID       int64    `json:"id"`
	Status   string   `json:"status"`
	Material Material `json:"material"`
}

type PendingShopRow struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
	Shop   Shop   `json:"shop"`
}
