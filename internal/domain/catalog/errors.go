package catalog

import "errors"

var (
	ErrShopNotFound     = errors.New("shop not found")
	ErrMaterialNotFound = errors.New("material not found")
	ErrReasonRequired   = errors.New("rejection reason is required")
)
