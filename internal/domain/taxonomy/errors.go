package taxonomy

import "errors"

var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrSubcategoryNotFound = errors.New("subcategory not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrNameTaken           = errors.New("name already exists")
)
