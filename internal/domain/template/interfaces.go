package template

import (
	"context"

	"boqbase/internal/domain/catalog"
)

// ShopRepository is the slice of the catalog the pipeline needs: submissions
// must reference an existing shop.
type ShopRepository interface {
	GetByID(ctx context.Context, id int64) (*catalog.Shop, error)
}

// CategoryLookup resolves a category name to its id, 0 when missing.
// Declared here rather than importing the taxonomy package, which depends on
// this one for its delete cascade.
type CategoryLookup interface {
	CategoryIDByName(ctx context.Context, name string) (int64, error)
}
