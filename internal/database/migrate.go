package database

import (
	"gorm.io/gorm"

	"boqbase/internal/domain/auth"
	"boqbase/internal/domain/boq"
	"boqbase/internal/domain/catalog"
	"boqbase/internal/domain/taxonomy"
	"boqbase/internal/domain/template"
)

// Models lists every persisted entity in dependency order (parents first).
// AutoMigrate is create-if-missing, so running this on every start is safe.
func Models() []interface{} {
	return []interface{}{
		&auth.User{},
		&taxonomy.Category{},
		&taxonomy.Subcategory{},
		&taxonomy.Product{},
		&catalog.Shop{},
		&template.MaterialTemplate{},
		&catalog.Material{},
		&template.MaterialSubmission{},
		&boq.Project{},
		&boq.Version{},
		&boq.Item{},
	}
}

// Migrate bootstraps the schema before the process starts serving traffic.
func Migrate(db *gorm.DB) error {
	for _, model := range Models() {
		if err := db.AutoMigrate(model); err != nil {
			return err
		}
	}
	return nil
}
