package taxonomy

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"boqbase/internal/domain/catalog"
	"boqbase/internal/domain/template"
)

// isUniqueViolation covers postgres (SQLSTATE 23505) and the sqlite driver
// used in tests. Services pre-check names, this is the backstop for races.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// --- categories ---

func (r *Repository) CreateCategory(ctx context.Context, c *Category) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrNameTaken
		}
		return err
	}
	return nil
}

func (r *Repository) GetCategoryByName(ctx context.Context, name string) (*Category, error) {
	var c Category
	if err := r.db.WithContext(ctx).First(&c, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *Repository) ListCategories(ctx context.Context) ([]Category, error) {
	var out []Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error
	return out, err
}

// CategoryIDByName returns 0 when no category carries the name. The template
// pipeline consumes this through a local interface to avoid an import cycle.
func (r *Repository) CategoryIDByName(ctx context.Context, name string) (int64, error) {
	var c Category
	err := r.db.WithContext(ctx).Select("id").First(&c, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return c.ID, nil
}

func (r *Repository) CountCategoriesByName(ctx context.Context, name string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Category{}).Where("name = ?", name).Count(&n).Error
	return n, err
}

// RenameCategory updates the category row and the denormalized category-name
// columns carried by templates and materials, in one transaction.
func (r *Repository) RenameCategory(ctx context.Context, id int64, oldName, newName string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Category{}).Where("id = ?", id).Update("name", newName).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrNameTaken
			}
			return err
		}
		if err := tx.Model(&template.MaterialTemplate{}).
			Where("category_id = ?", id).
			Update("category_name", newName).Error; err != nil {
			return err
		}
		return tx.Model(&catalog.Material{}).
			Where("category = ?", oldName).
			Update("category", newName).Error
	})
}

// DeleteCategoryCascade removes everything classified under the category,
// children before parents: materials and submissions anchored to the
// category's templates, then the templates, then products of the category's
// subcategories, then the subcategories, then the category row itself.
// Any failure rolls the whole cascade back.
func (r *Repository) DeleteCategoryCascade(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template_id IN (?)",
			tx.Model(&template.MaterialTemplate{}).Select("id").Where("category_id = ?", id),
		).Delete(&catalog.Material{}).Error; err != nil {
			return err
		}
		if err := tx.Where("template_id IN (?)",
			tx.Model(&template.MaterialTemplate{}).Select("id").Where("category_id = ?", id),
		).Delete(&template.MaterialSubmission{}).Error; err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", id).Delete(&template.MaterialTemplate{}).Error; err != nil {
			return err
		}
		if err := tx.Where("subcategory_id IN (?)",
			tx.Model(&Subcategory{}).Select("id").Where("category_id = ?", id),
		).Delete(&Product{}).Error; err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", id).Delete(&Subcategory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Category{}, id).Error
	})
}

// --- subcategories ---

func (r *Repository) CreateSubcategory(ctx context.Context, s *Subcategory) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrNameTaken
		}
		return err
	}
	return nil
}

func (r *Repository) GetSubcategoryByID(ctx context.Context, id int64) (*Subcategory, error) {
	var s Subcategory
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubcategoryNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *Repository) ListSubcategories(ctx context.Context, categoryID int64) ([]Subcategory, error) {
	var out []Subcategory
	q := r.db.WithContext(ctx).Order("name ASC")
	if categoryID > 0 {
		q = q.Where("category_id = ?", categoryID)
	}
	err := q.Find(&out).Error
	return out, err
}

func (r *Repository) CountSubcategoriesByName(ctx context.Context, name string, categoryID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Subcategory{}).
		Where("name = ? AND category_id = ?", name, categoryID).
		Count(&n).Error
	return n, err
}

func (r *Repository) RenameSubcategory(ctx context.Context, id int64, name string) error {
	res := r.db.WithContext(ctx).Model(&Subcategory{}).Where("id = ?", id).Update("name", name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrSubcategoryNotFound
	}
	return nil
}

// DeleteSubcategoryCascade removes the subcategory's products before the
// subcategory row itself.
func (r *Repository) DeleteSubcategoryCascade(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("subcategory_id = ?", id).Delete(&Product{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&Subcategory{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrSubcategoryNotFound
		}
		return nil
	})
}

// --- products ---

func (r *Repository) CreateProduct(ctx context.Context, p *Product) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrNameTaken
		}
		return err
	}
	return nil
}

func (r *Repository) GetProductByID(ctx context.Context, id int64) (*Product, error) {
	var p Product
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repository) ListProducts(ctx context.Context, subcategoryID int64) ([]Product, error) {
	var out []Product
	q := r.db.WithContext(ctx).Order("name ASC")
	if subcategoryID > 0 {
		q = q.Where("subcategory_id = ?", subcategoryID)
	}
	err := q.Find(&out).Error
	return out, err
}

func (r *Repository) CountProductsByName(ctx context.Context, name string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Product{}).Where("name = ?", name).Count(&n).Error
	return n, err
}

func (r *Repository) UpdateProduct(ctx context.Context, p *Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *Repository) DeleteProduct(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
