package taxonomy

import "time"

// Category is the root of the three-level classification tree.
// Children reference it by surrogate id; the name stays unique for display
// and for the name-keyed API operations.
type Category struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	CreatedBy int64     `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}

type Subcategory struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"not null;uniqueIndex:idx_subcategory_name_category"`
	CategoryID int64     `json:"category_id" gorm:"not null;uniqueIndex:idx_subcategory_name_category"`
	CreatedBy  int64     `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

func (Subcategory) TableName() string {
	return "subcategories"
}

type Product struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"uniqueIndex;not null"`
	SubcategoryID int64     `json:"subcategory_id" gorm:"not null;index"`
	CreatedBy     int64     `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Subcategory *Subcategory `json:"subcategory,omitempty" gorm:"foreignKey:SubcategoryID"`
}

func (Product) TableName() string {
	return "products"
}
