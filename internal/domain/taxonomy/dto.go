package taxonomy

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type RenameCategoryRequest struct {
	NewName string `json:"new_name" binding:"required"`
}

type CreateSubcategoryRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category" binding:"required"`
}

type RenameSubcategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type CreateProductRequest struct {
	Name          string `json:"name" binding:"required"`
	SubcategoryID int64  `json:"subcategory_id" binding:"required"`
}

type UpdateProductRequest struct {
	Name          string `json:"name"`
	SubcategoryID int64  `json:"subcategory_id"`
}
