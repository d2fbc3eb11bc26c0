package taxonomy

import "context"

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateCategory(ctx context.Context, name string, createdBy int64) (*Category, error) {
	n, err := s.repo.CountCategoriesByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrNameTaken
	}

	c := &Category{Name: name, CreatedBy: createdBy}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *Service) RenameCategory(ctx context.Context, oldName, newName string) (*Category, error) {
	c, err := s.repo.GetCategoryByName(ctx, oldName)
	if err != nil {
		return nil, err
	}

	n, err := s.repo.CountCategoriesByName(ctx, newName)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrNameTaken
	}

	if err := s.repo.RenameCategory(ctx, c.ID, oldName, newName); err != nil {
		return nil, err
	}
	c.Name = newName
	return c, nil
}

func (s *Service) DeleteCategory(ctx context.Context, name string) error {
	c, err := s.repo.GetCategoryByName(ctx, name)
	if err != nil {
		return err
	}
	return s.repo.DeleteCategoryCascade(ctx, c.ID)
}

func (s *Service) CreateSubcategory(ctx context.Context, name, categoryName string, createdBy int64) (*Subcategory, error) {
	c, err := s.repo.GetCategoryByName(ctx, categoryName)
	if err != nil {
		return nil, err
	}

	n, err := s.repo.CountSubcategoriesByName(ctx, name, c.ID)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrNameTaken
	}

	sub := &Subcategory{Name: name, CategoryID: c.ID, CreatedBy: createdBy}
	if err := s.repo.CreateSubcategory(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *Service) ListSubcategories(ctx context.Context, categoryName string) ([]Subcategory, error) {
	var categoryID int64
	if categoryName != "" {
		c, err := s.repo.GetCategoryByName(ctx, categoryName)
		if err != nil {
			return nil, err
		}
		categoryID = c.ID
	}
	return s.repo.ListSubcategories(ctx, categoryID)
}

func (s *Service) RenameSubcategory(ctx context.Context, id int64, name string) (*Subcategory, error) {
	sub, err := s.repo.GetSubcategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}

	n, err := s.repo.CountSubcategoriesByName(ctx, name, sub.CategoryID)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrNameTaken
	}

	if err := s.repo.RenameSubcategory(ctx, id, name); err != nil {
		return nil, err
	}
	sub.Name = name
	return sub, nil
}

func (s *Service) DeleteSubcategory(ctx context.Context, id int64) error {
	return s.repo.DeleteSubcategoryCascade(ctx, id)
}

func (s *Service) CreateProduct(ctx context.Context, name string, subcategoryID int64, createdBy int64) (*Product, error) {
	if _, err := s.repo.GetSubcategoryByID(ctx, subcategoryID); err != nil {
		return nil, err
	}

	n, err := s.repo.CountProductsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrNameTaken
	}

	p := &Product{Name: name, SubcategoryID: subcategoryID, CreatedBy: createdBy}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) ListProducts(ctx context.Context, subcategoryID int64) ([]Product, error) {
	return s.repo.ListProducts(ctx, subcategoryID)
}

func (s *Service) UpdateProduct(ctx context.Context, id int64, name string, subcategoryID int64) (*Product, error) {
	p, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != "" && name != p.Name {
		n, err := s.repo.CountProductsByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, ErrNameTaken
		}
		p.Name = name
	}
	if subcategoryID > 0 {
		if _, err := s.repo.GetSubcategoryByID(ctx, subcategoryID); err != nil {
			return nil, err
		}
		p.SubcategoryID = subcategoryID
	}

	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	return s.repo.DeleteProduct(ctx, id)
}
