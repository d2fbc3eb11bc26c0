package template

import (
	"context"
	"errors"
	"strings"
	"time"

	"boqbase/internal/domain/catalog"
)

var ErrCategoryNotFound = errors.New("category not found")

type Service struct {
	repo       *Repository
	shops      ShopRepository
	categories CategoryLookup
}

func NewService(repo *Repository, shops ShopRepository, categories CategoryLookup) *Service {
	return &Service{repo: repo, shops: shops, categories: categories}
}

func (s *Service) CreateTemplate(ctx context.Context, req CreateTemplateRequest, createdBy int64) (*MaterialTemplate, error) {
	if n, err := s.repo.CountTemplates(ctx, "name", req.Name); err != nil {
		return nil, err
	} else if n > 0 {
		return nil, ErrNameTaken
	}
	if n, err := s.repo.CountTemplates(ctx, "code", req.Code); err != nil {
		return nil, err
	} else if n > 0 {
		return nil, ErrCodeTaken
	}

	t := &MaterialTemplate{
		Name:      req.Name,
		Code:      req.Code,
		CreatedBy: createdBy,
	}
	if req.Category != "" {
		id, err := s.categories.CategoryIDByName(ctx, req.Category)
		if err != nil {
			return nil, err
		}
		if id == 0 {
			return nil, ErrCategoryNotFound
		}
		t.CategoryID = id
		t.CategoryName = req.Category
	}

	if err := s.repo.CreateTemplate(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) ListTemplates(ctx context.Context) ([]MaterialTemplate, error) {
	return s.repo.ListTemplates(ctx)
}

// UpdateTemplate renames a template or changes its code. Materials already
// materialized from it keep their snapshot; only future approvals see the
// new identity.
func (s *Service) UpdateTemplate(ctx context.Context, id int64, req UpdateTemplateRequest) (*MaterialTemplate, error) {
	t, err := s.repo.GetTemplateByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" && req.Name != t.Name {
		if n, err := s.repo.CountTemplates(ctx, "name", req.Name); err != nil {
			return nil, err
		} else if n > 0 {
			return nil, ErrNameTaken
		}
		t.Name = req.Name
	}
	if req.Code != "" && req.Code != t.Code {
		if n, err := s.repo.CountTemplates(ctx, "code", req.Code); err != nil {
			return nil, err
		} else if n > 0 {
			return nil, ErrCodeTaken
		}
		t.Code = req.Code
	}

	if err := s.repo.UpdateTemplate(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) DeleteTemplate(ctx context.Context, id int64) error {
	return s.repo.DeleteTemplateCascade(ctx, id)
}

func (s *Service) CreateSubmission(ctx context.Context, req CreateSubmissionRequest, submittedBy int64) (*MaterialSubmission, error) {
	if _, err := s.repo.GetTemplateByID(ctx, req.TemplateID); err != nil {
		return nil, err
	}
	if _, err := s.shops.GetByID(ctx, req.ShopID); err != nil {
		return nil, err
	}

	sub := &MaterialSubmission{
		TemplateID:  req.TemplateID,
		ShopID:      req.ShopID,
		Rate:        req.Rate,
		Unit:        req.Unit,
		Brand:       req.Brand,
		Model:       req.Model,
		Spec:        req.Spec,
		SubmittedBy: submittedBy,
		SubmittedAt: time.Now(),
	}
	if err := s.repo.CreateSubmission(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *Service) ListPendingSubmissions(ctx context.Context) ([]MaterialSubmission, error) {
	return s.repo.ListPendingSubmissions(ctx)
}

func (s *Service) ApproveSubmission(ctx context.Context, id int64) (*MaterialSubmission, *catalog.Material, error) {
	return s.repo.ApproveSubmission(ctx, id)
}

func (s *Service) RejectSubmission(ctx context.Context, id int64, reason string) (*MaterialSubmission, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrReasonRequired
	}
	return s.repo.RejectSubmission(ctx, id, reason)
}
