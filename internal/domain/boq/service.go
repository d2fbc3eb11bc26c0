package boq

import "context"

// Forward-only status steps. Backward transitions were accepted silently in
// earlier revisions of this system; they are now rejected outright.
var projectStatusNext = map[ProjectStatus]ProjectStatus{
	ProjectStatusDraft:     ProjectStatusSubmitted,
	ProjectStatusSubmitted: ProjectStatusFinalized,
}

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateProject(ctx context.Context, req CreateProjectRequest, createdBy int64) (*Project, error) {
	p := &Project{
		Name:      req.Name,
		Client:    req.Client,
		Budget:    req.Budget,
		Status:    ProjectStatusDraft,
		CreatedBy: createdBy,
	}
	if err := s.repo.CreateProject(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) GetProject(ctx context.Context, id string) (*Project, error) {
	return s.repo.GetProject(ctx, id)
}

func (s *Service) ListProjects(ctx context.Context, createdBy int64) ([]Project, error) {
	return s.repo.ListProjects(ctx, createdBy)
}

func (s *Service) UpdateProject(ctx context.Context, id string, req UpdateProjectRequest) (*Project, error) {
	p, err := s.repo.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Client != "" {
		p.Client = req.Client
	}
	if req.Budget != nil {
		p.Budget = *req.Budget
	}
	if req.Status != "" {
		next := ProjectStatus(req.Status)
		if next != p.Status {
			if projectStatusNext[p.Status] != next {
				return nil, ErrInvalidTransition
			}
			p.Status = next
		}
	}

	if err := s.repo.UpdateProject(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) DeleteProject(ctx context.Context, id string) error {
	return s.repo.DeleteProjectCascade(ctx, id)
}

func (s *Service) CreateVersion(ctx context.Context, projectID string, copyFrom *string) (*Version, error) {
	return s.repo.CreateVersion(ctx, projectID, copyFrom)
}

func (s *Service) ListVersions(ctx context.Context, projectID string) ([]Version, error) {
	if _, err := s.repo.GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	return s.repo.ListVersions(ctx, projectID)
}

func (s *Service) UpdateVersionStatus(ctx context.Context, id string, status string) (*Version, error) {
	v, err := s.repo.GetVersion(ctx, id)
	if err != nil {
		return nil, err
	}

	next := VersionStatus(status)
	if next != v.Status {
		if v.Status != VersionStatusDraft || next != VersionStatusSubmitted {
			return nil, ErrInvalidTransition
		}
		v.Status = next
		if err := s.repo.UpdateVersion(ctx, v); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func (s *Service) DeleteVersion(ctx context.Context, id string) error {
	return s.repo.DeleteVersionCascade(ctx, id)
}

// AddItem always stores user_added=true; the false state is reserved for
// non-interactive seeding and never reachable through the API.
func (s *Service) AddItem(ctx context.Context, req AddItemRequest) (*Item, error) {
	if _, err := s.repo.GetProject(ctx, req.ProjectID); err != nil {
		return nil, err
	}
	if req.VersionID != nil {
		if _, err := s.repo.GetVersion(ctx, *req.VersionID); err != nil {
			return nil, err
		}
	}

	it := &Item{
		ProjectID:     req.ProjectID,
		VersionID:     req.VersionID,
		EstimatorKind: req.EstimatorKind,
		Payload:       req.Payload,
		UserAdded:     true,
	}
	if err := s.repo.CreateItem(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *Service) ListItems(ctx context.Context, projectID string, versionID *string) ([]Item, error) {
	if _, err := s.repo.GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	return s.repo.ListItems(ctx, projectID, versionID)
}

func (s *Service) UpdateItem(ctx context.Context, id string, payload map[string]interface{}) (*Item, error) {
	it, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	it.Payload = payload
	if err := s.repo.UpdateItem(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *Service) DeleteItem(ctx context.Context, id string) error {
	return s.repo.DeleteItem(ctx, id)
}
