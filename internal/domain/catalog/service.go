package catalog

import (
	"context"
	"strings"
)

type Service struct {
	shops     *ShopRepository
	materials *MaterialRepository
}

func NewService(shops *ShopRepository, materials *MaterialRepository) *Service {
	return &Service{shops: shops, materials: materials}
}

// SubmitShop creates a shop in the pending state regardless of who submits it;
// visibility is earned through review, not authorship.
func (s *Service) SubmitShop(ctx context.Context, req CreateShopRequest, ownerID int64) (*Shop, error) {
	shop := &Shop{
		Name:     req.Name,
		Address:  req.Address,
		City:     req.City,
		Phone:    req.Phone,
		OwnerID:  ownerID,
		Approved: false,
	}
	if err := s.shops.Create(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

func (s *Service) ListPublicShops(ctx context.Context) ([]Shop, error) {
	return s.shops.ListApproved(ctx)
}

func (s *Service) ListPendingShops(ctx context.Context) ([]PendingShopRow, error) {
	shops, err := s.shops.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]PendingShopRow, 0, len(shops))
	for _, shop := range shops {
		rows = append(rows, PendingShopRow{ID: shop.ID, Status: "pending", Shop: shop})
	}
	return rows, nil
}

func (s *Service) ApproveShop(ctx context.Context, id int64) (*Shop, error) {
	return s.shops.SetApproval(ctx, id, true, "")
}

func (s *Service) RejectShop(ctx context.Context, id int64, reason string) (*Shop, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrReasonRequired
	}
	return s.shops.SetApproval(ctx, id, false, reason)
}

// SubmitMaterial is the direct-entry path: the row starts pending and shares
// one shape with submission-derived materials.
func (s *Service) SubmitMaterial(ctx context.Context, req CreateMaterialRequest, createdBy int64) (*Material, error) {
	if _, err := s.shops.GetByID(ctx, req.ShopID); err != nil {
		return nil, err
	}

	m := &Material{
		Name:        req.Name,
		Code:        req.Code,
		Rate:        req.Rate,
		Unit:        req.Unit,
		ShopID:      req.ShopID,
		Category:    req.Category,
		SubCategory: req.SubCategory,
		Product:     req.Product,
		Brand:       req.Brand,
		Model:       req.Model,
		Spec:        req.Spec,
		Approved:    false,
		CreatedBy:   createdBy,
	}
	if err := s.materials.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) ListPublicMaterials(ctx context.Context, f MaterialFilters) ([]Material, int64, error) {
	return s.materials.ListApproved(ctx, f)
}

func (s *Service) ListPendingMaterials(ctx context.Context) ([]PendingMaterialRow, error) {
	materials, err := s.materials.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]PendingMaterialRow, 0, len(materials))
	for _, m := range materials {
		rows = append(rows, PendingMaterialRow{ID: m.ID, Status: "pending", Material: m})
	}
	return rows, nil
}

func (s *Service) ApproveMaterial(ctx context.Context, id int64) (*Material, error) {
	return s.materials.SetApproval(ctx, id, true, "")
}

func (s *Service) RejectMaterial(ctx context.Context, id int64, reason string) (*Material, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrReasonRequired
	}
	return s.materials.SetApproval(ctx, id, false, reason)
}
