package services

import (
	"HospitalMgmt/models"
	"HospitalMgmt/repositories"
	"HospitalMgmt/utils"
	"context"
	"strings"
)

// CatalogStore persists one kind of catalog entry.
type CatalogStore[T any] interface {
	CatalogLookup[T]
	Create(ctx context.Context, entry *T) error
	GetAll(ctx context.Context) ([]T, error)
	Update(ctx context.Context, entry *T) error
	Delete(ctx context.Context, id uint) error
}

// CatalogService manages OPD items or pathology tests. Price changes never
// touch line items already on a bill.
type CatalogService[T any, P repositories.CatalogEntry[T]] struct {
	repository CatalogStore[T]
}

func NewCatalogService[T any, P repositories.CatalogEntry[T]](repository CatalogStore[T]) *CatalogService[T, P] {
	return &CatalogService[T, P]{repository: repository}
}

func (s *CatalogService[T, P]) Create(ctx context.Context, in models.CatalogInput) (*T, error) {
	if err := utils.ValidateCatalog(in); err != nil {
		return nil, err
	}
	var entry T
	base := P(&entry).Entry()
	base.Name = strings.TrimSpace(in.Name)
	base.Price = in.Price.Round(2)
	base.Active = in.Active == nil || *in.Active
	if err := s.repository.Create(ctx, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *CatalogService[T, P]) GetByID(ctx context.Context, id uint) (*T, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *CatalogService[T, P]) GetAll(ctx context.Context) ([]T, error) {
	return s.repository.GetAll(ctx)
}

// Update rewrites name and price; Active changes only when given.
func (s *CatalogService[T, P]) Update(ctx context.Context, id uint, in models.CatalogInput) (*T, error) {
	if err := utils.ValidateCatalog(in); err != nil {
		return nil, err
	}
	entry, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	base := P(entry).Entry()
	base.Name = strings.TrimSpace(in.Name)
	base.Price = in.Price.Round(2)
	if in.Active != nil {
		base.Active = *in.Active
	}
	if err := s.repository.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Delete fails with repositories.ErrInUse while any line item references the entry.
func (s *CatalogService[T, P]) Delete(ctx context.Context, id uint) error {
	return s.repository.Delete(ctx, id)
}

type (
	OPDItemService       = CatalogService[models.OPDItem, *models.OPDItem]
	PathologyTestService = CatalogService[models.PathologyTest, *models.PathologyTest]
)
