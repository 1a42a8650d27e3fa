package producttype

import (
	"context"
	"fmt"
	"time"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/core/tx"
	"stockbook/internal/domain"
	"stockbook/pkg/numerator"
)

// CategoryChecker verifies that a referenced category exists.
type CategoryChecker interface {
	Exists(ctx context.Context, categoryID id.ID) (bool, error)
}

// Service provides business logic for ProductType catalog.
type Service struct {
	*domain.CatalogService[*ProductType]
	repo       Repository
	numerator  *numerator.Service
	categories CategoryChecker
}

// NewService creates a new ProductType service.
func NewService(repo Repository, txManager tx.Manager, num *numerator.Service, categories CategoryChecker) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*ProductType]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  num,
		EntityName: "product_type",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      num,
		categories:     categories,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)

	return svc
}

// prepareForCreate handles code generation and reference checks.
func (s *Service) prepareForCreate(ctx context.Context, t *ProductType) error {
	if t.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("PT"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		t.Code = code
	}

	catID, err := id.Parse(t.CategoryID)
	if err != nil {
		return apperror.NewValidation("invalid category id").
			WithDetail("field", "categoryId")
	}
	exists, err := s.categories.Exists(ctx, catID)
	if err != nil {
		return fmt.Errorf("check category: %w", err)
	}
	if !exists {
		return apperror.NewNotFound("category", t.CategoryID)
	}

	return nil
}
