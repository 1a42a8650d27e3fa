package product

import (
	"context"
	"fmt"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/core/tx"
	"stockbook/internal/domain"
	"stockbook/pkg/numerator"
)

// StockInitializer creates the zero-quantity stock row for a new product.
// Implemented by the stock register service.
type StockInitializer interface {
	EnsureLevel(ctx context.Context, productID id.ID) error
}

// Service provides business logic for Product catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Product]
	repo      Repository
	txManager tx.Manager
	numerator *numerator.Service
	stock     StockInitializer
}

// NewService creates a new Product service.
func NewService(repo Repository, txManager tx.Manager, num *numerator.Service, stock StockInitializer) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Product]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  num,
		EntityName: "product",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		txManager:      txManager,
		numerator:      num,
		stock:          stock,
	}

	base.Hooks().OnBeforeUpdate(svc.prepareForUpdate)

	return svc
}

// Create creates a product together with its zero-quantity stock level.
// Both writes commit as one transaction: a duplicate SKU leaves no stock
// row behind, and a stock failure leaves no product behind.
func (s *Service) Create(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	if p.Code == "" {
		p.Code = p.SKU
	}

	if err := s.checkSKUAvailable(ctx, p.SKU, p.ID); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, p); err != nil {
			return fmt.Errorf("create product: %w", err)
		}
		if err := s.stock.EnsureLevel(ctx, p.ID); err != nil {
			return fmt.Errorf("init stock level: %w", err)
		}
		return nil
	})
}

// FindBySKU retrieves a product by SKU.
func (s *Service) FindBySKU(ctx context.Context, sku string) (*Product, error) {
	p, err := s.repo.FindBySKU(ctx, sku)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("product", sku)
		}
		return nil, err
	}
	return p, nil
}

// prepareForUpdate guards SKU immutability.
func (s *Service) prepareForUpdate(ctx context.Context, p *Product) error {
	current, err := s.repo.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	if current.SKU != p.SKU {
		return apperror.NewValidation("sku is immutable").
			WithDetail("field", "sku")
	}
	return nil
}

func (s *Service) checkSKUAvailable(ctx context.Context, sku string, excludeID id.ID) error {
	existing, err := s.repo.FindBySKU(ctx, sku)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("check sku: %w", err)
	}
	if existing.ID != excludeID {
		return apperror.NewDuplicate("product", "sku", sku)
	}
	return nil
}
