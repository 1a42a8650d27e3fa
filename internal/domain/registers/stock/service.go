// Package stock provides the stock level register service.
package stock

import (
	"context"
	"fmt"
	"sort"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
	"stockbook/internal/core/id"
	"stockbook/internal/domain"
	"stockbook/pkg/logger"
)

// Service provides business operations for the stock register.
// Mutating calls are expected to run inside the caller's transaction
// (the order engine owns the transaction boundary).
type Service struct {
	repo Repository
}

// NewService creates a new stock register service.
func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
	}
}

// EnsureLevel creates a zero-quantity row for a new product.
func (s *Service) EnsureLevel(ctx context.Context, productID id.ID) error {
	if id.IsNil(productID) {
		return apperror.NewValidation("product_id is required")
	}
	return s.repo.EnsureLevel(ctx, productID)
}

// GetQuantity returns the on-hand quantity for a product.
// Unknown products report zero rather than an error.
func (s *Service) GetQuantity(ctx context.Context, productID id.ID) (int64, error) {
	level, err := s.repo.GetLevel(ctx, productID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("get level: %w", err)
	}
	return level.Quantity, nil
}

// ApplyMovements applies signed quantity changes from a committed document.
// Must be called within a transaction.
func (s *Service) ApplyMovements(ctx context.Context, movements []entity.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}

	for i, m := range movements {
		if m.Quantity <= 0 {
			return apperror.NewValidation(fmt.Sprintf("movement %d: quantity must be positive", i))
		}
		if id.IsNil(m.ProductID) {
			return apperror.NewValidation(fmt.Sprintf("movement %d: product_id is required", i))
		}
	}

	for _, m := range movements {
		if err := s.repo.ApplyDelta(ctx, m.ProductID, m.SignedQuantity()); err != nil {
			return fmt.Errorf("apply delta for %s: %w", m.ProductID, err)
		}
	}

	logger.Info(ctx, "applied stock movements", "count", len(movements))

	return nil
}

// Reservation represents a stock sufficiency check request.
type Reservation struct {
	ProductID   id.ID
	RequiredQty int64
}

// CheckAndReserve validates stock availability with pessimistic locking.
// Rows are locked in product-id order so concurrent orders touching the
// same products cannot deadlock. Must be called within a transaction,
// before the expense movements are applied.
func (s *Service) CheckAndReserve(ctx context.Context, items []Reservation) error {
	sorted := make([]Reservation, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ProductID.String() < sorted[j].ProductID.String()
	})

	for _, item := range sorted {
		level, err := s.repo.GetLevelForUpdate(ctx, item.ProductID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewInsufficientStock(item.ProductID.String(), item.RequiredQty, 0)
			}
			return fmt.Errorf("get level for %s: %w", item.ProductID, err)
		}

		if level.Quantity < item.RequiredQty {
			return apperror.NewInsufficientStock(
				item.ProductID.String(),
				item.RequiredQty,
				level.Quantity,
			)
		}
	}

	return nil
}

// List returns stock levels for the inventory view.
func (s *Service) List(ctx context.Context, filter LevelFilter) (domain.ListResult[entity.StockLevel], error) {
	return s.repo.List(ctx, filter)
}

// CountLowStock returns the number of products below the threshold.
func (s *Service) CountLowStock(ctx context.Context, threshold int64) (int64, error) {
	return s.repo.CountBelow(ctx, threshold)
}
