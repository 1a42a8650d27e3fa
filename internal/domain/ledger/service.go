package ledger

import (
	"context"
	"fmt"

	appctx "stockbook/internal/core/context"
	"stockbook/internal/core/tx"
	"stockbook/internal/core/types"
	"stockbook/internal/domain"
	"stockbook/pkg/logger"
)

// Service provides business operations for the cash ledger.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new ledger service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
	}
}

// Append validates and inserts an entry inside the caller's transaction
// when one is active, or its own otherwise.
func (s *Service) Append(ctx context.Context, entry *Entry) error {
	if err := entry.Validate(ctx); err != nil {
		return err
	}

	if entry.CreatedBy == "" {
		entry.CreatedBy = appctx.GetUserID(ctx)
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Insert(ctx, entry); err != nil {
			return fmt.Errorf("insert ledger entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "ledger entry appended",
		"entry_id", entry.ID,
		"direction", entry.Direction,
		"category", entry.Category,
		"amount", entry.Amount,
	)

	return nil
}

// List returns entries ordered by date then created_at.
func (s *Service) List(ctx context.Context, filter Filter) (domain.ListResult[*Entry], error) {
	return s.repo.List(ctx, filter)
}

// SumByDirection totals amounts for one direction within the range.
func (s *Service) SumByDirection(ctx context.Context, direction Direction, filter Filter) (types.Money, error) {
	return s.repo.SumByDirection(ctx, direction, filter)
}
