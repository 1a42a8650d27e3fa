// Package sales_order provides the SalesOrder document service.
package sales_order

import (
	"context"
	"fmt"
	"time"

	"stockbook/internal/core/apperror"
	appctx "stockbook/internal/core/context"
	"stockbook/internal/core/entity"
	"stockbook/internal/core/id"
	"stockbook/internal/core/tx"
	"stockbook/internal/domain"
	"stockbook/internal/domain/catalogs/customer"
	"stockbook/internal/domain/catalogs/product"
	"stockbook/internal/domain/ledger"
	"stockbook/internal/domain/registers/stock"
	"stockbook/pkg/logger"
	"stockbook/pkg/numerator"
)

// ProductResolver resolves product references on order lines.
type ProductResolver interface {
	GetByID(ctx context.Context, productID id.ID) (*product.Product, error)
}

// CustomerResolver resolves the optional order counterparty.
type CustomerResolver interface {
	GetByID(ctx context.Context, customerID id.ID) (*customer.Customer, error)
}

// StockController checks availability and applies movements within the
// commit transaction.
type StockController interface {
	CheckAndReserve(ctx context.Context, items []stock.Reservation) error
	ApplyMovements(ctx context.Context, movements []entity.StockMovement) error
}

// LedgerAppender appends the cash entry within the commit transaction.
type LedgerAppender interface {
	Append(ctx context.Context, entry *ledger.Entry) error
}

// Service provides business operations for sales order documents.
type Service struct {
	repo      Repository
	customers CustomerResolver
	products  ProductResolver
	stock     StockController
	cashbook  LedgerAppender
	numerator *numerator.Service
	txManager tx.Manager
	hooks     *domain.HookRegistry[*SalesOrder]
}

// NewService creates a new sales order service.
func NewService(
	repo Repository,
	customers CustomerResolver,
	products ProductResolver,
	stockSvc StockController,
	cashbook LedgerAppender,
	num *numerator.Service,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:      repo,
		customers: customers,
		products:  products,
		stock:     stockSvc,
		cashbook:  cashbook,
		numerator: num,
		txManager: txManager,
		hooks:     domain.NewHookRegistry[*SalesOrder](),
	}
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service) Hooks() *domain.HookRegistry[*SalesOrder] {
	return s.hooks
}

// Create validates and commits a sales order.
//
// Sufficiency is checked under row locks inside the same transaction
// that decrements stock, so two concurrent orders can never both take
// the last units. Any shortfall fails the whole order before a single
// quantity moves.
func (s *Service) Create(ctx context.Context, doc *SalesOrder) error {
	// Run before-create hooks (for enrichment, validation, etc.)
	if err := s.hooks.RunBeforeCreate(ctx, doc); err != nil {
		return err
	}

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	if err := s.resolveReferences(ctx, doc); err != nil {
		return err
	}

	if doc.Number == "" {
		cfg := numerator.DefaultConfig("SO")
		number, err := s.numerator.GetNextNumber(ctx, cfg, &numerator.Options{Strategy: NumeratorStrategy}, time.Now())
		if err != nil {
			return fmt.Errorf("generate number: %w", err)
		}
		doc.Number = number
	}

	if doc.CreatedBy == "" {
		doc.CreatedBy = appctx.GetUserID(ctx)
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.stock.CheckAndReserve(ctx, s.reservations(doc)); err != nil {
			return err
		}

		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}

		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		if err := s.stock.ApplyMovements(ctx, doc.GenerateMovements()); err != nil {
			return fmt.Errorf("apply stock movements: %w", err)
		}

		entry := ledger.NewEntry(
			doc.Date,
			ledger.DirectionIncome,
			ledger.CategorySales,
			doc.TotalAmount,
			fmt.Sprintf("Sales order %s", doc.Number),
		).WithOrder(doc.ID)
		entry.CreatedBy = doc.CreatedBy

		if err := s.cashbook.Append(ctx, entry); err != nil {
			return fmt.Errorf("append ledger entry: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	// Run after-create hooks (outside transaction)
	if err := s.hooks.RunAfterCreate(ctx, doc); err != nil {
		logger.Warn(ctx, "after-create hook failed", "error", err)
	}

	logger.Info(ctx, "sales order committed",
		"id", doc.ID,
		"number", doc.Number,
		"total", doc.TotalAmount,
		"order_type", doc.OrderType)

	return nil
}

// reservations aggregates required quantities per product. An order may
// list the same product on several lines; the sufficiency check must see
// the combined demand.
func (s *Service) reservations(doc *SalesOrder) []stock.Reservation {
	byProduct := make(map[id.ID]int64, len(doc.Lines))
	order := make([]id.ID, 0, len(doc.Lines))
	for _, line := range doc.Lines {
		if _, seen := byProduct[line.ProductID]; !seen {
			order = append(order, line.ProductID)
		}
		byProduct[line.ProductID] += line.Quantity
	}

	items := make([]stock.Reservation, 0, len(order))
	for _, pid := range order {
		items = append(items, stock.Reservation{
			ProductID:   pid,
			RequiredQty: byProduct[pid],
		})
	}
	return items
}

// resolveReferences verifies the optional customer and every line
// product exist, snapshotting display names into the document.
func (s *Service) resolveReferences(ctx context.Context, doc *SalesOrder) error {
	if doc.CustomerID != nil {
		cust, err := s.customers.GetByID(ctx, *doc.CustomerID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("customer", doc.CustomerID.String())
			}
			return err
		}
		doc.CustomerName = cust.Name
	}

	for i := range doc.Lines {
		line := &doc.Lines[i]
		p, err := s.products.GetByID(ctx, line.ProductID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("product", line.ProductID.String()).
					WithDetail("lineNo", line.LineNo)
			}
			return err
		}
		line.ProductName = p.Name
	}

	return nil
}

// GetByID retrieves a sales order with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*SalesOrder, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines

	return doc, nil
}

// List retrieves sales orders with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*SalesOrder], error) {
	return s.repo.List(ctx, filter)
}
