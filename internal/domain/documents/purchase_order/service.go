// Package purchase_order provides the PurchaseOrder document service.
package purchase_order

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
	"stockbook/internal/domain/catalogs/product"
	"stockbook/internal/domain/catalogs/supplier"
	"stockbook/internal/domain/ledger"
	"stockbook/pkg/logger"
	"stockbook/pkg/numerator"
)

// ProductResolver resolves product references on order lines.
type ProductResolver interface {
	GetByID(ctx context.Context, productID id.ID) (*product.Product, error)
}

// SupplierResolver resolves the order counterparty.
type SupplierResolver interface {
	GetByID(ctx context.Context, supplierID id.ID) (*supplier.Supplier, error)
}

// StockApplier applies movements within the commit transaction.
type StockApplier interface {
	ApplyMovements(ctx context.Context, movements []entity.StockMovement) error
}

// LedgerAppender appends the cash entry within the commit transaction.
type LedgerAppender interface {
	Append(ctx context.Context, entry *ledger.Entry) error
}

// Service provides business operations for purchase order documents.
type Service struct {
	repo      Repository
	suppliers SupplierResolver
	products  ProductResolver
	stock     StockApplier
	cashbook  LedgerAppender
	numerator *numerator.Service
	txManager tx.Manager
	hooks     *domain.HookRegistry[*PurchaseOrder]
}

// NewService creates a new purchase order service.
func NewService(
	repo Repository,
	suppliers SupplierResolver,
	products ProductResolver,
	stock StockApplier,
	cashbook LedgerAppender,
	num *numerator.Service,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:      repo,
		suppliers: suppliers,
		products:  products,
		stock:     stock,
		cashbook:  cashbook,
		numerator: num,
		txManager: txManager,
		hooks:     domain.NewHookRegistry[*PurchaseOrder](),
	}
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service) Hooks() *domain.HookRegistry[*PurchaseOrder] {
	return s.hooks
}

// Create validates and commits a purchase order.
//
// The validation phase fully precedes the mutation phase. The commit
// itself (document, lines, stock increase, ledger entry) runs as one
// transaction: the caller either sees the whole order or nothing.
func (s *Service) Create(ctx context.Context, doc *PurchaseOrder) error {
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
		cfg := numerator.DefaultConfig("PO")
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
			ledger.DirectionExpense,
			ledger.CategoryPurchase,
			doc.TotalAmount,
			fmt.Sprintf("Purchase order %s", doc.Number),
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

	logger.Info(ctx, "purchase order committed",
		"id", doc.ID,
		"number", doc.Number,
		"total", doc.TotalAmount)

	return nil
}

// resolveReferences verifies the supplier and every line product exist,
// snapshotting display names into the document.
func (s *Service) resolveReferences(ctx context.Context, doc *PurchaseOrder) error {
	sup, err := s.suppliers.GetByID(ctx, doc.SupplierID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFound("supplier", doc.SupplierID.String())
		}
		return err
	}
	doc.SupplierName = sup.Name

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

// GetByID retrieves a purchase order with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*PurchaseOrder, error) {
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

// List retrieves purchase orders with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*PurchaseOrder], error) {
	return s.repo.List(ctx, filter)
}
