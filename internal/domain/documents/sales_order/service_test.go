package sales_order

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/apperror"
	appctx "stockbook/internal/core/context"
	"stockbook/internal/core/entity"
	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
	"stockbook/internal/domain"
	"stockbook/internal/domain/catalogs/customer"
	"stockbook/internal/domain/catalogs/product"
	"stockbook/internal/domain/ledger"
	"stockbook/internal/domain/registers/stock"
	"stockbook/pkg/numerator"
)

// Test doubles

type stubTxManager struct{}

func (stubTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// lockingTxManager serializes transactions the way row locks do: a
// second commit waits until the first one releases its rows.
type lockingTxManager struct{ mu sync.Mutex }

func (m *lockingTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fakeOrderRepo struct {
	created *SalesOrder
	lines   []Line
}

func (r *fakeOrderRepo) Create(_ context.Context, doc *SalesOrder) error {
	r.created = doc
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, docID id.ID) (*SalesOrder, error) {
	if r.created == nil || r.created.ID != docID {
		return nil, apperror.NewNotFound("sales_order", docID.String())
	}
	return r.created, nil
}

func (r *fakeOrderRepo) GetByNumber(_ context.Context, number string) (*SalesOrder, error) {
	if r.created == nil || r.created.Number != number {
		return nil, apperror.NewNotFound("sales_order", number)
	}
	return r.created, nil
}

func (r *fakeOrderRepo) GetLines(_ context.Context, _ id.ID) ([]Line, error) {
	return r.lines, nil
}

func (r *fakeOrderRepo) SaveLines(_ context.Context, _ id.ID, lines []Line) error {
	r.lines = lines
	return nil
}

func (r *fakeOrderRepo) List(_ context.Context, _ ListFilter) (domain.ListResult[*SalesOrder], error) {
	return domain.ListResult[*SalesOrder]{}, nil
}

func (r *fakeOrderRepo) Count(_ context.Context) (int64, error)        { return 0, nil }
func (r *fakeOrderRepo) CountPending(_ context.Context) (int64, error) { return 0, nil }

type fakeProducts struct {
	byID map[id.ID]*product.Product
}

func (f *fakeProducts) GetByID(_ context.Context, productID id.ID) (*product.Product, error) {
	p, ok := f.byID[productID]
	if !ok {
		return nil, apperror.NewNotFound("product", productID.String())
	}
	return p, nil
}

type fakeCustomers struct {
	byID map[id.ID]*customer.Customer
}

func (f *fakeCustomers) GetByID(_ context.Context, customerID id.ID) (*customer.Customer, error) {
	c, ok := f.byID[customerID]
	if !ok {
		return nil, apperror.NewNotFound("customer", customerID.String())
	}
	return c, nil
}

// fakeStock mirrors the real service semantics: sufficiency is checked
// against combined demand and unknown products report zero.
type fakeStock struct {
	levels   map[id.ID]int64
	reserved [][]stock.Reservation
	applied  []entity.StockMovement
}

func newFakeStock() *fakeStock {
	return &fakeStock{levels: make(map[id.ID]int64)}
}

func (f *fakeStock) CheckAndReserve(_ context.Context, items []stock.Reservation) error {
	f.reserved = append(f.reserved, items)
	for _, item := range items {
		available := f.levels[item.ProductID]
		if available < item.RequiredQty {
			return apperror.NewInsufficientStock(item.ProductID.String(), item.RequiredQty, available)
		}
	}
	return nil
}

func (f *fakeStock) ApplyMovements(_ context.Context, movements []entity.StockMovement) error {
	for _, m := range movements {
		f.applied = append(f.applied, m)
		f.levels[m.ProductID] += m.SignedQuantity()
	}
	return nil
}

type fakeLedger struct {
	entries []*ledger.Entry
}

func (f *fakeLedger) Append(_ context.Context, entry *ledger.Entry) error {
	f.entries = append(f.entries, entry)
	return nil
}

// seqQuerier backs the numerator with an in-memory counter.
type seqRow struct{ val int64 }

func (r seqRow) Scan(dest ...any) error {
	*(dest[0].(*int64)) = r.val
	return nil
}

type seqQuerier struct {
	mu sync.Mutex
	n  int64
}

func (q *seqQuerier) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.n++
	return seqRow{q.n}
}

type fixture struct {
	service   *Service
	repo      *fakeOrderRepo
	stock     *fakeStock
	cashbook  *fakeLedger
	products  *fakeProducts
	customers *fakeCustomers
}

func newFixture() *fixture {
	repo := &fakeOrderRepo{}
	stk := newFakeStock()
	cash := &fakeLedger{}
	prods := &fakeProducts{byID: make(map[id.ID]*product.Product)}
	custs := &fakeCustomers{byID: make(map[id.ID]*customer.Customer)}

	svc := NewService(repo, custs, prods, stk, cash, numerator.New(&seqQuerier{}), stubTxManager{})

	return &fixture{
		service:   svc,
		repo:      repo,
		stock:     stk,
		cashbook:  cash,
		products:  prods,
		customers: custs,
	}
}

func (f *fixture) addProduct(name string, qty int64) id.ID {
	p := product.NewProduct("SKU-"+name, name, id.New().String(), id.New().String())
	f.products.byID[p.ID] = p
	f.stock.levels[p.ID] = qty
	return p.ID
}

func (f *fixture) addCustomer(name string) id.ID {
	c := customer.NewCustomer("CUS-T", name)
	f.customers.byID[c.ID] = c
	return c.ID
}

func TestCreate_CommitsOrder(t *testing.T) {
	f := newFixture()
	penID := f.addProduct("Ballpoint pen", 100)
	paperID := f.addProduct("Office paper A4", 40)
	custID := f.addCustomer("Downtown Office Center")

	doc := NewSalesOrder().WithCustomer(custID)
	doc.AddLine(penID, 10, types.MustMoney("2.50"))
	doc.AddLine(paperID, 3, types.MustMoney("11.00"))

	err := f.service.Create(context.Background(), doc)
	require.NoError(t, err)

	// Totals from lines
	assert.True(t, doc.TotalAmount.Equal(types.MustMoney("58.00")),
		"total = 10*2.50 + 3*11.00, got %s", doc.TotalAmount)

	// Persisted with lines
	require.NotNil(t, f.repo.created)
	assert.Len(t, f.repo.lines, 2)

	// Number assigned from the numerator
	assert.NotEmpty(t, doc.Number)
	assert.Contains(t, doc.Number, "SO-")

	// Customer name snapshotted
	assert.Equal(t, "Downtown Office Center", doc.CustomerName)

	// Stock decreased
	assert.Equal(t, int64(90), f.stock.levels[penID])
	assert.Equal(t, int64(37), f.stock.levels[paperID])

	// Exactly one income ledger entry for the full amount
	require.Len(t, f.cashbook.entries, 1)
	entry := f.cashbook.entries[0]
	assert.Equal(t, ledger.DirectionIncome, entry.Direction)
	assert.Equal(t, ledger.CategorySales, entry.Category)
	assert.True(t, entry.Amount.Equal(doc.TotalAmount))
	require.NotNil(t, entry.RelatedOrderID)
	assert.Equal(t, doc.ID, *entry.RelatedOrderID)
}

func TestCreate_WalkInHasNoCustomer(t *testing.T) {
	f := newFixture()
	productID := f.addProduct("USB-C cable 1m", 5)

	doc := NewSalesOrder()
	doc.AddLine(productID, 1, types.MustMoney("7.99"))

	err := f.service.Create(context.Background(), doc)
	require.NoError(t, err)

	assert.Nil(t, doc.CustomerID)
	assert.Empty(t, doc.CustomerName)
	assert.Len(t, f.cashbook.entries, 1)
}

func TestCreate_UnknownProduct(t *testing.T) {
	f := newFixture()
	knownID := f.addProduct("Shipping box", 10)

	doc := NewSalesOrder()
	doc.AddLine(knownID, 1, types.MustMoney("1.00"))
	doc.AddLine(id.New(), 1, types.MustMoney("1.00"))

	err := f.service.Create(context.Background(), doc)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 2, appErr.Details["lineNo"])

	assert.Nil(t, f.repo.created)
	assert.Empty(t, f.cashbook.entries)
}

func TestCreate_UnknownCustomer(t *testing.T) {
	f := newFixture()
	productID := f.addProduct("Shipping box", 10)

	doc := NewSalesOrder().WithCustomer(id.New())
	doc.AddLine(productID, 1, types.MustMoney("1.00"))

	err := f.service.Create(context.Background(), doc)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Nil(t, f.repo.created)
}

func TestCreate_InsufficientStock(t *testing.T) {
	f := newFixture()
	productID := f.addProduct("Office paper A4", 3)

	doc := NewSalesOrder()
	doc.AddLine(productID, 5, types.MustMoney("11.00"))

	err := f.service.Create(context.Background(), doc)
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	// Nothing committed: no document, no movements, no cash entry
	assert.Nil(t, f.repo.created)
	assert.Empty(t, f.stock.applied)
	assert.Empty(t, f.cashbook.entries)
	assert.Equal(t, int64(3), f.stock.levels[productID])
}

func TestCreate_SequentialDepletion(t *testing.T) {
	f := newFixture()
	productID := f.addProduct("Ballpoint pen", 10)

	first := NewSalesOrder()
	first.AddLine(productID, 7, types.MustMoney("2.50"))
	require.NoError(t, f.service.Create(context.Background(), first))
	assert.Equal(t, int64(3), f.stock.levels[productID])

	second := NewSalesOrder()
	second.AddLine(productID, 5, types.MustMoney("2.50"))
	err := f.service.Create(context.Background(), second)
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, int64(5), appErr.Details["requested"])
	assert.Equal(t, int64(3), appErr.Details["available"])

	// First order's state is untouched by the failed second order
	assert.Equal(t, int64(3), f.stock.levels[productID])
	assert.Len(t, f.cashbook.entries, 1)
}

func TestCreate_ConcurrentOrders_ExactlyOneSucceeds(t *testing.T) {
	prods := &fakeProducts{byID: make(map[id.ID]*product.Product)}
	p := product.NewProduct("SKU-Desk lamp", "Desk lamp", id.New().String(), id.New().String())
	prods.byID[p.ID] = p

	stk := newFakeStock()
	stk.levels[p.ID] = 10

	svc := NewService(
		&fakeOrderRepo{},
		&fakeCustomers{byID: make(map[id.ID]*customer.Customer)},
		prods,
		stk,
		&fakeLedger{},
		numerator.New(&seqQuerier{}),
		&lockingTxManager{},
	)

	// Two orders of 6 against a stock of 10
	results := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			doc := NewSalesOrder()
			doc.AddLine(p.ID, 6, types.MustMoney("12.00"))
			results <- svc.Create(context.Background(), doc)
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, failed int
	var failure error
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			failed++
			failure = err
		}
	}

	require.Equal(t, 1, succeeded, "exactly one order may commit")
	require.Equal(t, 1, failed)
	assert.True(t, apperror.IsInsufficientStock(failure))
	assert.Equal(t, int64(4), stk.levels[p.ID], "only the winning order moved stock")
}

func TestCreate_CombinesDemandAcrossLines(t *testing.T) {
	f := newFixture()
	productID := f.addProduct("Shipping box", 5)

	doc := NewSalesOrder()
	doc.AddLine(productID, 3, types.MustMoney("0.80"))
	doc.AddLine(productID, 3, types.MustMoney("0.80"))

	err := f.service.Create(context.Background(), doc)
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	// One aggregated reservation of 6, not two of 3
	require.Len(t, f.stock.reserved, 1)
	require.Len(t, f.stock.reserved[0], 1)
	assert.Equal(t, int64(6), f.stock.reserved[0][0].RequiredQty)
}

func TestCreate_RequiresLines(t *testing.T) {
	f := newFixture()

	doc := NewSalesOrder()
	err := f.service.Create(context.Background(), doc)
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestCreate_RejectsInvalidOrderType(t *testing.T) {
	f := newFixture()
	productID := f.addProduct("Ballpoint pen", 10)

	doc := NewSalesOrder()
	doc.OrderType = OrderType("wholesale")
	doc.AddLine(productID, 1, types.MustMoney("2.50"))

	err := f.service.Create(context.Background(), doc)
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestCreate_CreatedByFromContext(t *testing.T) {
	f := newFixture()
	productID := f.addProduct("Ballpoint pen", 10)

	ctx := appctx.WithUser(context.Background(), &appctx.UserContext{
		UserID: "user-42",
		Email:  "clerk@stockbook.local",
	})

	doc := NewSalesOrder()
	doc.AddLine(productID, 2, types.MustMoney("2.50"))
	require.NoError(t, f.service.Create(ctx, doc))

	assert.Equal(t, "user-42", doc.CreatedBy)
	require.Len(t, f.cashbook.entries, 1)
	assert.Equal(t, "user-42", f.cashbook.entries[0].CreatedBy)
}

func TestCreate_KeepsPresetNumber(t *testing.T) {
	f := newFixture()
	productID := f.addProduct("Ballpoint pen", 10)

	doc := NewSalesOrder()
	doc.Number = "SO-2026-99999"
	doc.Date = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	doc.AddLine(productID, 1, types.MustMoney("2.50"))

	require.NoError(t, f.service.Create(context.Background(), doc))
	assert.Equal(t, "SO-2026-99999", doc.Number)
}
