package stock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
	"stockbook/internal/core/id"
	"stockbook/internal/domain"
)

// fakeRepo is an in-memory stock register. It records the order of
// row-lock acquisitions so locking discipline can be asserted.
type fakeRepo struct {
	levels    map[id.ID]int64
	lockOrder []id.ID
	deltaErr  error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{levels: make(map[id.ID]int64)}
}

func (r *fakeRepo) EnsureLevel(_ context.Context, productID id.ID) error {
	if _, ok := r.levels[productID]; !ok {
		r.levels[productID] = 0
	}
	return nil
}

func (r *fakeRepo) ApplyDelta(_ context.Context, productID id.ID, delta int64) error {
	if r.deltaErr != nil {
		return r.deltaErr
	}
	next := r.levels[productID] + delta
	if next < 0 {
		return apperror.NewInsufficientStock(productID.String(), -delta, r.levels[productID])
	}
	r.levels[productID] = next
	return nil
}

func (r *fakeRepo) GetLevel(_ context.Context, productID id.ID) (entity.StockLevel, error) {
	qty, ok := r.levels[productID]
	if !ok {
		return entity.StockLevel{}, apperror.NewNotFound("stock_level", productID.String())
	}
	return entity.StockLevel{ProductID: productID, Quantity: qty, LastUpdated: time.Now().UTC()}, nil
}

func (r *fakeRepo) GetLevelForUpdate(ctx context.Context, productID id.ID) (entity.StockLevel, error) {
	r.lockOrder = append(r.lockOrder, productID)
	return r.GetLevel(ctx, productID)
}

func (r *fakeRepo) List(_ context.Context, filter LevelFilter) (domain.ListResult[entity.StockLevel], error) {
	result := domain.ListResult[entity.StockLevel]{Limit: filter.Limit, Offset: filter.Offset}
	for pid, qty := range r.levels {
		if filter.ExcludeZero && qty == 0 {
			continue
		}
		result.Items = append(result.Items, entity.StockLevel{ProductID: pid, Quantity: qty})
	}
	result.TotalCount = int64(len(result.Items))
	return result, nil
}

func (r *fakeRepo) CountBelow(_ context.Context, threshold int64) (int64, error) {
	var n int64
	for _, qty := range r.levels {
		if qty < threshold {
			n++
		}
	}
	return n, nil
}

func TestGetQuantity_UnknownProductReportsZero(t *testing.T) {
	svc := NewService(newFakeRepo())

	qty, err := svc.GetQuantity(context.Background(), id.New())
	require.NoError(t, err)
	assert.Equal(t, int64(0), qty)
}

func TestGetQuantity_KnownProduct(t *testing.T) {
	repo := newFakeRepo()
	productID := id.New()
	repo.levels[productID] = 42
	svc := NewService(repo)

	qty, err := svc.GetQuantity(context.Background(), productID)
	require.NoError(t, err)
	assert.Equal(t, int64(42), qty)
}

func TestEnsureLevel_RequiresProductID(t *testing.T) {
	svc := NewService(newFakeRepo())

	err := svc.EnsureLevel(context.Background(), id.Nil())
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestApplyMovements_SignedDeltas(t *testing.T) {
	repo := newFakeRepo()
	productID := id.New()
	repo.levels[productID] = 10
	svc := NewService(repo)

	err := svc.ApplyMovements(context.Background(), []entity.StockMovement{
		{ProductID: productID, RecordType: entity.RecordTypeReceipt, Quantity: 5},
		{ProductID: productID, RecordType: entity.RecordTypeExpense, Quantity: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), repo.levels[productID])
}

func TestApplyMovements_ValidatesBeforeApplying(t *testing.T) {
	repo := newFakeRepo()
	goodID := id.New()
	repo.levels[goodID] = 10
	svc := NewService(repo)

	tests := []struct {
		name      string
		movements []entity.StockMovement
	}{
		{
			name: "non-positive quantity",
			movements: []entity.StockMovement{
				{ProductID: goodID, RecordType: entity.RecordTypeReceipt, Quantity: 5},
				{ProductID: goodID, RecordType: entity.RecordTypeReceipt, Quantity: 0},
			},
		},
		{
			name: "missing product id",
			movements: []entity.StockMovement{
				{ProductID: goodID, RecordType: entity.RecordTypeReceipt, Quantity: 5},
				{ProductID: id.Nil(), RecordType: entity.RecordTypeReceipt, Quantity: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ApplyMovements(context.Background(), tt.movements)
			require.Error(t, err)

			// Validation runs over the whole batch first, so even the
			// valid leading movement must not have been applied.
			assert.Equal(t, int64(10), repo.levels[goodID])
		})
	}
}

func TestApplyMovements_EmptyBatchIsNoop(t *testing.T) {
	svc := NewService(newFakeRepo())
	require.NoError(t, svc.ApplyMovements(context.Background(), nil))
}

func TestCheckAndReserve_LocksInProductIDOrder(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	ids := []id.ID{id.New(), id.New(), id.New()}
	for _, pid := range ids {
		repo.levels[pid] = 100
	}

	// Request in reverse of the canonical order
	items := []Reservation{
		{ProductID: ids[2], RequiredQty: 1},
		{ProductID: ids[0], RequiredQty: 1},
		{ProductID: ids[1], RequiredQty: 1},
	}
	require.NoError(t, svc.CheckAndReserve(context.Background(), items))

	require.Len(t, repo.lockOrder, 3)
	for i := 1; i < len(repo.lockOrder); i++ {
		assert.True(t, repo.lockOrder[i-1].String() < repo.lockOrder[i].String(),
			"locks must be acquired in ascending product-id order")
	}
}

func TestCheckAndReserve_Insufficient(t *testing.T) {
	repo := newFakeRepo()
	productID := id.New()
	repo.levels[productID] = 3
	svc := NewService(repo)

	err := svc.CheckAndReserve(context.Background(), []Reservation{
		{ProductID: productID, RequiredQty: 5},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, int64(5), appErr.Details["requested"])
	assert.Equal(t, int64(3), appErr.Details["available"])
}

func TestCheckAndReserve_MissingRowCountsAsZero(t *testing.T) {
	svc := NewService(newFakeRepo())

	err := svc.CheckAndReserve(context.Background(), []Reservation{
		{ProductID: id.New(), RequiredQty: 1},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, int64(0), appErr.Details["available"])
}

func TestCountLowStock(t *testing.T) {
	repo := newFakeRepo()
	for _, qty := range []int64{0, 5, 9, 10, 50} {
		repo.levels[id.New()] = qty
	}
	svc := NewService(repo)

	n, err := svc.CountLowStock(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
