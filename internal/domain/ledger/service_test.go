package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/apperror"
	appctx "stockbook/internal/core/context"
	"stockbook/internal/core/types"
	"stockbook/internal/domain"
)

type stubTxManager struct{}

func (stubTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	inserted []*Entry
}

func (r *fakeRepo) Insert(_ context.Context, entry *Entry) error {
	r.inserted = append(r.inserted, entry)
	return nil
}

func (r *fakeRepo) List(_ context.Context, filter Filter) (domain.ListResult[*Entry], error) {
	result := domain.ListResult[*Entry]{Limit: filter.Limit, Offset: filter.Offset}
	for _, e := range r.inserted {
		if filter.Direction != nil && e.Direction != *filter.Direction {
			continue
		}
		if filter.Category != nil && e.Category != *filter.Category {
			continue
		}
		result.Items = append(result.Items, e)
	}
	result.TotalCount = int64(len(result.Items))
	return result, nil
}

func (r *fakeRepo) SumByDirection(_ context.Context, direction Direction, _ Filter) (types.Money, error) {
	sum := types.Zero()
	for _, e := range r.inserted {
		if e.Direction == direction {
			sum = sum.Add(e.Amount)
		}
	}
	return sum, nil
}

func TestAppend_InsertsValidEntry(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, stubTxManager{})

	entry := NewEntry(time.Now().UTC(), DirectionExpense, CategoryOther, types.MustMoney("1200.00"), "September rent")
	err := svc.Append(context.Background(), entry)
	require.NoError(t, err)
	require.Len(t, repo.inserted, 1)
	assert.Equal(t, entry.ID, repo.inserted[0].ID)
}

func TestAppend_SetsCreatedByFromContext(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, stubTxManager{})

	ctx := appctx.WithUser(context.Background(), &appctx.UserContext{UserID: "user-3"})
	entry := NewEntry(time.Now().UTC(), DirectionIncome, CategoryOther, types.MustMoney("10.00"), "Found in the register")
	require.NoError(t, svc.Append(ctx, entry))
	assert.Equal(t, "user-3", entry.CreatedBy)
}

func TestAppend_RejectsInvalidEntry(t *testing.T) {
	svc := NewService(&fakeRepo{}, stubTxManager{})

	tests := []struct {
		name  string
		entry *Entry
	}{
		{
			name:  "zero date",
			entry: &Entry{Direction: DirectionIncome, Category: CategoryOther, Amount: types.MustMoney("1.00"), Description: "x"},
		},
		{
			name:  "bad direction",
			entry: NewEntry(time.Now(), Direction("sideways"), CategoryOther, types.MustMoney("1.00"), "x"),
		},
		{
			name:  "bad category",
			entry: NewEntry(time.Now(), DirectionIncome, Category("misc"), types.MustMoney("1.00"), "x"),
		},
		{
			name:  "negative amount",
			entry: NewEntry(time.Now(), DirectionIncome, CategoryOther, types.MustMoney("-5.00"), "x"),
		},
		{
			name:  "empty description",
			entry: NewEntry(time.Now(), DirectionIncome, CategoryOther, types.MustMoney("1.00"), ""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Append(context.Background(), tt.entry)
			require.Error(t, err)

			var appErr *apperror.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
		})
	}
}

func TestSignedAmount(t *testing.T) {
	income := NewEntry(time.Now(), DirectionIncome, CategorySales, types.MustMoney("50.00"), "sale")
	expense := NewEntry(time.Now(), DirectionExpense, CategoryPurchase, types.MustMoney("30.00"), "purchase")

	assert.True(t, income.SignedAmount().Equal(types.MustMoney("50.00")))
	assert.True(t, expense.SignedAmount().Equal(types.MustMoney("-30.00")))
}

func TestSumByDirection(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, stubTxManager{})
	ctx := context.Background()

	require.NoError(t, svc.Append(ctx, NewEntry(time.Now(), DirectionIncome, CategorySales, types.MustMoney("100.00"), "sale 1")))
	require.NoError(t, svc.Append(ctx, NewEntry(time.Now(), DirectionIncome, CategorySales, types.MustMoney("40.00"), "sale 2")))
	require.NoError(t, svc.Append(ctx, NewEntry(time.Now(), DirectionExpense, CategoryPurchase, types.MustMoney("60.00"), "restock")))

	income, err := svc.SumByDirection(ctx, DirectionIncome, Filter{})
	require.NoError(t, err)
	assert.True(t, income.Equal(types.MustMoney("140.00")))

	expense, err := svc.SumByDirection(ctx, DirectionExpense, Filter{})
	require.NoError(t, err)
	assert.True(t, expense.Equal(types.MustMoney("60.00")))
}
