package product

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/domain"
)

type stubTxManager struct{}

func (stubTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	byID      map[id.ID]*Product
	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[id.ID]*Product)}
}

func (r *fakeRepo) Create(_ context.Context, p *Product) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, productID id.ID) (*Product, error) {
	p, ok := r.byID[productID]
	if !ok {
		return nil, apperror.NewNotFound("product", productID.String())
	}
	clone := *p
	return &clone, nil
}

func (r *fakeRepo) GetByCode(_ context.Context, code string) (*Product, error) {
	for _, p := range r.byID {
		if p.Code == code {
			clone := *p
			return &clone, nil
		}
	}
	return nil, apperror.NewNotFound("product", code)
}

func (r *fakeRepo) Update(_ context.Context, p *Product) error {
	if _, ok := r.byID[p.ID]; !ok {
		return apperror.NewNotFound("product", p.ID.String())
	}
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, productID id.ID) error {
	p, ok := r.byID[productID]
	if !ok {
		return apperror.NewNotFound("product", productID.String())
	}
	p.DeletionMark = true
	return nil
}

func (r *fakeRepo) SetDeletionMark(_ context.Context, productID id.ID, marked bool) error {
	p, ok := r.byID[productID]
	if !ok {
		return apperror.NewNotFound("product", productID.String())
	}
	p.DeletionMark = marked
	return nil
}

func (r *fakeRepo) List(_ context.Context, filter domain.ListFilter) (domain.ListResult[*Product], error) {
	result := domain.ListResult[*Product]{Limit: filter.Limit, Offset: filter.Offset}
	for _, p := range r.byID {
		result.Items = append(result.Items, p)
	}
	result.TotalCount = int64(len(result.Items))
	return result, nil
}

func (r *fakeRepo) Exists(_ context.Context, productID id.ID) (bool, error) {
	_, ok := r.byID[productID]
	return ok, nil
}

func (r *fakeRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	for _, p := range r.byID {
		if p.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) FindBySKU(_ context.Context, sku string) (*Product, error) {
	for _, p := range r.byID {
		if p.SKU == sku {
			clone := *p
			return &clone, nil
		}
	}
	return nil, apperror.NewNotFound("product", sku)
}

type fakeStockInit struct {
	ensured []id.ID
	err     error
}

func (f *fakeStockInit) EnsureLevel(_ context.Context, productID id.ID) error {
	if f.err != nil {
		return f.err
	}
	f.ensured = append(f.ensured, productID)
	return nil
}

func newTestService() (*Service, *fakeRepo, *fakeStockInit) {
	repo := newFakeRepo()
	stock := &fakeStockInit{}
	svc := NewService(repo, stubTxManager{}, nil, stock)
	return svc, repo, stock
}

func TestCreate_InitializesStockLevel(t *testing.T) {
	svc, repo, stock := newTestService()

	p := NewProduct("PAP-A4", "Office paper A4", id.New().String(), id.New().String())
	err := svc.Create(context.Background(), p)
	require.NoError(t, err)

	_, ok := repo.byID[p.ID]
	assert.True(t, ok)
	require.Len(t, stock.ensured, 1)
	assert.Equal(t, p.ID, stock.ensured[0])
}

func TestCreate_CodeDefaultsToSKU(t *testing.T) {
	svc, _, _ := newTestService()

	p := NewProduct("PAP-A4", "Office paper A4", id.New().String(), id.New().String())
	p.Code = ""
	require.NoError(t, svc.Create(context.Background(), p))
	assert.Equal(t, "PAP-A4", p.Code)
}

func TestCreate_DuplicateSKU(t *testing.T) {
	svc, repo, stock := newTestService()

	first := NewProduct("PAP-A4", "Office paper A4", id.New().String(), id.New().String())
	require.NoError(t, svc.Create(context.Background(), first))

	second := NewProduct("PAP-A4", "Office paper A4 80g", id.New().String(), id.New().String())
	err := svc.Create(context.Background(), second)
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)

	// The duplicate left nothing behind
	assert.Len(t, repo.byID, 1)
	assert.Len(t, stock.ensured, 1)
}

func TestCreate_RequiresSKU(t *testing.T) {
	svc, _, _ := newTestService()

	p := NewProduct("", "Nameless", id.New().String(), id.New().String())
	p.Code = "X"
	err := svc.Create(context.Background(), p)
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestUpdate_SKUIsImmutable(t *testing.T) {
	svc, _, _ := newTestService()

	p := NewProduct("PAP-A4", "Office paper A4", id.New().String(), id.New().String())
	require.NoError(t, svc.Create(context.Background(), p))

	p.SKU = "PAP-A4-NEW"
	err := svc.Update(context.Background(), p)
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
	assert.Equal(t, "sku", appErr.Details["field"])
}

func TestUpdate_OtherFieldsChange(t *testing.T) {
	svc, repo, _ := newTestService()

	p := NewProduct("PAP-A4", "Office paper A4", id.New().String(), id.New().String())
	require.NoError(t, svc.Create(context.Background(), p))

	p.Name = "Office paper A4, 80g"
	p.Status = StatusInactive
	require.NoError(t, svc.Update(context.Background(), p))

	stored := repo.byID[p.ID]
	assert.Equal(t, "Office paper A4, 80g", stored.Name)
	assert.Equal(t, StatusInactive, stored.Status)
}

func TestFindBySKU(t *testing.T) {
	svc, _, _ := newTestService()

	p := NewProduct("PEN-BLU", "Ballpoint pen, blue", id.New().String(), id.New().String())
	require.NoError(t, svc.Create(context.Background(), p))

	found, err := svc.FindBySKU(context.Background(), "PEN-BLU")
	require.NoError(t, err)
	assert.Equal(t, p.ID, found.ID)

	_, err = svc.FindBySKU(context.Background(), "MISSING")
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCreate_StockFailureAbortsProduct(t *testing.T) {
	repo := newFakeRepo()
	stock := &fakeStockInit{err: errors.New("register unavailable")}
	svc := NewService(repo, stubTxManager{}, nil, stock)

	p := NewProduct("BOX-S", "Shipping box, small", id.New().String(), id.New().String())
	err := svc.Create(context.Background(), p)
	require.Error(t, err)
	// With a real transaction manager the product insert rolls back too;
	// here we only assert the error surfaces.
}
