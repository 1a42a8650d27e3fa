package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/apperror"
	appctx "stockbook/internal/core/context"
	"stockbook/internal/core/id"
)

type stubTxManager struct{}

func (stubTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeUserRepo struct {
	byID    map[id.ID]*User
	byEmail map[string]*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[id.ID]*User),
		byEmail: make(map[string]*User),
	}
}

func (r *fakeUserRepo) Create(_ context.Context, user *User) error {
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID id.ID) (*User, error) {
	u, ok := r.byID[userID]
	if !ok {
		return nil, apperror.NewNotFound("user", userID.String())
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, apperror.NewNotFound("user", email)
	}
	return u, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *User) error {
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, filter UserFilter) ([]User, int, error) {
	var out []User
	for _, u := range r.byID {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.ActiveOnly && !u.IsActive {
			continue
		}
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (r *fakeUserRepo) Exists(_ context.Context, email string) (bool, error) {
	_, ok := r.byEmail[email]
	return ok, nil
}

func newTestService() (*Service, *fakeUserRepo) {
	repo := newFakeUserRepo()
	jwt := NewJWTService(DefaultJWTConfig("test-secret-at-least-32-bytes-long"))
	svc := NewService(repo, stubTxManager{}, jwt, DefaultServiceConfig())
	return svc, repo
}

func adminCtx() context.Context {
	return appctx.WithUser(context.Background(), &appctx.UserContext{
		UserID: id.New().String(),
		Role:   string(RoleAdmin),
	})
}

func TestRegister_IssuesToken(t *testing.T) {
	svc, _ := newTestService()

	result, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "clerk@stockbook.local",
		Password: "correct-horse",
		Name:     "Clerk",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.Token)
	assert.Equal(t, RoleEmployee, result.User.Role, "new users start as employees")
	assert.True(t, result.User.IsActive)
	assert.False(t, result.ExpiresAt.IsZero())
	assert.NotEqual(t, "correct-horse", result.User.PasswordHash)
}

func TestRegister_ShortPassword(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "clerk@stockbook.local",
		Password: "short",
		Name:     "Clerk",
	})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService()

	req := RegisterRequest{
		Email:    "clerk@stockbook.local",
		Password: "correct-horse",
		Name:     "Clerk",
	}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeConflict, appErr.Code)
}

func TestRegister_InvalidEmail(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "not-an-email",
		Password: "correct-horse",
		Name:     "Clerk",
	})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestLogin_Succeeds(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "clerk@stockbook.local",
		Password: "correct-horse",
		Name:     "Clerk",
	})
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), Credentials{
		Email:    "clerk@stockbook.local",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "clerk@stockbook.local",
		Password: "correct-horse",
		Name:     "Clerk",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), Credentials{
		Email:    "clerk@stockbook.local",
		Password: "wrong-horse",
	})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
	assert.False(t, strings.Contains(appErr.Message, "password"),
		"error must not reveal which credential failed")
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Login(context.Background(), Credentials{
		Email:    "nobody@stockbook.local",
		Password: "whatever-pass",
	})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
}

func TestLogin_DisabledAccount(t *testing.T) {
	svc, repo := newTestService()

	result, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "clerk@stockbook.local",
		Password: "correct-horse",
		Name:     "Clerk",
	})
	require.NoError(t, err)

	repo.byID[result.User.ID].IsActive = false

	_, err = svc.Login(context.Background(), Credentials{
		Email:    "clerk@stockbook.local",
		Password: "correct-horse",
	})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeForbidden, appErr.Code)
}

func TestUpdateRole_RequiresAdmin(t *testing.T) {
	svc, _ := newTestService()

	result, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "clerk@stockbook.local",
		Password: "correct-horse",
		Name:     "Clerk",
	})
	require.NoError(t, err)

	employeeCtx := appctx.WithUser(context.Background(), &appctx.UserContext{
		UserID: id.New().String(),
		Role:   string(RoleEmployee),
	})
	_, err = svc.UpdateRole(employeeCtx, result.User.ID, RoleManager)
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeForbidden, appErr.Code)
}

func TestUpdateRole_AsAdmin(t *testing.T) {
	svc, repo := newTestService()

	result, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "clerk@stockbook.local",
		Password: "correct-horse",
		Name:     "Clerk",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateRole(adminCtx(), result.User.ID, RoleManager)
	require.NoError(t, err)
	assert.Equal(t, RoleManager, updated.Role)
	assert.Equal(t, RoleManager, repo.byID[result.User.ID].Role)
}

func TestUpdateRole_RejectsUnknownRole(t *testing.T) {
	svc, _ := newTestService()

	result, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "clerk@stockbook.local",
		Password: "correct-horse",
		Name:     "Clerk",
	})
	require.NoError(t, err)

	_, err = svc.UpdateRole(adminCtx(), result.User.ID, Role("superuser"))
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestSetActive_AsAdmin(t *testing.T) {
	svc, repo := newTestService()

	result, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "clerk@stockbook.local",
		Password: "correct-horse",
		Name:     "Clerk",
	})
	require.NoError(t, err)

	_, err = svc.SetActive(adminCtx(), result.User.ID, false)
	require.NoError(t, err)
	assert.False(t, repo.byID[result.User.ID].IsActive)
}

func TestMe(t *testing.T) {
	svc, _ := newTestService()

	result, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "clerk@stockbook.local",
		Password: "correct-horse",
		Name:     "Clerk",
	})
	require.NoError(t, err)

	ctx := appctx.WithUser(context.Background(), &appctx.UserContext{
		UserID: result.User.ID.String(),
	})
	me, err := svc.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, me.ID)

	_, err = svc.Me(context.Background())
	require.Error(t, err)
}
