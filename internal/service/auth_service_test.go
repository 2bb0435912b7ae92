package service_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Shivam-knight-owl/product-tour-platform/internal/jwt"
	"github.com/Shivam-knight-owl/product-tour-platform/internal/model"
	"github.com/Shivam-knight-owl/product-tour-platform/internal/service"
)

type mockUserRepo struct {
	byEmail map[string]*model.User
	byID    map[uuid.UUID]*model.User
}

func newMockUserRepo(users ...*model.User) *mockUserRepo {
	m := &mockUserRepo{byEmail: map[string]*model.User{}, byID: map[uuid.UUID]*model.User{}}
	for _, user := range users {
		m.byEmail[user.Email] = user
		m.byID[user.ID] = user
	}
	return m
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) (uuid.UUID, error) {
	if _, exists := m.byEmail[user.Email]; exists {
		return uuid.Nil, &pgconn.PgError{Code: "23505"}
	}
	user.ID = uuid.New()
	m.byEmail[user.Email] = user
	m.byID[user.ID] = user
	return user.ID, nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user, ok := m.byEmail[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := m.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func TestRegisterUser_HashesPasswordAndIssuesToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	svc := service.NewAuthService(newMockUserRepo())

	user, token, err := svc.RegisterUser(context.Background(), "a@b.com", "secret1", "")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, user.ID)
	require.Equal(t, model.RoleUser, user.Role)
	require.NotEmpty(t, token)

	// the stored hash verifies against the plaintext and is not the plaintext
	require.NotEqual(t, "secret1", user.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")))

	claims, err := jwt.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, user.ID.String(), claims["sub"])
	require.Equal(t, model.RoleUser, claims["role"])
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	svc := service.NewAuthService(newMockUserRepo())

	_, _, err := svc.RegisterUser(context.Background(), "a@b.com", "secret1", "")
	require.NoError(t, err)

	_, _, err = svc.RegisterUser(context.Background(), "a@b.com", "another1", "")
	require.ErrorIs(t, err, service.ErrEmailTaken)
}

func TestLoginUser_UnknownEmailAndBadPasswordAreIndistinguishable(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	hash, err := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.DefaultCost)
	require.NoError(t, err)

	known := &model.User{ID: uuid.New(), Email: "a@b.com", PasswordHash: string(hash), Role: model.RoleUser}
	svc := service.NewAuthService(newMockUserRepo(known))

	_, _, errUnknown := svc.LoginUser(context.Background(), "nobody@b.com", "whatever")
	_, _, errBadPass := svc.LoginUser(context.Background(), "a@b.com", "wrong-password")

	require.ErrorIs(t, errUnknown, service.ErrInvalidCredentials)
	require.ErrorIs(t, errBadPass, service.ErrInvalidCredentials)
	require.Equal(t, errUnknown.Error(), errBadPass.Error())
}

func TestLoginUser_Success(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	hash, err := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.DefaultCost)
	require.NoError(t, err)

	known := &model.User{ID: uuid.New(), Email: "a@b.com", PasswordHash: string(hash), Role: model.RoleViewer}
	svc := service.NewAuthService(newMockUserRepo(known))

	user, token, err := svc.LoginUser(context.Background(), "a@b.com", "right-password")
	require.NoError(t, err)
	require.Equal(t, known.ID, user.ID)

	claims, err := jwt.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, model.RoleViewer, claims["role"])
}
