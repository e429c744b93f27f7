package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
	"github.com/amirhosseinghanipour/taskhub/internal/domain"
	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
)

type mockTokens struct {
	validateFunc func(token string) (string, error)
}

func (m *mockTokens) IssueAccessToken(userID, role string, expiresInSeconds int64) (string, error) {
	return "", errors.New("not used")
}

func (m *mockTokens) ValidateAccessToken(token string) (string, error) {
	return m.validateFunc(token)
}

type mockUsers struct {
	getByIDFunc func(ctx context.Context, id domain.UserID) (*domain.User, error)
	calls       int
}

func (m *mockUsers) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	m.calls++
	return m.getByIDFunc(ctx, id)
}

func (m *mockUsers) GetByUsername(ctx context.Context, username domain.Username) (*domain.User, error) {
	return nil, nil
}

func testUser(t *testing.T, active bool) *domain.User {
	t.Helper()
	name, err := domain.NewUsername("alice99")
	require.NoError(t, err)
	hash, err := domain.NewPasswordHash([]byte("h"))
	require.NoError(t, err)
	u, err := domain.RestoreUser(domain.UserState{
		ID: domain.NewUserID(), Username: name, PasswordHash: hash,
		Role: domain.RoleUser, Active: active, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	})
	require.NoError(t, err)
	return u
}

func fixture(t *testing.T, user *domain.User) (*Factory, *mockUsers) {
	tokens := &mockTokens{validateFunc: func(token string) (string, error) {
		switch token {
		case "good":
			return user.ID().String(), nil
		case "expired":
			return "", ports.ErrTokenExpired
		case "not-a-uuid":
			return "42", nil
		}
		return "", errors.New("malformed")
	}}
	users := &mockUsers{getByIDFunc: func(ctx context.Context, id domain.UserID) (*domain.User, error) {
		if id == user.ID() {
			return user, nil
		}
		return nil, nil
	}}
	return NewFactory(tokens, users), users
}

func TestCurrentUserOrNoneCachesPerRequest(t *testing.T) {
	ctx := context.Background()
	user := testUser(t, true)
	f, users := fixture(t, user)

	p := f.ForRequest("good")
	first, err := p.CurrentUserOrNone(ctx)
	require.NoError(t, err)
	second, err := p.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, users.calls)

	// a new request resolves again
	_, err = f.ForRequest("good").CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, users.calls)
}

func TestUnresolvableCredentials(t *testing.T) {
	ctx := context.Background()
	f, users := fixture(t, testUser(t, true))

	for _, credential := range []string{"", "expired", "garbage", "not-a-uuid"} {
		t.Run(credential, func(t *testing.T) {
			p := f.ForRequest(credential)
			u, err := p.CurrentUserOrNone(ctx)
			require.NoError(t, err)
			assert.Nil(t, u)

			_, err = p.CurrentUser(ctx)
			assert.ErrorIs(t, err, domerrors.ErrUnauthenticated)
		})
	}
	assert.Zero(t, users.calls)
}

func TestInactiveUserIsAbsent(t *testing.T) {
	f, _ := fixture(t, testUser(t, false))
	u, err := f.ForRequest("good").CurrentUserOrNone(context.Background())
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestStorageFailurePropagates(t *testing.T) {
	user := testUser(t, true)
	f, users := fixture(t, user)
	boom := domerrors.Infrastructure("select user", errors.New("connection refused"))
	users.getByIDFunc = func(ctx context.Context, id domain.UserID) (*domain.User, error) { return nil, boom }

	_, err := f.ForRequest("good").CurrentUser(context.Background())
	assert.ErrorIs(t, err, domerrors.ErrInfrastructure)
}
