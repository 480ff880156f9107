package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orchid-shop/storefront/internal/api"
	"github.com/orchid-shop/storefront/internal/logging"
	"github.com/orchid-shop/storefront/internal/models"
	"github.com/orchid-shop/storefront/internal/storage"
)

type stubAuth struct {
	resp    *api.LoginResponse
	err     error
	entered chan struct{}
	release chan struct{}
}

func (a *stubAuth) Login(ctx context.Context, email, password string) (*api.LoginResponse, error) {
	if a.entered != nil {
		close(a.entered)
	}
	if a.release != nil {
		<-a.release
	}
	return a.resp, a.err
}

func loginFixture() *api.LoginResponse {
	return &api.LoginResponse{
		Message: "ok",
		Data: api.LoginData{
			Token: api.Token{
				AccessToken:  "test-access-token",
				RefreshToken: "test-refresh-token",
				TokenType:    "Bearer",
				Expires:      "2099-01-01T00:00:00Z",
			},
			Account: models.Account{ID: 7, Email: "user@example.com", Role: models.RoleAdmin},
		},
	}
}

func newTestManager(t *testing.T, auth Authenticator) (*Manager, *storage.Store) {
	t.Helper()

	store, err := storage.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	m := NewManager(store, logging.New("error"))
	m.SetAuthenticator(auth)
	return m, store
}

func TestInit_NoTokenMeansGuest(t *testing.T) {
	t.Parallel()

	m, _ := newTestManager(t, &stubAuth{})
	require.Equal(t, StateUnknown, m.State())
	require.True(t, m.Loading())

	m.Init()

	assert.Equal(t, StateGuest, m.State())
	assert.False(t, m.Loading())
	assert.False(t, m.Identity().Authenticated)
}

func TestInit_TokenRestoresIdentity(t *testing.T) {
	t.Parallel()

	m, store := newTestManager(t, &stubAuth{})
	require.NoError(t, store.Set(KeyAccessToken, "opaque-token"))
	require.NoError(t, store.Set(KeyUserEmail, "user@example.com"))
	require.NoError(t, store.Set(KeyUserID, "12"))
	require.NoError(t, store.Set(KeyUserRole, models.RoleManager))

	m.Init()

	id := m.Identity()
	assert.True(t, id.Authenticated)
	assert.Equal(t, 12, id.UserID)
	assert.Equal(t, "user@example.com", id.Email)
	assert.Equal(t, models.RoleManager, id.Role)
	assert.Equal(t, "opaque-token", m.AccessToken())
}

func TestInit_PartialFieldsDefault(t *testing.T) {
	t.Parallel()

	m, store := newTestManager(t, &stubAuth{})
	require.NoError(t, store.Set(KeyAccessToken, "opaque-token"))

	m.Init()

	id := m.Identity()
	assert.True(t, id.Authenticated)
	assert.Equal(t, 0, id.UserID)
	assert.Equal(t, models.RoleUser, id.Role)
	assert.False(t, m.Loading())
}

func TestInit_Idempotent(t *testing.T) {
	t.Parallel()

	m, store := newTestManager(t, &stubAuth{})
	require.NoError(t, store.Set(KeyAccessToken, "opaque-token"))
	require.NoError(t, store.Set(KeyUserID, "12"))

	m.Init()
	first := m.Identity()
	m.Init()
	second := m.Identity()

	assert.Equal(t, first, second)
}

func TestLogin_PersistsSessionKeys(t *testing.T) {
	t.Parallel()

	m, store := newTestManager(t, &stubAuth{resp: loginFixture()})
	m.Init()

	resp, err := m.Login(context.Background(), "user@example.com", "password", true)
	require.NoError(t, err)
	require.Equal(t, 7, resp.Data.Account.ID)

	want := map[string]string{
		KeyAccessToken:     "test-access-token",
		KeyRefreshToken:    "test-refresh-token",
		KeyTokenExpires:    "2099-01-01T00:00:00Z",
		KeyTokenType:       "Bearer",
		KeyUserEmail:       "user@example.com",
		KeyUserID:          "7",
		KeyUserRole:        models.RoleAdmin,
		KeyRememberedEmail: "user@example.com",
	}
	for key, value := range want {
		got, ok, err := store.Get(key)
		require.NoError(t, err)
		require.True(t, ok, "key %s missing", key)
		assert.Equal(t, value, got, "key %s", key)
	}

	id := m.Identity()
	assert.True(t, id.Authenticated)
	assert.Equal(t, models.RoleAdmin, id.Role)
	assert.Equal(t, "test-access-token", m.AccessToken())
}

func TestLogin_FailureLeavesStateUnchanged(t *testing.T) {
	t.Parallel()

	m, store := newTestManager(t, &stubAuth{err: errors.New("invalid credentials")})
	m.Init()

	_, err := m.Login(context.Background(), "user@example.com", "wrong", false)
	require.Error(t, err)

	assert.Equal(t, StateGuest, m.State())
	_, ok, err := store.Get(KeyAccessToken)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLogout_ClearsAllSessionKeys(t *testing.T) {
	t.Parallel()

	m, store := newTestManager(t, &stubAuth{resp: loginFixture()})
	m.Init()
	_, err := m.Login(context.Background(), "user@example.com", "password", true)
	require.NoError(t, err)

	m.Logout()

	for _, key := range sessionKeys {
		_, ok, err := store.Get(key)
		require.NoError(t, err)
		assert.False(t, ok, "key %s should be cleared", key)
	}

	// the convenience key survives
	remembered, ok, err := store.Get(KeyRememberedEmail)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "user@example.com", remembered)

	assert.Equal(t, StateGuest, m.State())
	assert.Empty(t, m.AccessToken())
}

func TestLogout_WinsOverLateLoginResponse(t *testing.T) {
	t.Parallel()

	auth := &stubAuth{
		resp:    loginFixture(),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	m, store := newTestManager(t, auth)
	m.Init()

	errCh := make(chan error, 1)
	go func() {
		_, err := m.Login(context.Background(), "user@example.com", "password", false)
		errCh <- err
	}()

	<-auth.entered
	m.Logout()
	close(auth.release)

	require.ErrorIs(t, <-errCh, ErrSuperseded)

	assert.Equal(t, StateGuest, m.State())
	for _, key := range sessionKeys {
		_, ok, err := store.Get(key)
		require.NoError(t, err)
		assert.False(t, ok, "late login must not repopulate %s", key)
	}
}

func TestIdentityChange_SubscribersObserveTransitions(t *testing.T) {
	t.Parallel()

	m, _ := newTestManager(t, &stubAuth{resp: loginFixture()})

	var seen []models.Identity
	m.OnIdentityChange(func(id models.Identity) { seen = append(seen, id) })

	m.Init()
	_, err := m.Login(context.Background(), "user@example.com", "password", false)
	require.NoError(t, err)
	m.Logout()

	require.Len(t, seen, 3)
	assert.False(t, seen[0].Authenticated)
	assert.True(t, seen[1].Authenticated)
	assert.False(t, seen[2].Authenticated)
}
