package session

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"github.com/orchid-shop/storefront/internal/api"
	"github.com/orchid-shop/storefront/internal/models"
)

// Persisted session keys. Fixed names, part of the on-disk contract.
const (
	KeyAccessToken     = "access_token"
	KeyRefreshToken    = "refresh_token"
	KeyTokenExpires    = "token_expires"
	KeyTokenType       = "token_type"
	KeyUserEmail       = "user_email"
	KeyUserID          = "user_id"
	KeyUserRole        = "user_role"
	KeyRememberedEmail = "remembered_email"
)

// sessionKeys are the keys Logout clears. KeyRememberedEmail survives logout.
var sessionKeys = []string{
	KeyAccessToken,
	KeyRefreshToken,
	KeyTokenExpires,
	KeyTokenType,
	KeyUserEmail,
	KeyUserID,
	KeyUserRole,
}

// ErrSuperseded is returned when a login response arrives after a logout (or a
// newer login attempt) already changed the session.
var ErrSuperseded = errors.New("login superseded")

type State int

const (
	StateUnknown State = iota
	StateGuest
	StateAuthenticated
)

// KV is the durable key/value storage the manager persists the session in.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// Authenticator is the remote login endpoint.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*api.LoginResponse, error)
}

// Manager owns the authentication session: the persisted token, the derived
// identity and the login/logout lifecycle. Identity changes are announced to
// subscribers after state and storage are updated.
type Manager struct {
	mu    sync.Mutex
	store KV
	auth  Authenticator
	log   *slog.Logger

	state   State
	user    models.Account
	token   string
	loading bool

	// attempt increases on every login attempt and on logout, so a login
	// response that lands late can be recognized and discarded.
	attempt uint64

	listeners []func(models.Identity)
}

func NewManager(store KV, log *slog.Logger) *Manager {
	return &Manager{
		store:   store,
		log:     log,
		state:   StateUnknown,
		loading: true,
	}
}

// SetAuthenticator wires the remote login endpoint. Call before Init.
func (m *Manager) SetAuthenticator(auth Authenticator) {
	m.auth = auth
}

// OnIdentityChange registers a subscriber. Call before Init so the initial
// identity resolution is observed too.
func (m *Manager) OnIdentityChange(fn func(models.Identity)) {
	m.listeners = append(m.listeners, fn)
}

// Init resolves the identity from the persisted token. A usable token means
// authenticated, identity fields populated from storage with defaults for
// anything missing; otherwise guest. The loading flag clears either way.
func (m *Manager) Init() {
	m.mu.Lock()

	tok := m.getString(KeyAccessToken)
	if tokenUsable(tok, m.log) {
		role := m.getString(KeyUserRole)
		if role == "" {
			role = models.RoleUser
		}
		id, _ := strconv.Atoi(m.getString(KeyUserID))
		m.user = models.Account{
			ID:    id,
			Email: m.getString(KeyUserEmail),
			Role:  role,
		}
		m.token = tok
		m.state = StateAuthenticated
	} else {
		m.state = StateGuest
	}
	m.loading = false

	identity := m.identityLocked()
	m.mu.Unlock()

	m.emit(identity)
}

// Login calls the remote authentication endpoint. On success the token and
// identity fields are persisted and the state becomes authenticated; on any
// failure nothing changes and the error is returned for the caller to render.
// A response that arrives after a logout is discarded.
func (m *Manager) Login(ctx context.Context, email, password string, remember bool) (*api.LoginResponse, error) {
	m.mu.Lock()
	m.attempt++
	attempt := m.attempt
	m.mu.Unlock()

	resp, err := m.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	if attempt != m.attempt {
		m.mu.Unlock()
		m.log.Warn("discarding stale login response", "email", email)
		return nil, ErrSuperseded
	}

	account := resp.Data.Account
	if account.Role == "" {
		account.Role = models.RoleUser
	}

	m.setString(KeyAccessToken, resp.Data.Token.AccessToken)
	m.setString(KeyRefreshToken, resp.Data.Token.RefreshToken)
	m.setString(KeyTokenExpires, resp.Data.Token.Expires)
	m.setString(KeyTokenType, resp.Data.Token.TokenType)
	m.setString(KeyUserEmail, account.Email)
	m.setString(KeyUserID, strconv.Itoa(account.ID))
	m.setString(KeyUserRole, account.Role)
	if remember {
		m.setString(KeyRememberedEmail, email)
	}

	m.user = account
	m.token = resp.Data.Token.AccessToken
	m.state = StateAuthenticated

	identity := m.identityLocked()
	m.mu.Unlock()

	m.emit(identity)
	return resp, nil
}

// Logout clears every session key and resets the identity to guest. It is
// purely local and always succeeds, network availability does not matter.
func (m *Manager) Logout() {
	m.mu.Lock()

	m.attempt++
	for _, k := range sessionKeys {
		if err := m.store.Delete(k); err != nil {
			m.log.Error("session key delete failed", "key", k, "error", err)
		}
	}
	m.user = models.Account{}
	m.token = ""
	m.state = StateGuest

	identity := m.identityLocked()
	m.mu.Unlock()

	m.emit(identity)
}

func (m *Manager) Identity() models.Identity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.identityLocked()
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// AccessToken implements api.TokenSource.
func (m *Manager) AccessToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *Manager) RememberedEmail() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getString(KeyRememberedEmail)
}

func (m *Manager) identityLocked() models.Identity {
	if m.state != StateAuthenticated {
		return models.Guest()
	}
	return models.Identity{
		Authenticated: true,
		UserID:        m.user.ID,
		Email:         m.user.Email,
		Role:          m.user.Role,
	}
}

func (m *Manager) emit(identity models.Identity) {
	for _, fn := range m.listeners {
		fn(identity)
	}
}

// getString reads a key, treating storage errors as absence.
func (m *Manager) getString(key string) string {
	v, ok, err := m.store.Get(key)
	if err != nil {
		m.log.Error("session key read failed", "key", key, "error", err)
		return ""
	}
	if !ok {
		return ""
	}
	return v
}

func (m *Manager) setString(key, value string) {
	if err := m.store.Set(key, value); err != nil {
		m.log.Error("session key write failed", "key", key, "error", err)
	}
}

// tokenUsable is the single place token validity is decided. Today presence
// alone counts: the expiry claim is decoded and logged but an expired token is
// still accepted, matching the server-trusting behavior of the rest of the
// client. Hardening the check means changing only this function.
func tokenUsable(token string, log *slog.Logger) bool {
	if token == "" {
		return false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		// opaque tokens still count as present
		return true
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil && exp.Before(nowFunc()) {
		log.Warn("stored access token is past its expiry", "expired_at", exp.Time)
	}
	return true
}
