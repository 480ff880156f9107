package cart

import (
	"errors"
	"fmt"
	"sync"

	"github.com/orchid-shop/storefront/internal/models"
)

// GuestScope is the singleton storage key for the guest cart.
const GuestScope = "cart_guest"

var ErrLoginRequired = errors.New("login required")

// Repository persists one cart per scope.
type Repository interface {
	LoadCart(scope string) ([]models.CartItem, error)
	SaveCart(scope string, items []models.CartItem) error
	DeleteCart(scope string) error
}

// Notifier receives one-time user-facing messages.
type Notifier interface {
	Notify(message string)
}

// ScopeKey resolves the storage key for an identity's cart.
func ScopeKey(id models.Identity) string {
	if !id.Authenticated {
		return GuestScope
	}
	return fmt.Sprintf("cart_%d", id.UserID)
}

// Manager owns the active cart: the in-memory lines always mirror exactly one
// persisted scope, the one belonging to the current identity. Every mutation
// writes the full cart through to that scope.
type Manager struct {
	mu       sync.Mutex
	repo     Repository
	notifier Notifier

	identity    models.Identity
	scope       string
	initialized bool
	items       []models.CartItem
}

func NewManager(repo Repository, notifier Notifier) *Manager {
	return &Manager{repo: repo, notifier: notifier}
}

// Reconcile switches the active cart to the given identity's scope. When a
// guest logs in, any guest cart is folded into the user's cart: quantities sum
// for lines sharing a product id (the user cart keeps its metadata), unknown
// lines are appended. The guest scope entry is removed afterwards. Repeated
// calls for the same identity are no-ops, a merge runs at most once per
// transition.
func (m *Manager) Reconcile(identity models.Identity) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	scope := ScopeKey(identity)
	if m.initialized && scope == m.scope {
		return nil
	}
	m.identity = identity
	m.scope = scope
	m.initialized = true

	if !identity.Authenticated {
		// guests start empty; persisted user scopes are left alone
		m.items = nil
		return nil
	}

	guest, err := m.repo.LoadCart(GuestScope)
	if err != nil {
		return err
	}
	user, err := m.repo.LoadCart(scope)
	if err != nil {
		return err
	}

	switch {
	case len(guest) == 0:
		m.items = user
	case len(user) == 0:
		m.items = guest
		if err := m.repo.SaveCart(scope, guest); err != nil {
			return err
		}
		if err := m.repo.DeleteCart(GuestScope); err != nil {
			return err
		}
		m.notify(fmt.Sprintf("Restored %d item(s) from your session", len(guest)))
	default:
		merged := make([]models.CartItem, len(user))
		copy(merged, user)
		added := 0
		for _, g := range guest {
			if i := indexByID(merged, g.ID); i >= 0 {
				merged[i].Quantity += g.Quantity
			} else {
				merged = append(merged, g)
				added++
			}
		}
		m.items = merged
		if err := m.repo.SaveCart(scope, merged); err != nil {
			return err
		}
		if err := m.repo.DeleteCart(GuestScope); err != nil {
			return err
		}
		if added > 0 {
			m.notify(fmt.Sprintf("Merged %d new item(s) from your session", added))
		}
	}
	return nil
}

// AddItem puts an orchid into the active cart, incrementing the quantity when
// a line for it already exists. Guests cannot accumulate a cart: the fallback
// is invoked instead and nothing is persisted.
func (m *Manager) AddItem(o models.Orchid, quantity int, fallback func()) error {
	if quantity < 1 {
		quantity = 1
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.identity.Authenticated {
		if fallback != nil {
			fallback()
		}
		return ErrLoginRequired
	}

	if i := indexByID(m.items, o.ID); i >= 0 {
		m.items[i].Quantity += quantity
	} else {
		m.items = append(m.items, models.CartItem{
			ID:        o.ID,
			Name:      o.Name,
			URL:       o.URL,
			Price:     GeneratePrice(o),
			Quantity:  quantity,
			IsNatural: o.IsNatural,
		})
	}
	return m.repo.SaveCart(m.scope, m.items)
}

// RemoveItem deletes a line. Removing an absent product is not an error.
func (m *Manager) RemoveItem(productID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := indexByID(m.items, productID)
	if i < 0 {
		return nil
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	return m.repo.SaveCart(m.scope, m.items)
}

// UpdateQuantity sets a line's quantity exactly; anything below 1 removes the
// line entirely.
func (m *Manager) UpdateQuantity(productID, quantity int) error {
	if quantity < 1 {
		return m.RemoveItem(productID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := indexByID(m.items, productID)
	if i < 0 {
		return nil
	}
	m.items[i].Quantity = quantity
	return m.repo.SaveCart(m.scope, m.items)
}

// Clear empties the active cart and drops its persisted entry.
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = nil
	return m.repo.DeleteCart(m.scope)
}

// Items returns a copy of the active cart lines.
func (m *Manager) Items() []models.CartItem {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.CartItem, len(m.items))
	copy(out, m.items)
	return out
}

// Count is the sum of quantities across lines, always recomputed.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := 0
	for _, it := range m.items {
		total += it.Quantity
	}
	return total
}

// Total is the sum of price*quantity across lines, always recomputed.
func (m *Manager) Total() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := 0.0
	for _, it := range m.items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

func (m *Manager) IsInCart(productID int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return indexByID(m.items, productID) >= 0
}

func (m *Manager) Identity() models.Identity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.identity
}

func (m *Manager) notify(message string) {
	if m.notifier != nil {
		m.notifier.Notify(message)
	}
}

func indexByID(items []models.CartItem, id int) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
