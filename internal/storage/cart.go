package storage

import (
	"encoding/json"
	"log/slog"

	"github.com/orchid-shop/storefront/internal/models"
)

// LoadCart returns the persisted cart for a scope, or nil when the scope has
// none. An unparsable entry is discarded and reads as absent.
func (s *Store) LoadCart(scope string) ([]models.CartItem, error) {
	raw, ok, err := s.Get(scope)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var items []models.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		slog.Warn("discarding corrupt cart entry", "scope", scope, "error", err)
		_ = s.Delete(scope)
		return nil, nil
	}
	return items, nil
}

func (s *Store) SaveCart(scope string, items []models.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.Set(scope, string(data))
}

func (s *Store) DeleteCart(scope string) error {
	return s.Delete(scope)
}
