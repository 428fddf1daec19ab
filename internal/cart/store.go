package cart

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/strixcommerce/storefront-platform/internal/models"
)

// Storage is the durable copy of a cart, keyed by session. Load returns
// (nil, nil) when nothing is persisted; writes are last-write-wins.
type Storage interface {
	Load(ctx context.Context, sessionID string) (*models.Cart, error)
	Save(ctx context.Context, sessionID string, cart *models.Cart) error
	Clear(ctx context.Context, sessionID string) error
}

// Store is the cart aggregate for one shopping session. All operations are
// total: invalid quantities clamp instead of failing, unknown variant IDs
// are no-ops. Every mutation persists the cart; a persistence failure is
// logged and the in-memory state stays authoritative for the session.
type Store struct {
	mu        sync.RWMutex
	sessionID string
	storage   Storage
	items     []models.CartItem
	coupon    *models.Coupon
}

func NewStore(sessionID string, storage Storage) *Store {
	return &Store{sessionID: sessionID, storage: storage}
}

// Hydrate builds a Store from the persisted copy, or an empty one when
// nothing was saved.
func Hydrate(ctx context.Context, sessionID string, storage Storage) (*Store, error) {

	s := NewStore(sessionID, storage)

	saved, err := storage.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if saved != nil {
		s.items = saved.Items
		s.coupon = saved.Coupon
	}

	return s, nil
}

// Add merges the item into the cart: an existing line for the same variant
// has its quantity incremented, otherwise the line is appended. Quantities
// below one clamp to one. Stock is not checked here; selection time owns
// that.
func (s *Store) Add(ctx context.Context, item models.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.Quantity < 1 {
		item.Quantity = 1
	}

	for i := range s.items {
		if s.items[i].VariantID == item.VariantID {
			s.items[i].Quantity += item.Quantity
			s.persist(ctx)

			return
		}
	}

	s.items = append(s.items, item)
	s.persist(ctx)
}

// Remove deletes the line for the variant; unknown IDs are a no-op. When
// the last line leaves, the persisted copy is deleted outright so an empty
// cart is indistinguishable from one that was never saved.
func (s *Store) Remove(ctx context.Context, variantID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].VariantID == variantID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persist(ctx)

			return
		}
	}
}

// UpdateQuantity sets the line's quantity, clamped to a minimum of one.
// Removal is the only path to zero.
func (s *Store) UpdateQuantity(ctx context.Context, variantID int64, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 1 {
		quantity = 1
	}

	for i := range s.items {
		if s.items[i].VariantID == variantID {
			s.items[i].Quantity = quantity
			s.persist(ctx)

			return
		}
	}
}

// Clear empties the cart, drops any coupon and deletes the persisted copy.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.coupon = nil
	s.persist(ctx)
}

// ApplyCoupon sets the single active coupon, replacing any previous one.
func (s *Store) ApplyCoupon(ctx context.Context, coupon models.Coupon) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.coupon = &coupon
	s.persist(ctx)
}

func (s *Store) RemoveCoupon(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.coupon = nil
	s.persist(ctx)
}

// Total is the coupon-exclusive sum of line totals.
func (s *Store) Total() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total float64

	for _, item := range s.items {
		total += item.LineTotal()
	}

	return total
}

func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int

	for _, item := range s.items {
		count += item.Quantity
	}

	return count
}

func (s *Store) Empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items) == 0
}

func (s *Store) Items() []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.CartItem, len(s.items))
	copy(items, s.items)

	return items
}

func (s *Store) Coupon() *models.Coupon {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.coupon == nil {
		return nil
	}

	c := *s.coupon

	return &c
}

// Snapshot returns a detached copy of the aggregate for pricing and order
// submission.
func (s *Store) Snapshot() models.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.CartItem, len(s.items))
	copy(items, s.items)

	cart := models.Cart{Items: items, UpdatedAt: time.Now()}

	if s.coupon != nil {
		c := *s.coupon
		cart.Coupon = &c
	}

	return cart
}

// persist mirrors the aggregate to durable storage. Caller must hold the
// write lock.
func (s *Store) persist(ctx context.Context) {

	if len(s.items) == 0 {
		if err := s.storage.Clear(ctx, s.sessionID); err != nil {
			slog.Warn("Failed to clear persisted cart",
				slog.String("session_id", s.sessionID),
				slog.String("error", err.Error()))
		}

		return
	}

	cart := models.Cart{Items: s.items, Coupon: s.coupon, UpdatedAt: time.Now()}

	if err := s.storage.Save(ctx, s.sessionID, &cart); err != nil {
		slog.Warn("Failed to persist cart",
			slog.String("session_id", s.sessionID),
			slog.String("error", err.Error()))
	}
}
