package services

import (
	"sync"

	"intellivend/internal/domain"
	"intellivend/internal/pricing"
)

// CartService holds one cart per session in memory. Carts are not persisted.
type CartService struct {
	mu    sync.Mutex
	carts map[string][]domain.CartItem
}

func NewCartService() *CartService {
	return &CartService{carts: map[string][]domain.CartItem{}}
}

// Add bumps the quantity when p is already in the cart, otherwise appends it
// with quantity 1.
func (s *CartService) Add(sid string, p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.carts[sid]
	for i := range items {
		if items[i].ID == p.ID {
			items[i].Quantity++
			return
		}
	}
	s.carts[sid] = append(items, domain.CartItem{Product: p, Quantity: 1})
}

func (s *CartService) Remove(sid, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.carts[sid]
	kept := items[:0]
	for _, it := range items {
		if it.ID != productID {
			kept = append(kept, it)
		}
	}
	s.carts[sid] = kept
}

// UpdateQuantity adds delta to the item's quantity, never going below 1.
func (s *CartService) UpdateQuantity(sid, productID string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, it := range s.carts[sid] {
		if it.ID == productID {
			s.carts[sid][i].Quantity = max(1, it.Quantity+delta)
			return
		}
	}
}

func (s *CartService) Clear(sid string) {
	s.mu.Lock()
	delete(s.carts, sid)
	s.mu.Unlock()
}

// Items returns a copy of the session's cart.
func (s *CartService) Items(sid string) []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.CartItem(nil), s.carts[sid]...)
}

type CartView struct {
	Items     []domain.CartItem `json:"items"`
	Breakdown pricing.Breakdown `json:"breakdown"`
}

func (s *CartService) View(sid string) CartView {
	items := s.Items(sid)
	return CartView{Items: items, Breakdown: pricing.Quote(items)}
}
