package services

import (
	"sort"
	"sync"

	"intellivend/internal/domain"
)

type WishlistService struct {
	mu   sync.Mutex
	sets map[string]map[string]struct{}
}

func NewWishlistService() *WishlistService {
	return &WishlistService{sets: map[string]map[string]struct{}{}}
}

// Toggle adds or removes productID and reports whether it is now saved.
func (s *WishlistService) Toggle(sid, productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.sets[sid]
	if set == nil {
		set = map[string]struct{}{}
		s.sets[sid] = set
	}
	if _, ok := set[productID]; ok {
		delete(set, productID)
		return false
	}
	set[productID] = struct{}{}
	return true
}

func (s *WishlistService) IDs(sid string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.sets[sid]))
	for id := range s.sets[sid] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// List keeps the catalog order of the saved products; ids no longer in the
// catalog are dropped.
func (s *WishlistService) List(sid string, products []domain.Product) []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.sets[sid]
	var out []domain.Product
	for _, p := range products {
		if _, ok := set[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out
}

func (s *WishlistService) Clear(sid string) {
	s.mu.Lock()
	delete(s.sets, sid)
	s.mu.Unlock()
}
