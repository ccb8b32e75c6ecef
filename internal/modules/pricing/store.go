// README: Pricing store holding the active rate card in memory.
package pricing

import (
	"context"
	"sync"
)

type Store struct {
	mu   sync.RWMutex
	rate Rate
}

func NewStore(rate Rate) *Store {
	return &Store{rate: rate}
}

func (s *Store) GetRate(ctx context.Context) (Rate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rate, nil
}
