// README: In-memory flight booking registry.
package flight

import (
	"context"
	"sort"
	"sync"
)

type Store struct {
	mu       sync.RWMutex
	bookings map[string]Booking
}

func NewStore() *Store {
	return &Store{bookings: make(map[string]Booking)}
}

func (s *Store) Insert(ctx context.Context, b Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookings[b.ConfirmationNumber]; ok {
		return ErrConflict
	}
	s.bookings[b.ConfirmationNumber] = b
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bookings[id]
	if !ok {
		return Booking{}, ErrBookingNotFound
	}
	return b, nil
}

func (s *Store) List(ctx context.Context) []Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BookedAt.Equal(out[j].BookedAt) {
			return out[i].ConfirmationNumber < out[j].ConfirmationNumber
		}
		return out[i].BookedAt.Before(out[j].BookedAt)
	})
	return out
}
