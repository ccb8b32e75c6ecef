// README: In-memory hotel booking registry.
package hotel

import (
	"context"
	"sort"
	"sync"
	"time"
)

type Store struct {
	mu       sync.RWMutex
	bookings map[string]Booking
}

func NewStore() *Store {
	return &Store{bookings: make(map[string]Booking)}
}

// Insert fails with ErrConflict when the confirmation number is taken.
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

// UpdateStatus applies a transition atomically. On ErrInvalidState the current booking is returned.
func (s *Store) UpdateStatus(ctx context.Context, id string, to Status, at time.Time) (Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return Booking{}, ErrBookingNotFound
	}
	if !CanTransition(b.Status, to) {
		return b, ErrInvalidState
	}
	b.Status = to
	if to == StatusCancelled {
		b.CancelledAt = &at
	}
	s.bookings[id] = b
	return b, nil
}

// List returns bookings ordered by booking time.
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

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bookings)
}
