// README: Conversation session aggregate and the fixed slot universe.
package session

import (
	"strings"
	"sync"
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Slot names. Hotel search / booking.
const (
	SlotLocation     = "location"
	SlotCheckInDate  = "check_in_date"
	SlotCheckOutDate = "check_out_date"
	SlotNumGuests    = "num_guests"
	SlotRoomType     = "room_type"
	SlotHotelName    = "hotel_name"
	SlotHotelsFound  = "hotels_found"
)

// Flight search.
const (
	SlotOrigin        = "origin"
	SlotDestination   = "destination"
	SlotDepartureDate = "departure_date"
	SlotReturnDate    = "return_date"
	SlotMaxPrice      = "max_price"
	SlotCurrencyCode  = "currency_code"
	SlotTravelClass   = "travel_class"
	SlotNonStop       = "non_stop"
	SlotFlightsFound  = "flights_found"
)

// Flight booking.
const (
	SlotAirline            = "airline"
	SlotFlightNumber       = "flight_number"
	SlotDepartureTime      = "departure_time"
	SlotArrivalTime        = "arrival_time"
	SlotPrice              = "price"
	SlotNumPassengers      = "num_passengers"
	SlotPassengerName      = "passenger_name"
	SlotReturnFlightNumber = "return_flight_number"
)

// Shared.
const (
	SlotConfirmationNumber = "confirmation_number"
	SlotLastIntent         = "last_intent"
)

// SlotNames is the complete slot universe in canonical order.
var SlotNames = []string{
	SlotLocation, SlotCheckInDate, SlotCheckOutDate, SlotNumGuests, SlotRoomType, SlotHotelName, SlotHotelsFound,
	SlotOrigin, SlotDestination, SlotDepartureDate, SlotReturnDate, SlotMaxPrice, SlotCurrencyCode, SlotTravelClass, SlotNonStop, SlotFlightsFound,
	SlotAirline, SlotFlightNumber, SlotDepartureTime, SlotArrivalTime, SlotPrice, SlotNumPassengers, SlotPassengerName, SlotReturnFlightNumber,
	SlotConfirmationNumber, SlotLastIntent,
}

var knownSlots = func() map[string]struct{} {
	m := make(map[string]struct{}, len(SlotNames))
	for _, n := range SlotNames {
		m[n] = struct{}{}
	}
	return m
}()

// IsSlot reports whether name belongs to the slot universe.
func IsSlot(name string) bool {
	_, ok := knownSlots[name]
	return ok
}

// Slots always carries every name in SlotNames; unset slots hold nil.
type Slots map[string]any

func NewSlots() Slots {
	s := make(Slots, len(SlotNames))
	for _, n := range SlotNames {
		s[n] = nil
	}
	return s
}

// NonNull returns only the slots that hold a value.
func (s Slots) NonNull() map[string]any {
	out := make(map[string]any)
	for k, v := range s {
		if v != nil {
			out[k] = v
		}
	}
	return out
}

func (s Slots) clone() Slots {
	out := make(Slots, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is safe for concurrent use. Each session serialises its own mutations.
type Session struct {
	mu           sync.Mutex
	id           string
	createdAt    time.Time
	lastActivity time.Time
	messages     []Message
	slots        Slots
	lastIntent   string
	now          func() time.Time
}

func newSession(id string, now func() time.Time) *Session {
	t := now()
	return &Session{
		id:           id,
		createdAt:    t,
		lastActivity: t,
		slots:        NewSlots(),
		now:          now,
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

// AddMessage appends a timestamped turn.
func (s *Session) AddMessage(role Role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.now()
	s.messages = append(s.messages, Message{Role: role, Content: content, Timestamp: t})
	s.lastActivity = t
}

// MergeSlots copies non-null updates into the slot table. Null or blank-string values and
// names outside the slot universe are ignored, so a known value is never erased by a merge.
func (s *Session) MergeSlots(updates map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range updates {
		if !IsSlot(k) || isNull(v) {
			continue
		}
		s.slots[k] = v
	}
	s.lastActivity = s.now()
}

// ClearSlots resets every slot to nil and keeps the history.
func (s *Session) ClearSlots() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots = NewSlots()
	s.lastIntent = ""
	s.lastActivity = s.now()
}

// Slots returns a snapshot of the slot table.
func (s *Session) Slots() Slots {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slots.clone()
}

func (s *Session) SetLastIntent(intent string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastIntent = intent
	if intent != "" {
		s.slots[SlotLastIntent] = intent
	}
}

func (s *Session) LastIntent() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastIntent
}

// History returns the last n messages, oldest first. n <= 0 returns everything.
func (s *Session) History(n int) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	start := 0
	if n > 0 && len(s.messages) > n {
		start = len(s.messages) - n
	}
	out := make([]Message, len(s.messages)-start)
	copy(out, s.messages[start:])
	return out
}

func (s *Session) MessageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// Snapshot is the JSON view of a session.
type Snapshot struct {
	SessionID    string         `json:"session_id"`
	CreatedAt    time.Time      `json:"created_at"`
	LastActivity time.Time      `json:"last_activity"`
	LastIntent   string         `json:"last_intent,omitempty"`
	Slots        map[string]any `json:"slots"`
	Messages     []Message      `json:"messages"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := make([]Message, len(s.messages))
	copy(msgs, s.messages)
	return Snapshot{
		SessionID:    s.id,
		CreatedAt:    s.createdAt,
		LastActivity: s.lastActivity,
		LastIntent:   s.lastIntent,
		Slots:        s.slots.clone(),
		Messages:     msgs,
	}
}

func isNull(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	}
	return false
}
