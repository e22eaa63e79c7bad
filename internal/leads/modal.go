package leads

import (
	"sync"
	"time"
)

type ModalKind string

const (
	ModalClosed  ModalKind = "closed"
	ModalBooking ModalKind = "booking"
	ModalEnquiry ModalKind = "enquiry"
)

// ModalState says which form the page shows. TripID and TripName are only set
// for ModalBooking.
type ModalState struct {
	Kind     ModalKind `json:"kind"`
	TripID   string    `json:"tripId,omitempty"`
	TripName string    `json:"tripName,omitempty"`
}

func CloseModal() ModalState { return ModalState{Kind: ModalClosed} }

func OpenBooking(tripID, tripName string) ModalState {
	return ModalState{Kind: ModalBooking, TripID: tripID, TripName: tripName}
}

func OpenEnquiry() ModalState { return ModalState{Kind: ModalEnquiry} }

func (m ModalState) IsOpen() bool { return m.Kind == ModalBooking || m.Kind == ModalEnquiry }

// SessionIdleTTL is how long an abandoned form keeps its session.
const SessionIdleTTL = 30 * time.Minute

// Sessions tracks open form instances by key. A session is dropped once its
// form reaches a terminal state, is closed, or sits idle past SessionIdleTTL.
type Sessions struct {
	mu   sync.Mutex
	open map[string]*sessionEntry
	ttl  time.Duration
	now  func() time.Time
}

type sessionEntry struct {
	sess     *Session
	lastSeen time.Time
}

func NewSessions() *Sessions {
	return &Sessions{open: map[string]*sessionEntry{}, ttl: SessionIdleTTL, now: time.Now}
}

// Get returns the session for key, opening a new one if needed.
func (s *Sessions) Get(key string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictIdle(now)

	if e, ok := s.open[key]; ok {
		e.lastSeen = now
		return e.sess
	}
	e := &sessionEntry{sess: NewSession(), lastSeen: now}
	s.open[key] = e
	return e.sess
}

// evictIdle drops sessions not touched within ttl. In-flight ones are kept.
func (s *Sessions) evictIdle(now time.Time) {
	for key, e := range s.open {
		if now.Sub(e.lastSeen) > s.ttl && !e.sess.Submitting() {
			delete(s.open, key)
		}
	}
}

// Close forgets key unless a submission is still running for it.
func (s *Sessions) Close(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.open[key]; ok && !e.sess.Submitting() {
		delete(s.open, key)
	}
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.open)
}
