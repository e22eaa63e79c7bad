package services

import (
	"context"
	"sync"

	"travelbuddies/internal/domain/models"
)

// FallbackLog keeps the most recent mail-client handoffs in memory so the
// operator inbox can show that the lead endpoint was unreachable.
type FallbackLog struct {
	mu     sync.Mutex
	events []models.FallbackEvent
	next   int
	full   bool
}

func NewFallbackLog(capacity int) *FallbackLog {
	if capacity <= 0 {
		capacity = 100
	}
	return &FallbackLog{events: make([]models.FallbackEvent, capacity)}
}

func (l *FallbackLog) RecordFallback(_ context.Context, ev models.FallbackEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events[l.next] = ev
	l.next = (l.next + 1) % len(l.events)
	if l.next == 0 {
		l.full = true
	}
}

// Recent returns events newest first.
func (l *FallbackLog) Recent() []models.FallbackEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := l.next
	if l.full {
		n = len(l.events)
	}
	out := make([]models.FallbackEvent, 0, n)
	for i := 1; i <= n; i++ {
		idx := (l.next - i + len(l.events)) % len(l.events)
		out = append(out, l.events[idx])
	}
	return out
}
