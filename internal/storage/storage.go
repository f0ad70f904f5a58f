package storage

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"wedding-guestlist/internal/models"
)

// ErrGuestNotFound is returned when an update targets an id the registry does not hold.
var ErrGuestNotFound = errors.New("guest not found")

// Registry owns the authoritative, ordered guest collection.
//
// Implementations assign ids themselves, never reuse an id within their
// lifetime, keep insertion order, and apply each operation atomically.
type Registry interface {
	// Add validates in, assigns a fresh id and appends the guest.
	Add(ctx context.Context, in models.GuestInput) (models.Guest, error)
	// Update replaces every mutable field of the guest with the given id,
	// keeping its position. It returns ErrGuestNotFound for unknown ids.
	Update(ctx context.Context, id string, in models.GuestInput) (models.Guest, error)
	// Remove deletes the guest if present and returns the resulting collection.
	// Unknown ids are a no-op.
	Remove(ctx context.Context, id string) ([]models.Guest, error)
	// List returns a snapshot of the collection in insertion order.
	List(ctx context.Context) ([]models.Guest, error)
	Close() error
}

// Memory is the default in-process registry.
type Memory struct {
	mu     sync.RWMutex
	guests []models.Guest
	nextID uint64
}

// NewMemory creates an empty in-memory registry
func NewMemory() *Memory {
	return &Memory{
		guests: make([]models.Guest, 0),
	}
}

// Add adds a new guest
func (s *Memory) Add(_ context.Context, in models.GuestInput) (models.Guest, error) {
	if err := in.Validate(); err != nil {
		return models.Guest{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	guest := in.ToGuest(strconv.FormatUint(s.nextID, 10))
	s.nextID++
	s.guests = append(s.guests, guest)
	return guest, nil
}

// Update replaces the mutable fields of an existing guest
func (s *Memory) Update(_ context.Context, id string, in models.GuestInput) (models.Guest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Guest{}, ErrGuestNotFound
	}
	if err := in.Validate(); err != nil {
		return models.Guest{}, err
	}

	s.guests[i] = in.ToGuest(id)
	return s.guests[i], nil
}

// Remove deletes a guest by id
func (s *Memory) Remove(_ context.Context, id string) ([]models.Guest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		s.guests = append(s.guests[:i], s.guests[i+1:]...)
	}
	return s.snapshot(), nil
}

// List returns all guests
func (s *Memory) List(_ context.Context) ([]models.Guest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot(), nil
}

// Close is a no-op for the in-memory registry.
func (s *Memory) Close() error {
	return nil
}

func (s *Memory) indexOf(id string) int {
	for i, g := range s.guests {
		if g.ID == id {
			return i
		}
	}
	return -1
}

func (s *Memory) snapshot() []models.Guest {
	guests := make([]models.Guest, len(s.guests))
	copy(guests, s.guests)
	return guests
}
