package room

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/AnthonyMuncherz/pingpong-game/game"
)

// codeAttempts bounds the collision-retry loop during creation.
const codeAttempts = 10

var ErrCodeGeneration = errors.New("failed to generate a unique room code")

// Manager is the process-wide room registry. It owns creation, lookup
// and deletion; per-room state is guarded by each room's own lock.
type Manager struct {
	mutex    sync.RWMutex
	rooms    map[string]*Room
	settings game.Settings
	rng      *rand.Rand
}

func NewManager(settings game.Settings) *Manager {
	return &Manager{
		rooms:    make(map[string]*Room),
		settings: settings,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateRoom generates a fresh code, checked against every live room,
// and registers an empty waiting room under it.
func (m *Manager) CreateRoom() (*Room, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for attempt := 0; attempt < codeAttempts; attempt++ {
		code, err := generateCode()
		if err != nil {
			return nil, err
		}
		if _, exists := m.rooms[code]; exists {
			continue
		}

		r := NewRoom(code, m.settings, rand.New(rand.NewSource(m.rng.Int63())))
		m.rooms[code] = r
		return r, nil
	}
	return nil, ErrCodeGeneration
}

func (m *Manager) GetRoom(code string) (*Room, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	r, exists := m.rooms[code]
	return r, exists
}

// FindByConnection locates the room owning a connection id. A linear
// scan is fine at this scale and is the authoritative mapping from a
// connection to "my room".
func (m *Manager) FindByConnection(connID string) (*Room, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, r := range m.rooms {
		if r.HasPlayer(connID) {
			return r, true
		}
	}
	return nil, false
}

// RemoveIfEmpty deletes the room only once its player list is empty.
func (m *Manager) RemoveIfEmpty(code string) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	r, exists := m.rooms[code]
	if !exists || r.PlayerCount() > 0 {
		return false
	}
	delete(m.rooms, code)
	return true
}

// Rooms returns a snapshot slice of the live rooms for iteration.
func (m *Manager) Rooms() []*Room {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	rooms := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		rooms = append(rooms, r)
	}
	return rooms
}

func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.rooms)
}

// SweepStale reclaims finished rooms past the linger TTL and any room
// past the hard max age, returning how many were removed. Players
// still connected to a reclaimed room simply stop matching
// FindByConnection, so their later events are dropped per the error
// policy.
func (m *Manager) SweepStale(linger, maxAge time.Duration) int {
	now := time.Now()

	m.mutex.Lock()
	defer m.mutex.Unlock()

	removed := 0
	for code, r := range m.rooms {
		if r.expired(now, linger, maxAge) {
			delete(m.rooms, code)
			removed++
		}
	}
	return removed
}
