package urlparams

import (
	"strings"
	"sync"
)

// Location is the navigable location a page owns. Replace swaps the current
// entry without growing history.
type Location interface {
	Current() string
	Replace(location string)
}

// Notifier is implemented by locations that report navigation.
type Notifier interface {
	Subscribe(fn func(location string)) (unsubscribe func())
}

// SplitLocation splits a location into path, query and fragment. The query
// and fragment come back without their '?' and '#' markers.
func SplitLocation(location string) (path, query, fragment string) {
	rest, fragment, _ := strings.Cut(location, "#")
	path, query, _ = strings.Cut(rest, "?")
	return path, query, fragment
}

// JoinLocation is the inverse of SplitLocation. Empty query and fragment
// parts are left out.
func JoinLocation(path, query, fragment string) string {
	var b strings.Builder
	b.WriteString(path)
	if query != "" {
		b.WriteByte('?')
		b.WriteString(query)
	}
	if fragment != "" {
		b.WriteByte('#')
		b.WriteString(fragment)
	}
	return b.String()
}

// MemoryLocation is an in-process Location with a history stack, used by
// tests and by hosts that have no router of their own.
type MemoryLocation struct {
	mu      sync.Mutex
	history []string
	subs    map[int]func(string)
	nextID  int
}

// NewMemoryLocation creates a location positioned at initial.
func NewMemoryLocation(initial string) *MemoryLocation {
	return &MemoryLocation{
		history: []string{initial},
		subs:    make(map[int]func(string)),
	}
}

// Current returns the active location.
func (m *MemoryLocation) Current() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.history[len(m.history)-1]
}

// Replace overwrites the active history entry.
func (m *MemoryLocation) Replace(location string) {
	m.mu.Lock()
	m.history[len(m.history)-1] = location
	m.mu.Unlock()
	m.emit(location)
}

// Push adds a new history entry.
func (m *MemoryLocation) Push(location string) {
	m.mu.Lock()
	m.history = append(m.history, location)
	m.mu.Unlock()
	m.emit(location)
}

// History returns every entry, oldest first.
func (m *MemoryLocation) History() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.history...)
}

// Subscribe registers fn for navigation events.
func (m *MemoryLocation) Subscribe(fn func(string)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

func (m *MemoryLocation) emit(location string) {
	m.mu.Lock()
	fns := make([]func(string), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(location)
	}
}
