package urlparams

import (
	"sync"

	"github.com/mark3labs/secconsole/internal/logger"
)

// Synchronizer maps a Params object onto the query string of a Location. The
// location is the only source of truth: Read always re-parses it and Update
// writes through it.
type Synchronizer struct {
	loc Location

	mu          sync.Mutex
	current     Params
	unsubscribe func()
}

// New creates a synchronizer for loc. When loc implements Notifier the parsed
// params are refreshed on every navigation.
func New(loc Location) *Synchronizer {
	s := &Synchronizer{loc: loc}
	s.current = s.Read()
	if n, ok := loc.(Notifier); ok {
		s.unsubscribe = n.Subscribe(s.onNavigate)
	}
	return s
}

func (s *Synchronizer) onNavigate(location string) {
	_, query, _ := SplitLocation(location)
	parsed := Parse(query)

	s.mu.Lock()
	s.current = parsed
	s.mu.Unlock()
}

// Read parses the current location's query string.
func (s *Synchronizer) Read() Params {
	_, query, _ := SplitLocation(s.loc.Current())
	return Parse(query)
}

// Params returns the params as of the last navigation. For locations without
// change notification it is the same as Read.
func (s *Synchronizer) Params() Params {
	if s.unsubscribe == nil {
		return s.Read()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Update merges partial over the current params, drops values that mean "no
// filter" (see Keep) and replaces the location with the result. Path and
// fragment are preserved.
//
// Each call merges against the location as it is when the call is made, so
// two callers racing on one location see last-write-wins.
func (s *Synchronizer) Update(partial Params) {
	current := s.loc.Current()
	path, query, fragment := SplitLocation(current)

	merged := Parse(query)
	for k, v := range partial {
		merged[k] = v
	}

	next := JoinLocation(path, Encode(Strip(merged)), fragment)
	if next == current {
		return
	}
	logger.Debug("urlparams: %s -> %s", current, next)
	s.loc.Replace(next)
}

// Location returns the current location string.
func (s *Synchronizer) Location() string {
	return s.loc.Current()
}

// Close stops listening for navigation.
func (s *Synchronizer) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}
