package state

import (
	"sync"
)

// FileLocation is a page location persisted in the UI state file. It lets a
// command-line invocation act as the owner of a page's query string between
// runs. It satisfies urlparams.Location.
type FileLocation struct {
	mu       sync.Mutex
	dataDir  string
	page     string
	fallback string
	lastErr  error
}

// NewFileLocation returns the stored location of page. When nothing is stored
// the location is fallback.
func NewFileLocation(dataDir, page, fallback string) *FileLocation {
	return &FileLocation{dataDir: dataDir, page: page, fallback: fallback}
}

// Current reads the stored location.
func (l *FileLocation) Current() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	if loc, ok := Load(l.dataDir).Locations[l.page]; ok {
		return loc
	}
	return l.fallback
}

// Replace stores location for the page. Write errors are kept for Err since
// navigation itself cannot fail.
func (l *FileLocation) Replace(location string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	st := Load(l.dataDir)
	st.Locations[l.page] = location
	l.lastErr = Save(l.dataDir, st)
}

// Clear removes the stored location so Current falls back again.
func (l *FileLocation) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	st := Load(l.dataDir)
	delete(st.Locations, l.page)
	l.lastErr = Save(l.dataDir, st)
	return l.lastErr
}

// Err returns the error from the last write, if any.
func (l *FileLocation) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}
