package urlparams

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynchronizer_ReadAndUpdate(t *testing.T) {
	loc := NewMemoryLocation("/alerts?tags[]=a&tags[]=b&page=1")
	s := New(loc)
	defer s.Close()

	assert.Equal(t, Params{"tags": []any{"a", "b"}, "page": 1}, s.Read())

	s.Update(Params{"page": 2})

	assert.Equal(t, "/alerts?page=2&tags[]=a&tags[]=b", loc.Current())
	assert.Equal(t, Params{"tags": []any{"a", "b"}, "page": 2}, s.Read())
	assert.Equal(t, Params{"tags": []any{"a", "b"}, "page": 2}, s.Params())
}

func TestSynchronizer_ZeroAndFalseKept(t *testing.T) {
	loc := NewMemoryLocation("/alerts?count=5&q=x")
	s := New(loc)

	s.Update(Params{"count": 0, "resolved": false})
	assert.Equal(t, Params{"count": 0, "q": "x", "resolved": false}, s.Read())

	s.Update(Params{"count": nil})
	assert.Equal(t, Params{"q": "x", "resolved": false}, s.Read())

	s.Update(Params{"q": ""})
	assert.Equal(t, "/alerts?resolved=false", loc.Current())
}

func TestSynchronizer_ReplacesInsteadOfPushing(t *testing.T) {
	loc := NewMemoryLocation("/sources")
	s := New(loc)

	s.Update(Params{"page": 2})
	s.Update(Params{"page": 3})

	assert.Equal(t, []string{"/sources?page=3"}, loc.History())
}

func TestSynchronizer_UpdateIdempotent(t *testing.T) {
	loc := NewMemoryLocation("/alerts?z=1&a=&b[]=x#details")
	s := New(loc)

	s.Update(Params{})
	first := loc.Current()
	s.Update(Params{})
	second := loc.Current()

	assert.Equal(t, first, second)
	assert.Equal(t, "/alerts?b[]=x&z=1#details", first)
}

func TestSynchronizer_EmptyResultDropsQuestionMark(t *testing.T) {
	loc := NewMemoryLocation("/alerts?q=x")
	s := New(loc)

	s.Update(Params{"q": nil})
	assert.Equal(t, "/alerts", loc.Current())
}

func TestSynchronizer_FollowsNavigation(t *testing.T) {
	loc := NewMemoryLocation("/alerts?page=1")
	s := New(loc)
	defer s.Close()

	loc.Push("/alerts?page=4&severity[]=HIGH")
	assert.Equal(t, Params{"page": 4, "severity": []any{"HIGH"}}, s.Params())

	s.Update(Params{"page": 5})
	assert.Equal(t, Params{"page": 5, "severity": []any{"HIGH"}}, s.Params())
	assert.Len(t, loc.History(), 2)
}

func TestSynchronizer_StaleBaseLastWriteWins(t *testing.T) {
	loc := NewMemoryLocation("/alerts")
	a := New(loc)
	b := New(loc)

	a.Update(Params{"page": 2})
	b.Update(Params{"q": "root"})

	// b read the location after a wrote it, so both values survive.
	assert.Equal(t, Params{"page": 2, "q": "root"}, a.Read())
}

// plainLocation has no change notification.
type plainLocation struct{ loc string }

func (p *plainLocation) Current() string    { return p.loc }
func (p *plainLocation) Replace(loc string) { p.loc = loc }

func TestSynchronizer_WithoutNotifier(t *testing.T) {
	loc := &plainLocation{loc: "/users?page=1"}
	s := New(loc)

	s.Update(Params{"role": "admin"})
	assert.Equal(t, Params{"page": 1, "role": "admin"}, s.Params())
	assert.Equal(t, "/users?page=1&role=admin", s.Location())
}

type alertFilters struct {
	Query    string   `query:"q"`
	Page     int      `query:"page"`
	Severity []string `query:"severity"`
	Resolved bool     `query:"resolved"`
}

func TestTyped_Value(t *testing.T) {
	loc := NewMemoryLocation("/alerts?q=okta&page=3&severity[]=HIGH&severity[]=LOW&resolved=true")
	typed := NewTyped[alertFilters](loc)
	defer typed.Close()

	got, err := typed.Value()
	require.NoError(t, err)
	assert.Equal(t, alertFilters{
		Query:    "okta",
		Page:     3,
		Severity: []string{"HIGH", "LOW"},
		Resolved: true,
	}, got)
}

func TestTyped_WeakDecoding(t *testing.T) {
	loc := NewMemoryLocation("/alerts?q=123&severity=HIGH")
	typed := NewTyped[alertFilters](loc)

	got, err := typed.Value()
	require.NoError(t, err)
	assert.Equal(t, "123", got.Query)
	assert.Equal(t, []string{"HIGH"}, got.Severity)
}

type alertPatch struct {
	Query *string `query:"q"`
	Page  int     `query:"page,omitempty"`
}

func TestTyped_UpdateFrom(t *testing.T) {
	loc := NewMemoryLocation("/alerts?q=okta&page=3")
	typed := NewTyped[alertFilters](loc)

	require.NoError(t, typed.UpdateFrom(alertPatch{Page: 4}))
	assert.Equal(t, Params{"page": 4}, typed.Read(), "nil pointer clears q")

	q := "cloudtrail"
	require.NoError(t, typed.UpdateFrom(alertPatch{Query: &q}))
	assert.Equal(t, Params{"page": 4, "q": "cloudtrail"}, typed.Read(), "omitted page is kept")
}
