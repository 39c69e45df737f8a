package state

import (
	"testing"

	"github.com/mark3labs/secconsole/internal/urlparams"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLocation_Fallback(t *testing.T) {
	loc := NewFileLocation(t.TempDir(), "alerts", "/alerts")
	assert.Equal(t, "/alerts", loc.Current())
}

func TestFileLocation_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	first := NewFileLocation(dir, "alerts", "/alerts")
	first.Replace("/alerts?page=3")
	require.NoError(t, first.Err())

	second := NewFileLocation(dir, "alerts", "/alerts")
	assert.Equal(t, "/alerts?page=3", second.Current())

	other := NewFileLocation(dir, "users", "/users")
	assert.Equal(t, "/users", other.Current(), "pages do not share locations")
}

func TestFileLocation_Clear(t *testing.T) {
	dir := t.TempDir()
	loc := NewFileLocation(dir, "alerts", "/alerts")
	loc.Replace("/alerts?q=x")

	require.NoError(t, loc.Clear())
	assert.Equal(t, "/alerts", loc.Current())
}

func TestFileLocation_DrivesSynchronizer(t *testing.T) {
	dir := t.TempDir()
	s := urlparams.New(NewFileLocation(dir, "alerts", "/alerts?severity[]=HIGH"))

	s.Update(urlparams.Params{"page": 2, "resolved": false})

	reopened := urlparams.New(NewFileLocation(dir, "alerts", "/alerts"))
	assert.Equal(t, urlparams.Params{
		"page":     2,
		"resolved": false,
		"severity": []any{"HIGH"},
	}, reopened.Read())
}
