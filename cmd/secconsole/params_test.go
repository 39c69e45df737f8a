package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/colorprofile"
	"github.com/mark3labs/secconsole/internal/state"
	"github.com/mark3labs/secconsole/internal/urlparams"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAssignments(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want urlparams.Params
	}{
		{
			name: "typed scalars",
			args: []string{"page=2", "active=false", "score=1.5", "q=login failed"},
			want: urlparams.Params{"page": 2, "active": false, "score": 1.5, "q": "login failed"},
		},
		{
			name: "arrays",
			args: []string{"tags[]=auth", "tags[]=iam"},
			want: urlparams.Params{"tags": []any{"auth", "iam"}},
		},
		{
			name: "clear",
			args: []string{"q="},
			want: urlparams.Params{"q": ""},
		},
		{
			name: "special characters",
			args: []string{"q=a&b=c"},
			want: urlparams.Params{"q": "a&b=c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAssignments(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAssignments_Invalid(t *testing.T) {
	for _, arg := range []string{"page", "=2", "[]=a"} {
		_, err := parseAssignments([]string{arg})
		assert.Error(t, err, arg)
	}
}

func TestApplyAssignments(t *testing.T) {
	dir := t.TempDir()
	loc := pageLocation(dir, "alerts")
	require.Equal(t, "/alerts", loc.Current())

	got, err := applyAssignments(loc, []string{"page=2", "tags[]=a", "tags[]=b", "q=test"})
	require.NoError(t, err)
	assert.Equal(t, urlparams.Params{"page": 2, "tags": []any{"a", "b"}, "q": "test"}, got)
	assert.Equal(t, "/alerts?page=2&q=test&tags[]=a&tags[]=b", loc.Current())

	got, err = applyAssignments(loc, []string{"q=", "page=0"})
	require.NoError(t, err)
	assert.Equal(t, urlparams.Params{"page": 0, "tags": []any{"a", "b"}}, got)

	reloaded := state.NewFileLocation(dir, "alerts", "/")
	assert.Equal(t, "/alerts?page=0&tags[]=a&tags[]=b", reloaded.Current())
}

func TestHighlightJSON(t *testing.T) {
	src := "{\n  \"page\": 2\n}"

	assert.Equal(t, src, highlightJSON(src, colorprofile.Ascii))
	assert.Equal(t, src, highlightJSON(src, colorprofile.NoTTY))

	colored := highlightJSON(src, colorprofile.TrueColor)
	assert.NotEqual(t, src, colored)
	assert.Contains(t, colored, "\x1b[")
}

func TestPrintParams_NotATerminal(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printParams(&buf, urlparams.Params{"page": 2, "tags": []any{"a"}}))

	want := "{\n  \"page\": 2,\n  \"tags\": [\n    \"a\"\n  ]\n}"
	assert.Equal(t, want, strings.TrimSpace(buf.String()))
}
