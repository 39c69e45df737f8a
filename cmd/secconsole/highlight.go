package main

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/colorprofile"
)

// highlightJSON colors JSON source for the given terminal profile. Profiles
// without color support get the source unchanged.
func highlightJSON(source string, profile colorprofile.Profile) string {
	var name string
	switch profile {
	case colorprofile.TrueColor:
		name = "terminal16m"
	case colorprofile.ANSI256:
		name = "terminal256"
	case colorprofile.ANSI:
		name = "terminal16"
	default:
		return source
	}

	formatter := formatters.Get(name)
	if formatter == nil {
		return source
	}

	lexer := lexers.Get("json")
	if lexer == nil {
		lexer = lexers.Fallback
	}

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return source
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return source
	}
	return strings.TrimRight(buf.String(), "\n")
}
