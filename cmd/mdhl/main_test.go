package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gubarz/mdhl/internal/parser"
	"github.com/gubarz/mdhl/internal/render"
	"github.com/gubarz/mdhl/internal/token"
)

func TestDumpTokens(t *testing.T) {
	lines := []token.Line{
		{token.New("std", token.Prefix, token.NamespaceName), token.New("::", token.Operator)},
		{token.New("\tx", token.Plain, token.Undefined)},
	}

	var b strings.Builder
	require.NoError(t, dumpTokens(&b, lines))

	want := "\"std\"\ttoken namespace-name\n" +
		"\"::\"\toperator\n" +
		"\"\\n\"\tplain\n" +
		"\"\\tx\"\tplain undefined\n"
	assert.Equal(t, want, b.String())
}

func TestRenderIndexFiltersLanguage(t *testing.T) {
	index := parser.NewPostIndex()
	index.Blocks = []*parser.CodeBlock{
		{File: "a.md", Lang: "cpp", Content: "int a;", StartLine: 2},
		{File: "a.md", Lang: "go", Content: "var b int", StartLine: 8},
	}

	var b strings.Builder
	require.NoError(t, renderIndex(&b, index, &render.Pipeline{Renderer: render.HTML{}}, "CPP"))

	out := b.String()
	assert.Equal(t, 1, strings.Count(out, "<pre "))
	assert.Contains(t, out, "language-cpp")
	assert.NotContains(t, out, "a.md:2", "html output has no location lines")
}

func TestRenderIndexTerminalLocations(t *testing.T) {
	index := parser.NewPostIndex()
	index.Blocks = []*parser.CodeBlock{
		{File: "a.md", Header: "Setup", Lang: "cpp", Content: "int a;", StartLine: 2},
	}

	var b strings.Builder
	r := &render.Terminal{Styles: render.DefaultStyles()}
	require.NoError(t, renderIndex(&b, index, &render.Pipeline{Renderer: r}, ""))
	assert.True(t, strings.HasPrefix(b.String(), "a.md:2 Setup\n"))
}
