package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gubarz/mdhl/internal/parser"
	"github.com/gubarz/mdhl/internal/token"
)

func sampleLines() []token.Line {
	return []token.Line{
		{token.New("int", token.Keyword), token.New(" ", token.Plain), token.New("a", token.Plain)},
		{token.New("Vec", token.Prefix, token.ClassName)},
		{token.New("x", token.Plain, token.Undefined)},
		{token.New("<tag>&", token.String)},
	}
}

func TestMarkerFor(t *testing.T) {
	meta := parser.Meta{
		Added:       parser.LineSet{1: true, 2: true},
		Removed:     parser.LineSet{2: true, 3: true},
		Modified:    parser.LineSet{4: true},
		Highlighted: parser.LineSet{4: true, 5: true},
	}
	tests := []struct {
		line int
		want Marker
	}{
		{1, MarkerAdded},
		{2, MarkerAdded},
		{3, MarkerRemoved},
		{4, MarkerModified},
		{5, MarkerHighlighted},
		{6, MarkerNone},
	}
	for _, tt := range tests {
		if got := MarkerFor(meta, tt.line); got != tt.want {
			t.Errorf("line %d: expected %v, got %v", tt.line, tt.want, got)
		}
	}
}

func TestHTMLRender(t *testing.T) {
	var b strings.Builder
	err := HTML{}.Render(&b, sampleLines(), Options{
		Lang: "cpp",
		Meta: parser.Meta{
			Added:  parser.LineSet{2: true},
			Hidden: parser.LineSet{3: true},
		},
	})
	require.NoError(t, err)
	out := b.String()

	assert.True(t, strings.HasPrefix(out, `<pre class="code language-cpp"><code>`))
	assert.Contains(t, out, `<div class="line" data-line="1"><span class="token keyword">int</span>`)
	assert.Contains(t, out, `<div class="line added" data-line="2"><span class="token class-name">Vec</span></div>`)
	assert.NotContains(t, out, `data-line="3"`, "hidden lines are omitted")
	assert.Contains(t, out, `<span class="token string">&lt;tag&gt;&amp;</span>`)
	assert.NotContains(t, out, "line-number")
	assert.Equal(t, 3, strings.Count(out, "<div "))
}

func TestHTMLLineNumbers(t *testing.T) {
	lines := []token.Line{{token.New("a", token.Plain)}, {token.New("b", token.Plain)}}

	tests := []struct {
		name    string
		def     bool
		setting parser.LineNumbers
		want    bool
	}{
		{"default on", true, parser.LineNumbersDefault, true},
		{"default off", false, parser.LineNumbersDefault, false},
		{"forced on", false, parser.LineNumbersEnabled, true},
		{"forced off", true, parser.LineNumbersDisabled, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder
			opts := Options{LineNumbers: tt.def, Meta: parser.Meta{LineNumbers: tt.setting}}
			require.NoError(t, HTML{}.Render(&b, lines, opts))
			assert.Equal(t, tt.want, strings.Contains(b.String(), `<span class="line-number">2</span>`))
		})
	}
}

func TestTerminalRender(t *testing.T) {
	r := &Terminal{Styles: DefaultStyles()}
	var b strings.Builder
	err := r.Render(&b, sampleLines(), Options{
		LineNumbers: true,
		Meta:        parser.Meta{Hidden: parser.LineSet{3: true}, Added: parser.LineSet{1: true}},
	})
	require.NoError(t, err)
	out := b.String()

	assert.Equal(t, 3, strings.Count(out, "\n"))
	assert.Contains(t, out, "int")
	assert.Contains(t, out, "Vec")
	assert.Contains(t, out, "+")
	assert.NotContains(t, out, "x\n", "hidden lines are omitted")
}

func TestTokenStylePicksMostSpecificTag(t *testing.T) {
	s := DefaultStyles()
	s.Tokens[token.Plain] = s.Tokens[token.Plain].Underline(true)
	s.Tokens[token.ClassName] = s.Tokens[token.ClassName].Bold(true)

	st := s.TokenStyle(token.New("Vec", token.Prefix, token.Plain, token.ClassName))
	assert.True(t, st.GetBold())
	assert.False(t, st.GetUnderline())

	assert.True(t, s.TokenStyle(token.New("x", token.Plain, token.Undefined)).GetFaint())
	assert.False(t, s.TokenStyle(token.New("x", token.Plain)).GetFaint())
}

func TestNew(t *testing.T) {
	r, err := New("html", nil)
	require.NoError(t, err)
	assert.IsType(t, HTML{}, r)

	r, err = New("", nil)
	require.NoError(t, err)
	assert.IsType(t, &Terminal{}, r)

	_, err = New("pdf", nil)
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestPipelineRendersCPPBlock(t *testing.T) {
	p := &Pipeline{Renderer: HTML{}}
	out, err := p.RenderString(&parser.CodeBlock{
		Lang:    "cpp",
		Content: "#define FAST\n#ifndef FAST\nint slow;\n#endif\nstd::string s;",
		Meta:    parser.Meta{Hidden: parser.LineSet{4: true}},
	})
	require.NoError(t, err)

	assert.Contains(t, out, `<span class="token namespace-name">std</span>`)
	assert.Contains(t, out, `<span class="token macro-name">FAST</span>`)
	assert.Contains(t, out, "undefined")
	assert.NotContains(t, out, `data-line="4"`)
}

func TestPipelinePassesThroughOtherLanguages(t *testing.T) {
	p := &Pipeline{Renderer: HTML{}}
	out, err := p.RenderString(&parser.CodeBlock{Lang: "text", Content: "std::string x = a < b;"})
	require.NoError(t, err)
	assert.NotContains(t, out, "namespace-name")
	assert.Contains(t, out, "&lt;")
}
