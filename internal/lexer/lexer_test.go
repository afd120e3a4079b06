package lexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gubarz/mdhl/internal/token"
)

func TestTokenizeRoundTrip(t *testing.T) {
	sources := map[string]string{
		"function": "int main() {\n  return 0;\n}",
		"blank lines": "#include <vector>\n\nstd::vector<int> v;\n",
		"crlf": "int a;\r\nint b;",
		"empty": "",
	}

	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			lines, err := Tokenize("cpp", src)
			require.NoError(t, err)

			want := strings.Split(strings.TrimRight(strings.ReplaceAll(src, "\r\n", "\n"), "\n"), "\n")
			require.Len(t, lines, len(want))
			for i, line := range lines {
				assert.Equal(t, want[i], token.Flatten(line), "line %d", i+1)
				for _, tok := range line {
					assert.NotEmpty(t, tok.Types, "token %q has no types", tok.Content)
					assert.False(t, tok.IsNewline())
				}
			}
		})
	}
}

func TestTokenizeDirective(t *testing.T) {
	lines, err := Tokenize("cpp", "#if defined(FOO)\nint x;\n#endif")
	require.NoError(t, err)
	require.Len(t, lines, 3)

	head := lines[0][0]
	assert.Equal(t, "#if", head.Content)
	assert.True(t, head.Is(token.Directive))

	var foo token.Token
	for _, tok := range lines[0] {
		if tok.Content == "FOO" {
			foo = tok
		}
	}
	assert.True(t, foo.Is(token.Expression), "FOO types %v", foo.Types)
	assert.True(t, lines[2][0].Is(token.Directive))
}

func TestTokenizeIncludePath(t *testing.T) {
	lines, err := Tokenize("cpp", "#include <memory>")
	require.NoError(t, err)
	require.Len(t, lines, 1)

	var path token.Token
	for _, tok := range lines[0] {
		if tok.Content == "<memory>" {
			path = tok
		}
	}
	assert.True(t, path.Is(token.String))
}

func TestTokenizeClassName(t *testing.T) {
	lines, err := Tokenize("cpp", "class Widget {\n};")
	require.NoError(t, err)

	var found bool
	for _, tok := range lines[0] {
		if tok.Content == "Widget" {
			found = tok.Is(token.ClassName)
		}
	}
	assert.True(t, found, "Widget should be a class name: %v", lines[0])
}

func TestTokenizeScopeOperator(t *testing.T) {
	lines, err := Tokenize("cpp", "std::vector<int> v;")
	require.NoError(t, err)

	var contents []string
	for _, tok := range lines[0] {
		contents = append(contents, tok.Content)
	}
	assert.Contains(t, contents, "std")
	assert.Contains(t, contents, "::")
	assert.Contains(t, contents, "vector")
}

func TestTokenizeUnknownLanguage(t *testing.T) {
	lines, err := Tokenize("no-such-language", "hello\nworld")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "world", token.Flatten(lines[1]))
}

func TestMergeOperators(t *testing.T) {
	line := token.Line{
		token.New("a", token.Plain),
		token.New(":", token.Operator),
		token.New(":", token.Operator),
		token.New("b", token.Plain),
		token.New("-", token.Operator),
		token.New(">", token.Operator),
		token.New("c", token.Plain),
	}
	got := mergeOperators(line)

	var contents []string
	for _, tok := range got {
		contents = append(contents, tok.Content)
	}
	assert.Equal(t, []string{"a", "::", "b", "->", "c"}, contents)
}
