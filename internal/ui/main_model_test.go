package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gubarz/mdhl/internal/parser"
	"github.com/gubarz/mdhl/internal/render"
)

func testIndex() *parser.PostIndex {
	ring := &parser.CodeBlock{
		File: "/posts/cpp/ring.md", Header: "Layout", Lang: "cpp",
		Content: "class Ring {\n  int head;\n};", StartLine: 5,
	}
	usage := &parser.CodeBlock{
		File: "/posts/cpp/ring.md", Header: "Usage", Lang: "bash",
		Content: "make test", StartLine: 20,
	}
	sql := &parser.CodeBlock{
		File: "/posts/db/index.md", Header: "Schema", Description: "Ring buffer table",
		Lang: "sql", Content: "create table ring (id int);", StartLine: 3,
	}

	index := parser.NewPostIndex()
	index.Posts = []*parser.Post{
		{File: ring.File, Title: "Ring buffers", Blocks: []*parser.CodeBlock{ring, usage}},
		{File: sql.File, Title: "Indexes", Blocks: []*parser.CodeBlock{sql}},
	}
	index.Blocks = []*parser.CodeBlock{ring, usage, sql}
	return index
}

func newTestModel(t *testing.T) mainModel {
	t.Helper()
	m, err := newMainModel(testIndex(), &render.Pipeline{Renderer: render.HTML{}}, 8)
	if err != nil {
		t.Fatalf("newMainModel: %v", err)
	}
	return m
}

func TestItemsFromIndex(t *testing.T) {
	items := itemsFromIndex(testIndex())
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].path != "cpp/ring" {
		t.Errorf("expected path cpp/ring, got %q", items[0].path)
	}
	if items[2].title != "Indexes" {
		t.Errorf("expected title Indexes, got %q", items[2].title)
	}
	if items[0].key == items[1].key {
		t.Error("blocks of one post need distinct cache keys")
	}
}

func TestFilterBlocks(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query", "", []string{"Layout", "Usage", "Schema"}},
		{"header", "usage", []string{"Usage"}},
		{"content", "head", []string{"Layout"}},
		{"all words", "ring table", []string{"Schema"}},
		{"language filter", "lang:cpp", []string{"Layout"}},
		{"post title", "indexes", []string{"Schema"}},
		{"no match", "python", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t)
			m.textInput.SetValue(tt.query)
			m.filterBlocks()

			var got []string
			for _, item := range m.filtered {
				got = append(got, item.block.Header)
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCursorMovementAndSelection(t *testing.T) {
	m := newTestModel(t)

	m.moveCursor(10)
	if m.cursor != 2 {
		t.Errorf("expected cursor clamped to 2, got %d", m.cursor)
	}
	m.moveCursor(-1)

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected quit command on enter")
	}
	result := model.(mainModel)
	if result.selected == nil || result.selected.Header != "Usage" {
		t.Errorf("expected Usage selected, got %+v", result.selected)
	}
}

func TestPreviewUsesCache(t *testing.T) {
	m := newTestModel(t)
	key := m.filtered[0].key

	cached, ok := m.cache.Get(key)
	if !ok {
		t.Fatal("expected first block to be rendered into the cache")
	}
	if !strings.Contains(cached, `class="token keyword">class</span>`) {
		t.Errorf("unexpected preview %q", cached)
	}

	m.cache.Add(key, "stale")
	if got := m.renderBlock(m.filtered[0]); got != "stale" {
		t.Errorf("expected cached render, got %q", got)
	}
}

func TestReloadPurgesCache(t *testing.T) {
	m := newTestModel(t)
	m.textInput.SetValue("lang:sql")

	index := testIndex()
	index.Posts[1].Blocks[0].Content = "drop table ring;"
	m.applyReload(reloadedMsg{index: index})

	if len(m.filtered) != 1 || m.filtered[0].block.Content != "drop table ring;" {
		t.Fatalf("expected reloaded sql block, got %+v", m.filtered)
	}
	if got, _ := m.cache.Get(m.filtered[0].key); !strings.Contains(got, "drop") {
		t.Errorf("expected fresh render of the reloaded block, got %q", got)
	}

	m.applyReload(reloadedMsg{err: errors.New("boom")})
	if m.status != "boom" {
		t.Errorf("expected reload error in status, got %q", m.status)
	}
}

func TestOpenInEditorWithoutEditor(t *testing.T) {
	m := newTestModel(t)
	if cmd := m.openInEditor(); cmd != nil {
		t.Error("expected no command without an editor")
	}
	if m.status == "" {
		t.Error("expected a status message")
	}
}

func TestScrollWindow(t *testing.T) {
	offset := 0
	start, end := scrollWindow(7, 10, 3, &offset)
	if start != 5 || end != 8 {
		t.Errorf("expected window 5-8, got %d-%d", start, end)
	}
	start, end = scrollWindow(0, 2, 5, &offset)
	if start != 0 || end != 2 {
		t.Errorf("expected window 0-2, got %d-%d", start, end)
	}
}
