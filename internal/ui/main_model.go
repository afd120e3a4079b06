package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gubarz/mdhl/internal/output"
	"github.com/gubarz/mdhl/internal/parser"
	"github.com/gubarz/mdhl/internal/render"
)

// ============================================================================
// String Builder Pool - reduces GC pressure from rendering
// ============================================================================

var builderPool = sync.Pool{
	New: func() interface{} {
		return &strings.Builder{}
	},
}

func getBuilder() *strings.Builder {
	b := builderPool.Get().(*strings.Builder)
	b.Reset()
	return b
}

func putBuilder(b *strings.Builder) {
	if b.Cap() < 64*1024 { // Don't pool huge builders
		builderPool.Put(b)
	}
}

// ============================================================================
// Block Item
// ============================================================================

// blockItem wraps a CodeBlock with display metadata
type blockItem struct {
	block *parser.CodeBlock
	title string
	path  string
	key   string
}

// newBlockItem creates a blockItem from a CodeBlock of the post titled title
func newBlockItem(block *parser.CodeBlock, title string) blockItem {
	folder := filepath.Base(filepath.Dir(block.File))
	file := strings.TrimSuffix(filepath.Base(block.File), filepath.Ext(block.File))

	return blockItem{
		block: block,
		title: title,
		path:  folder + "/" + file,
		key:   fmt.Sprintf("%s:%d", block.File, block.StartLine),
	}
}

// matchesQuery checks if the item matches all search words
func (item *blockItem) matchesQuery(words []string) bool {
	for _, word := range words {
		if !item.containsWord(word) {
			return false
		}
	}
	return true
}

// containsWord checks if any field contains the word (case-insensitive)
func (item *blockItem) containsWord(word string) bool {
	if lang, ok := strings.CutPrefix(word, "lang:"); ok {
		return strings.EqualFold(item.block.Lang, lang)
	}
	// Check smaller fields first for fast rejection
	if containsIgnoreCase(item.path, word) {
		return true
	}
	if containsIgnoreCase(item.block.Lang, word) {
		return true
	}
	if containsIgnoreCase(item.title, word) {
		return true
	}
	if containsIgnoreCase(item.block.Header, word) {
		return true
	}
	// Check larger fields only if needed
	if containsIgnoreCase(item.block.Description, word) {
		return true
	}
	return containsIgnoreCase(item.block.Content, word)
}

// containsIgnoreCase reports whether s contains the lowercased substr
func containsIgnoreCase(s, substr string) bool {
	if len(substr) > len(s) {
		return false
	}
	return strings.Contains(strings.ToLower(s), substr)
}

// itemsFromIndex flattens an index into list items in post order
func itemsFromIndex(index *parser.PostIndex) []blockItem {
	items := make([]blockItem, 0, len(index.Blocks))
	for _, post := range index.Posts {
		for _, block := range post.Blocks {
			items = append(items, newBlockItem(block, post.Title))
		}
	}
	return items
}

// ============================================================================
// Messages
// ============================================================================

// filterMsg triggers filtering after debounce
type filterMsg struct{}

// debounceFilter returns a command that triggers filtering after a delay
func debounceFilter() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg {
		return filterMsg{}
	})
}

// editorFinishedMsg is sent when the external editor exits
type editorFinishedMsg struct {
	err error
}

// reloadedMsg carries a freshly parsed index
type reloadedMsg struct {
	index *parser.PostIndex
	err   error
}

// ============================================================================
// Main Model
// ============================================================================

// Loader re-parses the browsed posts
type Loader func() (*parser.PostIndex, error)

// mainModel is the Bubble Tea model for browsing and selecting code blocks
type mainModel struct {
	width     int
	height    int
	textInput textinput.Model
	preview   viewport.Model
	quitting  bool

	blocks   []blockItem
	filtered []blockItem
	cursor   int
	offset   int // list scroll offset
	selected *parser.CodeBlock
	status   string

	pipeline *render.Pipeline
	cache    *lru.Cache[string, string]
	editor   string
	load     Loader
}

// newMainModel creates a new mainModel over the blocks of index
func newMainModel(index *parser.PostIndex, pipeline *render.Pipeline, cacheSize int) (mainModel, error) {
	ti := textinput.New()
	ti.Placeholder = "Type to search... (lang:cpp filters by language)"
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	if cacheSize <= 0 {
		cacheSize = 1
	}
	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		return mainModel{}, fmt.Errorf("preview cache: %w", err)
	}

	items := itemsFromIndex(index)
	m := mainModel{
		textInput: ti,
		preview:   viewport.New(80, previewHeight(24)),
		blocks:    items,
		filtered:  items,
		pipeline:  pipeline,
		cache:     cache,
	}
	m.refreshPreview()
	return m, nil
}

// previewHeight returns the number of code lines shown for a terminal height
func previewHeight(height int) int {
	return maxInt(height/2-4, 3)
}

// Init implements tea.Model
func (m mainModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m mainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 4
		m.preview.Width = msg.Width
		m.preview.Height = previewHeight(msg.Height)
		m.adjustOffset()
	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			return m, cmd
		}
	case filterMsg:
		m.filterBlocks()
		return m, nil
	case editorFinishedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		return m, m.reload()
	case reloadedMsg:
		m.applyReload(msg)
		return m, nil
	}

	prevQuery := m.textInput.Value()
	var tiCmd tea.Cmd
	m.textInput, tiCmd = m.textInput.Update(msg)
	cmds = append(cmds, tiCmd)

	// Only trigger debounced filter if query changed
	if m.textInput.Value() != prevQuery {
		cmds = append(cmds, debounceFilter())
	}

	return m, tea.Batch(cmds...)
}

// handleKey processes keyboard input
func (m *mainModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return tea.Quit
	case "enter":
		if m.cursor < len(m.filtered) {
			m.selected = m.filtered[m.cursor].block
			return tea.Quit
		}
	case "up", "ctrl+p":
		m.moveCursor(-1)
	case "down", "ctrl+n":
		m.moveCursor(1)
	case "pgup":
		m.moveCursor(-10)
	case "pgdown":
		m.moveCursor(10)
	case "home", "ctrl+a":
		m.moveCursor(-len(m.filtered))
	case "end", "ctrl+e":
		m.moveCursor(len(m.filtered))
	case "shift+up", "ctrl+u":
		m.preview.LineUp(3)
	case "shift+down", "ctrl+d":
		m.preview.LineDown(3)
	case "ctrl+o":
		return m.openInEditor()
	}
	return nil
}

// moveCursor moves the cursor by delta, clamping to valid range
func (m *mainModel) moveCursor(delta int) {
	prev := m.cursor
	m.cursor = clamp(m.cursor+delta, 0, max(0, len(m.filtered)-1))
	m.adjustOffset()
	if m.cursor != prev {
		m.refreshPreview()
	}
}

// listHeight returns the number of list rows that fit below the preview
func (m *mainModel) listHeight() int {
	height := maxInt(m.height, 24)
	return maxInt(height-m.preview.Height-8, 3)
}

// adjustOffset ensures cursor is visible within the list
func (m *mainModel) adjustOffset() {
	viewHeight := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+viewHeight {
		m.offset = m.cursor - viewHeight + 1
	}
	maxOffset := max(0, len(m.filtered)-viewHeight)
	m.offset = clamp(m.offset, 0, maxOffset)
}

// filterBlocks filters the block list based on the search query
func (m *mainModel) filterBlocks() {
	query := strings.TrimSpace(m.textInput.Value())

	if query == "" {
		m.filtered = m.blocks
	} else {
		words := strings.Fields(strings.ToLower(query))
		m.filtered = make([]blockItem, 0, min(len(m.blocks), 1000))
		for i := range m.blocks {
			if m.blocks[i].matchesQuery(words) {
				m.filtered = append(m.filtered, m.blocks[i])
				// Limit results to prevent UI lag
				if len(m.filtered) >= 1000 {
					break
				}
			}
		}
	}

	m.cursor = clamp(m.cursor, 0, max(0, len(m.filtered)-1))
	m.adjustOffset()
	m.refreshPreview()
}

// ============================================================================
// Preview
// ============================================================================

// renderBlock returns the rendered block, from the cache when possible
func (m *mainModel) renderBlock(item blockItem) string {
	if s, ok := m.cache.Get(item.key); ok {
		return s
	}
	s, err := m.pipeline.RenderString(item.block)
	if err != nil {
		return styles.Error.Render(err.Error())
	}
	m.cache.Add(item.key, s)
	return s
}

// refreshPreview loads the block under the cursor into the preview
func (m *mainModel) refreshPreview() {
	if m.cursor >= len(m.filtered) {
		m.preview.SetContent("")
		return
	}
	m.preview.SetContent(strings.TrimRight(m.renderBlock(m.filtered[m.cursor]), "\n"))
	m.preview.GotoTop()
}

// ============================================================================
// Editor
// ============================================================================

// openInEditor suspends the TUI and opens the post at the block
func (m *mainModel) openInEditor() tea.Cmd {
	if m.cursor >= len(m.filtered) {
		return nil
	}
	block := m.filtered[m.cursor].block
	cmd, err := output.EditorCommand(m.editor, block.File, block.StartLine)
	if err != nil {
		m.status = err.Error()
		return nil
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// reload re-parses the posts after an edit
func (m *mainModel) reload() tea.Cmd {
	if m.load == nil {
		return nil
	}
	load := m.load
	return func() tea.Msg {
		index, err := load()
		return reloadedMsg{index: index, err: err}
	}
}

// applyReload swaps in a re-parsed index, keeping the query
func (m *mainModel) applyReload(msg reloadedMsg) {
	if msg.err != nil {
		m.status = msg.err.Error()
		return
	}
	m.cache.Purge()
	m.blocks = itemsFromIndex(msg.index)
	m.status = fmt.Sprintf("reloaded %d blocks", len(m.blocks))
	m.filterBlocks()
}

// ============================================================================
// View
// ============================================================================

// View implements tea.Model
func (m mainModel) View() string {
	if m.quitting && m.selected == nil {
		return ""
	}

	width := maxInt(m.width, 80)
	height := maxInt(m.height, 24)

	preview := m.renderPreview(width)
	list := m.renderList(m.listHeight())
	input := m.renderInput(width)
	padding := maxInt(height-countLines(preview)-countLines(list)-countLines(input), 0)

	b := getBuilder()
	defer putBuilder(b)
	b.WriteString(preview)
	b.WriteString(list)
	b.WriteString(strings.Repeat("\n", padding))
	b.WriteString(input)
	return b.String()
}

// renderPreview renders the context and code of the selected block
func (m mainModel) renderPreview(width int) string {
	b := getBuilder()
	defer putBuilder(b)

	if m.cursor < len(m.filtered) {
		item := m.filtered[m.cursor]
		b.WriteString(styles.PreviewTitle.Render(item.title))
		b.WriteString(" ")
		b.WriteString(styles.Path.Render(fmt.Sprintf("%s:%d", item.path, item.block.StartLine)))
		b.WriteString("\n")
		b.WriteString(styles.PreviewHeader.Render(item.block.Header))
		b.WriteString("\n")
		b.WriteString(styles.PreviewDesc.Render(truncateString(firstLine(item.block.Description), width)))
		b.WriteString("\n")
	} else {
		b.WriteString("\n\n\n")
	}

	b.WriteString(styles.Divider.Render(strings.Repeat("─", width)))
	b.WriteString("\n")
	b.WriteString(m.preview.View())
	b.WriteString("\n")
	b.WriteString(styles.Divider.Render(strings.Repeat("─", width)))
	b.WriteString("\n")
	return b.String()
}

// renderList renders the visible window of the block list
func (m mainModel) renderList(maxHeight int) string {
	if len(m.filtered) == 0 {
		return ""
	}

	offset := m.offset
	start, end := scrollWindow(m.cursor, len(m.filtered), maxHeight, &offset)

	b := getBuilder()
	defer putBuilder(b)
	for i := start; i < end; i++ {
		b.WriteString(m.renderListItem(m.filtered[i], i == m.cursor))
		b.WriteString("\n")
	}
	return b.String()
}

// renderListItem renders a single list row
func (m mainModel) renderListItem(item blockItem, selected bool) string {
	path, header, lang := styles.Path, styles.Header, styles.Lang
	if selected {
		path = styles.WithSelection(path)
		header = styles.WithSelection(header)
		lang = styles.WithSelection(lang)
	}

	langName := item.block.Lang
	if langName == "" {
		langName = "text"
	}
	label := item.block.Header
	if label == "" {
		label = item.title
	}

	sep := " "
	if selected {
		sep = styles.Selected.Render(sep)
	}
	line := lang.Render(fmt.Sprintf("%-6s", truncateString(langName, 6))) + sep +
		path.Render(item.path) + sep +
		header.Render(truncateString(label, 60))

	if selected {
		return styles.Cursor.Render("▶ ") + line
	}
	return "  " + line
}

// renderInput renders the status line and the query input
func (m mainModel) renderInput(width int) string {
	b := getBuilder()
	defer putBuilder(b)

	b.WriteString(styles.Divider.Render(strings.Repeat("─", width)))
	b.WriteString("\n")
	b.WriteString(styles.Dim.Render(fmt.Sprintf("  %d/%d", len(m.filtered), len(m.blocks))))
	b.WriteString(" • ")
	b.WriteString(styles.Dim.Render("Enter output"))
	b.WriteString(" • ")
	b.WriteString(styles.Dim.Render("Ctrl+O edit"))
	b.WriteString(" • ")
	b.WriteString(styles.Dim.Render("Ctrl+U/D scroll"))
	b.WriteString(" • ")
	b.WriteString(styles.Dim.Render("ESC exit"))
	if m.status != "" {
		b.WriteString(" • ")
		b.WriteString(styles.Error.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.textInput.View())
	return b.String()
}

// ============================================================================
// Helpers
// ============================================================================

func clamp(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}

// scrollWindow returns the visible range keeping cursor inside it
func scrollWindow(cursor, total, height int, offset *int) (start, end int) {
	if cursor < *offset {
		*offset = cursor
	}
	if cursor >= *offset+height {
		*offset = cursor - height + 1
	}
	maxOffset := max(0, total-height)
	*offset = clamp(*offset, 0, maxOffset)

	start = *offset
	end = min(start+height, total)
	return
}

func truncateString(s string, maxLen int) string {
	if maxLen <= 3 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// firstLine returns the first line of a string
func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
