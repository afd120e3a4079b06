package ui

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gubarz/mdhl/internal/output"
	"github.com/gubarz/mdhl/internal/parser"
	"github.com/gubarz/mdhl/internal/render"
)

// Options configures a browser session
type Options struct {
	// Pipeline renders previews
	Pipeline *render.Pipeline
	// Output renders the selected block for the writer; defaults to Pipeline
	Output *render.Pipeline
	Writer *output.Writer

	Query     string
	CacheSize int
	Editor    string
	Reload    Loader
}

// getTTY returns file handles for TUI input/output
// Uses /dev/tty to bypass shell pipes and command substitution
func getTTY() (in *os.File, out *os.File, cleanup func()) {
	var closers []func()

	// If stdout is not a terminal (piped or captured by $()), use /dev/tty
	if fileInfo, _ := os.Stdout.Stat(); (fileInfo.Mode() & os.ModeCharDevice) == 0 {
		out, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
		if err != nil {
			out = os.Stderr // Last resort fallback
		} else {
			closers = append(closers, func() { out.Close() })
		}

		in, err := os.OpenFile("/dev/tty", os.O_RDONLY, 0)
		if err != nil {
			in = os.Stdin
		} else {
			closers = append(closers, func() { in.Close() })
		}

		// Tell lipgloss to use the TTY for color detection
		lipgloss.SetDefaultRenderer(lipgloss.NewRenderer(out))

		return in, out, func() {
			for _, c := range closers {
				c()
			}
		}
	}

	return os.Stdin, os.Stdout, func() {}
}

// Run launches the browser over the blocks of index. The block selected with
// Enter is rendered and handed to the writer.
func Run(index *parser.PostIndex, opts Options) error {
	if len(index.Blocks) == 0 {
		return errors.New("no code blocks found")
	}

	ttyIn, ttyOut, cleanup := getTTY()
	RefreshStyles() // Refresh after getTTY sets up the renderer

	m, err := newMainModel(index, opts.Pipeline, opts.CacheSize)
	if err != nil {
		cleanup()
		return err
	}
	m.editor = opts.Editor
	m.load = opts.Reload
	if opts.Query != "" {
		m.textInput.SetValue(opts.Query)
		m.filterBlocks()
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(ttyOut), tea.WithInput(ttyIn))
	finalModel, err := p.Run()
	cleanup()
	if err != nil {
		return err
	}

	result := finalModel.(mainModel)
	if result.selected == nil {
		return nil
	}

	pipeline := opts.Output
	if pipeline == nil {
		pipeline = opts.Pipeline
	}
	text, err := pipeline.RenderString(result.selected)
	if err != nil {
		return err
	}
	return opts.Writer.Output(text)
}
