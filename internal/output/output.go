package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/gubarz/mdhl/internal/config"
)

// ErrNoOutputFile is returned by the file mode without a destination.
var ErrNoOutputFile = errors.New("file output needs output_file")

// ============================================================================
// Clipboard Interface
// ============================================================================

// Clipboard defines the interface for clipboard operations
type Clipboard interface {
	Copy(text string) error
}

// systemClipboard implements Clipboard using system commands
type systemClipboard struct {
	fallback io.Writer
}

// Copy copies text to the system clipboard
func (c *systemClipboard) Copy(text string) error {
	cmd := c.findClipboardCommand()
	if cmd == nil {
		// No clipboard tool found, just print
		_, err := fmt.Fprintln(c.fallback, text)
		return err
	}
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

// findClipboardCommand returns the appropriate clipboard command for the system
func (c *systemClipboard) findClipboardCommand() *exec.Cmd {
	switch {
	case commandExists("wl-copy"):
		return exec.Command("wl-copy")
	case commandExists("xclip"):
		return exec.Command("xclip", "-selection", "clipboard")
	case commandExists("xsel"):
		return exec.Command("xsel", "--clipboard", "--input")
	case commandExists("pbcopy"):
		return exec.Command("pbcopy")
	default:
		return nil
	}
}

// commandExists checks if a command is available in PATH
func commandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// ============================================================================
// Writer
// ============================================================================

// Mode represents where a rendered block goes
type Mode string

const (
	ModePrint Mode = "print"
	ModeCopy  Mode = "copy"
	ModeFile  Mode = "file"
)

// Writer delivers rendered blocks according to the output mode
type Writer struct {
	stdout    io.Writer
	clipboard Clipboard
	file      string
}

// NewWriter creates a writer printing to stdout and copying with the
// system clipboard
func NewWriter() *Writer {
	return &Writer{
		stdout:    os.Stdout,
		clipboard: &systemClipboard{fallback: os.Stdout},
		file:      config.GetOutputFile(),
	}
}

// WithClipboard sets a custom clipboard implementation (useful for testing)
func (w *Writer) WithClipboard(c Clipboard) *Writer {
	w.clipboard = c
	return w
}

// WithStdout sets the destination of the print mode
func (w *Writer) WithStdout(out io.Writer) *Writer {
	w.stdout = out
	return w
}

// WithFile sets the destination of the file mode
func (w *Writer) WithFile(path string) *Writer {
	w.file = path
	return w
}

// Output delivers text using the configured mode
func (w *Writer) Output(text string) error {
	return w.OutputWithMode(text, Mode(config.GetOutput()))
}

// OutputWithMode delivers text with an explicit mode
func (w *Writer) OutputWithMode(text string, mode Mode) error {
	switch mode {
	case ModeCopy:
		return w.clipboard.Copy(text)
	case ModeFile:
		if w.file == "" {
			return ErrNoOutputFile
		}
		if err := os.WriteFile(w.file, []byte(text), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	default: // print
		_, err := io.WriteString(w.stdout, text)
		return err
	}
}

// ============================================================================
// Editor
// ============================================================================

// EditorCommand builds the command opening file at line in editor. The
// editor string may carry arguments, e.g. "code --wait".
func EditorCommand(editor, file string, line int) (*exec.Cmd, error) {
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		return nil, errors.New("no editor configured: set editor or $EDITOR")
	}

	args := append([]string{}, fields[1:]...)
	if line > 0 {
		args = append(args, "+"+strconv.Itoa(line))
	}
	args = append(args, file)

	cmd := exec.Command(fields[0], args...)
	cmd.Env = os.Environ()
	return cmd, nil
}
