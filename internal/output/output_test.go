package output

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type fakeClipboard struct {
	copied string
}

func (c *fakeClipboard) Copy(text string) error {
	c.copied = text
	return nil
}

func TestOutputWithMode(t *testing.T) {
	var out strings.Builder
	clip := &fakeClipboard{}
	dest := filepath.Join(t.TempDir(), "block.html")
	w := (&Writer{}).WithStdout(&out).WithClipboard(clip).WithFile(dest)

	if err := w.OutputWithMode("printed", ModePrint); err != nil {
		t.Fatalf("print: %v", err)
	}
	if out.String() != "printed" {
		t.Errorf("expected printed text, got %q", out.String())
	}

	if err := w.OutputWithMode("copied", ModeCopy); err != nil {
		t.Fatalf("copy: %v", err)
	}
	if clip.copied != "copied" {
		t.Errorf("expected clipboard to hold %q, got %q", "copied", clip.copied)
	}

	if err := w.OutputWithMode("<pre></pre>", ModeFile); err != nil {
		t.Fatalf("file: %v", err)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "<pre></pre>" {
		t.Errorf("unexpected file content %q", data)
	}
}

func TestFileModeNeedsDestination(t *testing.T) {
	w := &Writer{}
	if err := w.OutputWithMode("x", ModeFile); !errors.Is(err, ErrNoOutputFile) {
		t.Errorf("expected ErrNoOutputFile, got %v", err)
	}
}

func TestEditorCommand(t *testing.T) {
	tests := []struct {
		name    string
		editor  string
		line    int
		want    []string
		wantErr bool
	}{
		{name: "plain", editor: "vim", line: 12, want: []string{"vim", "+12", "post.md"}},
		{name: "with args", editor: "code --wait", line: 0, want: []string{"code", "--wait", "post.md"}},
		{name: "empty", editor: "  ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := EditorCommand(tt.editor, "post.md", tt.line)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if strings.Join(cmd.Args, " ") != strings.Join(tt.want, " ") {
				t.Errorf("expected %v, got %v", tt.want, cmd.Args)
			}
		})
	}
}
