package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gubarz/mdhl/internal/config"
	"github.com/gubarz/mdhl/internal/parser"
	"github.com/gubarz/mdhl/internal/render"
	"github.com/gubarz/mdhl/internal/watcher"
)

var renderCmd = &cobra.Command{
	Use:   "render [path]",
	Short: "Render every code block to stdout",
	Long: `Renders the code blocks of a Markdown file or directory tree.

With --watch the posts are rendered again whenever a Markdown file
under path changes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringP("lang", "l", "", "Only render blocks in this language")
	renderCmd.Flags().BoolP("watch", "w", false, "Re-render when posts change")
}

func runRender(cmd *cobra.Command, args []string) error {
	path, err := resolvePath(args)
	if err != nil {
		return err
	}
	pipeline, err := newPipeline(cmd, config.GetFormat())
	if err != nil {
		return err
	}
	lang, _ := cmd.Flags().GetString("lang")
	out := cmd.OutOrStdout()

	renderAll := func() error {
		index, err := loadIndex(path)
		if err != nil {
			return err
		}
		return renderIndex(out, index, pipeline, lang)
	}
	if err := renderAll(); err != nil {
		return err
	}

	if watch, _ := cmd.Flags().GetBool("watch"); !watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watcher.New(config.GetWatchDebounce(), config.GetExclude(), func(paths []string) {
		slog.Info("posts changed", "paths", paths)
		if err := renderAll(); err != nil {
			slog.Error("render failed", "error", err)
		}
	})
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Watch([]string{path}); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	slog.Info("watching for changes", "path", path)

	<-ctx.Done()
	return nil
}

// renderIndex writes every block of index, optionally limited to one
// language. Terminal output gets a location line per block.
func renderIndex(w io.Writer, index *parser.PostIndex, pipeline *render.Pipeline, lang string) error {
	_, terminal := pipeline.Renderer.(*render.Terminal)

	for _, block := range index.Blocks {
		if lang != "" && !strings.EqualFold(block.Lang, lang) {
			continue
		}
		if terminal {
			fmt.Fprintf(w, "%s:%d %s\n", block.File, block.StartLine, block.Header)
		}
		if err := pipeline.RenderBlock(w, block); err != nil {
			return err
		}
		if terminal {
			fmt.Fprintln(w)
		}
	}
	return nil
}
