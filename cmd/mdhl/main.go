package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gubarz/mdhl/internal/config"
	"github.com/gubarz/mdhl/internal/highlight"
	"github.com/gubarz/mdhl/internal/output"
	"github.com/gubarz/mdhl/internal/parser"
	"github.com/gubarz/mdhl/internal/render"
	"github.com/gubarz/mdhl/internal/ui"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "mdhl [path]",
	Short: "Semantic highlighting for code blocks in Markdown posts",
	Long: `Highlights the code blocks of Markdown posts with semantic token classes.

C++ blocks get namespace, class, member variable and macro names
classified and inactive preprocessor branches marked. Browse the
blocks of a post tree interactively and print, copy or write the
rendered result.`,
	Args:          cobra.MaximumNArgs(1),
	RunE:          runBrowse,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(renderCmd, tokensCmd)

	rootCmd.PersistentFlags().StringP("output", "o", "", "Output mode: print, copy, file")
	rootCmd.PersistentFlags().String("output-file", "", "Destination for the file output mode")
	rootCmd.PersistentFlags().StringP("format", "f", "", "Render format: ansi, html")
	rootCmd.PersistentFlags().StringSliceP("define", "D", nil, "Predefine a C++ macro (repeatable)")
	rootCmd.PersistentFlags().StringSlice("exclude", nil, "Glob of paths to skip (repeatable)")
	rootCmd.PersistentFlags().Bool("no-line-numbers", false, "Hide line numbers unless a block enables them")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output to stderr")
	rootCmd.Flags().StringP("query", "q", "", "Initial search query")
	rootCmd.Flags().Bool("print", false, "Print block (shorthand for -o print)")
	rootCmd.Flags().Bool("copy", false, "Copy block (shorthand for -o copy)")

	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("output_file", rootCmd.PersistentFlags().Lookup("output-file"))
	viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	viper.BindPFlag("cpp.defines", rootCmd.PersistentFlags().Lookup("define"))
	viper.BindPFlag("exclude", rootCmd.PersistentFlags().Lookup("exclude"))
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
	}

	level := config.GetLogLevel()
	if verbose, _ := rootCmd.PersistentFlags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// resolvePath picks the argument, then the configured path
func resolvePath(args []string) (string, error) {
	path := config.GetPath()
	if len(args) > 0 {
		path = args[0]
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("error resolving path: %w", err)
	}
	return absPath, nil
}

// loadIndex parses the posts under path and reports metadata problems
func loadIndex(path string) (*parser.PostIndex, error) {
	p, err := parser.NewParser(config.GetExclude()...)
	if err != nil {
		return nil, err
	}
	index, err := p.ParsePath(path)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	for _, problem := range index.Problems {
		slog.Warn("ignoring bad block metadata", "file", problem.File, "line", problem.Line, "error", problem.Err)
	}
	slog.Debug("parsed posts", "path", path, "posts", len(index.Posts), "blocks", len(index.Blocks))
	return index, nil
}

// newPipeline builds the render pipeline for a format from config
func newPipeline(cmd *cobra.Command, format string) (*render.Pipeline, error) {
	styles := render.DefaultStyles()
	styles.LoadFromConfig()

	r, err := render.New(format, styles)
	if err != nil {
		return nil, err
	}

	lineNumbers := config.GetLineNumbers()
	if off, _ := cmd.Flags().GetBool("no-line-numbers"); off {
		lineNumbers = false
	}

	return &render.Pipeline{
		Renderer:    r,
		LineNumbers: lineNumbers,
		Highlight: highlight.Options{
			Logger:     slog.Default(),
			Defines:    config.GetDefines(),
			Namespaces: config.GetNamespaces(),
			Classes:    config.GetClasses(),
		},
	}, nil
}

func runBrowse(cmd *cobra.Command, args []string) error {
	// Handle output mode flags
	if p, _ := cmd.Flags().GetBool("print"); p {
		config.SetOutput(string(output.ModePrint))
	} else if c, _ := cmd.Flags().GetBool("copy"); c {
		config.SetOutput(string(output.ModeCopy))
	}

	path, err := resolvePath(args)
	if err != nil {
		return err
	}
	index, err := loadIndex(path)
	if err != nil {
		return err
	}

	preview, err := newPipeline(cmd, render.FormatANSI)
	if err != nil {
		return err
	}
	out, err := newPipeline(cmd, config.GetFormat())
	if err != nil {
		return err
	}

	query, _ := cmd.Flags().GetString("query")

	return ui.Run(index, ui.Options{
		Pipeline:  preview,
		Output:    out,
		Writer:    output.NewWriter(),
		Query:     query,
		CacheSize: config.GetCacheSize(),
		Editor:    config.GetEditor(),
		Reload: func() (*parser.PostIndex, error) {
			return loadIndex(path)
		},
	})
}

func main() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
