package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gubarz/mdhl/internal/config"
	"github.com/gubarz/mdhl/internal/highlight"
	"github.com/gubarz/mdhl/internal/lexer"
	"github.com/gubarz/mdhl/internal/token"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Dump the re-tagged token stream of a source file",
	Long: `Lexes and re-tags a source file (or stdin) and prints one token per
line as the quoted content, a tab and the space-joined types. Line
boundaries are printed as newline tokens.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokens,
}

func init() {
	tokensCmd.Flags().StringP("lang", "l", "cpp", "Source language")
}

func runTokens(cmd *cobra.Command, args []string) error {
	var src []byte
	var err error
	if len(args) > 0 {
		src, err = os.ReadFile(args[0])
	} else {
		src, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	lang, _ := cmd.Flags().GetString("lang")
	lines, err := lexer.Tokenize(lang, string(src))
	if err != nil {
		return err
	}
	lines = highlight.Process(lang, lines, highlight.Options{
		Logger:     slog.Default(),
		Defines:    config.GetDefines(),
		Namespaces: config.GetNamespaces(),
		Classes:    config.GetClasses(),
	})

	return dumpTokens(cmd.OutOrStdout(), lines)
}

// dumpTokens writes one token per line, newline tokens between lines
func dumpTokens(w io.Writer, lines []token.Line) error {
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			writeToken(&b, token.Newline())
		}
		for _, t := range line {
			writeToken(&b, t)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeToken(b *strings.Builder, t token.Token) {
	b.WriteString(strconv.Quote(t.Content))
	b.WriteByte('\t')
	b.WriteString(strings.Join(t.Types, " "))
	b.WriteByte('\n')
}
