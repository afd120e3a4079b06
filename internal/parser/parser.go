package parser

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gobwas/glob"
)

// CodeBlock represents a single fenced code block of a post
type CodeBlock struct {
	File        string // Source file path
	Header      string // Nearest section header above the block
	Description string // Description from blockquotes
	Lang        string // Language from the fence line
	Info        string // Raw fence text after the language
	Meta        Meta   // Parsed fence metadata
	Content     string // Code without the fences
	StartLine   int    // 1-based file line of the first code line
}

// Lines returns the number of code lines
func (b *CodeBlock) Lines() int {
	return strings.Count(b.Content, "\n") + 1
}

// Post represents one Markdown file
type Post struct {
	File   string
	Title  string
	Blocks []*CodeBlock
}

// Problem is a non-fatal issue found while parsing
type Problem struct {
	File string
	Line int
	Err  error
}

func (p Problem) Error() string {
	return fmt.Sprintf("%s:%d: %v", p.File, p.Line, p.Err)
}

// PostIndex holds all parsed posts and their code blocks
type PostIndex struct {
	Posts    []*Post
	Blocks   []*CodeBlock
	Problems []Problem
}

// NewPostIndex creates an empty post index
func NewPostIndex() *PostIndex {
	return &PostIndex{
		Posts:  make([]*Post, 0),
		Blocks: make([]*CodeBlock, 0),
	}
}

var (
	headerRegex    = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	codeBlockStart = regexp.MustCompile("^(```+|~~~+)\\s*([\\w+#.-]*)\\s*(.*)$")
	blockquoteRe   = regexp.MustCompile(`^>\s?(.*)$`)
)

// Parser handles markdown file parsing
type Parser struct {
	index    *PostIndex
	excludes []glob.Glob
}

// NewParser creates a new parser. Paths matching any of the exclude globs
// (relative to the parsed directory, '/' separated) are skipped.
func NewParser(excludes ...string) (*Parser, error) {
	p := &Parser{index: NewPostIndex()}
	for _, pattern := range excludes {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		p.excludes = append(p.excludes, g)
	}
	return p, nil
}

// ParseDirectory recursively parses all markdown files
func (p *Parser) ParseDirectory(dir string) (*PostIndex, error) {
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if p.excluded(dir, path) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if IsMarkdown(path) {
			if err := p.parseFile(path); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p.index, nil
}

// ParseSingleFile parses a single markdown file
func (p *Parser) ParseSingleFile(path string) (*PostIndex, error) {
	if err := p.parseFile(path); err != nil {
		return nil, err
	}
	return p.index, nil
}

// ParsePath parses a file or a directory tree
func (p *Parser) ParsePath(path string) (*PostIndex, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("path error: %w", err)
	}
	if info.IsDir() {
		return p.ParseDirectory(path)
	}
	return p.ParseSingleFile(path)
}

func (p *Parser) excluded(root, path string) bool {
	if len(p.excludes) == 0 || path == root {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, g := range p.excludes {
		if g.Match(rel) || g.Match(filepath.Base(path)) {
			return true
		}
	}
	return false
}

func (p *Parser) parseFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	p.parseLines(path, lines)
	return nil
}

func (p *Parser) parseLines(path string, lines []string) {
	post := &Post{File: path}
	var currentHeader string
	var currentDescription strings.Builder
	var inCodeBlock bool
	var fence string
	var block *CodeBlock
	var codeBlockContent strings.Builder

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		// Code block end
		if inCodeBlock && strings.TrimSpace(line) == fence {
			inCodeBlock = false
			block.Content = strings.TrimRight(codeBlockContent.String(), "\n")
			if strings.TrimSpace(block.Content) != "" {
				post.Blocks = append(post.Blocks, block)
			}
			continue
		}

		// Inside code block
		if inCodeBlock {
			codeBlockContent.WriteString(line + "\n")
			continue
		}

		// Header check - starts new section
		if matches := headerRegex.FindStringSubmatch(line); matches != nil {
			currentHeader = strings.TrimSpace(matches[2])
			if post.Title == "" && len(matches[1]) == 1 {
				post.Title = currentHeader
			}
			currentDescription.Reset()
			continue
		}

		// Blockquote - extract as description
		if matches := blockquoteRe.FindStringSubmatch(line); matches != nil {
			if currentDescription.Len() > 0 {
				currentDescription.WriteString("\n")
			}
			currentDescription.WriteString(matches[1])
			continue
		}

		// Code block start
		if matches := codeBlockStart.FindStringSubmatch(line); matches != nil {
			inCodeBlock = true
			fence = matches[1]
			codeBlockContent.Reset()
			block = &CodeBlock{
				File:        path,
				Header:      currentHeader,
				Description: strings.TrimSpace(currentDescription.String()),
				Lang:        strings.ToLower(matches[2]),
				Info:        strings.TrimSpace(matches[3]),
				StartLine:   i + 2,
			}
			meta, err := ParseMeta(block.Info)
			if err != nil {
				p.index.Problems = append(p.index.Problems, Problem{File: path, Line: i + 1, Err: err})
			}
			block.Meta = meta
			continue
		}
	}

	// Unterminated fence runs to the end of the file
	if inCodeBlock {
		block.Content = strings.TrimRight(codeBlockContent.String(), "\n")
		if strings.TrimSpace(block.Content) != "" {
			post.Blocks = append(post.Blocks, block)
		}
	}

	if post.Title == "" {
		post.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	p.index.Posts = append(p.index.Posts, post)
	p.index.Blocks = append(p.index.Blocks, post.Blocks...)
}

// IsMarkdown reports whether path has a Markdown extension
func IsMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown", ".mdx":
		return true
	}
	return false
}
