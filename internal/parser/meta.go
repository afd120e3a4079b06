package parser

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrBadRange is returned for a malformed line range.
	ErrBadRange = errors.New("bad line range")
	// ErrBadMeta is returned for a malformed metadata value.
	ErrBadMeta = errors.New("bad metadata")
)

var metaRe = regexp.MustCompile(`([a-z][a-z-]*):\{([^}]*)\}`)

// LineSet is a set of 1-based line numbers
type LineSet map[int]bool

// Has reports whether line n is in the set
func (s LineSet) Has(n int) bool {
	return s[n]
}

// Sorted returns the line numbers in ascending order
func (s LineSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// LineNumbers is the per-block line number display setting
type LineNumbers int

const (
	LineNumbersDefault LineNumbers = iota // Use the configured default
	LineNumbersEnabled
	LineNumbersDisabled
)

// Meta holds the per-block display directives from the fence line, e.g.
// ```cpp added:{1,3-5} hidden:{9} line-numbers:{disabled}
type Meta struct {
	Added       LineSet
	Removed     LineSet
	Modified    LineSet
	Hidden      LineSet
	Highlighted LineSet
	LineNumbers LineNumbers
}

// ParseMeta extracts the directives from the fence text after the
// language. Unknown keys are ignored. On error the directives parsed so far
// are still returned.
func ParseMeta(info string) (Meta, error) {
	meta := Meta{}
	var errs []error

	for _, m := range metaRe.FindAllStringSubmatch(info, -1) {
		key, value := m[1], strings.TrimSpace(m[2])

		var target *LineSet
		switch key {
		case "added":
			target = &meta.Added
		case "removed":
			target = &meta.Removed
		case "modified":
			target = &meta.Modified
		case "hidden":
			target = &meta.Hidden
		case "highlighted":
			target = &meta.Highlighted
		case "line-numbers":
			switch value {
			case "enabled":
				meta.LineNumbers = LineNumbersEnabled
			case "disabled":
				meta.LineNumbers = LineNumbersDisabled
			default:
				errs = append(errs, fmt.Errorf("%w: line-numbers:{%s}", ErrBadMeta, value))
			}
			continue
		default:
			continue
		}

		set, err := ParseRanges(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
		*target = set
	}

	return meta, errors.Join(errs...)
}

// ParseRanges parses "1,3-5,9" into a LineSet. Ranges are inclusive.
func ParseRanges(s string) (LineSet, error) {
	set := LineSet{}
	if strings.TrimSpace(s) == "" {
		return set, nil
	}

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		lo, hi, isRange := strings.Cut(part, "-")
		start, err := parseLineNumber(lo)
		if err != nil {
			return set, fmt.Errorf("%w %q", ErrBadRange, part)
		}
		end := start
		if isRange {
			if end, err = parseLineNumber(hi); err != nil {
				return set, fmt.Errorf("%w %q", ErrBadRange, part)
			}
		}
		if end < start {
			return set, fmt.Errorf("%w %q: end before start", ErrBadRange, part)
		}
		for n := start; n <= end; n++ {
			set[n] = true
		}
	}
	return set, nil
}

func parseLineNumber(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("line %d out of range", n)
	}
	return n, nil
}
