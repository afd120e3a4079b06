package cpp

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	defineRe        = regexp.MustCompile(`^\s*#\s*define\s+([A-Za-z_]\w*)`)
	ifDefinedRe     = regexp.MustCompile(`^\s*#\s*if\s+defined\s*(?:\(\s*([A-Za-z_]\w*)\s*\)|\s([A-Za-z_]\w*))\s*(?://.*|/\*.*)?$`)
	ifdefRe         = regexp.MustCompile(`^\s*#\s*ifdef\s+([A-Za-z_]\w*)`)
	ifndefRe        = regexp.MustCompile(`^\s*#\s*ifndef\s+([A-Za-z_]\w*)`)
	ifExprRe        = regexp.MustCompile(`^\s*#\s*if\b\s*(.*)$`)
	elifDefinedRe   = regexp.MustCompile(`^\s*#\s*elif\s+defined\s*(?:\(\s*([A-Za-z_]\w*)\s*\)|\s([A-Za-z_]\w*))\s*(?://.*|/\*.*)?$`)
	elifExprRe      = regexp.MustCompile(`^\s*#\s*elif\b\s*(.*)$`)
	elseRe          = regexp.MustCompile(`^\s*#\s*else\b`)
	endifRe         = regexp.MustCompile(`^\s*#\s*endif\b`)
	definedExprRe   = regexp.MustCompile(`^defined\s*(?:\(\s*([A-Za-z_]\w*)\s*\)|\s+([A-Za-z_]\w*))$`)
	identifierRe    = regexp.MustCompile(`^[A-Za-z_]\w*$`)
	integerSuffixRe = regexp.MustCompile(`[uUlL]+$`)
	commentTailRe   = regexp.MustCompile(`\s*(?://.*|/\*.*)$`)
)

// condFrame is one open #if chain.
type condFrame struct {
	hasActiveBranch bool // some branch of this chain was already taken
	originalState   bool // is-defined state outside the chain
}

// step is the outcome of feeding one line to the preprocessor.
type step struct {
	forceDefine   bool // render the current line as defined
	isNextDefined bool // is-defined state for the following lines
}

type directiveRule struct {
	name   string
	re     *regexp.Regexp
	handle func(p *Processor, m []string) step
}

// directiveRules are evaluated top to bottom, first match wins.
var directiveRules = []directiveRule{
	{"define", defineRe, (*Processor).define},
	{"if", ifDefinedRe, func(p *Processor, m []string) step { return p.openBranch(p.macros.has(firstNonEmpty(m[1:]))) }},
	{"ifdef", ifdefRe, func(p *Processor, m []string) step { return p.openBranch(p.macros.has(m[1])) }},
	{"ifndef", ifndefRe, func(p *Processor, m []string) step { return p.openBranch(!p.macros.has(m[1])) }},
	{"if", ifExprRe, func(p *Processor, m []string) step { return p.openBranch(p.evalCondition(m[1])) }},
	{"elif", elifDefinedRe, func(p *Processor, m []string) step { return p.altBranch("#elif", p.macros.has(firstNonEmpty(m[1:]))) }},
	{"elif", elifExprRe, func(p *Processor, m []string) step { return p.altBranch("#elif", p.evalCondition(m[1])) }},
	{"else", elseRe, func(p *Processor, _ []string) step { return p.altBranch("#else", true) }},
	{"endif", endifRe, func(p *Processor, _ []string) step { return p.closeBranch() }},
}

// preprocess advances the conditional-compilation state machine by one line.
func (p *Processor) preprocess(text string) step {
	for _, rule := range directiveRules {
		if m := rule.re.FindStringSubmatch(text); m != nil {
			p.logger.Debug("preprocessor directive", "directive", rule.name, "line", p.lineNo, "depth", len(p.frames))
			return rule.handle(p, m)
		}
	}
	return step{forceDefine: false, isNextDefined: p.defined}
}

func (p *Processor) define(m []string) step {
	if p.defined {
		p.macros.add(m[1])
	}
	return step{forceDefine: p.defined, isNextDefined: p.defined}
}

func (p *Processor) openBranch(active bool) step {
	topLevel := len(p.frames) == 0
	p.frames = append(p.frames, condFrame{
		hasActiveBranch: active,
		originalState:   p.defined,
	})
	return step{
		forceDefine:   topLevel || p.defined,
		isNextDefined: active && p.defined,
	}
}

// altBranch handles #elif and #else. An #else is an #elif whose condition
// always holds.
func (p *Processor) altBranch(directive string, cond bool) step {
	if len(p.frames) == 0 {
		p.logger.Error("preprocessor directive without matching #if", "directive", directive, "line", p.lineNo)
		return step{forceDefine: true, isNextDefined: true}
	}
	top := &p.frames[len(p.frames)-1]
	active := cond && !top.hasActiveBranch && top.originalState
	if active {
		top.hasActiveBranch = true
	}
	return step{
		forceDefine:   len(p.frames) == 1 || top.originalState,
		isNextDefined: active,
	}
}

func (p *Processor) closeBranch() step {
	if len(p.frames) == 0 {
		p.logger.Error("preprocessor directive without matching #if", "directive", "#endif", "line", p.lineNo)
		return step{forceDefine: true, isNextDefined: true}
	}
	popped := p.frames[len(p.frames)-1]
	p.frames = p.frames[:len(p.frames)-1]
	return step{
		forceDefine:   len(p.frames) == 0 || popped.originalState,
		isNextDefined: popped.originalState,
	}
}

// evalCondition evaluates the small subset of #if expressions worth
// guessing at: integer literals, defined(X), bare macro names and leading
// negation. Anything else is assumed to hold.
func (p *Processor) evalCondition(expr string) bool {
	expr = strings.TrimSpace(commentTailRe.ReplaceAllString(expr, ""))
	negate := false
	for strings.HasPrefix(expr, "!") {
		negate = !negate
		expr = strings.TrimSpace(expr[1:])
	}
	for strings.HasPrefix(expr, "(") && strings.HasSuffix(expr, ")") && strings.Count(expr, "(") == 1 {
		expr = strings.TrimSpace(expr[1 : len(expr)-1])
	}

	var result bool
	switch {
	case expr == "":
		result = false
	case definedExprRe.MatchString(expr):
		m := definedExprRe.FindStringSubmatch(expr)
		result = p.macros.has(firstNonEmpty(m[1:]))
	case identifierRe.MatchString(expr):
		result = p.macros.has(expr)
	default:
		if n, err := strconv.ParseInt(integerSuffixRe.ReplaceAllString(expr, ""), 0, 64); err == nil {
			result = n != 0
		} else {
			result = true
		}
	}
	return result != negate
}

func firstNonEmpty(values []string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
