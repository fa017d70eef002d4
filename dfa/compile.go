package dfa

import (
	"regexp/syntax"
	"sort"
	"strconv"
	"strings"

	"github.com/8051enthusiast/regex2fat-go/rexfat"
)

// Options configures Compile.
type Options struct {
	// Anchored requires a match to start at the very first byte consumed.
	// When false, a match may start anywhere (the classic unanchored
	// "search" semantics), implemented by re-seeding the pattern's start
	// closure at every position.
	Anchored bool
}

// denseAutomaton is an eagerly-built dense DFA table: NumStates rows, one
// column per alphabet byte. Built once up front and looked up by table
// index rather than determinized lazily during emission.
type denseAutomaton struct {
	alphabet  rexfat.Alphabet
	byteIndex [256]int8 // -1 if byte is not in the alphabet
	table     [][]StateID
	isMatch   []bool
}

func (d *denseAutomaton) Start() StateID { return 0 }

func (d *denseAutomaton) Next(s StateID, b byte) StateID {
	idx := d.byteIndex[b]
	if idx < 0 {
		// Out of the compiled alphabet. The caller violated the Automaton
		// contract (Next must only be called for bytes in the alphabet);
		// rather than panic, stay put, which keeps the table total.
		return s
	}
	return d.table[s][idx]
}

func (d *denseAutomaton) IsMatch(s StateID) bool { return d.isMatch[s] }

func (d *denseAutomaton) NumStates() int { return len(d.table) }

// Compile parses pattern with regexp/syntax, lowers it to an NFA program via
// syntax.Compile (the same Thompson-style construction package regexp uses
// internally), and performs subset construction restricted to alphabet --
// the DFA is only ever asked for transitions on bytes in alphabet, so there
// is no reason to build it over the full byte range.
//
// Word-boundary assertions (\b, \B) are not supported: deciding them
// requires knowing the neighboring byte's "word" class, which doesn't
// compose with alphabet-restricted matching over arbitrary directory
// alphabets. A pattern using them fails to compile with ErrCompileFailure.
func Compile(pattern string, alphabet rexfat.Alphabet, opts Options) (Automaton, error) {
	if err := alphabet.Validate(); err != nil {
		return nil, err
	}

	// FAT32 short names are case-insensitive, so the regex is compiled
	// case-insensitively to match.
	parsed, err := syntax.Parse(pattern, syntax.Perl|syntax.FoldCase)
	if err != nil {
		return nil, rexfat.ErrCompileFailure.WrapError(err)
	}
	parsed = parsed.Simplify()

	prog, err := syntax.Compile(parsed)
	if err != nil {
		return nil, rexfat.ErrCompileFailure.WrapError(err)
	}
	if usesWordBoundary(prog) {
		return nil, rexfat.ErrCompileFailure.WithMessage(
			"word-boundary assertions (\\b, \\B) are not supported")
	}

	c := &compiler{prog: prog, alphabet: alphabet, anchored: opts.Anchored}
	return c.build()
}

func usesWordBoundary(prog *syntax.Prog) bool {
	const wordOps = syntax.EmptyWordBoundary | syntax.EmptyNoWordBoundary
	for _, inst := range prog.Inst {
		if inst.Op == syntax.InstEmptyWidth && syntax.EmptyOp(inst.Arg)&wordOps != 0 {
			return true
		}
	}
	return false
}

type compiler struct {
	prog     *syntax.Prog
	alphabet rexfat.Alphabet
	anchored bool
}

// config is a subset-construction DFA state: the set of program counters
// sitting at a consuming instruction (InstRune/InstRune1/InstRuneAny/
// InstRuneAnyNotNL), reached via epsilon transitions with "more input may
// follow" semantics, plus whether Match is epsilon-reachable from the same
// seed set under a hypothetical end-of-string. Both halves are part of a
// state's identity: two seed sets can land on the same consuming frontier
// while differing on whether they also accept here (common with `$` and
// `(...)*`), and those must not be collapsed into one DFA state.
type config struct {
	frontier []int
	isMatch  bool
}

func (c config) key() string {
	var sb strings.Builder
	for i, pc := range c.frontier {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(pc))
	}
	if c.isMatch {
		sb.WriteByte('!')
	}
	return sb.String()
}

func normalizeFrontier(pcs []int) []int {
	sort.Ints(pcs)
	return dedupSorted(pcs)
}

func (c *compiler) build() (*denseAutomaton, error) {
	interned := map[string]int{}
	var configs []config

	internConfig := func(cfg config) StateID {
		cfg.frontier = normalizeFrontier(cfg.frontier)
		key := cfg.key()
		if id, ok := interned[key]; ok {
			return StateID(id)
		}
		id := len(configs)
		interned[key] = id
		configs = append(configs, cfg)
		return StateID(id)
	}

	startPCs := []int{c.prog.Start}
	startFrontier := c.closure(startPCs, true, false)
	_, startMatch := c.closureMatch(startPCs, true, true)
	startID := internConfig(config{frontier: startFrontier, isMatch: startMatch})
	if startID != 0 {
		// internConfig always assigns 0 to the first call, but make the
		// invariant explicit for future readers.
		panic("dfa: start state must be interned first")
	}

	var table [][]StateID
	var isMatch []bool

	for cursor := 0; cursor < len(configs); cursor++ {
		frontier := configs[cursor].frontier
		row := make([]StateID, len(c.alphabet))
		for i, b := range c.alphabet {
			next := c.step(frontier, b)
			row[i] = internConfig(next)
		}
		table = append(table, row)
		isMatch = append(isMatch, configs[cursor].isMatch)
	}

	var byteIndex [256]int8
	for i := range byteIndex {
		byteIndex[i] = -1
	}
	for i, b := range c.alphabet {
		byteIndex[b] = int8(i)
	}

	return &denseAutomaton{
		alphabet:  c.alphabet,
		byteIndex: byteIndex,
		table:     table,
		isMatch:   isMatch,
	}, nil
}

// step computes the state reached from frontier by consuming byte b,
// re-seeding the pattern's start closure if the automaton is unanchored
// (so a match may begin at any position, not just the first byte).
//
// The seed set (fed, plus the reseed PC when unanchored) is used twice:
// once with atEnd=false to compute the consuming frontier the next state
// steps from, and once with atEnd=true to decide whether that state
// accepts. Both closures must start from the same seed set, not from the
// already-filtered consuming frontier, since Match is only epsilon-reachable
// from the unfiltered seed: a consuming instruction's own PC has no outgoing
// epsilon edge to Match.
func (c *compiler) step(frontier []int, b byte) config {
	r := rune(b)
	var seed []int
	for _, pc := range frontier {
		inst := &c.prog.Inst[pc]
		if inst.MatchRune(r) {
			seed = append(seed, int(inst.Out))
		}
	}

	next := c.closure(seed, false, false)
	matchSeed := append([]int{}, seed...)
	if !c.anchored {
		reseed := []int{c.prog.Start}
		next = append(next, c.closure(reseed, false, false)...)
		matchSeed = append(matchSeed, reseed...)
	}
	_, matched := c.closureMatch(matchSeed, false, true)

	return config{frontier: next, isMatch: matched}
}

// closure computes the epsilon closure of a set of program counters,
// returning the consuming instructions (the next frontier) reachable.
// atStart/atEnd decide which EmptyWidth assertions pass.
func (c *compiler) closure(start []int, atStart, atEnd bool) []int {
	frontier, _ := c.closureMatch(start, atStart, atEnd)
	return frontier
}

func (c *compiler) closureMatch(start []int, atStart, atEnd bool) ([]int, bool) {
	visited := make(map[int]bool)
	var frontier []int
	matched := false

	var stack []int
	stack = append(stack, start...)

	for len(stack) > 0 {
		pc := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[pc] {
			continue
		}
		visited[pc] = true

		inst := &c.prog.Inst[pc]
		switch inst.Op {
		case syntax.InstAlt, syntax.InstAltMatch:
			stack = append(stack, int(inst.Out), int(inst.Arg))
		case syntax.InstCapture, syntax.InstNop:
			stack = append(stack, int(inst.Out))
		case syntax.InstEmptyWidth:
			if emptyOpSatisfied(syntax.EmptyOp(inst.Arg), atStart, atEnd) {
				stack = append(stack, int(inst.Out))
			}
		case syntax.InstMatch:
			matched = true
		case syntax.InstFail:
			// dead end
		case syntax.InstRune, syntax.InstRune1, syntax.InstRuneAny, syntax.InstRuneAnyNotNL:
			frontier = append(frontier, pc)
		}
	}
	return frontier, matched
}

// emptyOpSatisfied decides the begin/end-of-text and begin/end-of-line
// assertions. Line assertions are treated identically to text assertions:
// this compiler doesn't special-case '\n', which is outside the default
// alphabet anyway.
func emptyOpSatisfied(op syntax.EmptyOp, atStart, atEnd bool) bool {
	if op&(syntax.EmptyBeginLine|syntax.EmptyBeginText) != 0 && !atStart {
		return false
	}
	if op&(syntax.EmptyEndLine|syntax.EmptyEndText) != 0 && !atEnd {
		return false
	}
	return true
}

func dedupSorted(pcs []int) []int {
	if len(pcs) < 2 {
		return pcs
	}
	out := pcs[:1]
	for _, pc := range pcs[1:] {
		if pc != out[len(out)-1] {
			out = append(out, pc)
		}
	}
	return out
}
