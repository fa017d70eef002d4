// Package dfa compiles a regular expression into a small, total DFA over a
// caller-supplied byte alphabet.
//
// It is the concrete, default implementation of the Automaton collaborator
// the layout package consumes: parsing and Thompson construction are done
// with the standard library's regexp/syntax, and the NFA-to-DFA step is a
// subset construction over the resulting program, generalized to an
// arbitrary regexp/syntax program rather than a fixed handful of
// character-class parts.
package dfa

// StateID is an opaque, comparable identifier for a DFA state. Two
// StateIDs compare equal if and only if they denote the same logical state.
type StateID int

// Automaton is the narrow interface the layout pipeline consumes. It must be
// total over the alphabet it was compiled against: Next must return a valid
// state for every byte in that alphabet.
type Automaton interface {
	// Start returns the initial state.
	Start() StateID

	// Next returns the state reached from s by consuming byte b. b must be a
	// member of the alphabet the Automaton was built with.
	Next(s StateID, b byte) StateID

	// IsMatch reports whether s is an accepting state.
	IsMatch(s StateID) bool

	// NumStates reports the total number of states in the automaton's table,
	// irrespective of reachability from Start. Used only for diagnostics.
	NumStates() int
}
