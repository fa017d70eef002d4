package layout

import (
	"github.com/8051enthusiast/regex2fat-go/dfa"
	"github.com/8051enthusiast/regex2fat-go/rexfat"
)

// Enumerate performs a breadth-first walk of a's reachable states under
// alphabet, in the fixed order alphabet iterates, producing an ordered list
// with the start state fixed at index 0, using a visited-set BFS so a
// cyclic automaton is walked without revisiting a state twice.
//
// If shuffle is non-nil, it is called on the tail of the resulting slice
// (everything after index 0) before Enumerate returns, letting a caller
// randomize cluster layout without perturbing the fixed start-state
// position the root directory depends on.
func Enumerate(a dfa.Automaton, alphabet rexfat.Alphabet, shuffle func([]dfa.StateID)) []dfa.StateID {
	start := a.Start()
	order := []dfa.StateID{start}
	visited := map[dfa.StateID]bool{start: true}

	for cursor := 0; cursor < len(order); cursor++ {
		current := order[cursor]
		for _, b := range alphabet {
			next := a.Next(current, b)
			if !visited[next] {
				visited[next] = true
				order = append(order, next)
			}
		}
	}

	if shuffle != nil && len(order) > 1 {
		shuffle(order[1:])
	}
	return order
}
