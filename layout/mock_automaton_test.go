package layout_test

import "github.com/8051enthusiast/regex2fat-go/dfa"

// mockAutomaton is a hand-built dfa.Automaton for tests that need precise
// control over a small transition table, independent of the regex compiler.
type mockAutomaton struct {
	start   dfa.StateID
	next    map[dfa.StateID]map[byte]dfa.StateID
	accepts map[dfa.StateID]bool
	numStates int
}

func (m *mockAutomaton) Start() dfa.StateID { return m.start }

func (m *mockAutomaton) Next(s dfa.StateID, b byte) dfa.StateID {
	if row, ok := m.next[s]; ok {
		if next, ok := row[b]; ok {
			return next
		}
	}
	return s
}

func (m *mockAutomaton) IsMatch(s dfa.StateID) bool { return m.accepts[s] }

func (m *mockAutomaton) NumStates() int { return m.numStates }
