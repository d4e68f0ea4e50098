package cave

import "fmt"

// State is the tag held by a single cell. The set of tags is closed; Valid
// rejects anything outside it.
type State uint8

const (
	Rock State = iota
	Free
	TreeStump
	TreeMid
	TreeTop
	NoTree

	numStates
)

var stateNames = [numStates]string{
	Rock:      "rock",
	Free:      "free",
	TreeStump: "tree-stump",
	TreeMid:   "tree-mid",
	TreeTop:   "tree-top",
	NoTree:    "no-tree",
}

// Valid reports whether s is one of the six cell tags.
func (s State) Valid() bool { return s < numStates }

// String returns the lower-case name of the state.
func (s State) String() string {
	if !s.Valid() {
		return fmt.Sprintf("state(%d)", uint8(s))
	}
	return stateNames[s]
}
