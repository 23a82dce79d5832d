package board

const fiftyMoveLimit = 100

// State captures the information we need to reason about repetitions and draws.
type State struct {
	Hash   uint64
	Rule50 int
}

type stateStack []State

func (s *stateStack) reset(hash uint64, rule50 int) {
	*s = append((*s)[:0], State{Hash: hash, Rule50: rule50})
}

func (s *stateStack) push(hash uint64, irreversible bool) {
	rule50 := 0
	if !irreversible {
		rule50 = s.top().Rule50 + 1
	}
	*s = append(*s, State{Hash: hash, Rule50: rule50})
}

func (s *stateStack) pop() {
	if len(*s) <= 1 {
		return
	}
	*s = (*s)[:len(*s)-1]
}

func (s stateStack) top() State { return s[len(s)-1] }

// depth is the number of moves played since the stack was reset.
func (s stateStack) depth() int { return len(s) - 1 }

// repetitions counts earlier occurrences of the current position inside the
// reversible window.
func (s stateStack) repetitions() (count int) {
	curr := s.top()
	start := len(s) - 1 - curr.Rule50
	if start < 0 {
		start = 0
	}
	for i := len(s) - 3; i >= start; i -= 2 {
		if s[i].Hash == curr.Hash {
			count++
		}
	}
	return count
}
