package engine

// TransTable maps position keys to search nodes. Entries are never evicted:
// the table lives exactly as long as one match.
type TransTable struct {
	entries map[uint64]*SearchNode

	created uint64
	lookups uint64
	hits    uint64
}

func NewTransTable() *TransTable {
	return &TransTable{entries: make(map[uint64]*SearchNode, 1<<16)}
}

func (tt *TransTable) Get(key uint64) *SearchNode {
	tt.lookups++
	node, ok := tt.entries[key]
	if ok {
		tt.hits++
	}
	return node
}

// GetOrCreate returns the node for key, building and storing it with
// factory when the key is new.
func (tt *TransTable) GetOrCreate(key uint64, factory func() *SearchNode) *SearchNode {
	if node := tt.Get(key); node != nil {
		return node
	}
	node := factory()
	tt.Set(key, node)
	return node
}

func (tt *TransTable) Set(key uint64, node *SearchNode) {
	if _, ok := tt.entries[key]; !ok {
		tt.created++
	}
	tt.entries[key] = node
}

func (tt *TransTable) Len() int { return len(tt.entries) }

// Clear drops every node, ending the match's memory.
func (tt *TransTable) Clear() {
	tt.entries = make(map[uint64]*SearchNode, 1<<16)
	tt.created, tt.lookups, tt.hits = 0, 0, 0
}

// HitRate is the fraction of lookups that found a node.
func (tt *TransTable) HitRate() float64 {
	if tt.lookups == 0 {
		return 0
	}
	return float64(tt.hits) / float64(tt.lookups)
}
