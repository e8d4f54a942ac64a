package deque

// entry is a node in the chain. The links are structural, not ownership
// edges: the chain owns itself end to end, anchored by the Deque holding
// head and tail.
type entry struct {
	rev   int64
	value interface{}
	next  *entry
	prev  *entry
}

// freeList recycles spliced-out entries. A node is cleared before it
// becomes eligible for reuse, so a removed entry can never alias live
// chain state.
type freeList struct {
	head *entry
	size int
	cap  int
}

func newFreeList(capacity int) freeList {
	return freeList{cap: capacity}
}

func (f *freeList) get(rev int64, value interface{}) *entry {
	e := f.head
	if e == nil {
		return &entry{rev: rev, value: value}
	}
	f.head = e.next
	f.size--
	e.next = nil
	e.rev = rev
	e.value = value
	return e
}

func (f *freeList) put(e *entry) {
	e.prev = nil
	e.next = nil
	e.rev = 0
	e.value = nil
	if f.size >= f.cap {
		return
	}
	e.next = f.head
	f.head = e
	f.size++
}
