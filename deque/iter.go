package deque

import "tdq"

// dequeIter walks the chain directly and never touches the owning
// queue's waist. It holds no snapshot: mutating the queue invalidates
// the iterator.
type dequeIter struct {
	d    *Deque
	node *entry
}

var _ tdq.Iterator = (*dequeIter)(nil)

func (i *dequeIter) Valid() bool {
	return i.node != nil
}

func (i *dequeIter) SeekToFirst() {
	i.node = i.d.head
}

func (i *dequeIter) SeekToLast() {
	i.node = i.d.tail
}

func (i *dequeIter) Seek(rev int64) {
	x := i.d.head
	for x != nil && x.rev < rev {
		x = x.next
	}
	i.node = x
}

func (i *dequeIter) Next() {
	if i.node == nil {
		panic("dequeIter: next on invalid iterator")
	}
	i.node = i.node.next
}

func (i *dequeIter) Prev() {
	if i.node == nil {
		panic("dequeIter: prev on invalid iterator")
	}
	i.node = i.node.prev
}

func (i *dequeIter) Revision() int64 {
	if i.node == nil {
		panic("dequeIter: revision on invalid iterator")
	}
	return i.node.rev
}

func (i *dequeIter) Value() interface{} {
	if i.node == nil {
		panic("dequeIter: value on invalid iterator")
	}
	return i.node.value
}
