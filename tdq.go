package tdq

const (
	MajorVersion = 1
	MinorVersion = 0
)

// Queue is a doubly linked sequence of (revision, value) pairs with a
// third privileged access point besides head and tail: a persistent
// cursor (the waist) that survives across calls and is repositioned as
// a side effect of most operations that need it.
//
// Indexes are signed; negative indexes count back from the tail, -1
// being the tail itself. Revisions are caller-supplied; the queue never
// sorts by them, but SeekRev and Iterator.Seek assume the caller keeps
// them non-decreasing from head to tail.
//
// A Queue is not safe for concurrent use.
type Queue interface {
	Len() int
	Append(rev int64, value interface{})
	AppendLeft(rev int64, value interface{})
	Insert(i int, rev int64, value interface{}) error
	InsertMiddle(rev int64, value interface{})
	Extend(pairs []Pair)
	ExtendFrom(next func() (Pair, bool))
	Get(i int) (Pair, error)
	Peek(i int) (Pair, error)
	Set(i int, rev int64, value interface{}) error
	Delete(i int) error
	Pop() (Pair, error)
	PopLeft() (Pair, error)
	PopAt(i int) (Pair, error)
	PopMiddle(n int) (Pair, error)
	Seek(n int) (Pair, error)
	SeekRev(target int64) (Pair, error)
	Middle() (Pair, error)
	SetMiddle(rev int64, value interface{})
	NewIterator() Iterator
}
