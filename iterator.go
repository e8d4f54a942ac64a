package tdq

// Iterator walks a Queue without touching its shared waist cursor. A
// fresh iterator is positioned invalid; call one of the Seek methods
// first. Mutating the queue invalidates outstanding iterators.
type Iterator interface {
	Valid() bool
	SeekToFirst()
	SeekToLast()
	// Seek positions on the first entry whose revision is not less than
	// rev, assuming revisions are non-decreasing from head to tail.
	Seek(rev int64)
	Next()
	Prev()
	Revision() int64
	Value() interface{}
}
