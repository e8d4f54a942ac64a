package tdq

// Pair is a (revision, value) element of a Queue. The value is opaque
// to the queue.
type Pair struct {
	Revision int64
	Value    interface{}
}
