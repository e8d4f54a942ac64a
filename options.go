package tdq

// Options controls a queue's behavior.
type Options struct {
	// FreeListCapacity caps how many removed entries the queue keeps
	// around for reuse. Zero disables recycling.
	FreeListCapacity int
}

func NewOptions() *Options {
	return &Options{
		FreeListCapacity: 64,
	}
}
