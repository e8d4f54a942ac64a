package deque

import (
	"strconv"

	"tdq"
	"tdq/util"
)

// Deque is a triple-ended queue: a doubly linked chain of (revision,
// value) entries with head and tail anchors plus a persistent waist
// cursor into the same chain. The waist is nil exactly when the chain
// is empty; it is initialized by the first insertion and thereafter
// repositioned as a side effect of seeks, indexed access, and removals.
//
// Deque implements tdq.Queue. It is not safe for concurrent use.
type Deque struct {
	head   *entry
	tail   *entry
	waist  *entry
	length int
	free   freeList
}

var _ tdq.Queue = (*Deque)(nil)

func New() *Deque {
	return NewWithOptions(tdq.NewOptions())
}

func NewWithOptions(options *tdq.Options) *Deque {
	return &Deque{
		free: newFreeList(options.FreeListCapacity),
	}
}

func NewFromPairs(pairs []tdq.Pair) *Deque {
	d := New()
	d.Extend(pairs)
	return d
}

func (d *Deque) Len() int {
	return d.length
}

func (d *Deque) Append(rev int64, value interface{}) {
	e := d.free.get(rev, value)
	if d.tail == nil {
		d.linkFirst(e)
		return
	}
	e.prev = d.tail
	d.tail.next = e
	d.tail = e
	d.length++
}

func (d *Deque) AppendLeft(rev int64, value interface{}) {
	e := d.free.get(rev, value)
	if d.head == nil {
		d.linkFirst(e)
		return
	}
	e.next = d.head
	d.head.prev = e
	d.head = e
	d.length++
}

func (d *Deque) linkFirst(e *entry) {
	if d.length != 0 {
		panic("deque: length != 0 with no anchors")
	}
	d.head = e
	d.tail = e
	d.waist = e
	d.length = 1
}

func (d *Deque) Extend(pairs []tdq.Pair) {
	for _, p := range pairs {
		d.Append(p.Revision, p.Value)
	}
}

// ExtendFrom appends pairs pulled from next until it reports
// exhaustion. The source is consumed once, in order, and not restarted.
func (d *Deque) ExtendFrom(next func() (tdq.Pair, bool)) {
	for {
		p, ok := next()
		if !ok {
			return
		}
		d.Append(p.Revision, p.Value)
	}
}

// InsertMiddle links a new entry immediately after the waist and moves
// the waist onto it. With at most one entry, or the waist already on
// the tail, this is an append.
func (d *Deque) InsertMiddle(rev int64, value interface{}) {
	if d.length <= 1 || d.waist == d.tail {
		d.Append(rev, value)
		d.waist = d.tail
		return
	}
	e := d.free.get(rev, value)
	e.prev = d.waist
	e.next = d.waist.next
	d.waist.next.prev = e
	d.waist.next = e
	d.waist = e
	d.length++
}

// Insert places a new entry so that it ends up at index i, shifting the
// entry previously there toward the tail. The waist ends on the new
// entry. Insertion is positional: revisions play no part in where the
// entry lands.
func (d *Deque) Insert(i int, rev int64, value interface{}) error {
	if i > d.length || -i > d.length {
		return util.OutOfRangeError2("insert index out of range", strconv.Itoa(i))
	}
	if d.length == 0 {
		d.Append(rev, value)
		return nil
	}
	pos := i
	if pos < 0 {
		pos += d.length
	}
	switch pos {
	case 0:
		d.AppendLeft(rev, value)
		d.waist = d.head
		return nil
	case d.length:
		d.Append(rev, value)
		d.waist = d.tail
		return nil
	}
	// Resolve the predecessor of the target position; i-1 is its signed
	// form on either side of zero.
	if _, err := d.resolve(i - 1); err != nil {
		return err
	}
	d.InsertMiddle(rev, value)
	return nil
}

// Get returns the pair at index i. Resolution moves the waist onto the
// returned entry; use Peek for access that leaves the cursor alone.
func (d *Deque) Get(i int) (tdq.Pair, error) {
	e, err := d.resolve(i)
	if err != nil {
		return tdq.Pair{}, err
	}
	return tdq.Pair{Revision: e.rev, Value: e.value}, nil
}

// Peek returns the pair at index i without touching the waist.
func (d *Deque) Peek(i int) (tdq.Pair, error) {
	e, err := d.locate(i)
	if err != nil {
		return tdq.Pair{}, err
	}
	return tdq.Pair{Revision: e.rev, Value: e.value}, nil
}

// Set rewrites the entry at index i in place. Writing at index Len()
// appends a new entry instead.
func (d *Deque) Set(i int, rev int64, value interface{}) error {
	switch {
	case i == d.length:
		d.Append(rev, value)
		return nil
	case i > d.length || -i > d.length:
		return util.OutOfRangeError2("set index out of range", strconv.Itoa(i))
	case i == 0 || i == -d.length:
		d.head.rev = rev
		d.head.value = value
		return nil
	case i == d.length-1 || i == -1:
		d.tail.rev = rev
		d.tail.value = value
		return nil
	}
	e, err := d.resolve(i)
	if err != nil {
		return err
	}
	e.rev = rev
	e.value = value
	return nil
}

// Delete removes the entry at index i.
func (d *Deque) Delete(i int) error {
	if d.length == 0 {
		return util.OutOfRangeError1("delete on empty queue")
	}
	_, err := d.PopAt(i)
	return err
}

// Pop removes and returns the tail pair.
func (d *Deque) Pop() (tdq.Pair, error) {
	if d.length == 0 {
		return tdq.Pair{}, util.OutOfRangeError1("pop on empty queue")
	}
	return d.unlinkTail(), nil
}

// PopLeft removes and returns the head pair.
func (d *Deque) PopLeft() (tdq.Pair, error) {
	if d.length == 0 {
		return tdq.Pair{}, util.OutOfRangeError1("pop on empty queue")
	}
	return d.unlinkHead(), nil
}

// PopAt removes and returns the pair at index i. Boundary indexes
// dispatch to PopLeft and Pop; for interior indexes the waist ends on
// the removed entry's successor.
func (d *Deque) PopAt(i int) (tdq.Pair, error) {
	if d.length == 0 {
		return tdq.Pair{}, util.OutOfRangeError1("pop on empty queue")
	}
	switch {
	case i == 0 || i == -d.length:
		return d.PopLeft()
	case i == d.length-1 || i == -1:
		return d.Pop()
	}
	var e *entry
	var err error
	if i < 0 {
		if -i > d.length {
			return tdq.Pair{}, util.OutOfRangeError2("index before head", strconv.Itoa(i))
		}
		// Walking from the tail stops one step early, on the successor,
		// so the splice target sits behind the waist.
		if _, err = d.resolve(i + 1); err != nil {
			return tdq.Pair{}, err
		}
		e = d.waist.prev
	} else {
		if e, err = d.resolve(i); err != nil {
			return tdq.Pair{}, err
		}
	}
	return d.spliceOut(e), nil
}

// PopMiddle removes and returns the entry n steps from the current
// waist, 0 meaning the waist's own entry. The waist ends on the removed
// entry's successor when one exists, else its predecessor, else nil.
func (d *Deque) PopMiddle(n int) (tdq.Pair, error) {
	if d.waist == nil {
		return tdq.Pair{}, util.OutOfRangeError1("pop middle with no cursor")
	}
	if _, err := d.Seek(n); err != nil {
		return tdq.Pair{}, err
	}
	e := d.waist
	switch {
	case e == d.head:
		return d.unlinkHead(), nil
	case e == d.tail:
		return d.unlinkTail(), nil
	}
	return d.spliceOut(e), nil
}

// Seek moves the waist n steps toward the tail (n > 0) or the head
// (n < 0) and returns the pair it lands on; Seek(0) reads the waist
// without moving it. A walk that runs off either end fails with a range
// error and leaves the waist at the furthest position reached, not at
// its pre-call position.
func (d *Deque) Seek(n int) (tdq.Pair, error) {
	if d.waist == nil {
		if d.length == 0 {
			return tdq.Pair{}, util.OutOfRangeError1("seek on empty queue")
		}
		d.waist = d.head
	}
	for n > 0 {
		if d.waist.next == nil {
			return tdq.Pair{}, util.OutOfRangeError2("seek past tail", strconv.Itoa(n)+" steps remaining")
		}
		d.waist = d.waist.next
		n--
	}
	for n < 0 {
		if d.waist.prev == nil {
			return tdq.Pair{}, util.OutOfRangeError2("seek past head", strconv.Itoa(-n)+" steps remaining")
		}
		d.waist = d.waist.prev
		n++
	}
	return d.waistPair(), nil
}

// SeekRev moves the waist to the entry holding the greatest revision
// not greater than target, assuming revisions are non-decreasing from
// head to tail; that entry is the one in effect as of target. Running
// off the tail during the forward scan is therefore a successful
// lookup. Only ending above target fails, with an ordering error.
func (d *Deque) SeekRev(target int64) (tdq.Pair, error) {
	if d.waist == nil {
		if d.length == 0 {
			return tdq.Pair{}, util.OutOfRangeError1("seek on empty queue")
		}
		d.waist = d.head
	}
	for d.waist.rev < target && d.waist.next != nil {
		d.waist = d.waist.next
	}
	for d.waist.rev > target && d.waist.prev != nil {
		d.waist = d.waist.prev
	}
	if d.waist.rev > target {
		return tdq.Pair{}, util.OrderingError2("no revision at or before target", strconv.FormatInt(target, 10))
	}
	return d.waistPair(), nil
}

// Middle returns the waist pair.
func (d *Deque) Middle() (tdq.Pair, error) {
	if d.waist == nil {
		return tdq.Pair{}, util.OutOfRangeError1("middle of empty queue")
	}
	return d.waistPair(), nil
}

// SetMiddle rewrites the waist entry in place. On an empty queue it
// creates the sole entry.
func (d *Deque) SetMiddle(rev int64, value interface{}) {
	if d.waist == nil {
		d.Append(rev, value)
		return
	}
	d.waist.rev = rev
	d.waist.value = value
}

func (d *Deque) NewIterator() tdq.Iterator {
	return &dequeIter{d: d}
}

func (d *Deque) waistPair() tdq.Pair {
	return tdq.Pair{Revision: d.waist.rev, Value: d.waist.value}
}

// locate resolves a signed index to its entry without touching the
// waist. Non-negative indexes walk from the head, negative ones from
// the tail, tail itself being -1.
func (d *Deque) locate(i int) (*entry, error) {
	if i >= 0 {
		if i >= d.length {
			return nil, util.OutOfRangeError2("index beyond tail", strconv.Itoa(i))
		}
		e := d.head
		for ; i > 0; i-- {
			e = e.next
		}
		return e, nil
	}
	if -i > d.length {
		return nil, util.OutOfRangeError2("index before head", strconv.Itoa(i))
	}
	e := d.tail
	for i++; i < 0; i++ {
		e = e.prev
	}
	return e, nil
}

// resolve is locate plus the side effect indexed access has always had:
// the waist moves onto the resolved entry.
func (d *Deque) resolve(i int) (*entry, error) {
	e, err := d.locate(i)
	if err != nil {
		return nil, err
	}
	d.waist = e
	return e, nil
}

// unlinkHead removes the head entry. If the waist sat on it, the waist
// follows to the new head, or to nil when the queue empties.
func (d *Deque) unlinkHead() tdq.Pair {
	e := d.head
	d.head = e.next
	if d.head == nil {
		d.tail = nil
		d.waist = nil
	} else {
		d.head.prev = nil
		if d.waist == e {
			d.waist = d.head
		}
	}
	d.length--
	p := tdq.Pair{Revision: e.rev, Value: e.value}
	d.free.put(e)
	return p
}

// unlinkTail removes the tail entry, with the symmetric waist rule.
func (d *Deque) unlinkTail() tdq.Pair {
	e := d.tail
	d.tail = e.prev
	if d.tail == nil {
		d.head = nil
		d.waist = nil
	} else {
		d.tail.next = nil
		if d.waist == e {
			d.waist = d.tail
		}
	}
	d.length--
	p := tdq.Pair{Revision: e.rev, Value: e.value}
	d.free.put(e)
	return p
}

// spliceOut removes an interior entry; both neighbors must exist. If
// the waist sat on it, the waist moves to the successor.
func (d *Deque) spliceOut(e *entry) tdq.Pair {
	if e.prev == nil || e.next == nil {
		panic("deque: splice on boundary entry")
	}
	e.prev.next = e.next
	e.next.prev = e.prev
	if d.waist == e {
		d.waist = e.next
	}
	d.length--
	p := tdq.Pair{Revision: e.rev, Value: e.value}
	d.free.put(e)
	return p
}
