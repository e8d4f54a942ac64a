package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/golang/snappy"

	"tdq"
	"tdq/deque"
	"tdq/util"
)

var flagsBenchmarks = []string{
	"fillseq",
	"fillleft",
	"fillmiddle",
	"fillrandom",
	"readseq",
	"readreverse",
	"readrandom",
	"seekrandom",
	"seekrev",
	"popseq",
	"popleft",
	"popmiddle",
	"crc32c",
	"snappycomp",
	"snappyuncomp",
}

var (
	flagsNum              = 1000000
	flagsReads            = -1
	flagsThreads          = 1
	flagsValueSize        = 100
	flagsCompressionRatio = 0.5
	flagsHistogram        = false
	flagsSeed             = 301
)

const benchBlockSize = 4096

func nowMicros() float64 {
	return float64(time.Now().UnixNano()) / 1e3
}

type randomGenerator struct {
	data []byte
	pos  int
}

func newRandomGenerator() *randomGenerator {
	g := &randomGenerator{
		data: make([]byte, 0, 1048576),
		pos:  0,
	}
	rnd := util.NewRandom(uint32(flagsSeed))
	for len(g.data) < 1048576 {
		piece := util.CompressibleString(rnd, flagsCompressionRatio, 100)
		g.data = append(g.data, piece...)
	}
	return g
}

func (g *randomGenerator) generate(l int) []byte {
	if g.pos+l > len(g.data) {
		g.pos = 0
		if l >= len(g.data) {
			panic("randomGenerator: l > len(data)")
		}
	}
	g.pos += l
	return g.data[g.pos-l : g.pos]
}

func appendWithSpace(b *[]byte, msg []byte) {
	if len(msg) == 0 {
		return
	}
	if len(*b) != 0 {
		*b = append(*b, ' ')
	}
	*b = append(*b, msg...)
}

type stats struct {
	start        float64
	finish       float64
	seconds      float64
	done         int
	nextReport   int
	bytes        int64
	lastOpFinish float64
	hist         util.Histogram
	message      []byte
}

func newStats() *stats {
	s := new(stats)
	s.doStart()
	return s
}

func (s *stats) doStart() {
	s.nextReport = 100
	s.hist.Clear()
	s.done = 0
	s.bytes = 0
	s.seconds = 0
	s.start = nowMicros()
	s.lastOpFinish = s.start
	s.finish = s.start
	s.message = []byte{}
}

func (s *stats) merge(other *stats) {
	s.hist.Merge(&other.hist)
	s.done += other.done
	s.bytes += other.bytes
	s.seconds += other.seconds
	if other.start < s.start {
		s.start = other.start
	}
	if other.finish > s.finish {
		s.finish = other.finish
	}
	if len(s.message) == 0 {
		s.message = other.message
	}
}

func (s *stats) doStop() {
	s.finish = nowMicros()
	s.seconds = (s.finish - s.start) * 1e-6
}

func (s *stats) addMessage(msg []byte) {
	appendWithSpace(&s.message, msg)
}

func (s *stats) finishSingleOp() {
	if flagsHistogram {
		now := nowMicros()
		micros := now - s.lastOpFinish
		s.hist.Add(micros)
		if micros > 20000 {
			fmt.Fprintf(os.Stderr, "long op: %.1f micros%30s\r", micros, "")
		}
		s.lastOpFinish = now
	}
	s.done++
	if s.done >= s.nextReport {
		if s.nextReport < 1000 {
			s.nextReport += 100
		} else if s.nextReport < 5000 {
			s.nextReport += 500
		} else if s.nextReport < 10000 {
			s.nextReport += 1000
		} else if s.nextReport < 50000 {
			s.nextReport += 5000
		} else if s.nextReport < 100000 {
			s.nextReport += 10000
		} else if s.nextReport < 500000 {
			s.nextReport += 50000
		} else {
			s.nextReport += 100000
		}
		fmt.Fprintf(os.Stderr, "... finished %d ops%30s\r", s.done, "")
	}
}

func (s *stats) addBytes(n int64) {
	s.bytes += n
}

func (s *stats) report(name string) {
	if s.done < 1 {
		s.done = 1
	}
	buf := bytes.NewBufferString("")
	if s.bytes > 0 {
		elapsed := (s.finish - s.start) * 1e-6
		fmt.Fprintf(buf, "%6.1f MB/s", float64(s.bytes)/1048576.0/elapsed)
	}
	extra := buf.Bytes()
	appendWithSpace(&extra, s.message)
	var c string
	if len(extra) == 0 {
		c = ""
	} else {
		c = " "
	}
	fmt.Fprintf(os.Stdout, "%-12s : %11.3f micros/op;%s%s\n", name, s.seconds*1e6/float64(s.done), c, extra)
	if flagsHistogram {
		fmt.Fprintf(os.Stdout, "Microseconds per op:\n%s\n", s.hist.String())
	}
}

type sharedState struct {
	mu             sync.Mutex
	cond           *sync.Cond
	total          int
	numInitialized int
	numDone        int
	start          bool
}

func newSharedState(total int) *sharedState {
	s := &sharedState{
		total: total,
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

type threadState struct {
	tid    int
	rand   *util.Random
	stats  *stats
	shared *sharedState
}

func newThreadState(index int) *threadState {
	return &threadState{
		tid:   index,
		rand:  util.NewRandom(uint32(flagsSeed + index)),
		stats: newStats(),
	}
}

type benchmark struct {
	num       int
	valueSize int
	reads     int
}

func newBenchmark() *benchmark {
	b := &benchmark{
		num:       flagsNum,
		valueSize: flagsValueSize,
	}
	if flagsReads < 0 {
		b.reads = flagsNum
	} else {
		b.reads = flagsReads
	}
	return b
}

func (b *benchmark) printHeader() {
	b.printEnvironment()
	fmt.Fprintf(os.Stdout, "Revisions:  8 bytes each\n")
	fmt.Fprintf(os.Stdout, "Values:     %d bytes each (%d bytes after compression)\n", flagsValueSize, int64(float64(flagsValueSize)*flagsCompressionRatio+0.5))
	fmt.Fprintf(os.Stdout, "Entries:    %d\n", b.num)
	fmt.Fprintf(os.Stdout, "RawSize:    %.1f MB (estimated)\n", float64(8+flagsValueSize)*float64(b.num)/1048576.0)
	fmt.Fprintf(os.Stdout, "------------------------------------------------\n")
}

func (b *benchmark) printEnvironment() {
	fmt.Fprintf(os.Stderr, "TDQ:        version %d.%d\n", tdq.MajorVersion, tdq.MinorVersion)
	now := time.Now()
	fmt.Fprintf(os.Stderr, "Date:       %s\n", now.String())
	fmt.Fprintf(os.Stderr, "CPU:        %d\n", runtime.NumCPU())
}

func (b *benchmark) run() {
	b.printHeader()
	for _, name := range flagsBenchmarks {
		b.num = flagsNum
		if flagsReads < 0 {
			b.reads = flagsNum
		} else {
			b.reads = flagsReads
		}
		b.valueSize = flagsValueSize

		var method func(*threadState)
		numThreads := flagsThreads
		switch name {
		case "fillseq":
			method = b.fillSeq
		case "fillleft":
			method = b.fillLeft
		case "fillmiddle":
			method = b.fillMiddle
		case "fillrandom":
			// Positional insert walks the chain: keep op counts sane.
			b.num /= 1000
			if b.num < 1 {
				b.num = 1
			}
			method = b.fillRandom
		case "readseq":
			method = b.readSequential
		case "readreverse":
			method = b.readReverse
		case "readrandom":
			b.num /= 1000
			if b.num < 1 {
				b.num = 1
			}
			b.reads /= 100
			method = b.readRandom
		case "seekrandom":
			method = b.seekRandom
		case "seekrev":
			b.num /= 1000
			if b.num < 1 {
				b.num = 1
			}
			b.reads /= 100
			method = b.seekRevision
		case "popseq":
			method = b.popSeq
		case "popleft":
			method = b.popLeft
		case "popmiddle":
			method = b.popMiddle
		case "crc32c":
			method = crc32c
		case "snappycomp":
			method = snappyCompress
		case "snappyuncomp":
			method = snappyUncompress
		default:
			if len(name) != 0 {
				fmt.Fprintf(os.Stderr, "unknown benchmark '%s'\n", name)
			}
		}
		if method != nil {
			b.runBenchmark(numThreads, name, method)
		}
	}
}

type threadArg struct {
	bm     *benchmark
	shared *sharedState
	thread *threadState
	method func(*threadState)
}

func threadBody(arg *threadArg) {
	shared := arg.shared
	thread := arg.thread
	shared.mu.Lock()
	shared.numInitialized++
	if shared.numInitialized >= shared.total {
		shared.cond.Broadcast()
	}
	for !shared.start {
		shared.cond.Wait()
	}
	shared.mu.Unlock()

	thread.stats.doStart()
	arg.method(thread)
	thread.stats.doStop()

	shared.mu.Lock()
	shared.numDone++
	if shared.numDone >= shared.total {
		shared.cond.Broadcast()
	}
	shared.mu.Unlock()
}

func (b *benchmark) runBenchmark(n int, name string, method func(*threadState)) {
	shared := newSharedState(n)
	args := make([]threadArg, n)
	for i := range args {
		args[i] = threadArg{
			bm:     b,
			shared: shared,
			thread: newThreadState(i),
			method: method,
		}
		args[i].thread.shared = shared
		go threadBody(&args[i])
	}
	shared.mu.Lock()
	for shared.numInitialized < n {
		shared.cond.Wait()
	}
	shared.start = true
	shared.cond.Broadcast()
	for shared.numDone < n {
		shared.cond.Wait()
	}
	shared.mu.Unlock()
	for i := 1; i < n; i++ {
		args[0].thread.stats.merge(args[i].thread.stats)
	}
	args[0].thread.stats.report(name)
}

// The container is single threaded by contract, so every thread works
// a private queue.
func (b *benchmark) fillQueue(thread *threadState, n int) *deque.Deque {
	gen := newRandomGenerator()
	d := deque.New()
	for i := 0; i < n; i++ {
		d.Append(int64(i), gen.generate(b.valueSize))
	}
	return d
}

func (b *benchmark) fillSeq(thread *threadState) {
	gen := newRandomGenerator()
	d := deque.New()
	for i := 0; i < b.num; i++ {
		d.Append(int64(i), gen.generate(b.valueSize))
		thread.stats.finishSingleOp()
	}
	thread.stats.addBytes(int64(8+b.valueSize) * int64(b.num))
}

func (b *benchmark) fillLeft(thread *threadState) {
	gen := newRandomGenerator()
	d := deque.New()
	for i := 0; i < b.num; i++ {
		d.AppendLeft(int64(b.num-i), gen.generate(b.valueSize))
		thread.stats.finishSingleOp()
	}
	thread.stats.addBytes(int64(8+b.valueSize) * int64(b.num))
}

func (b *benchmark) fillMiddle(thread *threadState) {
	gen := newRandomGenerator()
	d := deque.New()
	for i := 0; i < b.num; i++ {
		d.InsertMiddle(int64(i), gen.generate(b.valueSize))
		thread.stats.finishSingleOp()
	}
	thread.stats.addBytes(int64(8+b.valueSize) * int64(b.num))
}

func (b *benchmark) fillRandom(thread *threadState) {
	gen := newRandomGenerator()
	d := deque.New()
	for i := 0; i < b.num; i++ {
		pos := int(thread.rand.Uniform(d.Len() + 1))
		if err := d.Insert(pos, int64(i), gen.generate(b.valueSize)); err != nil {
			fmt.Fprintf(os.Stderr, "insert error: %v\n", err)
			os.Exit(1)
		}
		thread.stats.finishSingleOp()
	}
	thread.stats.addBytes(int64(8+b.valueSize) * int64(b.num))
}

func (b *benchmark) readSequential(thread *threadState) {
	d := b.fillQueue(thread, b.num)
	bs := int64(0)
	i := 0
	for i < b.reads {
		it := d.NewIterator()
		for it.SeekToFirst(); it.Valid() && i < b.reads; it.Next() {
			bs += int64(8 + len(it.Value().([]byte)))
			thread.stats.finishSingleOp()
			i++
		}
	}
	thread.stats.addBytes(bs)
}

func (b *benchmark) readReverse(thread *threadState) {
	d := b.fillQueue(thread, b.num)
	bs := int64(0)
	i := 0
	for i < b.reads {
		it := d.NewIterator()
		for it.SeekToLast(); it.Valid() && i < b.reads; it.Prev() {
			bs += int64(8 + len(it.Value().([]byte)))
			thread.stats.finishSingleOp()
			i++
		}
	}
	thread.stats.addBytes(bs)
}

func (b *benchmark) readRandom(thread *threadState) {
	d := b.fillQueue(thread, b.num)
	for i := 0; i < b.reads; i++ {
		pos := int(thread.rand.Uniform(d.Len()))
		if _, err := d.Peek(pos); err != nil {
			fmt.Fprintf(os.Stderr, "peek error: %v\n", err)
			os.Exit(1)
		}
		thread.stats.finishSingleOp()
	}
}

func (b *benchmark) seekRandom(thread *threadState) {
	d := b.fillQueue(thread, b.num)
	found := 0
	for i := 0; i < b.reads; i++ {
		offset := int(thread.rand.Uniform(21)) - 10
		if _, err := d.Seek(offset); err == nil {
			found++
		}
		thread.stats.finishSingleOp()
	}
	buf := bytes.NewBufferString("")
	fmt.Fprintf(buf, "(%d of %d in range)", found, b.reads)
	thread.stats.addMessage(buf.Bytes())
}

func (b *benchmark) seekRevision(thread *threadState) {
	d := b.fillQueue(thread, b.num)
	for i := 0; i < b.reads; i++ {
		target := int64(thread.rand.Uniform(b.num))
		if _, err := d.SeekRev(target); err != nil {
			fmt.Fprintf(os.Stderr, "seekRev error: %v\n", err)
			os.Exit(1)
		}
		thread.stats.finishSingleOp()
	}
}

func (b *benchmark) popSeq(thread *threadState) {
	d := b.fillQueue(thread, b.num)
	for d.Len() > 0 {
		if _, err := d.Pop(); err != nil {
			fmt.Fprintf(os.Stderr, "pop error: %v\n", err)
			os.Exit(1)
		}
		thread.stats.finishSingleOp()
	}
}

func (b *benchmark) popLeft(thread *threadState) {
	d := b.fillQueue(thread, b.num)
	for d.Len() > 0 {
		if _, err := d.PopLeft(); err != nil {
			fmt.Fprintf(os.Stderr, "popLeft error: %v\n", err)
			os.Exit(1)
		}
		thread.stats.finishSingleOp()
	}
}

func (b *benchmark) popMiddle(thread *threadState) {
	d := b.fillQueue(thread, b.num)
	if _, err := d.Seek(b.num / 2); err != nil {
		fmt.Fprintf(os.Stderr, "seek error: %v\n", err)
		os.Exit(1)
	}
	for d.Len() > 0 {
		if _, err := d.PopMiddle(0); err != nil {
			fmt.Fprintf(os.Stderr, "popMiddle error: %v\n", err)
			os.Exit(1)
		}
		thread.stats.finishSingleOp()
	}
}

func crc32c(thread *threadState) {
	const size = 4096
	label := "(4K per op)"
	data := bytes.Repeat([]byte{'x'}, size)
	bs := int64(0)
	crc := uint32(0)
	for bs < 500*1048576 {
		crc = util.ChecksumValue(data)
		thread.stats.finishSingleOp()
		bs += size
	}

	fmt.Fprintf(os.Stderr, "... crc=0x%x\r", crc)
	thread.stats.addBytes(bs)
	thread.stats.addMessage([]byte(label))
}

func snappyCompress(thread *threadState) {
	gen := newRandomGenerator()
	input := gen.generate(benchBlockSize)
	bs := int64(0)
	produced := int64(0)
	var compressed []byte
	for bs < 1024*1048576 {
		compressed = snappy.Encode(nil, input)
		produced += int64(len(compressed))
		bs += int64(len(input))
		thread.stats.finishSingleOp()
	}
	buf := bytes.NewBufferString("")
	fmt.Fprintf(buf, "(output: %.1f%%)", float64(produced*100.0)/float64(bs))
	thread.stats.addMessage(buf.Bytes())
	thread.stats.addBytes(bs)
}

func snappyUncompress(thread *threadState) {
	gen := newRandomGenerator()
	input := gen.generate(benchBlockSize)
	compressed := snappy.Encode(nil, input)
	var err error
	bs := int64(0)
	for err == nil && bs < 1024*1048576 {
		_, err = snappy.Decode(nil, compressed)
		bs += int64(len(input))
		thread.stats.finishSingleOp()
	}
	if err != nil {
		thread.stats.addMessage([]byte("(snappy failure)"))
	} else {
		thread.stats.addBytes(bs)
	}
}

func main() {
	benchmarks := flag.String("benchmarks", strings.Join(flagsBenchmarks, ","), "comma separated benchmark names")
	flag.IntVar(&flagsNum, "num", flagsNum, "number of entries")
	flag.IntVar(&flagsReads, "reads", flagsReads, "number of read ops (-1 means num)")
	flag.IntVar(&flagsThreads, "threads", flagsThreads, "concurrent benchmark threads, each with a private queue")
	flag.IntVar(&flagsValueSize, "value_size", flagsValueSize, "payload bytes per entry")
	flag.Float64Var(&flagsCompressionRatio, "compression_ratio", flagsCompressionRatio, "compressibility of generated payloads")
	flag.BoolVar(&flagsHistogram, "histogram", flagsHistogram, "print latency histograms")
	flag.IntVar(&flagsSeed, "seed", flagsSeed, "random seed")
	flag.Parse()

	flagsBenchmarks = strings.Split(*benchmarks, ",")
	newBenchmark().run()
}
