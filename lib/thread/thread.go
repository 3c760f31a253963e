/*Package thread contains AutoPas' concurrency primitives: the thread-count
knob and the dynamic chunked parallel-for that every traversal and container
rebuild is built on top of (see the concurrency & resource model). The
corpus this is grounded on has no OpenMP-equivalent pragma system, so the
work-sharing primitive is a small worker pool draining a chunk dispenser
over a channel.
*/
package thread

import (
	"runtime"
	"sync"
	"sync/atomic"

	autopaserr "github.com/mansfield-lab/autopas/lib/error"
)

// numThreads is the process-wide thread count used by ParallelFor. It
// mirrors the teacher's SetThreads/runtime.GOMAXPROCS coupling: AutoPas
// never spawns its own thread pool, it just bounds how many goroutines a
// single ParallelFor call may use.
var numThreads int32 = int32(runtime.GOMAXPROCS(0))

// Set sets the number of threads AutoPas' parallel-for will use. A value
// of -1 requests the maximum number of cores available on the node.
func Set(n int) error {
	if n == -1 {
		n = runtime.NumCPU()
	}
	if n <= 0 {
		return autopaserr.Newf("%d threads requested, but the thread count must be positive or -1", n)
	}
	if n > runtime.NumCPU() {
		return autopaserr.Newf(
			"%d threads requested, but this node only has %d cores. Set "+
				"Threads=-1 to use every core on the node.", n, runtime.NumCPU())
	}
	atomic.StoreInt32(&numThreads, int32(n))
	return nil
}

// Count returns the currently configured thread count.
func Count() int { return int(atomic.LoadInt32(&numThreads)) }

// DefaultChunkSize is used by ParallelFor callers that have no better
// estimate of how much work one iteration represents (e.g. one cell of a
// c08 traversal, or one owned particle of a Verlet-list rebuild).
const DefaultChunkSize = 4

// ParallelFor runs f(i) for every i in [0, n) using a dynamic, chunked
// work-sharing schedule: goroutines drain contiguous chunks of size
// chunkSize from a shared counter until the range is exhausted. This is
// the primitive every traversal's colouring/slicing discipline is layered
// on top of; ParallelFor itself makes no ordering guarantee between
// chunks, matching the "argument order is unspecified under
// multi-threading" clause of the concurrency model.
//
// A panic raised by f on any worker goroutine is captured and re-raised on
// the calling goroutine once every worker has joined, so that a functor
// panic propagates the way it would from single-threaded code.
func ParallelFor(n, chunkSize int, f func(i int)) {
	if n <= 0 {
		return
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	threads := Count()
	if threads > n {
		threads = n
	}
	if threads <= 1 {
		f(0)
		for i := 1; i < n; i++ {
			f(i)
		}
		return
	}

	var next int32 = 0
	var wg sync.WaitGroup
	var panicOnce sync.Once
	var panicVal interface{}

	wg.Add(threads)
	for t := 0; t < threads; t++ {
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					panicOnce.Do(func() { panicVal = r })
				}
			}()
			for {
				start := int(atomic.AddInt32(&next, int32(chunkSize))) - chunkSize
				if start >= n {
					return
				}
				end := start + chunkSize
				if end > n {
					end = n
				}
				for i := start; i < end; i++ {
					f(i)
				}
			}
		}()
	}
	wg.Wait()

	if panicVal != nil {
		panic(panicVal)
	}
}
