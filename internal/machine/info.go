package machine

import "sync/atomic"

// Info mirrors ultra_mach_info: the counters and per-tick error slices
// exposed to the caller's tick callback. ScannerErr/DeleterErr are only
// valid for the duration of a single tick.
type Info struct {
	DFound, DDeleted uint64
	FFound, FDeleted uint64
	BFound, BDeleted uint64

	ScannerErr []ErrorRecord
	DeleterErr []ErrorRecord

	FoldersToGo uint64
	Done        bool
}

// counters holds the same fields as Info but as atomics, mutated from
// worker goroutines during task execution and snapshotted into an Info by
// the loop goroutine for each tick.
type counters struct {
	dFound, dDeleted uint64
	fFound, fDeleted uint64
	bFound, bDeleted uint64
}

func (c *counters) addDFound(n uint64)   { atomic.AddUint64(&c.dFound, n) }
func (c *counters) addDDeleted(n uint64) { atomic.AddUint64(&c.dDeleted, n) }
func (c *counters) addFFound(n uint64)   { atomic.AddUint64(&c.fFound, n) }
func (c *counters) addFDeleted(n uint64) { atomic.AddUint64(&c.fDeleted, n) }
func (c *counters) addBFound(n uint64)   { atomic.AddUint64(&c.bFound, n) }
func (c *counters) addBDeleted(n uint64) { atomic.AddUint64(&c.bDeleted, n) }

func (c *counters) snapshot() (dFound, dDeleted, fFound, fDeleted, bFound, bDeleted uint64) {
	return atomic.LoadUint64(&c.dFound), atomic.LoadUint64(&c.dDeleted),
		atomic.LoadUint64(&c.fFound), atomic.LoadUint64(&c.fDeleted),
		atomic.LoadUint64(&c.bFound), atomic.LoadUint64(&c.bDeleted)
}
