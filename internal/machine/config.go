package machine

import "runtime"

// Conf mirrors ultra_mach_conf: the knobs the caller can set before
// starting a run.
type Conf struct {
	Threads        int  // worker count; 0 ⇒ runtime.NumCPU()
	ScannerBufSize int  // passed to fsi.Enumerate, which ignores it; 0 ⇒ 8 KiB
	DeleterNTAPI   bool // passed to fsi.UnlinkFile; no platform build acts on it
	DeleterBatch   int  // max files per phase-2 task; 0 ⇒ unbounded per folder
	KeepRoot       bool // if true, the root folder's phase-3 is suppressed
}

const defaultScannerBufSize = 8 * 1024

// normalized returns a copy of c with zero-valued fields resolved to their
// documented defaults.
func (c Conf) normalized() Conf {
	if c.Threads <= 0 {
		c.Threads = runtime.NumCPU()
	}
	if c.ScannerBufSize <= 0 {
		c.ScannerBufSize = defaultScannerBufSize
	}
	return c
}
