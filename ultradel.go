// Package ultradel is a multithreaded recursive directory eraser. Given a
// root folder, it enumerates every descendant file and directory and
// removes them, including the root itself unless KeepRoot is set, using a
// pool of worker goroutines so that per-entry syscall latency is hidden
// behind concurrency rather than paid serially — the payoff is largest on
// very large trees and on filesystems with high per-call round-trip cost
// (network mounts).
//
// The package exposes three entry points: Scan walks a tree without
// deleting anything, Delete removes a tree (optionally already scanned by
// the caller), and both report progress and errors through a Callback
// invoked once per completed unit of work.
package ultradel

import (
	"github.com/blaubart69/ultradel/internal/fsi"
	"github.com/blaubart69/ultradel/internal/machine"
	"github.com/blaubart69/ultradel/internal/tree"
)

// Re-exported so callers never need to import the internal packages
// directly.
type (
	Folder      = tree.Folder
	Item        = fsi.Item
	Info        = machine.Info
	Attr        = fsi.Attr
	ErrorRecord = machine.ErrorRecord
)

// Attribute flags for Item.Info.Attrs.
const (
	AttrDir          = fsi.AttrDir
	AttrReparsePoint = fsi.AttrReparsePoint
	AttrHidden       = fsi.AttrHidden
	AttrSystem       = fsi.AttrSystem
	AttrReadOnly     = fsi.AttrReadOnly
)

// Callback is invoked once per completed task and once finally with
// info.Done == true. Returning false requests cancellation: the run stops
// enqueueing new work, drains whatever is in flight, and the entry
// operation returns false.
type Callback func(info *Info) bool

// Config mirrors ultra_mach_conf.
type Config struct {
	// Threads is the worker goroutine count. 0 (or negative) means
	// runtime.NumCPU().
	Threads int
	// ScannerBufSize is accepted for API compatibility with the buffered
	// enumeration primitive this was ported from; 0 means 8 KiB.
	ScannerBufSize int
	// DeleterNTAPI is accepted for API compatibility and has no effect:
	// every platform build uses a single unlink primitive.
	DeleterNTAPI bool
	// DeleterBatch caps how many files one phase-2 task unlinks. 0 means
	// unbounded — one task per folder.
	DeleterBatch int
	// KeepRoot suppresses the root folder's own removal.
	KeepRoot bool
}

func (c Config) toMachineConf() machine.Conf {
	return machine.Conf{
		Threads:        c.Threads,
		ScannerBufSize: c.ScannerBufSize,
		DeleterNTAPI:   c.DeleterNTAPI,
		DeleterBatch:   c.DeleterBatch,
		KeepRoot:       c.KeepRoot,
	}
}

// NewFolder constructs a root *Folder for an absolute path with known
// attributes. The caller must populate this (name + attrs) before calling
// Scan or Delete, mirroring the contract on root.self in the original API.
func NewFolder(absPath string, attrs Attr) *Folder {
	return tree.New(absPath, fsi.Info{Attrs: attrs | fsi.AttrDir})
}

// Scan walks root, populating its tree in memory without deleting
// anything. Returns false if cb requested cancellation.
func Scan(root *Folder, conf Config, cb Callback) bool {
	m := machine.New(conf.toMachineConf(), machine.Callback(cb), false)
	return m.Scan(root)
}

// Delete removes root and everything beneath it (unless conf.KeepRoot).
// If prescanned is true, root's tree must already be fully populated —
// Delete performs no further enumeration and instead walks a post-order
// census, scheduling deletions directly. Otherwise this behaves as
// scan-and-delete: root is scanned and deleted as the tree is discovered.
func Delete(root *Folder, prescanned bool, conf Config, cb Callback) bool {
	m := machine.New(conf.toMachineConf(), machine.Callback(cb), true)
	return m.Delete(root, prescanned)
}
