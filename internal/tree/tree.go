// Package tree is the in-memory model of discovered directories and their
// files. A Folder owns its subfolders and file entries; parent links are
// non-owning and let a caller recover any folder's full path without storing
// it redundantly.
package tree

import (
	"math"
	"path/filepath"
	"sync/atomic"

	"github.com/blaubart69/ultradel/internal/fsi"
)

// BeingDeleted is the sentinel items transitions to once a folder's
// self-deletion has been enqueued, distinguishing "scheduled" from any
// legitimate pending count and making a stray extra decrement show up as a
// large negative number rather than wrapping back to a plausible value.
const BeingDeleted = math.MinInt32

// Folder is one node of the discovered directory tree.
type Folder struct {
	Self    fsi.Item
	Parent  *Folder
	Folders []*Folder
	Files   []fsi.Item

	items int32
}

// New constructs a root folder. Name should be the absolute path; info
// carries the root's own attributes.
func New(name string, info fsi.Info) *Folder {
	return &Folder{Self: fsi.Item{Name: name, Info: info}}
}

// NewChild constructs a subfolder discovered while scanning parent and
// appends it to parent.Folders. Not safe to call concurrently with another
// NewChild/AddFile on the same parent — scanning a given folder happens on a
// single goroutine, per the concurrency model.
func (parent *Folder) NewChild(item fsi.Item) *Folder {
	child := &Folder{Self: item, Parent: parent}
	parent.Folders = append(parent.Folders, child)
	parent.bumpItems(1)
	return child
}

// AddFile records a file discovered while scanning this folder.
func (f *Folder) AddFile(item fsi.Item) {
	f.Files = append(f.Files, item)
	f.bumpItems(1)
}

func (f *Folder) bumpItems(delta int32) {
	atomic.AddInt32(&f.items, delta)
}

// Release decrements the pending-children counter by n (one per completed
// file deletion, or one for a completed child folder's self-deletion) and
// reports whether the folder just became ready for its own phase-3.
func (f *Folder) Release(n int32) bool {
	return atomic.AddInt32(&f.items, -n) == 0
}

// ReadyForDelete reports whether items has reached zero and the folder has
// not already been scheduled for self-deletion.
func (f *Folder) ReadyForDelete() bool {
	return atomic.LoadInt32(&f.items) == 0
}

// MarkScheduled atomically transitions items from 0 to BeingDeleted,
// returning false if another goroutine already performed the transition —
// the mechanism that guarantees a folder's phase-3 is enqueued at most once.
func (f *Folder) MarkScheduled() bool {
	return atomic.CompareAndSwapInt32(&f.items, 0, BeingDeleted)
}

// ClearFiles drops the Files slice's backing storage. Called once, from the
// loop goroutine, right before a folder's self-deletion task is enqueued, so
// memory for a large file list isn't held onto any longer than necessary.
func (f *Folder) ClearFiles() {
	f.Files = nil
}

// Path recomposes the full path by walking Parent links and joining with
// the native separator. The root's Self.Name is expected to already be an
// absolute path (the caller's contract per the entry operations).
func (f *Folder) Path() string {
	if f.Parent == nil {
		return f.Self.Name
	}
	var leaf []string
	n := f
	for ; n.Parent != nil; n = n.Parent {
		leaf = append(leaf, n.Self.Name)
	}
	for i, j := 0, len(leaf)-1; i < j; i, j = i+1, j-1 {
		leaf[i], leaf[j] = leaf[j], leaf[i]
	}
	return filepath.Join(append([]string{n.Self.Name}, leaf...)...)
}

// Census appends every descendant folder to vec in post-order: children
// before self, so a caller walking vec front-to-back can delete bottom-up
// without any further dependency tracking (used by the prescanned delete
// entry point). Reparse-point folders are included themselves (they still
// need their own entry removed) but never recursed into.
func (f *Folder) Census(vec *[]*Folder) {
	for _, child := range f.Folders {
		if child.Self.Info.Attrs.IsReparsePoint() {
			*vec = append(*vec, child)
			continue
		}
		child.Census(vec)
	}
	*vec = append(*vec, f)
}
