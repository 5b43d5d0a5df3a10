//go:build !windows

package fsi

import (
	"os"
	"syscall"
)

type dirent struct {
	name string
}

func readdir(path string) ([]dirent, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	out := make([]dirent, len(entries))
	for i, e := range entries {
		out[i] = dirent{name: e.Name()}
	}
	return out, nil
}

// entryAttrs classifies one child by lstat: a reparse point is any symlink,
// hidden is the leading-dot convention, system has no portable unix
// equivalent and is never set, read-only is the absence of any write bit.
func entryAttrs(dir string, d dirent) (Attr, int64, error) {
	full := dir + "/" + d.name
	fi, err := os.Lstat(full)
	if err != nil {
		return 0, 0, err
	}

	var a Attr
	if fi.Mode()&os.ModeSymlink != 0 {
		// Reparse points are modelled as folders that are never descended
		// into (spec invariant: a folder with the reparse-point attribute
		// is recorded but not enumerated), matching NTFS junction/symlink
		// semantics regardless of what the link target actually is.
		a |= AttrDir | AttrReparsePoint
	} else if fi.IsDir() {
		a |= AttrDir
	}
	if len(d.name) > 0 && d.name[0] == '.' {
		a |= AttrHidden
	}
	if fi.Mode().Perm()&0o222 == 0 {
		a |= AttrReadOnly
	}
	return a, fi.Size(), nil
}

func clearRestrictive(path string) error {
	fi, err := os.Lstat(path)
	if err != nil {
		return err
	}
	return os.Chmod(path, fi.Mode()|0o200)
}

func unlinkNative(path string, _ bool) error {
	// No NT native API equivalent outside Windows; deleter_ntapi is a no-op here.
	return os.Remove(path)
}

func errnoOf(err error) syscall.Errno {
	if e, ok := err.(syscall.Errno); ok {
		return e
	}
	return 0
}
