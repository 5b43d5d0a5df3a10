package fsi

import (
	"os"
)

// Enumerate lists path's immediate children, classifying each as a file or a
// directory and invoking onFile/onDir with its name and Info. bufSize is
// accepted for API compatibility with the original buffered enumeration
// primitive (deldirp's teacher reads whole directories at once via
// os.ReadDir, so a scan buffer size has no portable equivalent here); a
// value of 0 has no special meaning on this path. Per-entry stat failures
// are recorded into errs and do not abort the scan.
func Enumerate(path string, bufSize int, onFile func(Item), onDir func(Item), errs *[]Error) bool {
	entries, err := readdir(path)
	if err != nil {
		*errs = append(*errs, wrapErr("Enumerate", path, err))
		return false
	}

	for _, ent := range entries {
		attrs, size, err := entryAttrs(path, ent)
		if err != nil {
			*errs = append(*errs, wrapErr("Enumerate.stat", path+"/"+ent.name, err))
			continue
		}
		item := Item{Name: ent.name, Info: Info{Attrs: attrs, Size: size}}
		if attrs.IsDir() {
			onDir(item)
		} else {
			onFile(item)
		}
	}
	return true
}

// UnlinkFile removes a single file. "Not found" is treated as success, the
// same rule the original applies to both unlink and rmdir. If attrs carries
// any restrictive flag (hidden/system/read-only) the implementation first
// attempts to clear it; failure to clear is recorded but does not prevent
// the unlink attempt. useAltPrimitive is accepted but has no effect: the
// Windows build always calls DeleteFile and other builds call os.Remove;
// no alternative low-level unlink path is implemented.
func UnlinkFile(path string, attrs Attr, useAltPrimitive bool, errs *[]Error) bool {
	if attrs.Restrictive() {
		if err := clearRestrictive(path); err != nil {
			*errs = append(*errs, wrapErr("UnlinkFile.clearAttrs", path, err))
		}
	}
	if err := unlinkNative(path, useAltPrimitive); err != nil && !os.IsNotExist(err) {
		*errs = append(*errs, wrapErr("UnlinkFile", path, err))
		return false
	}
	return true
}

// RemoveEmptyDir removes a directory that is expected to be empty. Same
// not-found-is-success and attribute-clearing rules as UnlinkFile.
func RemoveEmptyDir(path string, attrs Attr, errs *[]Error) bool {
	if attrs.Restrictive() {
		if err := clearRestrictive(path); err != nil {
			*errs = append(*errs, wrapErr("RemoveEmptyDir.clearAttrs", path, err))
		}
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		*errs = append(*errs, wrapErr("RemoveEmptyDir", path, err))
		return false
	}
	return true
}

func wrapErr(fn, args string, err error) Error {
	code := 0
	if pe, ok := err.(*os.PathError); ok {
		code = int(errnoOf(pe.Err))
	} else {
		code = int(errnoOf(err))
	}
	return Error{Code: code, Func: fn, Args: args}
}
