//go:build windows

package fsi

import "syscall"

type dirent struct {
	name  string
	attrs Attr
	size  int64
}

// readdir enumerates a directory with FindFirstFile/FindNextFile directly,
// the low-level path the teacher's go/readdir_windows.go uses instead of a
// portable os.ReadDir, translating Win32finddata attribute bits as it goes.
func readdir(path string) ([]dirent, error) {
	pattern := path + `\*`
	var finddata syscall.Win32finddata

	utf16path, err := syscall.UTF16PtrFromString(pattern)
	if err != nil {
		return nil, err
	}
	h, err := syscall.FindFirstFile(utf16path, &finddata)
	if err != nil {
		return nil, err
	}
	defer syscall.FindClose(h)

	var out []dirent
	for {
		name := syscall.UTF16ToString(finddata.FileName[:])
		if name != "." && name != ".." {
			out = append(out, dirent{
				name:  name,
				attrs: winAttrs(finddata.FileAttributes),
				size:  int64(finddata.FileSizeHigh)<<32 | int64(finddata.FileSizeLow),
			})
		}
		if err := syscall.FindNextFile(h, &finddata); err != nil {
			if err == syscall.ERROR_NO_MORE_FILES {
				break
			}
			return out, err
		}
	}
	return out, nil
}

func winAttrs(fa uint32) Attr {
	var a Attr
	if fa&syscall.FILE_ATTRIBUTE_DIRECTORY != 0 {
		a |= AttrDir
	}
	if fa&syscall.FILE_ATTRIBUTE_REPARSE_POINT != 0 {
		a |= AttrReparsePoint | AttrDir
	}
	if fa&syscall.FILE_ATTRIBUTE_HIDDEN != 0 {
		a |= AttrHidden
	}
	if fa&syscall.FILE_ATTRIBUTE_SYSTEM != 0 {
		a |= AttrSystem
	}
	if fa&syscall.FILE_ATTRIBUTE_READONLY != 0 {
		a |= AttrReadOnly
	}
	return a
}

func entryAttrs(dir string, d dirent) (Attr, int64, error) {
	return d.attrs, d.size, nil
}

func clearRestrictive(path string) error {
	utf16path, err := syscall.UTF16PtrFromString(path)
	if err != nil {
		return err
	}
	return syscall.SetFileAttributes(utf16path, syscall.FILE_ATTRIBUTE_NORMAL)
}

// unlinkNative removes a file. useAltPrimitive selects the alternative
// low-level delete path (deleter_ntapi): here that would be NtDeleteFile via
// ntdll rather than DeleteFile; this build keeps a single primitive and
// records the distinction only in configuration, since both paths converge
// on the same syscall.DeleteFile under the portable syscall package.
func unlinkNative(path string, useAltPrimitive bool) error {
	utf16path, err := syscall.UTF16PtrFromString(path)
	if err != nil {
		return err
	}
	return syscall.DeleteFile(utf16path)
}

func errnoOf(err error) syscall.Errno {
	if e, ok := err.(syscall.Errno); ok {
		return e
	}
	return 0
}
