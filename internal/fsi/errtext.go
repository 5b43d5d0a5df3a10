package fsi

import "syscall"

// errText renders a raw errno-ish code for display in Error.String(). It is
// best-effort: codes that don't map to a known errno just print numerically.
func errText(code int) string {
	if code == 0 {
		return "ok"
	}
	if e := syscall.Errno(code); e != 0 {
		return e.Error()
	}
	return "unknown error"
}
