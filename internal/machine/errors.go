package machine

import "github.com/blaubart69/ultradel/internal/fsi"

// ErrorRecord is one accumulated primitive failure, surfaced to the caller
// through a tick's ScannerErr/DeleterErr slices. A zero Code is dropped
// rather than recorded: per spec, some enumeration APIs surface an entry
// alongside a zero-code "warning" that means no error occurred.
type ErrorRecord struct {
	Code int
	Func string
	Args string
}

func fromFSI(e fsi.Error) (ErrorRecord, bool) {
	if e.Code == 0 {
		return ErrorRecord{}, false
	}
	return ErrorRecord{Code: e.Code, Func: e.Func, Args: e.Args}, true
}

func appendFSI(dst []ErrorRecord, src []fsi.Error) []ErrorRecord {
	for _, e := range src {
		if r, ok := fromFSI(e); ok {
			dst = append(dst, r)
		}
	}
	return dst
}
