// Package fsi provides the filesystem primitives the ultra machine consumes:
// enumerating a directory, unlinking a file, removing an empty directory. The
// core never calls os.ReadDir/os.Remove directly — it only ever talks to this
// package, so the low-level enumeration and unlink strategy can be swapped
// per platform without touching internal/machine.
package fsi

// Attr is a bitset mirroring fsi_info's attribute flags.
type Attr uint32

const (
	AttrDir Attr = 1 << iota
	AttrReparsePoint
	AttrHidden
	AttrSystem
	AttrReadOnly
)

func (a Attr) IsDir() bool          { return a&AttrDir != 0 }
func (a Attr) IsReparsePoint() bool { return a&AttrReparsePoint != 0 }
func (a Attr) Restrictive() bool    { return a&(AttrHidden|AttrSystem|AttrReadOnly) != 0 }

// Info is the immutable-once-observed attribute/size pair attached to every
// entry discovered by Enumerate.
type Info struct {
	Attrs Attr
	Size  int64
}

// Item is one named filesystem entry: a leaf name plus its Info.
type Item struct {
	Name string
	Info Info
}

// Error is one per-entry or terminal primitive failure, named the way the
// original fsi_info::on_api_error_x records them: a numeric code, the
// primitive that raised it, and a short description of its arguments.
type Error struct {
	Code int
	Func string
	Args string
}

func (e Error) String() string {
	return e.Func + "(" + e.Args + "): " + errText(e.Code)
}
