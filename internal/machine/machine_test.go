package machine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/blaubart69/ultradel/internal/fsi"
	"github.com/blaubart69/ultradel/internal/tree"
)

func rootFolder(t *testing.T, path string) *tree.Folder {
	t.Helper()
	return tree.New(path, fsi.Info{Attrs: fsi.AttrDir})
}

func TestEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	if err := os.Mkdir(a, 0o755); err != nil {
		t.Fatal(err)
	}

	var last *Info
	cb := func(info *Info) bool {
		cp := *info
		last = &cp
		return true
	}

	m := New(Conf{}, cb, true)
	ok := m.Delete(rootFolder(t, a), false)
	if !ok {
		t.Fatalf("Delete should succeed")
	}
	if !last.Done {
		t.Fatalf("final tick should have Done=true")
	}
	if last.DFound != 1 || last.DDeleted != 1 || last.FFound != 0 {
		t.Fatalf("got %+v", last)
	}
	if _, err := os.Stat(a); !os.IsNotExist(err) {
		t.Fatalf("root should no longer exist, stat err = %v", err)
	}
}

func TestDeleteFilesAndBytes(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	mustMkdir(t, a)
	mustWriteFile(t, filepath.Join(a, "f1"), 10)
	mustWriteFile(t, filepath.Join(a, "f2"), 20)

	var last *Info
	cb := func(info *Info) bool {
		cp := *info
		last = &cp
		return true
	}

	m := New(Conf{}, cb, true)
	if !m.Delete(rootFolder(t, a), false) {
		t.Fatalf("Delete should succeed")
	}

	if last.DFound != 1 || last.DDeleted != 1 {
		t.Fatalf("folder counters: %+v", last)
	}
	if last.FFound != 2 || last.FDeleted != 2 {
		t.Fatalf("file counters: %+v", last)
	}
	if last.BFound != 30 || last.BDeleted != 30 {
		t.Fatalf("byte counters: %+v", last)
	}
}

func TestNestedTreePostOrder(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	mustMkdir(t, a)
	mustMkdir(t, filepath.Join(a, "b"))
	mustWriteFile(t, filepath.Join(a, "b", "f1"), 1)
	mustMkdir(t, filepath.Join(a, "c"))
	mustMkdir(t, filepath.Join(a, "d"))
	mustMkdir(t, filepath.Join(a, "d", "e"))
	mustWriteFile(t, filepath.Join(a, "d", "e", "f2"), 1)

	var last *Info
	cb := func(info *Info) bool {
		cp := *info
		last = &cp
		return true
	}

	m := New(Conf{}, cb, true)
	if !m.Delete(rootFolder(t, a), false) {
		t.Fatalf("Delete should succeed")
	}

	if last.DFound != 5 || last.DDeleted != 5 {
		t.Fatalf("folder counters: %+v", last)
	}
	if last.FFound != 2 || last.FDeleted != 2 {
		t.Fatalf("file counters: %+v", last)
	}
	if _, err := os.Stat(a); !os.IsNotExist(err) {
		t.Fatalf("root should no longer exist")
	}
}

func TestReparsePointNotDescended(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	mustMkdir(t, a)
	target := filepath.Join(dir, "target")
	mustMkdir(t, target)
	mustWriteFile(t, filepath.Join(target, "untouched"), 1)
	if err := os.Symlink(target, filepath.Join(a, "r")); err != nil {
		t.Fatal(err)
	}
	mustWriteFile(t, filepath.Join(a, "f1"), 1)

	var last *Info
	cb := func(info *Info) bool {
		cp := *info
		last = &cp
		return true
	}

	m := New(Conf{}, cb, true)
	if !m.Delete(rootFolder(t, a), false) {
		t.Fatalf("Delete should succeed")
	}

	if last.DFound != 2 || last.DDeleted != 2 {
		t.Fatalf("folder counters (a and r): %+v", last)
	}
	if last.FFound != 1 || last.FDeleted != 1 {
		t.Fatalf("file counters: %+v", last)
	}
	if _, err := os.Stat(filepath.Join(target, "untouched")); err != nil {
		t.Fatalf("link target's contents must survive, stat err = %v", err)
	}
}

func TestCancellationOnFirstTick(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	mustMkdir(t, a)
	mustWriteFile(t, filepath.Join(a, "f1"), 1)

	calls := 0
	cb := func(info *Info) bool {
		calls++
		if calls == 1 {
			return false
		}
		return true
	}

	m := New(Conf{}, cb, true)
	ok := m.Delete(rootFolder(t, a), false)
	if ok {
		t.Fatalf("cancelling on the first tick must make Delete return false")
	}
}

func TestKeepRoot(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	mustMkdir(t, a)
	mustMkdir(t, filepath.Join(a, "b"))

	var last *Info
	cb := func(info *Info) bool {
		cp := *info
		last = &cp
		return true
	}

	m := New(Conf{KeepRoot: true}, cb, true)
	if !m.Delete(rootFolder(t, a), false) {
		t.Fatalf("Delete should succeed")
	}

	if last.DFound != 2 || last.DDeleted != 1 {
		t.Fatalf("with KeepRoot, only the child folder should be deleted: %+v", last)
	}
	if _, err := os.Stat(a); err != nil {
		t.Fatalf("root should still exist, stat err = %v", err)
	}
	if _, err := os.Stat(filepath.Join(a, "b")); !os.IsNotExist(err) {
		t.Fatalf("child folder should be gone")
	}
}

func TestScanOnlyDoesNotDelete(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	mustMkdir(t, a)
	mustWriteFile(t, filepath.Join(a, "f1"), 5)

	var last *Info
	cb := func(info *Info) bool {
		cp := *info
		last = &cp
		return true
	}

	m := New(Conf{}, cb, false)
	if !m.Scan(rootFolder(t, a)) {
		t.Fatalf("Scan should succeed")
	}
	if last.FFound != 1 || last.FDeleted != 0 {
		t.Fatalf("scan-only must not delete anything: %+v", last)
	}
	if _, err := os.Stat(filepath.Join(a, "f1")); err != nil {
		t.Fatalf("file should still exist after scan-only, err = %v", err)
	}
}

func TestPrescannedDeleteMatchesScanAndDelete(t *testing.T) {
	build := func(t *testing.T) string {
		dir := t.TempDir()
		a := filepath.Join(dir, "a")
		mustMkdir(t, a)
		mustMkdir(t, filepath.Join(a, "b"))
		mustWriteFile(t, filepath.Join(a, "b", "f1"), 3)
		mustWriteFile(t, filepath.Join(a, "f2"), 4)
		return a
	}

	a1 := build(t)
	var last1 *Info
	m1 := New(Conf{}, func(info *Info) bool { cp := *info; last1 = &cp; return true }, true)
	if !m1.Delete(rootFolder(t, a1), false) {
		t.Fatalf("scan-and-delete should succeed")
	}

	a2 := build(t)
	root2 := rootFolder(t, a2)
	scanM := New(Conf{}, func(info *Info) bool { return true }, false)
	if !scanM.Scan(root2) {
		t.Fatalf("scan should succeed")
	}

	var last2 *Info
	m2 := New(Conf{}, func(info *Info) bool { cp := *info; last2 = &cp; return true }, true)
	if !m2.Delete(root2, true) {
		t.Fatalf("prescanned delete should succeed")
	}

	if last1.DFound != last2.DFound || last1.FFound != last2.FFound || last1.BFound != last2.BFound {
		t.Fatalf("scan-and-delete vs prescanned found counters differ: %+v vs %+v", last1, last2)
	}
	if last1.DDeleted != last2.DDeleted || last1.FDeleted != last2.FDeleted || last1.BDeleted != last2.BDeleted {
		t.Fatalf("scan-and-delete vs prescanned deleted counters differ: %+v vs %+v", last1, last2)
	}
}

func TestRestrictiveAttributesCleared(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	mustMkdir(t, a)
	roFile := filepath.Join(a, "f1")
	mustWriteFile(t, roFile, 1)
	if err := os.Chmod(roFile, 0o444); err != nil {
		t.Fatal(err)
	}
	hiddenDir := filepath.Join(a, ".subdir")
	mustMkdir(t, hiddenDir)

	var last *Info
	cb := func(info *Info) bool {
		cp := *info
		last = &cp
		return true
	}

	m := New(Conf{}, cb, true)
	if !m.Delete(rootFolder(t, a), false) {
		t.Fatalf("Delete should succeed")
	}
	if last.DDeleted != 2 || last.FDeleted != 1 {
		t.Fatalf("got %+v", last)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatal(err)
	}
}

func mustWriteFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatal(err)
	}
}
