package fsi

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnumerateClassifiesFilesAndDirs(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "f1"), 5)
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	var files, dirs []Item
	var errs []Error
	ok := Enumerate(dir, 0,
		func(it Item) { files = append(files, it) },
		func(it Item) { dirs = append(dirs, it) },
		&errs,
	)
	if !ok {
		t.Fatalf("Enumerate should succeed, errs=%v", errs)
	}
	if len(files) != 1 || files[0].Name != "f1" || files[0].Info.Size != 5 {
		t.Fatalf("files = %+v", files)
	}
	if len(dirs) != 1 || dirs[0].Name != "sub" || !dirs[0].Info.Attrs.IsDir() {
		t.Fatalf("dirs = %+v", dirs)
	}
}

func TestUnlinkFileNotFoundIsSuccess(t *testing.T) {
	var errs []Error
	ok := UnlinkFile(filepath.Join(t.TempDir(), "missing"), 0, false, &errs)
	if !ok || len(errs) != 0 {
		t.Fatalf("unlinking a missing file should succeed silently, ok=%v errs=%v", ok, errs)
	}
}

func TestUnlinkFileClearsReadOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ro")
	mustWrite(t, path, 1)
	if err := os.Chmod(path, 0o444); err != nil {
		t.Fatal(err)
	}

	var errs []Error
	if ok := UnlinkFile(path, AttrReadOnly, false, &errs); !ok {
		t.Fatalf("UnlinkFile should succeed, errs=%v", errs)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("file should be gone, stat err = %v", err)
	}
}

func mustWrite(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatal(err)
	}
}
