package testenv

import (
	"os"
	"path/filepath"
	"testing"
)

// TempDir creates a temporary directory.
// The directory and contained files are deleted during cleanup.
func TempDir(t testing.TB) (dir string) {
	dir, e := os.MkdirTemp("", "ndnautoreg-*")
	if e != nil {
		t.Fatal(e)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

// TempName creates a temporary filename in a temporary directory.
// The directory and contained files are deleted during cleanup.
//
// The result is short enough to be used as a unix socket path.
func TempName(t testing.TB, name ...string) (filename string) {
	dir := TempDir(t)
	switch len(name) {
	case 0:
		filename = "temp"
	default:
		filename = filepath.Join(name...)
	}
	return filepath.Join(dir, filename)
}
