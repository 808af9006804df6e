package testutil

import (
	"os"
	"path"
	"testing"
)

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// Find file in the nearest testdata directory, walking up until the directory with go.mod.
func FindTestdata(t *testing.T, relativePath string) string {
	td := "testdata"
	wdir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	dir := wdir
	mf := "go.mod"
	for {
		cpath := path.Join(dir, td)
		if exists(path.Join(cpath, relativePath)) {
			return path.Join(cpath, relativePath)
		}
		if exists(path.Join(dir, mf)) {
			// already the top level in project directory, give up
			break
		}
		parent := path.Dir(dir) // go up one level
		if parent == dir {
			break
		}
		dir = parent
	}
	t.Fatalf("testdata file: '**/%v' not found", path.Join(td, relativePath))
	return ""
}
