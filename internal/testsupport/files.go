package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates the target path with the given contents, creating parent
// directories as needed.
func WriteFile(t testing.TB, path, contents string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// SeedFiles creates one file per name directly under dir, each containing
// its own name.
func SeedFiles(t testing.TB, dir string, names ...string) {
	t.Helper()

	for _, name := range names {
		WriteFile(t, filepath.Join(dir, name), name)
	}
}
