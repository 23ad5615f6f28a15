package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// WriteFile creates a file with the provided contents, creating parent
// directories as needed.
func WriteFile(t testing.TB, path string, data []byte) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WritePNG writes a small file with a PNG signature followed by payload, so
// distinct payloads produce distinct images.
func WritePNG(t testing.TB, dir, name, payload string) string {
	t.Helper()

	data := append(append([]byte{}, pngSignature...), payload...)
	return WriteFile(t, filepath.Join(dir, name), data)
}
