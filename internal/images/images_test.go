package images_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"qbank/internal/images"
	"qbank/internal/testsupport"
)

func TestImportStoresContentAddressedCopy(t *testing.T) {
	base := t.TempDir()
	lib := images.New(filepath.Join(base, "images"), nil)
	src := testsupport.WritePNG(t, base, "capture.PNG", "question one")

	ref, err := lib.Import(src)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.HasSuffix(ref, ".png") || len(ref) != 16+len(".png") {
		t.Fatalf("unexpected reference %q", ref)
	}
	path, err := lib.Path(ref)
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read imported image: %v", err)
	}
	if !strings.HasSuffix(string(data), "question one") {
		t.Fatalf("unexpected content %q", data)
	}

	again, err := lib.Import(src)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if again != ref {
		t.Fatalf("expected identical reference, got %q and %q", ref, again)
	}
	entries, err := os.ReadDir(lib.Dir())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one stored file, got %d", len(entries))
	}
}

func TestImportRejectsNonImages(t *testing.T) {
	base := t.TempDir()
	lib := images.New(filepath.Join(base, "images"), nil)

	text := testsupport.WriteFile(t, filepath.Join(base, "notes.png"), []byte("plain text, not an image"))
	if _, err := lib.Import(text); !errors.Is(err, images.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported for text content, got %v", err)
	}
	pdf := testsupport.WritePNG(t, base, "scan.pdf", "x")
	if _, err := lib.Import(pdf); !errors.Is(err, images.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported for extension, got %v", err)
	}
}

func TestPathRejectsEscapingReferences(t *testing.T) {
	lib := images.New(t.TempDir(), nil)
	for _, ref := range []string{"", "../secret.png", "a/b.png", ".hidden.png"} {
		if _, err := lib.Path(ref); err == nil {
			t.Fatalf("expected error for reference %q", ref)
		}
	}
}

func TestMissingAndRefs(t *testing.T) {
	base := t.TempDir()
	lib := images.New(filepath.Join(base, "images"), nil)
	ref, err := lib.Import(testsupport.WritePNG(t, base, "q.png", "q"))
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	rec := testsupport.PaperTwo("q1")
	rec.Parts[0].QuestionImage = ref
	refs := images.Refs(rec)
	if len(refs) != 4 || refs[0] != ref {
		t.Fatalf("unexpected refs %v", refs)
	}
	missing := lib.Missing(refs)
	if slices.Contains(missing, ref) || len(missing) != 3 {
		t.Fatalf("unexpected missing set %v", missing)
	}
}
