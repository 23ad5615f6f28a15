// Package images imports question and answer image files into the library's
// image directory. Files are stored under a content-derived name, so
// importing the same image twice yields one file and one reference.
package images

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"qbank/internal/fileutil"
	"qbank/internal/logging"
	"qbank/internal/question"
)

// ErrUnsupported marks files that are not a recognised image type.
var ErrUnsupported = errors.New("unsupported image")

var extensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}

// Library manages the image directory.
type Library struct {
	dir    string
	logger *slog.Logger
}

// New returns a Library rooted at dir.
func New(dir string, logger *slog.Logger) *Library {
	return &Library{dir: dir, logger: logging.NewComponentLogger(logger, "images")}
}

// Dir returns the image directory.
func (l *Library) Dir() string {
	return l.dir
}

// Import copies src into the image directory and returns the reference to
// store on a record.
func (l *Library) Import(src string) (string, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return "", fmt.Errorf("%w: empty path", ErrUnsupported)
	}
	ext := strings.ToLower(filepath.Ext(src))
	if !slices.Contains(extensions, ext) {
		return "", fmt.Errorf("%w: %s has extension %q", ErrUnsupported, src, ext)
	}
	if err := sniff(src); err != nil {
		return "", err
	}
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return "", fmt.Errorf("create image directory: %w", err)
	}

	tmp, err := os.CreateTemp(l.dir, ".import-*"+ext)
	if err != nil {
		return "", fmt.Errorf("create temp image: %w", err)
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()

	digest, err := fileutil.CopyVerified(src, tmpPath)
	if err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("copy image %s: %w", src, err)
	}

	ref := digest[:16] + ext
	dst := filepath.Join(l.dir, ref)
	if _, err := os.Stat(dst); err == nil {
		_ = os.Remove(tmpPath)
		l.logger.Debug("image already imported",
			logging.String("source", src),
			logging.String("image_ref", ref))
		return ref, nil
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("store image: %w", err)
	}
	l.logger.Info("image imported",
		logging.String(logging.FieldEventType, "image_imported"),
		logging.String("source", src),
		logging.String("image_ref", ref))
	return ref, nil
}

// Path resolves ref to a file inside the image directory.
func (l *Library) Path(ref string) (string, error) {
	if ref == "" || ref != filepath.Base(ref) || strings.HasPrefix(ref, ".") {
		return "", fmt.Errorf("invalid image reference %q", ref)
	}
	return filepath.Join(l.dir, ref), nil
}

// Missing returns the references among refs with no file on disk, in input
// order without repeats.
func (l *Library) Missing(refs []string) []string {
	var missing []string
	for _, ref := range refs {
		if slices.Contains(missing, ref) {
			continue
		}
		path, err := l.Path(ref)
		if err == nil {
			if _, statErr := os.Stat(path); statErr == nil {
				continue
			}
		}
		missing = append(missing, ref)
	}
	return missing
}

// Refs lists every image reference held by rec.
func Refs(rec question.Record) []string {
	var refs []string
	add := func(ref string) {
		if ref != "" {
			refs = append(refs, ref)
		}
	}
	add(rec.QuestionImage)
	add(rec.AnswerImage)
	for _, part := range rec.Parts {
		add(part.QuestionImage)
		add(part.AnswerImage)
	}
	return refs
}

func sniff(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read image: %w", err)
	}
	if contentType := http.DetectContentType(head[:n]); !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("%w: %s looks like %s", ErrUnsupported, path, contentType)
	}
	return nil
}
