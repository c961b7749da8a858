package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"
)

// DefaultName is the file name offered for a finished archive.
const DefaultName = "images_with_logo.zip"

var ErrClosed = errors.New("archive is closed")

type Entry struct {
	Name string
	MIME string
	Data []byte
}

// Writer appends entries to a zip stream. Add and Close are safe for
// concurrent use; entries are stored in call order.
type Writer struct {
	mu     sync.Mutex
	zw     *zip.Writer
	used   map[string]bool
	names  []string
	closed bool
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{
		zw:   zip.NewWriter(w),
		used: make(map[string]bool),
	}
}

// Add writes e and returns the name it was stored under. A name already in
// the archive gets a "-2", "-3", ... suffix before its extension.
func (w *Writer) Add(e Entry) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return "", ErrClosed
	}
	name := w.unique(e.Name)
	// zero Modified keeps the output reproducible
	hdr := &zip.FileHeader{Name: name, Method: method(e.MIME)}
	f, err := w.zw.CreateHeader(hdr)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := f.Write(e.Data); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	w.used[name] = true
	w.names = append(w.names, name)
	return name, nil
}

// Close writes the central directory. The underlying writer is not closed.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	w.closed = true
	return w.zw.Close()
}

// Names returns the stored entry names in order.
func (w *Writer) Names() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.names...)
}

func (w *Writer) unique(name string) string {
	if !w.used[name] {
		return name
	}
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d%s", base, n, ext)
		if !w.used[candidate] {
			return candidate
		}
	}
}

// JPEG data does not shrink further; everything else is deflated.
func method(mime string) uint16 {
	if mime == "image/jpeg" {
		return zip.Store
	}
	return zip.Deflate
}
