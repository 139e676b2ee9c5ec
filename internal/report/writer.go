package report

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"tlog.app/go/errors"
)

// Suffix is the file extension of report artifacts.
const Suffix = ".ll.cm"

// FileName derives the artifact file name from a module name: the base
// name with its last extension stripped, plus the artifact suffix.
func FileName(module string) string {
	base := path.Base(module)
	if ext := path.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base + Suffix
}

// Writer owns the artifact stream of one module. It is opened once when
// module processing begins, appended to once per analyzed function, and
// closed when module processing ends.
type Writer struct {
	f    *os.File
	path string
}

// NewWriter creates the artifact for module inside dir, truncating any
// previous artifact of the same name.
func NewWriter(dir, module string) (*Writer, error) {
	p := filepath.Join(dir, FileName(module))
	f, err := os.Create(p)
	if err != nil {
		return nil, errors.Wrap(err, "open artifact %v", p)
	}
	return &Writer{f: f, path: p}, nil
}

// Append writes one function record to the artifact.
func (w *Writer) Append(fn *Function) error {
	if err := Render(w.f, fn); err != nil {
		return errors.Wrap(err, "append %v", fn.Ident)
	}
	return nil
}

// Close closes the artifact stream.
func (w *Writer) Close() error {
	return w.f.Close()
}

// Path returns the artifact location on disk.
func (w *Writer) Path() string {
	return w.path
}
