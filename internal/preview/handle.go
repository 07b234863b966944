package preview

import (
	"os"
	"path/filepath"
	"sync"

	"batchpix/internal/common"
)

// Handle is a releasable reference to a temp copy of an upload's bytes.
// It backs both the on-screen preview and the decode step, and owns a
// per-entry directory under the application working dir.
type Handle struct {
	dir       string
	path      string
	thumbPath string

	releaseOnce sync.Once
	releaseErr  error
}

// NewHandle writes data into a fresh per-entry directory and returns the
// handle owning it. The caller must Release the handle exactly when the
// owning entry is destroyed.
func NewHandle(workDir, id, filename string, data []byte) (*Handle, error) {
	dir := filepath.Join(workDir, id)
	if err := os.MkdirAll(dir, common.DefaultFilePermissions); err != nil {
		return nil, err
	}

	path := filepath.Join(dir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0644); err != nil {
		os.RemoveAll(dir)
		return nil, err
	}

	return &Handle{dir: dir, path: path}, nil
}

// Path returns the location of the stored source bytes.
func (h *Handle) Path() string {
	return h.path
}

// ThumbnailPath returns the rendered thumbnail location, or "" when no
// thumbnail has been attached.
func (h *Handle) ThumbnailPath() string {
	return h.thumbPath
}

// Read returns the stored source bytes.
func (h *Handle) Read() ([]byte, error) {
	return os.ReadFile(h.path)
}

// Release removes the handle's directory. Safe to call more than once;
// only the first call does the removal.
func (h *Handle) Release() error {
	h.releaseOnce.Do(func() {
		h.releaseErr = os.RemoveAll(h.dir)
	})
	return h.releaseErr
}
