package archive

import (
	"archive/zip"
	"bytes"
	"fmt"

	"batchpix/internal/model"
)

// Build packages artifacts into one zip buffer. Duplicate filenames are
// collapsed to a single entry, last occurrence wins; the archive keeps
// the first occurrence's position.
func Build(artifacts []model.Artifact) ([]byte, error) {
	if len(artifacts) == 0 {
		return nil, fmt.Errorf("no artifacts to archive")
	}

	type slot struct {
		name string
		data []byte
	}

	index := make(map[string]int)
	var slots []slot
	for _, a := range artifacts {
		if i, seen := index[a.Filename]; seen {
			slots[i].data = a.Data
			continue
		}
		index[a.Filename] = len(slots)
		slots = append(slots, slot{name: a.Filename, data: a.Data})
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, s := range slots {
		w, err := zw.Create(s.name)
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to add %s to archive: %w", s.name, err)
		}
		if _, err := w.Write(s.data); err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to write %s into archive: %w", s.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	return buf.Bytes(), nil
}
