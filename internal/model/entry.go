package model

import (
	"strings"

	"batchpix/internal/preview"
)

// Kind identifies what a tracked entry's source file is.
type Kind int

const (
	KindImage Kind = iota
	KindDocument
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindDocument:
		return "document"
	default:
		return "unknown"
	}
}

// SourceFile is the immutable description of the original upload.
type SourceFile struct {
	Name string
	MIME string
	Size int64
}

// ImageSettings holds the output settings that only exist for image
// entries. Keeping them behind the Kind tag makes a document with target
// dimensions unrepresentable.
type ImageSettings struct {
	TargetWidth  int
	TargetHeight int
}

// Entry is one tracked file plus its user-editable output settings.
type Entry struct {
	ID         string
	Source     SourceFile
	Kind       Kind
	Preview    *preview.Handle
	OutputName string
	Image      *ImageSettings // nil unless Kind == KindImage
}

// Named reports whether the entry has a usable output name.
func (e *Entry) Named() bool {
	return strings.TrimSpace(e.OutputName) != ""
}

// Snapshot returns a copy of the entry with its settings captured, so an
// in-flight batch run is not affected by later edits.
func (e *Entry) Snapshot() Entry {
	snap := *e
	if e.Image != nil {
		settings := *e.Image
		snap.Image = &settings
	}
	return snap
}

// Artifact is the result of processing one entry.
type Artifact struct {
	Filename string
	Data     []byte
}
