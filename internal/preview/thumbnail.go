package preview

import (
	"fmt"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"
)

const (
	thumbnailFilename = "thumbnail.png"
	thumbnailWidth    = 240
	thumbnailHeight   = 240
)

// AttachThumbnail renders the first page of the stored PDF to a PNG next
// to the source copy, for on-screen preview. Processing never reads the
// thumbnail; losing it costs only the preview image.
func (h *Handle) AttachThumbnail() error {
	doc, err := fitz.New(h.path)
	if err != nil {
		return fmt.Errorf("failed to open document for thumbnail: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return fmt.Errorf("document has no pages")
	}

	img, err := doc.Image(0)
	if err != nil {
		return fmt.Errorf("failed to render first page: %w", err)
	}

	thumb := imaging.Fit(img, thumbnailWidth, thumbnailHeight, imaging.Lanczos)
	thumbPath := filepath.Join(h.dir, thumbnailFilename)
	if err := imaging.Save(thumb, thumbPath); err != nil {
		return fmt.Errorf("failed to save thumbnail: %w", err)
	}

	h.thumbPath = thumbPath
	return nil
}
