package intake

import (
	"log/slog"
	"net/http"
	"strings"

	"batchpix/internal/common"
	"batchpix/internal/model"
	"batchpix/internal/preview"
	"batchpix/internal/store"
)

// FileUpload is one user-selected file as handed over by the frontend.
type FileUpload struct {
	Name string
	Type string // declared MIME type, may be empty
	Data []byte
	Size int64
}

// Defaults are the initial output settings for new image entries.
type Defaults struct {
	TargetWidth  int
	TargetHeight int
}

// Service turns uploads into tracked entries and appends them to the
// store in selection order.
type Service struct {
	workDir string
	store   *store.Store
	logger  *slog.Logger
}

// NewService creates an intake service writing preview copies under workDir.
func NewService(workDir string, s *store.Store, logger *slog.Logger) *Service {
	return &Service{
		workDir: workDir,
		store:   s,
		logger:  logger,
	}
}

// AddFiles creates one entry per upload and appends them to the store.
// Existing entries are untouched. A file that cannot be staged to the
// working directory is skipped with a logged diagnostic; the rest of the
// batch is still added.
func (s *Service) AddFiles(uploads []FileUpload, defaults Defaults) []*model.Entry {
	if defaults.TargetWidth < 1 {
		defaults.TargetWidth = common.DefaultTargetWidth
	}
	if defaults.TargetHeight < 1 {
		defaults.TargetHeight = common.DefaultTargetHeight
	}

	var entries []*model.Entry
	for _, upload := range uploads {
		entry, err := s.track(upload, defaults)
		if err != nil {
			s.logger.Error("failed to stage upload", "file", upload.Name, "error", err)
			continue
		}
		entries = append(entries, entry)
	}

	s.store.Add(entries...)
	return entries
}

func (s *Service) track(upload FileUpload, defaults Defaults) (*model.Entry, error) {
	id := common.GenerateUUID()

	handle, err := preview.NewHandle(s.workDir, id, upload.Name, upload.Data)
	if err != nil {
		return nil, err
	}

	kind := classify(upload.Type, upload.Data)

	entry := &model.Entry{
		ID: id,
		Source: model.SourceFile{
			Name: upload.Name,
			MIME: declaredMIME(upload.Type, upload.Data),
			Size: upload.Size,
		},
		Kind:       kind,
		Preview:    handle,
		OutputName: common.BaseName(upload.Name),
	}

	if kind == model.KindImage {
		entry.Image = &model.ImageSettings{
			TargetWidth:  defaults.TargetWidth,
			TargetHeight: defaults.TargetHeight,
		}
	} else {
		// Thumbnail is preview-only; a render failure never blocks intake.
		if err := handle.AttachThumbnail(); err != nil {
			s.logger.Warn("thumbnail render failed", "file", upload.Name, "error", err)
		}
	}

	return entry, nil
}

// classify decides the entry kind from the declared MIME type; anything
// that is not image/* is treated as a document. When no type is declared
// the first bytes are sniffed instead.
func classify(declared string, data []byte) model.Kind {
	if strings.HasPrefix(declaredMIME(declared, data), "image/") {
		return model.KindImage
	}
	return model.KindDocument
}

func declaredMIME(declared string, data []byte) string {
	if declared != "" {
		return declared
	}
	if len(data) == 0 {
		return "application/octet-stream"
	}
	return http.DetectContentType(data)
}
