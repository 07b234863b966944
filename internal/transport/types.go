package transport

import "batchpix/internal/model"

// Transport layer types for the Wails API

// FileUpload is one selected file as sent by the frontend.
type FileUpload struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Data []byte `json:"data"`
	Size int64  `json:"size"`
}

// EntryView is the frontend projection of one tracked entry.
type EntryView struct {
	ID            string `json:"id"`
	SourceName    string `json:"source_name"`
	MIME          string `json:"mime"`
	Size          int64  `json:"size"`
	Kind          string `json:"kind"`
	OutputName    string `json:"output_name"`
	TargetWidth   int    `json:"target_width,omitempty"`
	TargetHeight  int    `json:"target_height,omitempty"`
	PreviewPath   string `json:"preview_path"`
	ThumbnailPath string `json:"thumbnail_path,omitempty"`
}

// EntryUpdate carries a partial settings change; nil fields are left
// untouched.
type EntryUpdate struct {
	OutputName   *string `json:"output_name,omitempty"`
	TargetWidth  *int    `json:"target_width,omitempty"`
	TargetHeight *int    `json:"target_height,omitempty"`
}

// BatchResponse is the coarse result of one batch run.
type BatchResponse struct {
	Success     bool     `json:"success"`
	TotalFiles  int      `json:"total_files"`
	OutputPaths []string `json:"output_paths,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// AppStats tracks session statistics
type AppStats struct {
	FilesConverted int   `json:"files_converted"`
	BytesWritten   int64 `json:"bytes_written"`
}

// NewEntryView projects a tracked entry for the frontend.
func NewEntryView(e *model.Entry) EntryView {
	view := EntryView{
		ID:         e.ID,
		SourceName: e.Source.Name,
		MIME:       e.Source.MIME,
		Size:       e.Source.Size,
		Kind:       e.Kind.String(),
		OutputName: e.OutputName,
	}

	if e.Image != nil {
		view.TargetWidth = e.Image.TargetWidth
		view.TargetHeight = e.Image.TargetHeight
	}
	if e.Preview != nil {
		view.PreviewPath = e.Preview.Path()
		view.ThumbnailPath = e.Preview.ThumbnailPath()
	}
	return view
}

// DialogHandler interface for system dialogs
type DialogHandler interface {
	OpenFileDialog() ([]string, error)
	OpenDirectoryDialog() (string, error)
	OpenFile(filePath string) error
}
