package emitter

import (
	"log/slog"
	"os"
	"path/filepath"

	"batchpix/internal/archive"
	"batchpix/internal/common"
	"batchpix/internal/database"
	"batchpix/internal/model"
)

// PreferencesSource yields the current user preferences.
type PreferencesSource interface {
	GetPreferences() (*database.UserPreferencesData, error)
}

// RevealFunc opens an emitted file for the user, e.g. in the system
// browser. May be nil.
type RevealFunc func(path string)

// DownloadEmitter writes finished artifacts into the user's download
// folder, either bundled into one archive or one file at a time.
type DownloadEmitter struct {
	prefs  PreferencesSource
	reveal RevealFunc
	logger *slog.Logger
}

// New creates a download emitter. reveal may be nil.
func New(prefs PreferencesSource, reveal RevealFunc, logger *slog.Logger) *DownloadEmitter {
	return &DownloadEmitter{
		prefs:  prefs,
		reveal: reveal,
		logger: logger,
	}
}

// EmitArchive bundles all artifacts into one zip and writes it under the
// configured archive name.
func (e *DownloadEmitter) EmitArchive(artifacts []model.Artifact) (string, error) {
	data, err := archive.Build(artifacts)
	if err != nil {
		return "", err
	}

	name := common.DefaultArchiveName
	autoReveal := false
	if prefs, err := e.prefs.GetPreferences(); err == nil {
		if prefs.ArchiveName != "" {
			name = prefs.ArchiveName
		}
		autoReveal = prefs.AutoReveal
	}

	path, err := e.write(name, data)
	if err != nil {
		return "", err
	}

	e.logger.Info("archive emitted", "path", path, "files", len(artifacts))
	if autoReveal && e.reveal != nil {
		e.reveal(path)
	}
	return path, nil
}

// EmitSingle writes one artifact under its exact filename.
func (e *DownloadEmitter) EmitSingle(artifact model.Artifact) (string, error) {
	path, err := e.write(artifact.Filename, artifact.Data)
	if err != nil {
		return "", err
	}

	e.logger.Info("artifact emitted", "path", path)
	return path, nil
}

func (e *DownloadEmitter) write(filename string, data []byte) (string, error) {
	dir := e.downloadDir()
	if err := os.MkdirAll(dir, common.DefaultFilePermissions); err != nil {
		return "", err
	}

	path := filepath.Join(dir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// downloadDir resolves the target folder: the configured preference when
// set, otherwise the user's Downloads directory.
func (e *DownloadEmitter) downloadDir() string {
	if prefs, err := e.prefs.GetPreferences(); err == nil && prefs.DefaultDownloadFolder != "" {
		return prefs.DefaultDownloadFolder
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir()
	}
	return filepath.Join(homeDir, "Downloads")
}
