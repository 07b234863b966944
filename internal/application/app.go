package application

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"batchpix/internal/common"
	"batchpix/internal/config"
	"batchpix/internal/database"
	"batchpix/internal/emitter"
	"batchpix/internal/intake"
	"batchpix/internal/model"
	"batchpix/internal/processor"
	"batchpix/internal/runner"
	"batchpix/internal/store"
	"batchpix/internal/transport"
)

type App struct {
	ctx     context.Context
	config  *config.Config
	db      *database.Database
	store   *store.Store
	intake  *intake.Service
	emitter *emitter.DownloadEmitter
	runner  *runner.Runner
	stats   *StatsManager
	dialogs transport.DialogHandler
}

func NewApp() *App {
	return &App{}
}

func (a *App) OnStartup(ctx context.Context) {
	a.ctx = ctx

	// Initialize configuration
	cfg := config.New()
	a.config = cfg

	// Initialize database
	db, err := database.NewDatabase(cfg.DatabasePath)
	if err != nil {
		cfg.Logger.Error("Failed to initialize database", "error", err)
		return
	}
	a.db = db

	a.store = store.New()
	a.store.SetChangeCallback(func() {
		wailsruntime.EventsEmit(a.ctx, common.EventEntriesChanged, a.store.Len())
	})

	a.intake = intake.NewService(cfg.WorkingDir, a.store, cfg.Logger)
	a.emitter = emitter.New(db, func(path string) {
		wailsruntime.BrowserOpenURL(a.ctx, "file://"+path)
	}, cfg.Logger)

	notify := func(event string, payload any) {
		wailsruntime.EventsEmit(a.ctx, event, payload)
	}
	a.runner = runner.New(a.store, a.processEntry, a.emitter, notify, cfg.Logger)
	a.stats = NewStatsManager(ctx)
	a.dialogs = transport.NewDialogsHandler(ctx)

	cfg.Logger.Info("app initialized",
		"working_directory", cfg.WorkingDir,
		"database_path", cfg.DatabasePath)
}

// OnShutdown releases every outstanding preview handle and clears the
// working directory.
func (a *App) OnShutdown(ctx context.Context) {
	if a.store != nil {
		a.store.Close()
	}
	if a.config != nil {
		os.RemoveAll(a.config.WorkingDir)
	}
}

// processEntry builds a converter against the current preferences and
// runs it over one entry snapshot.
func (a *App) processEntry(ctx context.Context, entry model.Entry) (model.Artifact, error) {
	quality := common.DefaultJPEGQuality
	if prefs, err := a.db.GetPreferences(); err == nil {
		quality = prefs.JPEGQuality
	}
	return processor.New(a.config.Logger, quality).Process(ctx, entry)
}

// AddFiles tracks files uploaded through the frontend drop zone.
func (a *App) AddFiles(files []transport.FileUpload) []transport.EntryView {
	uploads := make([]intake.FileUpload, len(files))
	for i, f := range files {
		uploads[i] = intake.FileUpload{Name: f.Name, Type: f.Type, Data: f.Data, Size: f.Size}
	}

	a.intake.AddFiles(uploads, a.intakeDefaults())
	return a.ListEntries()
}

// AddFilesFromDisk opens the native file dialog and tracks the selection.
func (a *App) AddFilesFromDisk() ([]transport.EntryView, error) {
	paths, err := a.dialogs.OpenFileDialog()
	if err != nil {
		return nil, err
	}

	var uploads []intake.FileUpload
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			a.config.Logger.Error("failed to read selected file", "path", path, "error", err)
			continue
		}
		uploads = append(uploads, intake.FileUpload{
			Name: filepath.Base(path),
			Data: data,
			Size: int64(len(data)),
		})
	}

	a.intake.AddFiles(uploads, a.intakeDefaults())
	return a.ListEntries(), nil
}

func (a *App) intakeDefaults() intake.Defaults {
	defaults := intake.Defaults{}
	if prefs, err := a.db.GetPreferences(); err == nil {
		defaults.TargetWidth = prefs.DefaultTargetWidth
		defaults.TargetHeight = prefs.DefaultTargetHeight
	}
	return defaults
}

// ListEntries returns every tracked entry in selection order.
func (a *App) ListEntries() []transport.EntryView {
	entries := a.store.List()
	views := make([]transport.EntryView, len(entries))
	for i, e := range entries {
		views[i] = transport.NewEntryView(e)
	}
	return views
}

// RemoveEntry drops one entry and its preview. Unknown IDs are ignored.
func (a *App) RemoveEntry(id string) {
	a.store.Remove(id)
}

// UpdateEntry applies a partial settings change to one entry.
func (a *App) UpdateEntry(id string, upd transport.EntryUpdate) error {
	return a.store.UpdateSettings(id, store.Update{
		OutputName:   upd.OutputName,
		TargetWidth:  upd.TargetWidth,
		TargetHeight: upd.TargetHeight,
	})
}

// CanRun gates the frontend's run controls.
func (a *App) CanRun() bool {
	return a.store.Len() > 0 && a.store.AllNamed() && !a.runner.Busy()
}

// RunArchiveBatch converts every entry and emits one archive.
func (a *App) RunArchiveBatch() transport.BatchResponse {
	return a.runBatch(a.runner.RunArchive)
}

// RunSequentialBatch converts entries one at a time, emitting each
// result as it completes.
func (a *App) RunSequentialBatch() transport.BatchResponse {
	return a.runBatch(a.runner.RunEach)
}

func (a *App) runBatch(run func(context.Context) ([]string, error)) transport.BatchResponse {
	total := a.store.Len()

	paths, err := run(a.ctx)
	if err != nil {
		// Per-entry detail stays in the log; the UI only learns that the
		// run failed, except for the gating errors it can act on.
		message := "batch run failed"
		if errors.Is(err, runner.ErrBusy) || errors.Is(err, runner.ErrUnnamedEntry) {
			message = err.Error()
		}
		return transport.BatchResponse{
			Success:     false,
			TotalFiles:  total,
			OutputPaths: paths,
			Error:       message,
		}
	}

	a.stats.RecordRun(paths)

	return transport.BatchResponse{
		Success:     true,
		TotalFiles:  total,
		OutputPaths: paths,
	}
}

func (a *App) GetPreferences() (*database.UserPreferencesData, error) {
	return a.db.GetPreferences()
}

func (a *App) UpdatePreferences(data map[string]interface{}) error {
	return a.db.UpdatePreferences(data)
}

// SelectDownloadFolder opens the directory dialog and stores the choice.
func (a *App) SelectDownloadFolder() (string, error) {
	folder, err := a.dialogs.OpenDirectoryDialog()
	if err != nil || folder == "" {
		return "", err
	}

	if err := a.db.UpdatePreferences(map[string]interface{}{"default_download_folder": folder}); err != nil {
		return "", err
	}
	return folder, nil
}

func (a *App) GetStats() *transport.AppStats {
	return a.stats.Stats()
}

func (a *App) GetAppStatus() map[string]interface{} {
	return map[string]interface{}{
		"status":            "running",
		"app_name":          "BatchPix",
		"working_directory": a.config.WorkingDir,
		"tracked_entries":   a.store.Len(),
		"busy":              a.runner.Busy(),
	}
}
