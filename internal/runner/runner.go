package runner

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"batchpix/internal/common"
	"batchpix/internal/model"
	"batchpix/internal/store"
)

var (
	// ErrBusy is returned when a batch run is started while another is
	// still in flight.
	ErrBusy = errors.New("a batch run is already in progress")

	// ErrUnnamedEntry is returned when an entry has a blank output name.
	ErrUnnamedEntry = errors.New("an entry has no output name")
)

// ProcessFunc converts one settings-captured entry into an artifact.
type ProcessFunc func(ctx context.Context, entry model.Entry) (model.Artifact, error)

// Emitter hands finished artifacts to the output surface and returns the
// path each emission landed at.
type Emitter interface {
	EmitArchive(artifacts []model.Artifact) (string, error)
	EmitSingle(artifact model.Artifact) (string, error)
}

// Notifier publishes coarse batch state to the UI.
type Notifier func(event string, payload any)

// Runner drives the converter over the whole store. One coarse busy flag
// covers the batch; there is no per-entry progress and no cancellation of
// a run already in flight.
type Runner struct {
	store   *store.Store
	process ProcessFunc
	emitter Emitter
	notify  Notifier
	logger  *slog.Logger
	busy    atomic.Bool
}

// New creates a runner. notify may be nil.
func New(s *store.Store, process ProcessFunc, emitter Emitter, notify Notifier, logger *slog.Logger) *Runner {
	return &Runner{
		store:   s,
		process: process,
		emitter: emitter,
		notify:  notify,
		logger:  logger,
	}
}

// Busy reports whether a batch run is in flight.
func (r *Runner) Busy() bool {
	return r.busy.Load()
}

// RunArchive processes every entry concurrently, waits for all of them,
// and emits one archive. Any single failure fails the whole run and no
// archive is produced.
func (r *Runner) RunArchive(ctx context.Context) ([]string, error) {
	if !r.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer r.busy.Store(false)

	entries := r.store.Snapshots()
	if len(entries) == 0 {
		return nil, nil
	}

	r.fire(common.EventBatchStarted, map[string]any{"mode": "archive", "total": len(entries)})

	artifacts, err := r.processAll(ctx, entries)
	if err != nil {
		r.logger.Error("archive run aborted", "total", len(entries), "error", err)
		r.fire(common.EventBatchFinished, map[string]any{"mode": "archive", "success": false})
		return nil, err
	}

	path, err := r.emitter.EmitArchive(artifacts)
	if err != nil {
		r.logger.Error("archive emission failed", "error", err)
		r.fire(common.EventBatchFinished, map[string]any{"mode": "archive", "success": false})
		return nil, err
	}

	r.fire(common.EventBatchFinished, map[string]any{"mode": "archive", "success": true, "files": len(artifacts)})
	return []string{path}, nil
}

// RunEach processes entries one at a time in store order, emitting each
// artifact before starting the next. The first failure stops the run;
// artifacts already emitted stand.
func (r *Runner) RunEach(ctx context.Context) ([]string, error) {
	if !r.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer r.busy.Store(false)

	entries := r.store.Snapshots()
	if len(entries) == 0 {
		return nil, nil
	}

	r.fire(common.EventBatchStarted, map[string]any{"mode": "each", "total": len(entries)})

	if err := namedCheck(entries); err != nil {
		r.fire(common.EventBatchFinished, map[string]any{"mode": "each", "success": false})
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		artifact, err := r.process(ctx, entry)
		if err != nil {
			r.logger.Error("sequential run stopped", "emitted", len(paths), "error", err)
			r.fire(common.EventBatchFinished, map[string]any{"mode": "each", "success": false, "files": len(paths)})
			return paths, err
		}

		path, err := r.emitter.EmitSingle(artifact)
		if err != nil {
			r.logger.Error("sequential emission failed", "file", artifact.Filename, "error", err)
			r.fire(common.EventBatchFinished, map[string]any{"mode": "each", "success": false, "files": len(paths)})
			return paths, err
		}
		paths = append(paths, path)
	}

	r.fire(common.EventBatchFinished, map[string]any{"mode": "each", "success": true, "files": len(paths)})
	return paths, nil
}

type workItem struct {
	index int
	entry model.Entry
}

type workResult struct {
	index    int
	artifact model.Artifact
	err      error
}

// processAll fans the entries out over a bounded worker pool and joins on
// every result before returning.
func (r *Runner) processAll(ctx context.Context, entries []model.Entry) ([]model.Artifact, error) {
	if err := namedCheck(entries); err != nil {
		return nil, err
	}

	total := len(entries)
	workChan := make(chan workItem, total)
	resultChan := make(chan workResult, total)

	for i, entry := range entries {
		workChan <- workItem{index: i, entry: entry}
	}
	close(workChan)

	workers := runtime.NumCPU()
	if workers > common.MaxConcurrencyLimit {
		workers = common.MaxConcurrencyLimit
	}
	if workers > total {
		workers = total
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for work := range workChan {
				artifact, err := r.process(ctx, work.entry)
				resultChan <- workResult{index: work.index, artifact: artifact, err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	artifacts := make([]model.Artifact, total)
	var firstErr error
	firstErrIndex := total
	for result := range resultChan {
		if result.err != nil {
			if result.index < firstErrIndex {
				firstErr = result.err
				firstErrIndex = result.index
			}
			continue
		}
		artifacts[result.index] = result.artifact
	}

	if firstErr != nil {
		return nil, firstErr
	}
	return artifacts, nil
}

func namedCheck(entries []model.Entry) error {
	for _, entry := range entries {
		if !entry.Named() {
			return ErrUnnamedEntry
		}
	}
	return nil
}

func (r *Runner) fire(event string, payload any) {
	if r.notify != nil {
		r.notify(event, payload)
	}
}
