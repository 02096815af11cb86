package workers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/JeanBsh/LocaTrack/internal/export"
	"github.com/JeanBsh/LocaTrack/internal/models"
	"github.com/JeanBsh/LocaTrack/internal/queue"
	"github.com/JeanBsh/LocaTrack/internal/session"
	"github.com/JeanBsh/LocaTrack/internal/storage"
)

// ExportWorker runs queued bulk exports and pushes the finished archive to
// object storage.
type ExportWorker struct {
	exports      *export.Store
	loader       *export.Loader
	orchestrator *export.Orchestrator
	storage      storage.Storage
}

func NewExportWorker(exports *export.Store, loader *export.Loader, orchestrator *export.Orchestrator, store storage.Storage) *ExportWorker {
	return &ExportWorker{
		exports:      exports,
		loader:       loader,
		orchestrator: orchestrator,
		storage:      store,
	}
}

func (w *ExportWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.BulkExportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	exportID, err := uuid.Parse(payload.ExportID)
	if err != nil {
		return fmt.Errorf("parse export ID: %w", err)
	}
	userID, err := uuid.Parse(payload.UserID)
	if err != nil {
		return fmt.Errorf("parse user ID: %w", err)
	}
	ctx = session.WithUserID(ctx, userID)

	slog.Info("processing bulk export", "export_id", exportID)

	job, err := w.exports.GetByID(ctx, userID, exportID)
	if err != nil {
		return fmt.Errorf("get export job: %w", err)
	}
	if err := w.exports.MarkProcessing(ctx, exportID); err != nil {
		return fmt.Errorf("mark processing: %w", err)
	}

	result, err := w.run(ctx, job)
	if err != nil {
		if ferr := w.exports.MarkFailed(ctx, exportID, err.Error()); ferr != nil {
			slog.Error("failed to record export failure", "export_id", exportID, "error", ferr)
		}
		return fmt.Errorf("run export: %w", err)
	}

	objectKey := fmt.Sprintf("exports/%s/%s", userID, result.FileName)
	if err := w.storage.Upload(ctx, objectKey, bytes.NewReader(result.Data), int64(len(result.Data)), "application/zip"); err != nil {
		if ferr := w.exports.MarkFailed(ctx, exportID, err.Error()); ferr != nil {
			slog.Error("failed to record export failure", "export_id", exportID, "error", ferr)
		}
		return fmt.Errorf("upload archive: %w", err)
	}

	if err := w.exports.MarkDone(ctx, exportID, objectKey, result.FileName); err != nil {
		return fmt.Errorf("mark done: %w", err)
	}

	slog.Info("bulk export complete", "export_id", exportID, "files", result.Files, "object_key", objectKey)
	return nil
}

func (w *ExportWorker) run(ctx context.Context, job *models.Export) (*export.Result, error) {
	snap, err := w.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	req := &export.Request{Selection: export.NewSelection()}
	for _, id := range job.TenantIDs {
		req.Selection.Add(id)
	}
	for _, kind := range job.Kinds {
		switch kind {
		case export.KindReceipt:
			req.Receipt = true
		case export.KindCertificate:
			req.Certificate = true
		case export.KindContract:
			req.Contract = true
		}
	}
	if req.Receipt {
		period, err := time.Parse("2006-01", job.Period)
		if err != nil {
			return nil, fmt.Errorf("parse period %q: %w", job.Period, err)
		}
		req.Period = period
	}

	return w.orchestrator.Run(ctx, snap, req)
}
