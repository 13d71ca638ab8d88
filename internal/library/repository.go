package library

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"lexview/internal/library/metrics"
	"lexview/internal/registry"
	"lexview/pkg/lifecycle"
	"lexview/pkg/pagination"
	"lexview/pkg/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id TEXT PRIMARY KEY,
	publisher TEXT NOT NULL,
	year INTEGER NOT NULL,
	pos INTEGER NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	filename TEXT NOT NULL,
	size_bytes INTEGER NOT NULL,
	page_count INTEGER,
	downloaded_at INTEGER NOT NULL,
	UNIQUE (publisher, year, pos)
)`

const documentColumns = "id, publisher, year, pos, title, filename, size_bytes, page_count, downloaded_at"

type repo struct {
	db         *sql.DB
	registry   registry.System
	logger     *slog.Logger
	metrics    *metrics.Metrics
	pagination pagination.Config
	dir        string
	maxBytes   int64
}

// New creates a library repository implementing the System interface.
func New(
	db *sql.DB,
	reg registry.System,
	logger *slog.Logger,
	m *metrics.Metrics,
	pagination pagination.Config,
	cfg *Config,
) System {
	return &repo{
		db:         db,
		registry:   reg,
		logger:     logger.With("system", "library"),
		metrics:    m,
		pagination: pagination,
		dir:        cfg.Dir,
		maxBytes:   cfg.MaxDocumentSizeBytes(),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Start(lc *lifecycle.Coordinator) error {
	r.logger.Info("starting library system", "dir", r.dir)

	lc.OnStartup(func() {
		if err := os.MkdirAll(r.dir, 0o755); err != nil {
			r.logger.Error("library directory initialization failed", "dir", r.dir, "error", err)
			return
		}

		if _, err := r.db.ExecContext(lc.Context(), schema); err != nil {
			r.logger.Error("library catalog initialization failed", "error", err)
			return
		}

		r.logger.Info("library ready", "dir", r.dir)
	})

	return nil
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
) (*pagination.PageResult[Document], error) {
	page.Normalize(r.pagination)

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&total); err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}

	q := fmt.Sprintf(
		"SELECT %s FROM documents ORDER BY downloaded_at DESC, publisher, year, pos LIMIT ? OFFSET ?",
		documentColumns,
	)

	docs, err := repository.QueryMany(
		ctx, r.db, q,
		[]any{page.PageSize, page.Offset()},
		scanDocument,
	)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}

	result := pagination.NewPageResult(docs, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Document, error) {
	q := fmt.Sprintf("SELECT %s FROM documents WHERE id = ?", documentColumns)

	d, err := repository.QueryOne(ctx, r.db, q, []any{id.String()}, scanDocument)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &d, nil
}

func (r *repo) Fetch(ctx context.Context, cmd FetchCommand) (*Document, bool, error) {
	existing, err := r.findByAct(ctx, cmd.Publisher, cmd.Year, cmd.Pos)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	if existing != nil {
		if _, statErr := os.Stat(r.path(existing.Filename)); statErr == nil {
			r.logger.Info(
				"document reused",
				"publisher", cmd.Publisher,
				"year", cmd.Year,
				"pos", cmd.Pos,
			)
			return existing, false, nil
		}
		// catalog row without a file: fall through and re-download
	}

	data, err := r.download(ctx, cmd)
	if err != nil {
		return nil, false, err
	}

	filename := documentFilename(cmd.Publisher, cmd.Year, cmd.Pos)
	path := r.path(filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, false, fmt.Errorf("write document file: %w", err)
	}

	pageCount := extractPageCount(r.logger, data)

	if existing != nil {
		doc, err := r.refresh(ctx, existing, cmd.Title, int64(len(data)), pageCount)
		if err != nil {
			return nil, false, err
		}
		r.metrics.ObserveDownload(doc.SizeBytes)
		return doc, true, nil
	}

	doc := Document{
		ID:           uuid.New(),
		Publisher:    cmd.Publisher,
		Year:         cmd.Year,
		Pos:          cmd.Pos,
		Title:        cmd.Title,
		Filename:     filename,
		SizeBytes:    int64(len(data)),
		PageCount:    pageCount,
		DownloadedAt: time.Now().UTC(),
	}

	q := fmt.Sprintf("INSERT INTO documents(%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)", documentColumns)
	insertArgs := []any{
		doc.ID.String(),
		doc.Publisher,
		doc.Year,
		doc.Pos,
		doc.Title,
		doc.Filename,
		doc.SizeBytes,
		doc.PageCount,
		doc.DownloadedAt.Unix(),
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		_, err := tx.ExecContext(ctx, q, insertArgs...)
		return struct{}{}, err
	})
	if err != nil {
		if rmErr := os.Remove(path); rmErr != nil {
			r.logger.Warn("compensating file delete failed", "path", path, "error", rmErr)
		}
		return nil, false, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.metrics.ObserveDownload(doc.SizeBytes)
	r.logger.Info(
		"document downloaded",
		"id", doc.ID,
		"publisher", doc.Publisher,
		"year", doc.Year,
		"pos", doc.Pos,
		"size", doc.SizeBytes,
	)
	return &doc, true, nil
}

func (r *repo) Open(ctx context.Context, id uuid.UUID) (io.ReadCloser, *Document, error) {
	doc, err := r.Find(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(r.path(doc.Filename))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Warn("cached file missing", "filename", doc.Filename)
			return nil, nil, ErrFileMissing
		}
		return nil, nil, fmt.Errorf("open document file: %w", err)
	}

	return f, doc, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	doc, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM documents WHERE id = ?",
			id.String(),
		)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	path := r.path(doc.Filename)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		r.logger.Warn("cached file not found, nothing to delete", "path", path)
		return ErrFileMissing
	}

	if err := os.Remove(path); err != nil {
		r.logger.Error("document file delete failed", "path", path, "error", err)
		return fmt.Errorf("delete document file: %w", err)
	}

	r.metrics.IncrementDelete()
	r.logger.Info("document deleted", "id", id)
	return nil
}

func (r *repo) findByAct(ctx context.Context, publisher string, year, pos int) (*Document, error) {
	q := fmt.Sprintf(
		"SELECT %s FROM documents WHERE publisher = ? AND year = ? AND pos = ?",
		documentColumns,
	)

	d, err := repository.QueryOne(ctx, r.db, q, []any{publisher, year, pos}, scanDocument)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &d, nil
}

// refresh updates an existing catalog row whose file had to be downloaded again.
func (r *repo) refresh(
	ctx context.Context,
	existing *Document,
	title string,
	size int64,
	pageCount *int,
) (*Document, error) {
	if title == "" {
		title = existing.Title
	}
	now := time.Now().UTC()

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(
			ctx, tx,
			"UPDATE documents SET title = ?, size_bytes = ?, page_count = ?, downloaded_at = ? WHERE id = ?",
			title, size, pageCount, now.Unix(), existing.ID.String(),
		)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	doc := *existing
	doc.Title = title
	doc.SizeBytes = size
	doc.PageCount = pageCount
	doc.DownloadedAt = now

	r.logger.Info("document re-downloaded", "id", doc.ID)
	return &doc, nil
}

// download streams the act's PDF from the registry, enforcing the size cap.
func (r *repo) download(ctx context.Context, cmd FetchCommand) ([]byte, error) {
	result, err := r.registry.Document(ctx, cmd.Publisher, cmd.Year, cmd.Pos)
	if err != nil {
		return nil, err
	}
	defer result.Body.Close()

	if result.ContentLength > r.maxBytes {
		return nil, ErrTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(result.Body, r.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read document body: %w", err)
	}
	if int64(len(data)) > r.maxBytes {
		return nil, ErrTooLarge
	}

	return data, nil
}

func (r *repo) path(filename string) string {
	return filepath.Join(r.dir, filename)
}

func documentFilename(publisher string, year, pos int) string {
	return fmt.Sprintf("act_%s_%d_%d.pdf", publisher, year, pos)
}

func extractPageCount(logger *slog.Logger, data []byte) *int {
	count, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		logger.Warn("failed to extract PDF page count", "error", err)
		return nil
	}
	return &count
}

func scanDocument(s repository.Scanner) (Document, error) {
	var (
		d  Document
		id string
		ts int64
	)

	err := s.Scan(
		&id,
		&d.Publisher,
		&d.Year,
		&d.Pos,
		&d.Title,
		&d.Filename,
		&d.SizeBytes,
		&d.PageCount,
		&ts,
	)
	if err != nil {
		return d, err
	}

	d.ID, err = uuid.Parse(id)
	if err != nil {
		return d, fmt.Errorf("parse document id: %w", err)
	}

	d.DownloadedAt = time.Unix(ts, 0).UTC()
	return d, nil
}
