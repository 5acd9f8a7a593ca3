// Package document renders work orders as printable HTML and PDF documents.
package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/pbpl/workorder-api/internal/config"
	"github.com/pbpl/workorder-api/internal/domain"
	"github.com/pbpl/workorder-api/internal/metrics"
	"github.com/pbpl/workorder-api/internal/service"
	"github.com/pbpl/workorder-api/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const archivePrefix = "work-orders"

// WorkOrderSource loads a work order joined with its company
type WorkOrderSource interface {
	GetDetail(ctx context.Context, id uuid.UUID) (*domain.WorkOrderDetail, error)
}

// Rendered is a generated PDF and its attachment name
type Rendered struct {
	Filename string
	Content  []byte
}

// Service renders work-order documents
type Service struct {
	source  WorkOrderSource
	engine  Engine
	archive storage.Storage
	timeout time.Duration
	logger  *zap.Logger
}

// NewService creates a document service. archive may be nil.
func NewService(source WorkOrderSource, engine Engine, archive storage.Storage, timeout time.Duration, logger *zap.Logger) *Service {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Service{
		source:  source,
		engine:  engine,
		archive: archive,
		timeout: timeout,
		logger:  logger,
	}
}

// NewEngine selects the engine named in cfg
func NewEngine(cfg *config.DocumentConfig) (Engine, error) {
	switch cfg.Engine {
	case "", EngineGoFPDF:
		return GoFPDFEngine{}, nil
	case EngineRemote:
		if cfg.RemoteURL == "" {
			return nil, fmt.Errorf("document.remoteUrl is required for the remote engine")
		}
		return NewRemoteEngine(cfg.RemoteURL, nil), nil
	default:
		return nil, fmt.Errorf("unsupported document engine: %s", cfg.Engine)
	}
}

// Render produces the PDF for a work order. Engine failures and timeouts
// are reported as service.ErrPdfGenerationFailed.
func (s *Service) Render(ctx context.Context, id uuid.UUID) (*Rendered, error) {
	wo, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	view := NewView(wo)
	html, err := RenderHTML(view, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", service.ErrPdfGenerationFailed, err)
	}

	start := time.Now()
	content, err := s.renderWithTimeout(ctx, &Source{View: view, HTML: html, CSS: Styles()})
	result := "success"
	if err != nil {
		result = "error"
	}
	metrics.PDFRenderDuration.WithLabelValues(s.engine.Name(), result).Observe(time.Since(start).Seconds())

	if err != nil {
		s.logger.Error("failed to generate work order PDF",
			zap.String("work_order_id", id.String()),
			zap.String("engine", s.engine.Name()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", service.ErrPdfGenerationFailed, err)
	}

	rendered := &Rendered{Filename: Filename(wo.WONumber), Content: content}
	s.store(ctx, rendered)
	return rendered, nil
}

// RenderHTML returns the self-contained HTML preview of a work order
func (s *Service) RenderHTML(ctx context.Context, id uuid.UUID) ([]byte, error) {
	wo, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return RenderHTML(NewView(wo), true)
}

func (s *Service) load(ctx context.Context, id uuid.UUID) (*domain.WorkOrderDetail, error) {
	wo, err := s.source.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrWorkOrderNotFound
		}
		return nil, fmt.Errorf("failed to get work order: %w", err)
	}
	return wo, nil
}

// renderWithTimeout bounds the engine call. Engines that ignore the context
// are abandoned when it expires.
func (s *Service) renderWithTimeout(ctx context.Context, src *Source) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type outcome struct {
		content []byte
		err     error
	}
	done := make(chan outcome, 1)
	go func() {
		content, err := s.engine.Render(ctx, src)
		done <- outcome{content, err}
	}()

	select {
	case out := <-done:
		if out.err == nil && len(out.content) == 0 {
			return nil, errors.New("engine returned an empty document")
		}
		return out.content, out.err
	case <-ctx.Done():
		return nil, fmt.Errorf("pdf generation timed out after %s: %w", s.timeout, ctx.Err())
	}
}

// store archives a copy of the PDF. Failures are logged only.
func (s *Service) store(ctx context.Context, r *Rendered) {
	if s.archive == nil {
		return
	}
	key := path.Join(archivePrefix, r.Filename)
	if _, err := s.archive.Put(ctx, key, "application/pdf", bytes.NewReader(r.Content)); err != nil {
		s.logger.Warn("failed to archive work order PDF", zap.String("key", key), zap.Error(err))
	}
}
