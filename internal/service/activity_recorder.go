package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/pbpl/workorder-api/internal/domain"
	"github.com/pbpl/workorder-api/internal/metrics"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// ActivityWriter persists activity log entries
type ActivityWriter interface {
	Create(ctx context.Context, log *domain.ActivityLog) error
}

// ActivityRecorder writes activity events in the background. Recording is
// best effort: callers never wait on the database and never see its errors.
type ActivityRecorder struct {
	writer       ActivityWriter
	logger       *zap.Logger
	writeTimeout time.Duration

	queue chan queuedActivity
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

// queuedActivity is either an event or a flush marker
type queuedActivity struct {
	event   ActivityEvent
	flushed chan struct{}
}

// NewActivityRecorder starts a recorder with a queue of queueSize events
func NewActivityRecorder(writer ActivityWriter, queueSize int, writeTimeout time.Duration, logger *zap.Logger) *ActivityRecorder {
	if queueSize < 1 {
		queueSize = 1
	}
	if writeTimeout <= 0 {
		writeTimeout = 5 * time.Second
	}
	r := &ActivityRecorder{
		writer:       writer,
		logger:       logger,
		writeTimeout: writeTimeout,
		queue:        make(chan queuedActivity, queueSize),
		done:         make(chan struct{}),
	}
	go r.run()
	return r
}

// Record enqueues an event. It never blocks; when the queue is full or the
// recorder is closed the event is dropped.
func (r *ActivityRecorder) Record(event ActivityEvent) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		r.drop(event, "recorder closed")
		return
	}

	select {
	case r.queue <- queuedActivity{event: event}:
		metrics.ActivityQueueDepth.Inc()
	default:
		r.drop(event, "queue full")
	}
}

// Flush waits until every event recorded before the call has been written
func (r *ActivityRecorder) Flush(ctx context.Context) error {
	marker := make(chan struct{})

	r.mu.RLock()
	if r.closed {
		r.mu.RUnlock()
		return nil
	}
	select {
	case r.queue <- queuedActivity{flushed: marker}:
	case <-ctx.Done():
		r.mu.RUnlock()
		return ctx.Err()
	}
	r.mu.RUnlock()

	select {
	case <-marker:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting events and waits for the queue to drain
func (r *ActivityRecorder) Close(ctx context.Context) error {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.queue)
	}
	r.mu.Unlock()

	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *ActivityRecorder) run() {
	defer close(r.done)
	for item := range r.queue {
		if item.flushed != nil {
			close(item.flushed)
			continue
		}
		metrics.ActivityQueueDepth.Dec()
		r.write(item.event)
	}
}

func (r *ActivityRecorder) write(event ActivityEvent) {
	entry, err := event.toLog()
	if err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), r.writeTimeout)
		err = r.writer.Create(ctx, entry)
		cancel()
	}
	if err != nil {
		metrics.ActivityEventsTotal.WithLabelValues(metrics.ActivityFailed).Inc()
		r.logger.Warn("failed to record activity",
			zap.String("activity_type", string(event.ActivityType)),
			zap.String("entity_type", string(event.EntityType)),
			zap.String("entity_id", event.EntityID),
			zap.Error(err),
		)
		return
	}
	metrics.ActivityEventsTotal.WithLabelValues(metrics.ActivityRecorded).Inc()
}

func (r *ActivityRecorder) drop(event ActivityEvent, reason string) {
	metrics.ActivityEventsTotal.WithLabelValues(metrics.ActivityDropped).Inc()
	r.logger.Warn("activity event dropped",
		zap.String("reason", reason),
		zap.String("activity_type", string(event.ActivityType)),
		zap.String("entity_type", string(event.EntityType)),
		zap.String("entity_id", event.EntityID),
	)
}

func (e ActivityEvent) toLog() (*domain.ActivityLog, error) {
	details := e.Details
	if details == nil {
		details = map[string]interface{}{}
	}
	raw, err := json.Marshal(details)
	if err != nil {
		return nil, err
	}
	return &domain.ActivityLog{
		ActivityType: e.ActivityType,
		EntityType:   e.EntityType,
		EntityID:     e.EntityID,
		Description:  e.Description,
		Details:      datatypes.JSON(raw),
		UserName:     e.Actor.Name,
		UserEmail:    e.Actor.Email,
	}, nil
}
