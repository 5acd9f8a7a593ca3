package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/pbpl/workorder-api/internal/auth"
	"github.com/pbpl/workorder-api/internal/domain"
	"github.com/pbpl/workorder-api/internal/mapper"
	"github.com/pbpl/workorder-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// ActivityLogService reads the activity feed and accepts entries posted
// directly by clients
type ActivityLogService struct {
	repo   *repository.ActivityLogRepository
	logger *zap.Logger
}

// NewActivityLogService creates a new activity log service
func NewActivityLogService(repo *repository.ActivityLogRepository, logger *zap.Logger) *ActivityLogService {
	return &ActivityLogService{repo: repo, logger: logger}
}

// List returns one page of the feed, newest first
func (s *ActivityLogService) List(ctx context.Context, filter *repository.ActivityLogFilter, page, limit int) ([]domain.ActivityLogDTO, domain.Pagination, error) {
	page, limit = repository.NormalizePagination(page, limit)

	logs, total, err := s.repo.List(ctx, filter, page, limit)
	if err != nil {
		return nil, domain.Pagination{}, fmt.Errorf("failed to list activity logs: %w", err)
	}

	dtos := make([]domain.ActivityLogDTO, len(logs))
	for i := range logs {
		dtos[i] = mapper.ToActivityLogDTO(&logs[i])
	}

	return dtos, domain.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

// ListForEntity returns the full history of one entity
func (s *ActivityLogService) ListForEntity(ctx context.Context, entityType domain.EntityType, entityID string) ([]domain.ActivityLogDTO, error) {
	logs, err := s.repo.ListByEntity(ctx, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity logs: %w", err)
	}
	dtos := make([]domain.ActivityLogDTO, len(logs))
	for i := range logs {
		dtos[i] = mapper.ToActivityLogDTO(&logs[i])
	}
	return dtos, nil
}

// Create stores an entry synchronously. The user defaults to the request
// identity, then to the system user.
func (s *ActivityLogService) Create(ctx context.Context, req *domain.CreateActivityLogRequest) (*domain.ActivityLogDTO, error) {
	err := requireFields(
		field("activity_type", req.ActivityType),
		field("entity_type", req.EntityType),
		field("entity_id", req.EntityID),
		field("description", req.Description),
	)
	if err != nil {
		return nil, err
	}

	activityType := domain.ActivityType(strings.TrimSpace(req.ActivityType))
	if !activityType.IsValid() {
		allowed := make([]string, len(domain.ActivityTypes))
		for i, t := range domain.ActivityTypes {
			allowed[i] = string(t)
		}
		return nil, &InvalidEnumError{Field: "activity type", Allowed: allowed}
	}

	details := bytes.TrimSpace(req.Details)
	if len(details) == 0 || string(details) == "null" {
		details = []byte("{}")
	} else if details[0] != '{' || !json.Valid(details) {
		return nil, &FieldError{Field: "details", Message: "Invalid details. Must be a JSON object"}
	}

	actor := auth.ActorFromContext(ctx, auth.SystemUserName)
	userName := strings.TrimSpace(req.UserName)
	if userName == "" {
		userName = actor.Name
	}
	userEmail := strings.TrimSpace(req.UserEmail)
	if userEmail == "" {
		userEmail = actor.Email
	}

	entry := &domain.ActivityLog{
		ActivityType: activityType,
		EntityType:   domain.EntityType(strings.TrimSpace(req.EntityType)),
		EntityID:     strings.TrimSpace(req.EntityID),
		Description:  strings.TrimSpace(req.Description),
		Details:      datatypes.JSON(details),
		UserName:     userName,
		UserEmail:    userEmail,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create activity log: %w", err)
	}

	dto := mapper.ToActivityLogDTO(entry)
	return &dto, nil
}
