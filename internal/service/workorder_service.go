package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pbpl/workorder-api/internal/auth"
	"github.com/pbpl/workorder-api/internal/config"
	"github.com/pbpl/workorder-api/internal/domain"
	"github.com/pbpl/workorder-api/internal/finance"
	"github.com/pbpl/workorder-api/internal/logger"
	"github.com/pbpl/workorder-api/internal/mapper"
	"github.com/pbpl/workorder-api/internal/metrics"
	"github.com/pbpl/workorder-api/internal/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Stored precision of percentage and base amount columns
const (
	percentPlaces = 2
	amountPlaces  = 2
)

// WorkOrderService handles business logic for work orders
type WorkOrderService struct {
	woRepo      *repository.WorkOrderRepository
	companyRepo *repository.CompanyRepository
	numbers     *WorkOrderNumberGenerator
	activity    *ActivityRecorder
	defaults    config.WorkOrdersConfig
	logger      *zap.Logger
	changeHooks
}

// NewWorkOrderService creates a new work order service instance
func NewWorkOrderService(
	woRepo *repository.WorkOrderRepository,
	companyRepo *repository.CompanyRepository,
	numbers *WorkOrderNumberGenerator,
	activity *ActivityRecorder,
	defaults config.WorkOrdersConfig,
	logger *zap.Logger,
) *WorkOrderService {
	if defaults.NumberGenerationMaxRetries < 1 {
		defaults.NumberGenerationMaxRetries = 1
	}
	return &WorkOrderService{
		woRepo:      woRepo,
		companyRepo: companyRepo,
		numbers:     numbers,
		activity:    activity,
		defaults:    defaults,
		logger:      logger,
	}
}

// Create validates and stores a new work order. Derived amounts are always
// computed here; any the client sent are ignored.
func (s *WorkOrderService) Create(ctx context.Context, req *domain.CreateWorkOrderRequest) (*domain.WorkOrderDetailDTO, error) {
	err := requireFields(
		field("company_id", req.CompanyID),
		field("vendor_name", req.VendorName),
		field("site_name", req.SiteName),
		field("work_description", req.WorkDescription),
		fieldValue{name: "total_amount", present: req.TotalAmount != nil},
	)
	if err != nil {
		return nil, err
	}

	if !isPositiveAmount(*req.TotalAmount) {
		return nil, ErrInvalidAmount
	}
	if err := checkAmountPrecision(req.TotalAmount, req.SGSTPercent, req.CGSTPercent, req.RetentionPercent); err != nil {
		return nil, err
	}

	companyID, err := s.resolveCompany(ctx, req.CompanyID)
	if err != nil {
		return nil, err
	}

	status := domain.WorkOrderStatusDraft
	if strings.TrimSpace(req.Status) != "" {
		if status, err = parseWorkOrderStatus(req.Status); err != nil {
			return nil, err
		}
	}

	date := s.numbers.Today()
	if strings.TrimSpace(req.Date) != "" {
		if date, err = parseDate(req.Date); err != nil {
			return nil, err
		}
	}

	in := finance.Clamp(finance.Input{
		TotalAmount:      mapper.Decimal(*req.TotalAmount),
		HasGST:           boolOr(req.HasGST, true),
		SGSTPercent:      percentOr(req.SGSTPercent, s.defaults.DefaultSGSTPercent),
		CGSTPercent:      percentOr(req.CGSTPercent, s.defaults.DefaultCGSTPercent),
		RetentionPercent: percentOr(req.RetentionPercent, s.defaults.DefaultRetentionPercent),
	})

	wo := &domain.WorkOrder{
		WONumber:           strings.TrimSpace(req.WONumber),
		Date:               date,
		CompanyID:          companyID,
		VendorName:         strings.TrimSpace(req.VendorName),
		VendorContact:      strings.TrimSpace(req.VendorContact),
		VendorAddress:      strings.TrimSpace(req.VendorAddress),
		VendorGST:          strings.TrimSpace(req.VendorGST),
		SiteName:           strings.TrimSpace(req.SiteName),
		ProjectDescription: strings.TrimSpace(req.ProjectDescription),
		WorkDescription:    strings.TrimSpace(req.WorkDescription),
		PaymentTerms:       strings.TrimSpace(req.PaymentTerms),
		VendorBankName:     strings.TrimSpace(req.VendorBankName),
		VendorBankAccount:  strings.TrimSpace(req.VendorBankAccount),
		VendorBankIFSC:     strings.TrimSpace(req.VendorBankIFSC),
		Status:             status,
	}
	applyAmounts(wo, in)

	if err := s.insert(ctx, wo); err != nil {
		return nil, err
	}

	s.changed(ctx)
	actor := auth.ActorFromContext(ctx, auth.AdminUserName)
	s.activity.Record(CreateWorkOrderEvent(wo, actor))

	logger.WithActor(logger.WithWorkOrder(s.logger, wo.ID, wo.WONumber), actor).
		Info("work order created", zap.String("vendor_name", wo.VendorName))

	return s.GetByID(ctx, wo.ID)
}

// insert stores wo, assigning a generated number when none was given.
// Explicit numbers that collide fail; generated ones are regenerated a
// bounded number of times.
func (s *WorkOrderService) insert(ctx context.Context, wo *domain.WorkOrder) error {
	explicit := wo.WONumber != ""
	attempts := 1
	if !explicit {
		attempts = s.defaults.NumberGenerationMaxRetries
	}

	for attempt := 1; ; attempt++ {
		if !explicit {
			wo.WONumber = s.numbers.Generate(ctx, wo.VendorName, wo.SiteName)
		}

		exists, err := s.woRepo.ExistsByNumber(ctx, wo.WONumber, nil)
		if err != nil {
			return fmt.Errorf("failed to check work order number: %w", err)
		}
		if !exists {
			err = s.woRepo.Create(ctx, wo)
			if err == nil {
				if explicit {
					metrics.NumbersGeneratedTotal.WithLabelValues(metrics.NumberSourceExplicit).Inc()
				}
				return nil
			}
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("failed to create work order: %w", err)
			}
		}

		if explicit || attempt >= attempts {
			return ErrDuplicateWorkOrderNumber
		}
		s.logger.Warn("generated work order number already taken, retrying",
			zap.String("wo_number", wo.WONumber),
			zap.Int("attempt", attempt),
		)
	}
}

// GetByID returns a work order joined with its company
func (s *WorkOrderService) GetByID(ctx context.Context, id uuid.UUID) (*domain.WorkOrderDetailDTO, error) {
	detail, err := s.woRepo.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkOrderNotFound
		}
		return nil, fmt.Errorf("failed to get work order: %w", err)
	}
	dto := mapper.ToWorkOrderDetailDTO(detail)
	return &dto, nil
}

// Update applies a typed patch. Only supplied fields are written. When any
// amount input is supplied the derived amounts are recomputed from the patch
// merged over the stored values.
func (s *WorkOrderService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateWorkOrderRequest) (*domain.WorkOrderDetailDTO, error) {
	before, err := s.woRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkOrderNotFound
		}
		return nil, fmt.Errorf("failed to get work order: %w", err)
	}

	after := *before
	columns := make(map[string]interface{})

	var missing []string
	setText := func(column string, value *string, target *string, required bool) {
		if value == nil {
			return
		}
		v := strings.TrimSpace(*value)
		if required && v == "" {
			missing = append(missing, column)
			return
		}
		*target = v
		columns[column] = v
	}

	setText("wo_number", req.WONumber, &after.WONumber, true)
	setText("vendor_name", req.VendorName, &after.VendorName, true)
	setText("vendor_contact", req.VendorContact, &after.VendorContact, false)
	setText("vendor_address", req.VendorAddress, &after.VendorAddress, false)
	setText("vendor_gst", req.VendorGST, &after.VendorGST, false)
	setText("site_name", req.SiteName, &after.SiteName, true)
	setText("project_description", req.ProjectDescription, &after.ProjectDescription, false)
	setText("work_description", req.WorkDescription, &after.WorkDescription, true)
	setText("payment_terms", req.PaymentTerms, &after.PaymentTerms, false)
	setText("vendor_bank_name", req.VendorBankName, &after.VendorBankName, false)
	setText("vendor_bank_account", req.VendorBankAccount, &after.VendorBankAccount, false)
	setText("vendor_bank_ifsc", req.VendorBankIFSC, &after.VendorBankIFSC, false)

	if len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		after.Date = date
		columns["date"] = date
	}

	if req.CompanyID != nil {
		companyID, err := s.resolveCompany(ctx, *req.CompanyID)
		if err != nil {
			return nil, err
		}
		after.CompanyID = companyID
		columns["company_id"] = companyID
	}

	if req.Status != nil {
		status, err := parseWorkOrderStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		after.Status = status
		columns["status"] = status
	}

	if req.TotalAmount != nil || req.HasGST != nil || req.SGSTPercent != nil ||
		req.CGSTPercent != nil || req.RetentionPercent != nil {
		if err := checkAmountPrecision(req.TotalAmount, req.SGSTPercent, req.CGSTPercent, req.RetentionPercent); err != nil {
			return nil, err
		}
		in := finance.Input{
			TotalAmount:      before.TotalAmount,
			HasGST:           boolOr(req.HasGST, before.HasGST),
			SGSTPercent:      percentOrDecimal(req.SGSTPercent, before.SGSTPercent),
			CGSTPercent:      percentOrDecimal(req.CGSTPercent, before.CGSTPercent),
			RetentionPercent: percentOrDecimal(req.RetentionPercent, before.RetentionPercent),
		}
		if req.TotalAmount != nil {
			if !isPositiveAmount(*req.TotalAmount) {
				return nil, ErrInvalidAmount
			}
			in.TotalAmount = mapper.Decimal(*req.TotalAmount)
		}
		applyAmounts(&after, finance.Clamp(in))
		columns["total_amount"] = after.TotalAmount
		columns["has_gst"] = after.HasGST
		columns["sgst_percent"] = after.SGSTPercent
		columns["cgst_percent"] = after.CGSTPercent
		columns["retention_percent"] = after.RetentionPercent
		columns["sgst_amount"] = after.SGSTAmount
		columns["cgst_amount"] = after.CGSTAmount
		columns["gross_amount"] = after.GrossAmount
		columns["retention_amount"] = after.RetentionAmount
		columns["net_amount"] = after.NetAmount
	}

	if len(columns) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	if after.WONumber != before.WONumber {
		exists, err := s.woRepo.ExistsByNumber(ctx, after.WONumber, &id)
		if err != nil {
			return nil, fmt.Errorf("failed to check work order number: %w", err)
		}
		if exists {
			return nil, ErrDuplicateWorkOrderNumber
		}
	}

	if err := s.woRepo.Update(ctx, id, columns); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateWorkOrderNumber
		}
		return nil, fmt.Errorf("failed to update work order: %w", err)
	}

	updated, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.changed(ctx)
	actor := auth.ActorFromContext(ctx, auth.AdminUserName)
	if req.Status != nil && after.Status != before.Status {
		s.activity.Record(StatusChangeEvent(&after, before.Status, after.Status, actor))
	} else {
		s.activity.Record(UpdateWorkOrderEvent(before, &after, actor))
	}

	logger.WithActor(logger.WithWorkOrder(s.logger, id, after.WONumber), actor).
		Info("work order updated", zap.Int("fields", len(columns)))

	return updated, nil
}

// Delete removes a work order. adminPermission must be true.
func (s *WorkOrderService) Delete(ctx context.Context, id uuid.UUID, adminPermission bool) error {
	if !adminPermission {
		return ErrAdminPermissionRequired
	}

	snapshot, err := s.woRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWorkOrderNotFound
		}
		return fmt.Errorf("failed to get work order: %w", err)
	}

	if err := s.woRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWorkOrderNotFound
		}
		return fmt.Errorf("failed to delete work order: %w", err)
	}

	s.changed(ctx)
	actor := auth.ActorFromContext(ctx, auth.AdminUserName)
	s.activity.Record(DeleteWorkOrderEvent(snapshot, actor))

	logger.WithActor(logger.WithWorkOrder(s.logger, id, snapshot.WONumber), actor).
		Info("work order deleted")
	return nil
}

// List returns work orders matching the filters, newest first
func (s *WorkOrderService) List(ctx context.Context, filters *repository.WorkOrderFilters) ([]domain.WorkOrderDTO, error) {
	details, err := s.woRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list work orders: %w", err)
	}
	return mapper.ToWorkOrderListDTO(details), nil
}

// PendingPayments lists issued work orders with an outstanding net amount
func (s *WorkOrderService) PendingPayments(ctx context.Context, filters *repository.WorkOrderFilters) ([]domain.PendingPaymentDTO, domain.PendingPaymentSummary, error) {
	var summary domain.PendingPaymentSummary

	f := repository.WorkOrderFilters{}
	if filters != nil {
		f = *filters
	}
	f.Statuses = []domain.WorkOrderStatus{
		domain.WorkOrderStatusActive,
		domain.WorkOrderStatusInProgress,
		domain.WorkOrderStatusCompleted,
	}
	f.PositiveNetOnly = true

	details, err := s.woRepo.List(ctx, &f)
	if err != nil {
		return nil, summary, fmt.Errorf("failed to list pending payments: %w", err)
	}

	outstanding := decimal.Zero
	payments := make([]domain.PendingPaymentDTO, 0, len(details))
	for _, dto := range mapper.ToWorkOrderListDTO(details) {
		ps := PaymentStatusFor(dto.Status)
		switch ps {
		case domain.PaymentStatusOverdue:
			summary.OverdueCount++
		case domain.PaymentStatusDue:
			summary.DueCount++
		default:
			summary.PendingCount++
		}
		payments = append(payments, domain.PendingPaymentDTO{WorkOrderDTO: dto, PaymentStatus: ps})
	}
	for i := range details {
		outstanding = outstanding.Add(details[i].NetAmount)
	}
	summary.TotalOutstanding = mapper.Money(outstanding.Round(amountPlaces))

	return payments, summary, nil
}

// PaymentStatusFor derives the payment state of a work order from its status
func PaymentStatusFor(status domain.WorkOrderStatus) domain.PaymentStatus {
	switch status {
	case domain.WorkOrderStatusCompleted:
		return domain.PaymentStatusOverdue
	case domain.WorkOrderStatusActive, domain.WorkOrderStatusInProgress:
		return domain.PaymentStatusDue
	default:
		return domain.PaymentStatusPending
	}
}

func (s *WorkOrderService) resolveCompany(ctx context.Context, raw string) (uuid.UUID, error) {
	companyID, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, ErrInvalidCompany
	}
	exists, err := s.companyRepo.Exists(ctx, companyID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to check company: %w", err)
	}
	if !exists {
		return uuid.Nil, ErrInvalidCompany
	}
	return companyID, nil
}

func applyAmounts(wo *domain.WorkOrder, in finance.Input) {
	b := finance.Compute(in)
	wo.TotalAmount = in.TotalAmount
	wo.HasGST = in.HasGST
	wo.SGSTPercent = in.SGSTPercent
	wo.CGSTPercent = in.CGSTPercent
	wo.RetentionPercent = in.RetentionPercent
	wo.SGSTAmount = b.SGSTAmount
	wo.CGSTAmount = b.CGSTAmount
	wo.GrossAmount = b.GrossAmount
	wo.RetentionAmount = b.RetentionAmount
	wo.NetAmount = b.NetAmount
}

func parseWorkOrderStatus(raw string) (domain.WorkOrderStatus, error) {
	status := domain.WorkOrderStatus(strings.TrimSpace(raw))
	if !status.IsValid() {
		allowed := make([]string, len(domain.WorkOrderStatuses))
		for i, st := range domain.WorkOrderStatuses {
			allowed[i] = string(st)
		}
		return "", &InvalidEnumError{Field: "status", Allowed: allowed}
	}
	return status, nil
}

// parseDate accepts YYYY-MM-DD or an RFC 3339 timestamp, keeping the date part
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, ErrInvalidDate
}

func isPositiveAmount(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

// checkAmountPrecision rejects base amounts and percentages with more decimal
// places than their columns store. Values are never rounded on the way in.
func checkAmountPrecision(total, sgst, cgst, retention *float64) error {
	for _, f := range []struct {
		name   string
		value  *float64
		places int32
	}{
		{"total_amount", total, amountPlaces},
		{"sgst_percent", sgst, percentPlaces},
		{"cgst_percent", cgst, percentPlaces},
		{"retention_percent", retention, percentPlaces},
	} {
		if f.value == nil {
			continue
		}
		d := mapper.Decimal(*f.value)
		if !d.Equal(d.Round(f.places)) {
			return &FieldError{
				Field:   f.name,
				Message: fmt.Sprintf("%s must have at most %d decimal places", f.name, f.places),
			}
		}
	}
	return nil
}

func percentOr(v *float64, fallback float64) decimal.Decimal {
	if v == nil {
		return mapper.Decimal(fallback).Round(percentPlaces)
	}
	return mapper.Decimal(*v)
}

func percentOrDecimal(v *float64, fallback decimal.Decimal) decimal.Decimal {
	if v == nil {
		return fallback
	}
	return mapper.Decimal(*v)
}
