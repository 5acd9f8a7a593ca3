package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pbpl/workorder-api/internal/auth"
	"github.com/pbpl/workorder-api/internal/domain"
	"github.com/pbpl/workorder-api/internal/mapper"
	"github.com/pbpl/workorder-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// VendorService handles business logic for vendors
type VendorService struct {
	vendorRepo *repository.VendorRepository
	woRepo     *repository.WorkOrderRepository
	activity   *ActivityRecorder
	logger     *zap.Logger
	changeHooks
}

// NewVendorService creates a new VendorService
func NewVendorService(vendorRepo *repository.VendorRepository, woRepo *repository.WorkOrderRepository, activity *ActivityRecorder, logger *zap.Logger) *VendorService {
	return &VendorService{
		vendorRepo: vendorRepo,
		woRepo:     woRepo,
		activity:   activity,
		logger:     logger,
	}
}

// List returns vendors matching the filters, ordered by name
func (s *VendorService) List(ctx context.Context, filters *repository.VendorFilters, sort repository.SortConfig) ([]domain.VendorDTO, error) {
	vendors, err := s.vendorRepo.List(ctx, filters, sort)
	if err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}
	dtos := make([]domain.VendorDTO, len(vendors))
	for i := range vendors {
		dtos[i] = mapper.ToVendorDTO(&vendors[i])
	}
	return dtos, nil
}

// GetByID retrieves a vendor by its ID
func (s *VendorService) GetByID(ctx context.Context, id uuid.UUID) (*domain.VendorDTO, error) {
	vendor, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToVendorDTO(vendor)
	return &dto, nil
}

func (s *VendorService) get(ctx context.Context, id uuid.UUID) (*domain.Vendor, error) {
	vendor, err := s.vendorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, fmt.Errorf("failed to get vendor: %w", err)
	}
	return vendor, nil
}

// Create creates a new vendor
func (s *VendorService) Create(ctx context.Context, req *domain.CreateVendorRequest) (*domain.VendorDTO, error) {
	err := requireFields(
		field("vendor_name", req.VendorName),
		field("vendor_type", req.VendorType),
		field("contact_number", req.ContactNumber),
	)
	if err != nil {
		return nil, err
	}

	vendorType, err := parseVendorType(req.VendorType)
	if err != nil {
		return nil, err
	}

	retention := 0
	if req.DefaultRetentionPercent != nil {
		retention = *req.DefaultRetentionPercent
	}
	if !isAllowedRetention(retention) {
		return nil, retentionEnumError()
	}

	status := domain.VendorStatusActive
	if strings.TrimSpace(req.Status) != "" {
		if status, err = parseVendorStatus(req.Status); err != nil {
			return nil, err
		}
	}

	createdFrom := strings.TrimSpace(req.CreatedFrom)
	if createdFrom == "" {
		createdFrom = domain.VendorCreatedFromManual
	}

	vendor := &domain.Vendor{
		VendorName:              strings.TrimSpace(req.VendorName),
		VendorType:              vendorType,
		ContactPerson:           strings.TrimSpace(req.ContactPerson),
		ContactNumber:           strings.TrimSpace(req.ContactNumber),
		Email:                   strings.TrimSpace(req.Email),
		Address:                 strings.TrimSpace(req.Address),
		GSTNumber:               strings.TrimSpace(req.GSTNumber),
		PANNumber:               strings.TrimSpace(req.PANNumber),
		BankName:                strings.TrimSpace(req.BankName),
		BankAccountNumber:       strings.TrimSpace(req.BankAccountNumber),
		BankIFSC:                strings.TrimSpace(req.BankIFSC),
		DefaultRetentionPercent: retention,
		Status:                  status,
		CreatedFrom:             createdFrom,
	}

	if err := s.insert(ctx, vendor); err != nil {
		return nil, err
	}

	s.activity.Record(VendorEvent(domain.ActivityTypeCreate, vendor, nil, auth.ActorFromContext(ctx, auth.SystemUserName)))
	s.changed(ctx)
	s.logger.Info("vendor created",
		zap.String("vendor_id", vendor.ID.String()),
		zap.String("vendor_name", vendor.VendorName),
	)

	dto := mapper.ToVendorDTO(vendor)
	return &dto, nil
}

func (s *VendorService) insert(ctx context.Context, vendor *domain.Vendor) error {
	exists, err := s.vendorRepo.ExistsByName(ctx, vendor.VendorName, nil)
	if err != nil {
		return fmt.Errorf("failed to validate vendor name: %w", err)
	}
	if exists {
		return ErrDuplicateVendorName
	}
	if err := s.vendorRepo.Create(ctx, vendor); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateVendorName
		}
		return fmt.Errorf("failed to create vendor: %w", err)
	}
	return nil
}

// Update applies a typed patch to a vendor. Work orders already issued keep
// their copy of the vendor's details.
func (s *VendorService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateVendorRequest) (*domain.VendorDTO, error) {
	if _, err := s.get(ctx, id); err != nil {
		return nil, err
	}

	if req.VendorName != nil && strings.TrimSpace(*req.VendorName) == "" {
		return nil, &FieldError{Field: "vendor_name", Message: "Vendor name is required"}
	}
	if req.ContactNumber != nil && strings.TrimSpace(*req.ContactNumber) == "" {
		return nil, &FieldError{Field: "contact_number", Message: "Contact number is required"}
	}

	p := newColumnPatch()
	p.text("vendor_name", req.VendorName, true)
	p.text("contact_person", req.ContactPerson, false)
	p.text("contact_number", req.ContactNumber, true)
	p.text("email", req.Email, false)
	p.text("address", req.Address, false)
	p.text("gst_number", req.GSTNumber, false)
	p.text("pan_number", req.PANNumber, false)
	p.text("bank_name", req.BankName, false)
	p.text("bank_account_number", req.BankAccountNumber, false)
	p.text("bank_ifsc", req.BankIFSC, false)

	if req.VendorType != nil {
		vendorType, err := parseVendorType(*req.VendorType)
		if err != nil {
			return nil, err
		}
		p.set("vendor_type", vendorType)
	}
	if req.DefaultRetentionPercent != nil {
		if !isAllowedRetention(*req.DefaultRetentionPercent) {
			return nil, retentionEnumError()
		}
		p.set("default_retention_percent", *req.DefaultRetentionPercent)
	}
	if req.Status != nil {
		status, err := parseVendorStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		p.set("status", status)
	}

	if err := p.err(); err != nil {
		return nil, err
	}

	if p.has("vendor_name") {
		exists, err := s.vendorRepo.ExistsByName(ctx, p.columns["vendor_name"].(string), &id)
		if err != nil {
			return nil, fmt.Errorf("failed to validate vendor name: %w", err)
		}
		if exists {
			return nil, ErrDuplicateVendorName
		}
	}

	if err := s.vendorRepo.Update(ctx, id, p.columns); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateVendorName
		}
		return nil, fmt.Errorf("failed to update vendor: %w", err)
	}

	vendor, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.activity.Record(VendorEvent(domain.ActivityTypeUpdate, vendor, p.fields(), auth.ActorFromContext(ctx, auth.SystemUserName)))
	s.changed(ctx)

	dto := mapper.ToVendorDTO(vendor)
	return &dto, nil
}

// Delete removes a vendor unless a work order still carries its name
func (s *VendorService) Delete(ctx context.Context, id uuid.UUID) error {
	vendor, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	inUse, err := s.woRepo.CountByVendorName(ctx, vendor.VendorName)
	if err != nil {
		return fmt.Errorf("failed to check vendor references: %w", err)
	}
	if inUse > 0 {
		return ErrVendorInUse
	}

	if err := s.vendorRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVendorNotFound
		}
		return fmt.Errorf("failed to delete vendor: %w", err)
	}

	s.activity.Record(VendorEvent(domain.ActivityTypeDelete, vendor, nil, auth.ActorFromContext(ctx, auth.SystemUserName)))
	s.changed(ctx)
	s.logger.Info("vendor deleted",
		zap.String("vendor_id", id.String()),
		zap.String("vendor_name", vendor.VendorName),
	)
	return nil
}

// ImportFromERP upserts vendors read from the ERP by name. Vendors first
// entered by hand are never overwritten; ERP vendors get their contact and
// bank details refreshed.
func (s *VendorService) ImportFromERP(ctx context.Context, records []domain.ERPVendor) domain.VendorImportResult {
	var result domain.VendorImportResult
	actor := auth.Actor{Name: auth.SystemUserName}

	for _, rec := range records {
		name := strings.TrimSpace(rec.VendorName)
		contact := strings.TrimSpace(rec.ContactNumber)
		if name == "" || contact == "" {
			result.Skipped++
			continue
		}

		vendorType := domain.VendorType(strings.TrimSpace(rec.VendorType))
		if !vendorType.IsValid() {
			vendorType = domain.VendorTypeContractor
		}

		existing, err := s.vendorRepo.GetByName(ctx, name)
		if err != nil {
			result.Failed++
			s.logger.Warn("failed to look up ERP vendor", zap.String("vendor_name", name), zap.Error(err))
			continue
		}

		if existing == nil {
			vendor := &domain.Vendor{
				VendorName:        name,
				VendorType:        vendorType,
				ContactPerson:     strings.TrimSpace(rec.ContactPerson),
				ContactNumber:     contact,
				Email:             strings.TrimSpace(rec.Email),
				Address:           strings.TrimSpace(rec.Address),
				GSTNumber:         strings.TrimSpace(rec.GSTNumber),
				PANNumber:         strings.TrimSpace(rec.PANNumber),
				BankName:          strings.TrimSpace(rec.BankName),
				BankAccountNumber: strings.TrimSpace(rec.BankAccountNumber),
				BankIFSC:          strings.TrimSpace(rec.BankIFSC),
				Status:            domain.VendorStatusActive,
				CreatedFrom:       domain.VendorCreatedFromERP,
			}
			if err := s.vendorRepo.Create(ctx, vendor); err != nil {
				result.Failed++
				s.logger.Warn("failed to create ERP vendor", zap.String("vendor_name", name), zap.Error(err))
				continue
			}
			s.activity.Record(VendorEvent(domain.ActivityTypeCreate, vendor, nil, actor))
			result.Created++
			continue
		}

		if existing.CreatedFrom != domain.VendorCreatedFromERP {
			result.Skipped++
			continue
		}

		p := newColumnPatch()
		for column, value := range map[string]string{
			"contact_person":      rec.ContactPerson,
			"contact_number":      rec.ContactNumber,
			"email":               rec.Email,
			"address":             rec.Address,
			"gst_number":          rec.GSTNumber,
			"pan_number":          rec.PANNumber,
			"bank_name":           rec.BankName,
			"bank_account_number": rec.BankAccountNumber,
			"bank_ifsc":           rec.BankIFSC,
		} {
			if v := strings.TrimSpace(value); v != "" {
				p.set(column, v)
			}
		}
		if err := s.vendorRepo.Update(ctx, existing.ID, p.columns); err != nil {
			result.Failed++
			s.logger.Warn("failed to refresh ERP vendor", zap.String("vendor_name", name), zap.Error(err))
			continue
		}
		result.Updated++
	}

	if result.Created > 0 || result.Updated > 0 {
		s.changed(ctx)
	}
	return result
}

func parseVendorType(raw string) (domain.VendorType, error) {
	vendorType := domain.VendorType(strings.TrimSpace(raw))
	if !vendorType.IsValid() {
		allowed := make([]string, len(domain.VendorTypes))
		for i, t := range domain.VendorTypes {
			allowed[i] = string(t)
		}
		return "", &InvalidEnumError{Field: "vendor type", Allowed: allowed}
	}
	return vendorType, nil
}

func parseVendorStatus(raw string) (domain.VendorStatus, error) {
	status := domain.VendorStatus(strings.TrimSpace(raw))
	if !status.IsValid() {
		allowed := make([]string, len(domain.VendorStatuses))
		for i, st := range domain.VendorStatuses {
			allowed[i] = string(st)
		}
		return "", &InvalidEnumError{Field: "status", Allowed: allowed}
	}
	return status, nil
}

func isAllowedRetention(percent int) bool {
	for _, allowed := range domain.AllowedRetentionPercents {
		if percent == allowed {
			return true
		}
	}
	return false
}

func retentionEnumError() error {
	allowed := make([]string, len(domain.AllowedRetentionPercents))
	for i, p := range domain.AllowedRetentionPercents {
		allowed[i] = strconv.Itoa(p)
	}
	return &InvalidEnumError{Field: "retention percentage", Allowed: allowed}
}
