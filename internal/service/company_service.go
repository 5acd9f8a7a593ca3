package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pbpl/workorder-api/internal/auth"
	"github.com/pbpl/workorder-api/internal/domain"
	"github.com/pbpl/workorder-api/internal/mapper"
	"github.com/pbpl/workorder-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompanyService handles business logic for companies
type CompanyService struct {
	companyRepo *repository.CompanyRepository
	activity    *ActivityRecorder
	logger      *zap.Logger
	changeHooks
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(companyRepo *repository.CompanyRepository, activity *ActivityRecorder, logger *zap.Logger) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		activity:    activity,
		logger:      logger,
	}
}

// List returns companies matching the filters, ordered by name
func (s *CompanyService) List(ctx context.Context, filters *repository.CompanyFilters, sort repository.SortConfig) ([]domain.CompanyDTO, error) {
	companies, err := s.companyRepo.List(ctx, filters, sort)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	dtos := make([]domain.CompanyDTO, len(companies))
	for i := range companies {
		dtos[i] = mapper.ToCompanyDTO(&companies[i])
	}
	return dtos, nil
}

// GetByID retrieves a company by its ID
func (s *CompanyService) GetByID(ctx context.Context, id uuid.UUID) (*domain.CompanyDTO, error) {
	company, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToCompanyDTO(company)
	return &dto, nil
}

func (s *CompanyService) get(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return company, nil
}

// Create creates a new company. Names are unique ignoring case and GST
// numbers are unique when present.
func (s *CompanyService) Create(ctx context.Context, req *domain.CreateCompanyRequest) (*domain.CompanyDTO, error) {
	if err := requireFields(field("company_name", req.CompanyName)); err != nil {
		return nil, err
	}

	company := &domain.Company{
		CompanyName:          strings.TrimSpace(req.CompanyName),
		Address:              strings.TrimSpace(req.Address),
		City:                 strings.TrimSpace(req.City),
		State:                strings.TrimSpace(req.State),
		Pincode:              strings.TrimSpace(req.Pincode),
		ContactPerson:        strings.TrimSpace(req.ContactPerson),
		ContactNumber:        strings.TrimSpace(req.ContactNumber),
		GSTNumber:            strings.TrimSpace(req.GSTNumber),
		BankName:             strings.TrimSpace(req.BankName),
		BankAccountNumber:    strings.TrimSpace(req.BankAccountNumber),
		BankIFSC:             strings.TrimSpace(req.BankIFSC),
		SignatoryName:        strings.TrimSpace(req.SignatoryName),
		SignatoryDesignation: strings.TrimSpace(req.SignatoryDesignation),
	}

	if err := s.checkUnique(ctx, company.CompanyName, company.GSTNumber, nil); err != nil {
		return nil, err
	}

	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	s.activity.Record(CompanyEvent(domain.ActivityTypeCreate, company, nil, auth.ActorFromContext(ctx, auth.SystemUserName)))
	s.changed(ctx)
	s.logger.Info("company created",
		zap.String("company_id", company.ID.String()),
		zap.String("company_name", company.CompanyName),
	)

	dto := mapper.ToCompanyDTO(company)
	return &dto, nil
}

// Update applies a typed patch to a company
func (s *CompanyService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateCompanyRequest) (*domain.CompanyDTO, error) {
	if _, err := s.get(ctx, id); err != nil {
		return nil, err
	}

	p := newColumnPatch()
	p.text("company_name", req.CompanyName, true)
	p.text("address", req.Address, false)
	p.text("city", req.City, false)
	p.text("state", req.State, false)
	p.text("pincode", req.Pincode, false)
	p.text("contact_person", req.ContactPerson, false)
	p.text("contact_number", req.ContactNumber, false)
	p.text("gst_number", req.GSTNumber, false)
	p.text("bank_name", req.BankName, false)
	p.text("bank_account_number", req.BankAccountNumber, false)
	p.text("bank_ifsc", req.BankIFSC, false)
	p.text("signatory_name", req.SignatoryName, false)
	p.text("signatory_designation", req.SignatoryDesignation, false)
	if err := p.err(); err != nil {
		return nil, err
	}

	name, _ := p.columns["company_name"].(string)
	gst, _ := p.columns["gst_number"].(string)
	if err := s.checkUnique(ctx, name, gst, &id); err != nil {
		return nil, err
	}

	if err := s.companyRepo.Update(ctx, id, p.columns); err != nil {
		return nil, fmt.Errorf("failed to update company: %w", err)
	}

	company, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.activity.Record(CompanyEvent(domain.ActivityTypeUpdate, company, p.fields(), auth.ActorFromContext(ctx, auth.SystemUserName)))
	s.changed(ctx)

	dto := mapper.ToCompanyDTO(company)
	return &dto, nil
}

// Delete removes a company. Work orders referencing it are kept and show no
// company details afterwards.
func (s *CompanyService) Delete(ctx context.Context, id uuid.UUID) error {
	company, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.companyRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCompanyNotFound
		}
		return fmt.Errorf("failed to delete company: %w", err)
	}

	s.activity.Record(CompanyEvent(domain.ActivityTypeDelete, company, nil, auth.ActorFromContext(ctx, auth.SystemUserName)))
	s.changed(ctx)
	s.logger.Info("company deleted", zap.String("company_id", id.String()))
	return nil
}

// checkUnique rejects a name or GST number already used by another company.
// Empty values are not checked.
func (s *CompanyService) checkUnique(ctx context.Context, name, gstNumber string, excludeID *uuid.UUID) error {
	if gstNumber != "" {
		exists, err := s.companyRepo.ExistsByGSTNumber(ctx, gstNumber, excludeID)
		if err != nil {
			return fmt.Errorf("failed to validate GST number: %w", err)
		}
		if exists {
			return ErrDuplicateCompanyGST
		}
	}
	if name != "" {
		exists, err := s.companyRepo.ExistsByName(ctx, name, excludeID)
		if err != nil {
			return fmt.Errorf("failed to validate company name: %w", err)
		}
		if exists {
			return ErrDuplicateCompanyName
		}
	}
	return nil
}
