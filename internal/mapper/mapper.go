package mapper

import (
	"encoding/json"
	"strings"

	"github.com/pbpl/workorder-api/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	timestampLayout = "2006-01-02T15:04:05Z07:00"
	dateLayout      = "2006-01-02"
)

// ToCompanyDTO converts Company to CompanyDTO
func ToCompanyDTO(company *domain.Company) domain.CompanyDTO {
	return domain.CompanyDTO{
		ID:                   company.ID,
		CompanyName:          company.CompanyName,
		Address:              company.Address,
		City:                 company.City,
		State:                company.State,
		Pincode:              company.Pincode,
		ContactPerson:        company.ContactPerson,
		ContactNumber:        company.ContactNumber,
		GSTNumber:            company.GSTNumber,
		BankName:             company.BankName,
		BankAccountNumber:    company.BankAccountNumber,
		BankIFSC:             company.BankIFSC,
		SignatoryName:        company.SignatoryName,
		SignatoryDesignation: company.SignatoryDesignation,
		CreatedAt:            company.CreatedAt.Format(timestampLayout),
		UpdatedAt:            company.UpdatedAt.Format(timestampLayout),
	}
}

// ToVendorDTO converts Vendor to VendorDTO
func ToVendorDTO(vendor *domain.Vendor) domain.VendorDTO {
	return domain.VendorDTO{
		ID:                      vendor.ID,
		VendorName:              vendor.VendorName,
		VendorType:              vendor.VendorType,
		ContactPerson:           vendor.ContactPerson,
		ContactNumber:           vendor.ContactNumber,
		Email:                   vendor.Email,
		Address:                 vendor.Address,
		GSTNumber:               vendor.GSTNumber,
		PANNumber:               vendor.PANNumber,
		BankName:                vendor.BankName,
		BankAccountNumber:       vendor.BankAccountNumber,
		BankIFSC:                vendor.BankIFSC,
		DefaultRetentionPercent: vendor.DefaultRetentionPercent,
		Status:                  vendor.Status,
		CreatedFrom:             vendor.CreatedFrom,
		CreatedAt:               vendor.CreatedAt.Format(timestampLayout),
		UpdatedAt:               vendor.UpdatedAt.Format(timestampLayout),
	}
}

// ToWorkOrderDTO converts WorkOrder to WorkOrderDTO
func ToWorkOrderDTO(wo *domain.WorkOrder) domain.WorkOrderDTO {
	return domain.WorkOrderDTO{
		ID:                 wo.ID,
		WONumber:           wo.WONumber,
		Date:               wo.Date.Format(dateLayout),
		CompanyID:          wo.CompanyID,
		VendorName:         wo.VendorName,
		VendorContact:      wo.VendorContact,
		VendorAddress:      wo.VendorAddress,
		VendorGST:          wo.VendorGST,
		SiteName:           wo.SiteName,
		ProjectDescription: wo.ProjectDescription,
		WorkDescription:    wo.WorkDescription,
		TotalAmount:        Money(wo.TotalAmount),
		HasGST:             wo.HasGST,
		SGSTPercent:        Money(wo.SGSTPercent),
		CGSTPercent:        Money(wo.CGSTPercent),
		SGSTAmount:         Money(wo.SGSTAmount),
		CGSTAmount:         Money(wo.CGSTAmount),
		GrossAmount:        Money(wo.GrossAmount),
		RetentionPercent:   Money(wo.RetentionPercent),
		RetentionAmount:    Money(wo.RetentionAmount),
		NetAmount:          Money(wo.NetAmount),
		PaymentTerms:       wo.PaymentTerms,
		VendorBankName:     wo.VendorBankName,
		VendorBankAccount:  wo.VendorBankAccount,
		VendorBankIFSC:     wo.VendorBankIFSC,
		Status:             wo.Status,
		CreatedAt:          wo.CreatedAt.Format(timestampLayout),
		UpdatedAt:          wo.UpdatedAt.Format(timestampLayout),
	}
}

// ToWorkOrderDetailDTO converts a joined work order to its detail DTO
func ToWorkOrderDetailDTO(detail *domain.WorkOrderDetail) domain.WorkOrderDetailDTO {
	dto := domain.WorkOrderDetailDTO{
		WorkOrderDTO:                ToWorkOrderDTO(&detail.WorkOrder),
		CompanyAddress:              detail.CompanyAddress,
		CompanyCity:                 detail.CompanyCity,
		CompanyState:                detail.CompanyState,
		CompanyPincode:              detail.CompanyPincode,
		CompanyContactPerson:        detail.CompanyContactPerson,
		CompanyContactNumber:        detail.CompanyContactNumber,
		CompanyGST:                  detail.CompanyGST,
		CompanyBankName:             detail.CompanyBankName,
		CompanyAccountNumber:        detail.CompanyAccountNumber,
		CompanyIFSC:                 detail.CompanyIFSC,
		CompanySignatoryName:        detail.CompanySignatoryName,
		CompanySignatoryDesignation: detail.CompanySignatoryDesignation,
	}
	dto.CompanyName = detail.CompanyName
	return dto
}

// ToWorkOrderListDTO converts joined rows for list responses
func ToWorkOrderListDTO(details []domain.WorkOrderDetail) []domain.WorkOrderDTO {
	dtos := make([]domain.WorkOrderDTO, len(details))
	for i := range details {
		dtos[i] = ToWorkOrderDTO(&details[i].WorkOrder)
		dtos[i].CompanyName = details[i].CompanyName
	}
	return dtos
}

// ToActivityLogDTO converts ActivityLog to ActivityLogDTO
func ToActivityLogDTO(log *domain.ActivityLog) domain.ActivityLogDTO {
	details := json.RawMessage(log.Details)
	if len(details) == 0 {
		details = json.RawMessage("{}")
	}
	return domain.ActivityLogDTO{
		ID:           log.ID,
		ActivityType: log.ActivityType,
		EntityType:   log.EntityType,
		EntityID:     log.EntityID,
		Description:  log.Description,
		Details:      details,
		UserName:     log.UserName,
		UserEmail:    log.UserEmail,
		CreatedAt:    log.CreatedAt.Format(timestampLayout),
	}
}

// Money converts an exact amount to a JSON number
func Money(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

// Decimal converts a request number to an exact amount. Values are taken at
// their shortest decimal representation, so 0.1 stays 0.1.
func Decimal(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// TrimmedPtr trims a patch value in place and returns it
func TrimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
