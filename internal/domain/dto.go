package domain

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Response DTOs. Money is exposed as JSON numbers; dates as YYYY-MM-DD and
// timestamps as RFC 3339.

type CompanyDTO struct {
	ID                   uuid.UUID `json:"id"`
	CompanyName          string    `json:"company_name"`
	Address              string    `json:"address"`
	City                 string    `json:"city"`
	State                string    `json:"state"`
	Pincode              string    `json:"pincode"`
	ContactPerson        string    `json:"contact_person"`
	ContactNumber        string    `json:"contact_number"`
	GSTNumber            string    `json:"gst_number"`
	BankName             string    `json:"bank_name"`
	BankAccountNumber    string    `json:"bank_account_number"`
	BankIFSC             string    `json:"bank_ifsc"`
	SignatoryName        string    `json:"signatory_name"`
	SignatoryDesignation string    `json:"signatory_designation"`
	CreatedAt            string    `json:"created_at"`
	UpdatedAt            string    `json:"updated_at"`
}

type VendorDTO struct {
	ID                      uuid.UUID    `json:"id"`
	VendorName              string       `json:"vendor_name"`
	VendorType              VendorType   `json:"vendor_type"`
	ContactPerson           string       `json:"contact_person"`
	ContactNumber           string       `json:"contact_number"`
	Email                   string       `json:"email"`
	Address                 string       `json:"address"`
	GSTNumber               string       `json:"gst_number"`
	PANNumber               string       `json:"pan_number"`
	BankName                string       `json:"bank_name"`
	BankAccountNumber       string       `json:"bank_account_number"`
	BankIFSC                string       `json:"bank_ifsc"`
	DefaultRetentionPercent int          `json:"default_retention_percent"`
	Status                  VendorStatus `json:"status"`
	CreatedFrom             string       `json:"created_from"`
	CreatedAt               string       `json:"created_at"`
	UpdatedAt               string       `json:"updated_at"`
}

type WorkOrderDTO struct {
	ID                 uuid.UUID       `json:"id"`
	WONumber           string          `json:"wo_number"`
	Date               string          `json:"date"`
	CompanyID          uuid.UUID       `json:"company_id"`
	CompanyName        string          `json:"company_name,omitempty"`
	VendorName         string          `json:"vendor_name"`
	VendorContact      string          `json:"vendor_contact"`
	VendorAddress      string          `json:"vendor_address"`
	VendorGST          string          `json:"vendor_gst"`
	SiteName           string          `json:"site_name"`
	ProjectDescription string          `json:"project_description"`
	WorkDescription    string          `json:"work_description"`
	TotalAmount        float64         `json:"total_amount"`
	HasGST             bool            `json:"has_gst"`
	SGSTPercent        float64         `json:"sgst_percent"`
	CGSTPercent        float64         `json:"cgst_percent"`
	SGSTAmount         float64         `json:"sgst_amount"`
	CGSTAmount         float64         `json:"cgst_amount"`
	GrossAmount        float64         `json:"gross_amount"`
	RetentionPercent   float64         `json:"retention_percent"`
	RetentionAmount    float64         `json:"retention_amount"`
	NetAmount          float64         `json:"net_amount"`
	PaymentTerms       string          `json:"payment_terms"`
	VendorBankName     string          `json:"vendor_bank_name"`
	VendorBankAccount  string          `json:"vendor_bank_account"`
	VendorBankIFSC     string          `json:"vendor_bank_ifsc"`
	Status             WorkOrderStatus `json:"status"`
	CreatedAt          string          `json:"created_at"`
	UpdatedAt          string          `json:"updated_at"`
}

// WorkOrderDetailDTO adds the issuing company's details to a work order
type WorkOrderDetailDTO struct {
	WorkOrderDTO
	CompanyAddress              string `json:"company_address"`
	CompanyCity                 string `json:"company_city"`
	CompanyState                string `json:"company_state"`
	CompanyPincode              string `json:"company_pincode"`
	CompanyContactPerson        string `json:"company_contact_person"`
	CompanyContactNumber        string `json:"company_contact_number"`
	CompanyGST                  string `json:"company_gst"`
	CompanyBankName             string `json:"company_bank_name"`
	CompanyAccountNumber        string `json:"company_account_number"`
	CompanyIFSC                 string `json:"company_ifsc"`
	CompanySignatoryName        string `json:"company_signatory_name"`
	CompanySignatoryDesignation string `json:"company_signatory_designation"`
}

type ActivityLogDTO struct {
	ID           uuid.UUID       `json:"id"`
	ActivityType ActivityType    `json:"activity_type"`
	EntityType   EntityType      `json:"entity_type"`
	EntityID     string          `json:"entity_id"`
	Description  string          `json:"description"`
	Details      json.RawMessage `json:"details" swaggertype:"object"`
	UserName     string          `json:"user_name"`
	UserEmail    string          `json:"user_email"`
	CreatedAt    string          `json:"created_at"`
}

// Pagination describes one page of a paginated listing
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// PaymentStatus is derived from a work order's status for the payments view
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusDue     PaymentStatus = "Due"
	PaymentStatusOverdue PaymentStatus = "Overdue"
)

type PendingPaymentDTO struct {
	WorkOrderDTO
	PaymentStatus PaymentStatus `json:"payment_status"`
}

type PendingPaymentSummary struct {
	TotalOutstanding float64 `json:"total_outstanding"`
	OverdueCount     int     `json:"overdue_count"`
	DueCount         int     `json:"due_count"`
	PendingCount     int     `json:"pending_count"`
}

type DashboardStatsDTO struct {
	TotalWorkOrders     int64            `json:"total_work_orders"`
	ActiveWorkOrders    int64            `json:"active_work_orders"`
	PendingApprovals    int64            `json:"pending_approvals"`
	CompletedWorkOrders int64            `json:"completed_work_orders"`
	StatusCounts        map[string]int64 `json:"status_counts"`
	TotalNetValue       float64          `json:"total_net_value"`
	TotalCompanies      int64            `json:"total_companies"`
	TotalVendors        int64            `json:"total_vendors"`
	RecentWorkOrders    []WorkOrderDTO   `json:"recent_work_orders"`
}

// Response envelopes

type WorkOrderResponse struct {
	Success   bool                `json:"success"`
	WorkOrder *WorkOrderDetailDTO `json:"workOrder"`
}

type WorkOrderListResponse struct {
	Success    bool           `json:"success"`
	WorkOrders []WorkOrderDTO `json:"workOrders"`
}

type PendingPaymentsResponse struct {
	Success         bool                  `json:"success"`
	PendingPayments []PendingPaymentDTO   `json:"pendingPayments"`
	Summary         PendingPaymentSummary `json:"summary"`
}

type CompanyResponse struct {
	Success bool        `json:"success"`
	Company *CompanyDTO `json:"company"`
}

type CompanyListResponse struct {
	Success   bool         `json:"success"`
	Companies []CompanyDTO `json:"companies"`
}

type VendorResponse struct {
	Success bool       `json:"success"`
	Vendor  *VendorDTO `json:"vendor"`
}

type VendorListResponse struct {
	Success bool        `json:"success"`
	Vendors []VendorDTO `json:"vendors"`
}

type ActivityLogResponse struct {
	Success     bool            `json:"success"`
	ActivityLog *ActivityLogDTO `json:"activityLog"`
	Message     string          `json:"message,omitempty"`
}

type ActivityLogListResponse struct {
	Success      bool             `json:"success"`
	ActivityLogs []ActivityLogDTO `json:"activityLogs"`
	Pagination   *Pagination      `json:"pagination,omitempty"`
}

// AuthUserDTO describes the caller as resolved by the auth middleware
type AuthUserDTO struct {
	ID            string   `json:"id,omitempty"`
	Name          string   `json:"name"`
	Email         string   `json:"email,omitempty"`
	Roles         []string `json:"roles"`
	IsAdmin       bool     `json:"isAdmin"`
	Authenticated bool     `json:"authenticated"`
}

type AuthUserResponse struct {
	Success bool        `json:"success"`
	User    AuthUserDTO `json:"user"`
}

type DashboardStatsResponse struct {
	Success bool              `json:"success"`
	Stats   DashboardStatsDTO `json:"stats"`
}

// Request DTOs. Pointer fields distinguish "absent or null" from zero values;
// update requests are typed patches and only non-nil fields are written.

type CreateWorkOrderRequest struct {
	WONumber           string   `json:"wo_number" validate:"max=100"`
	Date               string   `json:"date"`
	CompanyID          string   `json:"company_id"`
	VendorName         string   `json:"vendor_name" validate:"max=200"`
	VendorContact      string   `json:"vendor_contact" validate:"max=50"`
	VendorAddress      string   `json:"vendor_address"`
	VendorGST          string   `json:"vendor_gst" validate:"max=20"`
	SiteName           string   `json:"site_name" validate:"max=200"`
	ProjectDescription string   `json:"project_description"`
	WorkDescription    string   `json:"work_description"`
	TotalAmount        *float64 `json:"total_amount"`
	HasGST             *bool    `json:"has_gst"`
	SGSTPercent        *float64 `json:"sgst_percent"`
	CGSTPercent        *float64 `json:"cgst_percent"`
	RetentionPercent   *float64 `json:"retention_percent"`
	PaymentTerms       string   `json:"payment_terms"`
	VendorBankName     string   `json:"vendor_bank_name" validate:"max=200"`
	VendorBankAccount  string   `json:"vendor_bank_account" validate:"max=50"`
	VendorBankIFSC     string   `json:"vendor_bank_ifsc" validate:"max=20"`
	Status             string   `json:"status"`
}

type UpdateWorkOrderRequest struct {
	WONumber           *string  `json:"wo_number" validate:"omitempty,max=100"`
	Date               *string  `json:"date"`
	CompanyID          *string  `json:"company_id"`
	VendorName         *string  `json:"vendor_name" validate:"omitempty,max=200"`
	VendorContact      *string  `json:"vendor_contact" validate:"omitempty,max=50"`
	VendorAddress      *string  `json:"vendor_address"`
	VendorGST          *string  `json:"vendor_gst" validate:"omitempty,max=20"`
	SiteName           *string  `json:"site_name" validate:"omitempty,max=200"`
	ProjectDescription *string  `json:"project_description"`
	WorkDescription    *string  `json:"work_description"`
	TotalAmount        *float64 `json:"total_amount"`
	HasGST             *bool    `json:"has_gst"`
	SGSTPercent        *float64 `json:"sgst_percent"`
	CGSTPercent        *float64 `json:"cgst_percent"`
	RetentionPercent   *float64 `json:"retention_percent"`
	PaymentTerms       *string  `json:"payment_terms"`
	VendorBankName     *string  `json:"vendor_bank_name" validate:"omitempty,max=200"`
	VendorBankAccount  *string  `json:"vendor_bank_account" validate:"omitempty,max=50"`
	VendorBankIFSC     *string  `json:"vendor_bank_ifsc" validate:"omitempty,max=20"`
	Status             *string  `json:"status"`
}

type CreateCompanyRequest struct {
	CompanyName          string `json:"company_name" validate:"max=200"`
	Address              string `json:"address"`
	City                 string `json:"city" validate:"max=100"`
	State                string `json:"state" validate:"max=100"`
	Pincode              string `json:"pincode" validate:"max=10"`
	ContactPerson        string `json:"contact_person" validate:"max=200"`
	ContactNumber        string `json:"contact_number" validate:"max=50"`
	GSTNumber            string `json:"gst_number" validate:"max=20"`
	BankName             string `json:"bank_name" validate:"max=200"`
	BankAccountNumber    string `json:"bank_account_number" validate:"max=50"`
	BankIFSC             string `json:"bank_ifsc" validate:"max=20"`
	SignatoryName        string `json:"signatory_name" validate:"max=200"`
	SignatoryDesignation string `json:"signatory_designation" validate:"max=200"`
}

type UpdateCompanyRequest struct {
	CompanyName          *string `json:"company_name" validate:"omitempty,max=200"`
	Address              *string `json:"address"`
	City                 *string `json:"city" validate:"omitempty,max=100"`
	State                *string `json:"state" validate:"omitempty,max=100"`
	Pincode              *string `json:"pincode" validate:"omitempty,max=10"`
	ContactPerson        *string `json:"contact_person" validate:"omitempty,max=200"`
	ContactNumber        *string `json:"contact_number" validate:"omitempty,max=50"`
	GSTNumber            *string `json:"gst_number" validate:"omitempty,max=20"`
	BankName             *string `json:"bank_name" validate:"omitempty,max=200"`
	BankAccountNumber    *string `json:"bank_account_number" validate:"omitempty,max=50"`
	BankIFSC             *string `json:"bank_ifsc" validate:"omitempty,max=20"`
	SignatoryName        *string `json:"signatory_name" validate:"omitempty,max=200"`
	SignatoryDesignation *string `json:"signatory_designation" validate:"omitempty,max=200"`
}

type CreateVendorRequest struct {
	VendorName              string `json:"vendor_name" validate:"max=200"`
	VendorType              string `json:"vendor_type"`
	ContactPerson           string `json:"contact_person" validate:"max=200"`
	ContactNumber           string `json:"contact_number" validate:"max=50"`
	Email                   string `json:"email" validate:"omitempty,email,max=255"`
	Address                 string `json:"address"`
	GSTNumber               string `json:"gst_number" validate:"max=20"`
	PANNumber               string `json:"pan_number" validate:"max=20"`
	BankName                string `json:"bank_name" validate:"max=200"`
	BankAccountNumber       string `json:"bank_account_number" validate:"max=50"`
	BankIFSC                string `json:"bank_ifsc" validate:"max=20"`
	DefaultRetentionPercent *int   `json:"default_retention_percent"`
	Status                  string `json:"status"`
	CreatedFrom             string `json:"created_from" validate:"max=50"`
}

type UpdateVendorRequest struct {
	VendorName              *string `json:"vendor_name" validate:"omitempty,max=200"`
	VendorType              *string `json:"vendor_type"`
	ContactPerson           *string `json:"contact_person" validate:"omitempty,max=200"`
	ContactNumber           *string `json:"contact_number" validate:"omitempty,max=50"`
	Email                   *string `json:"email" validate:"omitempty,email,max=255"`
	Address                 *string `json:"address"`
	GSTNumber               *string `json:"gst_number" validate:"omitempty,max=20"`
	PANNumber               *string `json:"pan_number" validate:"omitempty,max=20"`
	BankName                *string `json:"bank_name" validate:"omitempty,max=200"`
	BankAccountNumber       *string `json:"bank_account_number" validate:"omitempty,max=50"`
	BankIFSC                *string `json:"bank_ifsc" validate:"omitempty,max=20"`
	DefaultRetentionPercent *int    `json:"default_retention_percent"`
	Status                  *string `json:"status"`
}

type CreateActivityLogRequest struct {
	ActivityType string          `json:"activity_type"`
	EntityType   string          `json:"entity_type" validate:"max=50"`
	EntityID     string          `json:"entity_id" validate:"max=100"`
	Description  string          `json:"description"`
	Details      json.RawMessage `json:"details" swaggertype:"object"`
	UserName     string          `json:"user_name" validate:"max=200"`
	UserEmail    string          `json:"user_email" validate:"omitempty,max=255"`
}

// ERPVendor is a vendor record read from the ERP data warehouse
type ERPVendor struct {
	VendorName        string
	VendorType        string
	ContactPerson     string
	ContactNumber     string
	Email             string
	Address           string
	GSTNumber         string
	PANNumber         string
	BankName          string
	BankAccountNumber string
	BankIFSC          string
}

// VendorImportResult counts the outcome of an ERP vendor import
type VendorImportResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}
