package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BaseModel carries the primary key and timestamps shared by every table.
// IDs are assigned in BeforeCreate so the same models run on PostgreSQL and SQLite.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// BeforeCreate assigns a UUID when none was set
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// WorkOrderStatus represents the lifecycle status of a work order.
// Transitions between statuses are unrestricted.
type WorkOrderStatus string

const (
	WorkOrderStatusDraft      WorkOrderStatus = "Draft"
	WorkOrderStatusActive     WorkOrderStatus = "Active"
	WorkOrderStatusInProgress WorkOrderStatus = "In Progress"
	WorkOrderStatusCompleted  WorkOrderStatus = "Completed"
)

// WorkOrderStatuses lists every accepted status in display order
var WorkOrderStatuses = []WorkOrderStatus{
	WorkOrderStatusDraft,
	WorkOrderStatusActive,
	WorkOrderStatusInProgress,
	WorkOrderStatusCompleted,
}

// IsValid reports whether s is a known status
func (s WorkOrderStatus) IsValid() bool {
	for _, v := range WorkOrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// VendorType classifies a vendor
type VendorType string

const (
	VendorTypeServiceProvider VendorType = "Service Provider"
	VendorTypeContractor      VendorType = "Contractor"
)

// VendorTypes lists every accepted vendor type
var VendorTypes = []VendorType{VendorTypeServiceProvider, VendorTypeContractor}

// IsValid reports whether t is a known vendor type
func (t VendorType) IsValid() bool {
	return t == VendorTypeServiceProvider || t == VendorTypeContractor
}

// VendorStatus represents whether a vendor can be used on new work orders
type VendorStatus string

const (
	VendorStatusActive   VendorStatus = "Active"
	VendorStatusInactive VendorStatus = "Inactive"
)

// VendorStatuses lists every accepted vendor status
var VendorStatuses = []VendorStatus{VendorStatusActive, VendorStatusInactive}

// IsValid reports whether s is a known vendor status
func (s VendorStatus) IsValid() bool {
	return s == VendorStatusActive || s == VendorStatusInactive
}

// Vendor origins. created_from is free text; these are the values the API writes.
const (
	VendorCreatedFromManual = "Manual"
	VendorCreatedFromERP    = "ERP"
)

// AllowedRetentionPercents are the retention defaults a vendor may carry
var AllowedRetentionPercents = []int{0, 5, 10}

// ActivityType identifies what happened to an entity
type ActivityType string

const (
	ActivityTypeCreate       ActivityType = "CREATE"
	ActivityTypeUpdate       ActivityType = "UPDATE"
	ActivityTypeDelete       ActivityType = "DELETE"
	ActivityTypeStatusChange ActivityType = "STATUS_CHANGE"
)

// ActivityTypes lists every accepted activity type
var ActivityTypes = []ActivityType{
	ActivityTypeCreate,
	ActivityTypeUpdate,
	ActivityTypeDelete,
	ActivityTypeStatusChange,
}

// IsValid reports whether t is a known activity type
func (t ActivityType) IsValid() bool {
	for _, v := range ActivityTypes {
		if t == v {
			return true
		}
	}
	return false
}

// EntityType names the kind of record an activity refers to. The set is open.
type EntityType string

const (
	EntityTypeWorkOrder EntityType = "work_order"
	EntityTypeCompany   EntityType = "company"
	EntityTypeVendor    EntityType = "vendor"
)

// Company is a contracting party that issues work orders
type Company struct {
	BaseModel
	CompanyName          string `gorm:"type:varchar(200);not null;column:company_name" json:"company_name"`
	Address              string `gorm:"type:text" json:"address"`
	City                 string `gorm:"type:varchar(100)" json:"city"`
	State                string `gorm:"type:varchar(100)" json:"state"`
	Pincode              string `gorm:"type:varchar(10)" json:"pincode"`
	ContactPerson        string `gorm:"type:varchar(200);column:contact_person" json:"contact_person"`
	ContactNumber        string `gorm:"type:varchar(50);column:contact_number" json:"contact_number"`
	GSTNumber            string `gorm:"type:varchar(20);column:gst_number" json:"gst_number"`
	BankName             string `gorm:"type:varchar(200);column:bank_name" json:"bank_name"`
	BankAccountNumber    string `gorm:"type:varchar(50);column:bank_account_number" json:"bank_account_number"`
	BankIFSC             string `gorm:"type:varchar(20);column:bank_ifsc" json:"bank_ifsc"`
	SignatoryName        string `gorm:"type:varchar(200);column:signatory_name" json:"signatory_name"`
	SignatoryDesignation string `gorm:"type:varchar(200);column:signatory_designation" json:"signatory_designation"`
}

// TableName overrides the table name
func (Company) TableName() string {
	return "companies"
}

// Vendor is a service provider or contractor receiving work orders
type Vendor struct {
	BaseModel
	VendorName              string       `gorm:"type:varchar(200);not null;uniqueIndex:idx_vendors_vendor_name;column:vendor_name" json:"vendor_name"`
	VendorType              VendorType   `gorm:"type:varchar(50);not null;column:vendor_type" json:"vendor_type"`
	ContactPerson           string       `gorm:"type:varchar(200);column:contact_person" json:"contact_person"`
	ContactNumber           string       `gorm:"type:varchar(50);not null;column:contact_number" json:"contact_number"`
	Email                   string       `gorm:"type:varchar(255)" json:"email"`
	Address                 string       `gorm:"type:text" json:"address"`
	GSTNumber               string       `gorm:"type:varchar(20);column:gst_number" json:"gst_number"`
	PANNumber               string       `gorm:"type:varchar(20);column:pan_number" json:"pan_number"`
	BankName                string       `gorm:"type:varchar(200);column:bank_name" json:"bank_name"`
	BankAccountNumber       string       `gorm:"type:varchar(50);column:bank_account_number" json:"bank_account_number"`
	BankIFSC                string       `gorm:"type:varchar(20);column:bank_ifsc" json:"bank_ifsc"`
	DefaultRetentionPercent int          `gorm:"not null;default:0;column:default_retention_percent" json:"default_retention_percent"`
	Status                  VendorStatus `gorm:"type:varchar(20);not null;default:'Active'" json:"status"`
	CreatedFrom             string       `gorm:"type:varchar(50);not null;default:'Manual';column:created_from" json:"created_from"`
}

// TableName overrides the table name
func (Vendor) TableName() string {
	return "vendors"
}

// WorkOrder is a contractual instruction to a vendor for work at a site.
// Vendor fields are a copy taken at creation time; later vendor edits do not
// propagate. Derived amounts always satisfy the finance.Compute invariants.
type WorkOrder struct {
	BaseModel
	WONumber           string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_work_orders_wo_number;column:wo_number" json:"wo_number"`
	Date               time.Time       `gorm:"type:date;not null" json:"date"`
	CompanyID          uuid.UUID       `gorm:"type:uuid;not null;index;column:company_id" json:"company_id"`
	VendorName         string          `gorm:"type:varchar(200);not null;index;column:vendor_name" json:"vendor_name"`
	VendorContact      string          `gorm:"type:varchar(50);column:vendor_contact" json:"vendor_contact"`
	VendorAddress      string          `gorm:"type:text;column:vendor_address" json:"vendor_address"`
	VendorGST          string          `gorm:"type:varchar(20);column:vendor_gst" json:"vendor_gst"`
	SiteName           string          `gorm:"type:varchar(200);not null;column:site_name" json:"site_name"`
	ProjectDescription string          `gorm:"type:text;column:project_description" json:"project_description"`
	WorkDescription    string          `gorm:"type:text;not null;column:work_description" json:"work_description"`
	TotalAmount        decimal.Decimal `gorm:"type:numeric(15,2);not null;column:total_amount" json:"total_amount"`
	HasGST             bool            `gorm:"not null;default:true;column:has_gst" json:"has_gst"`
	SGSTPercent        decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0;column:sgst_percent" json:"sgst_percent"`
	CGSTPercent        decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0;column:cgst_percent" json:"cgst_percent"`
	SGSTAmount         decimal.Decimal `gorm:"type:numeric(18,6);not null;default:0;column:sgst_amount" json:"sgst_amount"`
	CGSTAmount         decimal.Decimal `gorm:"type:numeric(18,6);not null;default:0;column:cgst_amount" json:"cgst_amount"`
	GrossAmount        decimal.Decimal `gorm:"type:numeric(18,6);not null;default:0;column:gross_amount" json:"gross_amount"`
	RetentionPercent   decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0;column:retention_percent" json:"retention_percent"`
	RetentionAmount    decimal.Decimal `gorm:"type:numeric(18,6);not null;default:0;column:retention_amount" json:"retention_amount"`
	NetAmount          decimal.Decimal `gorm:"type:numeric(18,6);not null;default:0;column:net_amount" json:"net_amount"`
	PaymentTerms       string          `gorm:"type:text;column:payment_terms" json:"payment_terms"`
	VendorBankName     string          `gorm:"type:varchar(200);column:vendor_bank_name" json:"vendor_bank_name"`
	VendorBankAccount  string          `gorm:"type:varchar(50);column:vendor_bank_account" json:"vendor_bank_account"`
	VendorBankIFSC     string          `gorm:"type:varchar(20);column:vendor_bank_ifsc" json:"vendor_bank_ifsc"`
	Status             WorkOrderStatus `gorm:"type:varchar(20);not null;default:'Draft';index" json:"status"`
}

// TableName overrides the table name
func (WorkOrder) TableName() string {
	return "work_orders"
}

// WorkOrderDetail is a work order joined with its issuing company.
// Company fields are empty when the company has since been deleted.
type WorkOrderDetail struct {
	WorkOrder
	CompanyName                 string `gorm:"column:company_name" json:"company_name"`
	CompanyAddress              string `gorm:"column:company_address" json:"company_address"`
	CompanyCity                 string `gorm:"column:company_city" json:"company_city"`
	CompanyState                string `gorm:"column:company_state" json:"company_state"`
	CompanyPincode              string `gorm:"column:company_pincode" json:"company_pincode"`
	CompanyContactPerson        string `gorm:"column:company_contact_person" json:"company_contact_person"`
	CompanyContactNumber        string `gorm:"column:company_contact_number" json:"company_contact_number"`
	CompanyGST                  string `gorm:"column:company_gst" json:"company_gst"`
	CompanyBankName             string `gorm:"column:company_bank_name" json:"company_bank_name"`
	CompanyAccountNumber        string `gorm:"column:company_account_number" json:"company_account_number"`
	CompanyIFSC                 string `gorm:"column:company_ifsc" json:"company_ifsc"`
	CompanySignatoryName        string `gorm:"column:company_signatory_name" json:"company_signatory_name"`
	CompanySignatoryDesignation string `gorm:"column:company_signatory_designation" json:"company_signatory_designation"`
}

// ActivityLog is an append-only record of a change to an entity
type ActivityLog struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ActivityType ActivityType   `gorm:"type:varchar(30);not null;index;column:activity_type" json:"activity_type"`
	EntityType   EntityType     `gorm:"type:varchar(50);not null;index:idx_activity_logs_entity;column:entity_type" json:"entity_type"`
	EntityID     string         `gorm:"type:varchar(100);not null;index:idx_activity_logs_entity;column:entity_id" json:"entity_id"`
	Description  string         `gorm:"type:text;not null" json:"description"`
	Details      datatypes.JSON `gorm:"column:details" json:"details"`
	UserName     string         `gorm:"type:varchar(200);column:user_name" json:"user_name"`
	UserEmail    string         `gorm:"type:varchar(255);column:user_email" json:"user_email"`
	CreatedAt    time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`
}

// TableName overrides the table name
func (ActivityLog) TableName() string {
	return "activity_logs"
}

// BeforeCreate assigns a UUID when none was set
func (a *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// NumberSequence tracks the last issued work-order sequence per scope.
// Scope is a calendar day key (YYYY-MM-DD) in the configured timezone.
type NumberSequence struct {
	Scope        string    `gorm:"type:varchar(20);primaryKey"`
	LastSequence int       `gorm:"not null;default:0;column:last_sequence"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName overrides the table name
func (NumberSequence) TableName() string {
	return "number_sequences"
}
