package service

import (
	"fmt"

	"github.com/pbpl/workorder-api/internal/auth"
	"github.com/pbpl/workorder-api/internal/domain"
	"github.com/pbpl/workorder-api/internal/mapper"
)

// ActivityEvent is an activity log entry waiting to be recorded
type ActivityEvent struct {
	ActivityType domain.ActivityType
	EntityType   domain.EntityType
	EntityID     string
	Description  string
	Details      map[string]interface{}
	Actor        auth.Actor
}

// FieldChange is one tracked difference between two versions of a record
type FieldChange struct {
	Field string      `json:"field"`
	From  interface{} `json:"from"`
	To    interface{} `json:"to"`
}

// trackedWorkOrderFields are compared when describing a work-order update
var trackedWorkOrderFields = []struct {
	name  string
	value func(*domain.WorkOrder) interface{}
}{
	{"wo_number", func(w *domain.WorkOrder) interface{} { return w.WONumber }},
	{"vendor_name", func(w *domain.WorkOrder) interface{} { return w.VendorName }},
	{"site_name", func(w *domain.WorkOrder) interface{} { return w.SiteName }},
	{"total_amount", func(w *domain.WorkOrder) interface{} { return mapper.Money(w.TotalAmount) }},
	{"net_amount", func(w *domain.WorkOrder) interface{} { return mapper.Money(w.NetAmount) }},
	{"status", func(w *domain.WorkOrder) interface{} { return string(w.Status) }},
	{"vendor_contact", func(w *domain.WorkOrder) interface{} { return w.VendorContact }},
	{"work_description", func(w *domain.WorkOrder) interface{} { return w.WorkDescription }},
}

// DiffWorkOrder lists the tracked fields that differ between before and after
func DiffWorkOrder(before, after *domain.WorkOrder) []FieldChange {
	changes := []FieldChange{}
	for _, f := range trackedWorkOrderFields {
		from, to := f.value(before), f.value(after)
		if from != to {
			changes = append(changes, FieldChange{Field: f.name, From: from, To: to})
		}
	}
	return changes
}

// CreateWorkOrderEvent describes a newly created work order
func CreateWorkOrderEvent(wo *domain.WorkOrder, actor auth.Actor) ActivityEvent {
	return ActivityEvent{
		ActivityType: domain.ActivityTypeCreate,
		EntityType:   domain.EntityTypeWorkOrder,
		EntityID:     wo.ID.String(),
		Description:  fmt.Sprintf("Work Order %s created for vendor %s", wo.WONumber, wo.VendorName),
		Details: map[string]interface{}{
			"wo_number":    wo.WONumber,
			"vendor_name":  wo.VendorName,
			"site_name":    wo.SiteName,
			"total_amount": mapper.Money(wo.TotalAmount),
			"net_amount":   mapper.Money(wo.NetAmount),
			"status":       wo.Status,
		},
		Actor: actor,
	}
}

// UpdateWorkOrderEvent describes an update. An update that changed none of
// the tracked fields yields an empty change list.
func UpdateWorkOrderEvent(before, after *domain.WorkOrder, actor auth.Actor) ActivityEvent {
	changes := DiffWorkOrder(before, after)
	fields := make([]string, len(changes))
	for i, c := range changes {
		fields[i] = c.Field
	}
	return ActivityEvent{
		ActivityType: domain.ActivityTypeUpdate,
		EntityType:   domain.EntityTypeWorkOrder,
		EntityID:     after.ID.String(),
		Description:  fmt.Sprintf("Work Order %s updated", after.WONumber),
		Details: map[string]interface{}{
			"wo_number":      after.WONumber,
			"changes":        changes,
			"updated_fields": fields,
		},
		Actor: actor,
	}
}

// DeleteWorkOrderEvent describes a deleted work order from its last snapshot
func DeleteWorkOrderEvent(wo *domain.WorkOrder, actor auth.Actor) ActivityEvent {
	return ActivityEvent{
		ActivityType: domain.ActivityTypeDelete,
		EntityType:   domain.EntityTypeWorkOrder,
		EntityID:     wo.ID.String(),
		Description:  fmt.Sprintf("Work Order %s deleted", wo.WONumber),
		Details: map[string]interface{}{
			"wo_number":   wo.WONumber,
			"vendor_name": wo.VendorName,
			"site_name":   wo.SiteName,
			"net_amount":  mapper.Money(wo.NetAmount),
		},
		Actor: actor,
	}
}

// StatusChangeEvent describes a status transition
func StatusChangeEvent(wo *domain.WorkOrder, from, to domain.WorkOrderStatus, actor auth.Actor) ActivityEvent {
	return ActivityEvent{
		ActivityType: domain.ActivityTypeStatusChange,
		EntityType:   domain.EntityTypeWorkOrder,
		EntityID:     wo.ID.String(),
		Description:  fmt.Sprintf("Work Order %s status changed from %s to %s", wo.WONumber, from, to),
		Details: map[string]interface{}{
			"wo_number":   wo.WONumber,
			"from_status": from,
			"to_status":   to,
		},
		Actor: actor,
	}
}

// CompanyEvent describes a company create, update or delete
func CompanyEvent(activityType domain.ActivityType, company *domain.Company, fields []string, actor auth.Actor) ActivityEvent {
	details := map[string]interface{}{
		"company_name": company.CompanyName,
		"gst_number":   company.GSTNumber,
	}
	if activityType == domain.ActivityTypeUpdate {
		details["updated_fields"] = fields
	}
	return ActivityEvent{
		ActivityType: activityType,
		EntityType:   domain.EntityTypeCompany,
		EntityID:     company.ID.String(),
		Description:  fmt.Sprintf("Company %s %s", company.CompanyName, pastTense(activityType)),
		Details:      details,
		Actor:        actor,
	}
}

// VendorEvent describes a vendor create, update or delete
func VendorEvent(activityType domain.ActivityType, vendor *domain.Vendor, fields []string, actor auth.Actor) ActivityEvent {
	details := map[string]interface{}{
		"vendor_name":  vendor.VendorName,
		"vendor_type":  vendor.VendorType,
		"status":       vendor.Status,
		"created_from": vendor.CreatedFrom,
	}
	if activityType == domain.ActivityTypeUpdate {
		details["updated_fields"] = fields
	}
	return ActivityEvent{
		ActivityType: activityType,
		EntityType:   domain.EntityTypeVendor,
		EntityID:     vendor.ID.String(),
		Description:  fmt.Sprintf("Vendor %s %s", vendor.VendorName, pastTense(activityType)),
		Details:      details,
		Actor:        actor,
	}
}

func pastTense(t domain.ActivityType) string {
	switch t {
	case domain.ActivityTypeCreate:
		return "created"
	case domain.ActivityTypeDelete:
		return "deleted"
	default:
		return "updated"
	}
}
