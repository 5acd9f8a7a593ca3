package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/pbpl/workorder-api/internal/domain"
	"github.com/pbpl/workorder-api/internal/repository"
	"github.com/xuri/excelize/v2"
)

const registerSheet = "Work Orders"

var registerColumns = []struct {
	label string
	width float64
	value func(*domain.WorkOrderDTO) interface{}
}{
	{"WO Number", 32, func(w *domain.WorkOrderDTO) interface{} { return w.WONumber }},
	{"Date", 12, func(w *domain.WorkOrderDTO) interface{} { return w.Date }},
	{"Company", 28, func(w *domain.WorkOrderDTO) interface{} { return w.CompanyName }},
	{"Vendor", 28, func(w *domain.WorkOrderDTO) interface{} { return w.VendorName }},
	{"Site", 24, func(w *domain.WorkOrderDTO) interface{} { return w.SiteName }},
	{"Status", 12, func(w *domain.WorkOrderDTO) interface{} { return string(w.Status) }},
	{"Total Amount", 16, func(w *domain.WorkOrderDTO) interface{} { return w.TotalAmount }},
	{"SGST", 14, func(w *domain.WorkOrderDTO) interface{} { return w.SGSTAmount }},
	{"CGST", 14, func(w *domain.WorkOrderDTO) interface{} { return w.CGSTAmount }},
	{"Gross Amount", 16, func(w *domain.WorkOrderDTO) interface{} { return w.GrossAmount }},
	{"Retention", 14, func(w *domain.WorkOrderDTO) interface{} { return w.RetentionAmount }},
	{"Net Amount", 16, func(w *domain.WorkOrderDTO) interface{} { return w.NetAmount }},
}

// firstMoneyColumn is the 1-based index of the first amount column
const firstMoneyColumn = 7

// ExportRegister writes the filtered work orders as an xlsx workbook
func (s *WorkOrderService) ExportRegister(ctx context.Context, filters *repository.WorkOrderFilters) ([]byte, error) {
	workOrders, err := s.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(registerSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"1F4E79"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, fmt.Errorf("failed to create number style: %w", err)
	}

	for i, col := range registerColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetCellValue(registerSheet, cell, col.label); err != nil {
			return nil, err
		}
		_ = f.SetColWidth(registerSheet, name, name, col.width)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(registerColumns), 1)
	_ = f.SetCellStyle(registerSheet, "A1", lastHeader, headerStyle)

	for r := range workOrders {
		for c, col := range registerColumns {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(registerSheet, cell, col.value(&workOrders[r])); err != nil {
				return nil, err
			}
		}
	}

	if len(workOrders) > 0 {
		first, _ := excelize.CoordinatesToCellName(firstMoneyColumn, 2)
		last, _ := excelize.CoordinatesToCellName(len(registerColumns), len(workOrders)+1)
		_ = f.SetCellStyle(registerSheet, first, last, moneyStyle)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
