package services

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/fadhlanhapp/billsplit-backend/models"
)

// ExcelService handles Excel export functionality
type ExcelService struct {
	store BillStore
}

// NewExcelService creates a new Excel service
func NewExcelService(store BillStore) *ExcelService {
	return &ExcelService{store: store}
}

// ExportBillToExcel generates a workbook with the bill summary and the
// per-participant share breakdown.
func (s *ExcelService) ExportBillToExcel(billID string) (*excelize.File, string, error) {
	bill, err := s.store.GetBill(billID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()

	if err := s.createSummarySheet(f, bill); err != nil {
		return nil, "", fmt.Errorf("failed to create summary sheet: %v", err)
	}
	if err := s.createBreakdownSheet(f, bill); err != nil {
		return nil, "", fmt.Errorf("failed to create breakdown sheet: %v", err)
	}

	f.DeleteSheet("Sheet1")

	filename := fmt.Sprintf("%s_%s.xlsx", bill.BillID, time.Now().Format("20060102"))
	return f, filename, nil
}

func (s *ExcelService) createSummarySheet(f *excelize.File, bill *models.Bill) error {
	sheet := "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Bill", bill.Name},
		{"Date", bill.Date},
		{"Category", bill.Category},
		{"Subtotal", bill.SubtotalAmount},
		{"Tax", bill.TaxAmount},
		{"Service Charge", bill.ServiceChargeAmount},
		{"Rounding Adj", bill.RoundingAdj},
		{"Nett Amount", bill.NettAmount},
		{"Paid By", bill.PaidBy},
		{"Split Method", bill.SplitMethod},
		{},
		{"Item", "Qty", "Unit Price", "Nett Price"},
	}
	for _, item := range bill.Items {
		rows = append(rows, []interface{}{item.Name, item.Quantity, item.Price, item.NettPrice})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func (s *ExcelService) createBreakdownSheet(f *excelize.File, bill *models.Bill) error {
	sheet := "Breakdown"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Participant", "Item ID", "Percentage", "Value", "Total Paid"},
	}
	for _, participant := range bill.Participants {
		if len(participant.ItemsPaid) == 0 {
			rows = append(rows, []interface{}{participant.Email, "", "", "", participant.TotalPaid})
			continue
		}
		for i, share := range participant.ItemsPaid {
			total := interface{}("")
			if i == 0 {
				total = participant.TotalPaid
			}
			rows = append(rows, []interface{}{participant.Email, share.ID, share.Percentage, share.Value, total})
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
