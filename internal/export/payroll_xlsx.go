// Package export renders payroll data as downloadable documents.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"erp-console/internal/models"
)

const payrollSheet = "Payroll"

var payrollHeader = []string{"Employee", "Email", "Month", "Base salary", "Bonus", "Deduction", "Final salary"}

// PayrollWorkbook writes payroll as an .xlsx workbook to w.
func PayrollWorkbook(w io.Writer, payroll []models.Payroll) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", payrollSheet); err != nil {
		return fmt.Errorf("export: rename sheet: %w", err)
	}

	headStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"465FFF"}},
	})
	if err != nil {
		return fmt.Errorf("export: header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return fmt.Errorf("export: money style: %w", err)
	}

	for i, h := range payrollHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(payrollSheet, cell, h); err != nil {
			return fmt.Errorf("export: header: %w", err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(payrollHeader), 1)
	if err := f.SetCellStyle(payrollSheet, "A1", last, headStyle); err != nil {
		return fmt.Errorf("export: header style: %w", err)
	}

	for r, p := range payroll {
		row := r + 2
		values := []any{
			p.User.Name,
			p.User.Email,
			p.Month,
			p.Salary.InexactFloat64(),
			p.Bonus.InexactFloat64(),
			p.Deduction.InexactFloat64(),
			p.FinalSalary.InexactFloat64(),
		}
		start, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(payrollSheet, start, &values); err != nil {
			return fmt.Errorf("export: row %d: %w", row, err)
		}
		from, _ := excelize.CoordinatesToCellName(4, row)
		to, _ := excelize.CoordinatesToCellName(7, row)
		if err := f.SetCellStyle(payrollSheet, from, to, moneyStyle); err != nil {
			return fmt.Errorf("export: row %d style: %w", row, err)
		}
	}

	if err := f.SetColWidth(payrollSheet, "A", "B", 28); err != nil {
		return fmt.Errorf("export: widths: %w", err)
	}
	if err := f.SetColWidth(payrollSheet, "C", "G", 16); err != nil {
		return fmt.Errorf("export: widths: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: write workbook: %w", err)
	}
	return nil
}
