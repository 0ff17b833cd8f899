package export

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"erp-console/internal/models"
)

var (
	colorBrand = &props.Color{Red: 70, Green: 95, Blue: 255}
	colorGray  = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// SlipEmployee is who the slip is issued to.
type SlipEmployee struct {
	Name  string
	Email string
	Role  models.UserRole
}

// SalarySlip renders one monthly payroll entry as a PDF.
func SalarySlip(company string, who SlipEmployee, p models.Payroll, issued time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Salary slip "+p.Month, true).
		WithAuthor(company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(slipHeader(company, p.Month, issued))
	m.AddRows(line.NewRow(1, props.Line{Color: colorBrand, Thickness: 0.5}))
	m.AddRows(employeeRow(who))
	m.AddRows(line.NewRow(4))
	m.AddRows(
		amountRow("Base salary", p.Salary, false),
		amountRow("Bonus", p.Bonus, false),
		amountRow("Deduction", p.Deduction.Neg(), false),
	)
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(amountRow("Net pay", p.FinalSalary, true))
	m.AddRows(line.NewRow(8))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("This slip was generated electronically and needs no signature.", props.Text{
			Size: 8, Color: colorGray, Align: align.Center,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("export: salary slip: %w", err)
	}
	return doc.GetBytes(), nil
}

func slipHeader(company, month string, issued time.Time) core.Row {
	period := month
	if t, err := time.Parse("2006-01", month); err == nil {
		period = t.Format("January 2006")
	}
	return row.New(20).Add(
		col.New(7).Add(
			text.New(company, props.Text{Style: fontstyle.Bold, Size: 14, Color: colorBrand, Top: 1}),
			text.New("Salary slip", props.Text{Size: 9, Top: 10, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(period, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1}),
			text.New("Issued "+issued.Format("02 Jan 2006"), props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

func employeeRow(who SlipEmployee) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("EMPLOYEE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorBrand, Top: 2}),
			text.New(who.Name, props.Text{Style: fontstyle.Bold, Size: 11, Top: 7}),
			text.New(fmt.Sprintf("%s   |   %s", who.Email, who.Role.Label()), props.Text{
				Size: 8, Top: 13, Color: colorGray,
			}),
		),
	)
}

func amountRow(label string, amount decimal.Decimal, bold bool) core.Row {
	style := fontstyle.Normal
	if bold {
		style = fontstyle.Bold
	}
	return row.New(8).Add(
		col.New(8).Add(text.New(label, props.Text{Style: style, Top: 2})),
		col.New(4).Add(text.New(amount.StringFixed(2), props.Text{Style: style, Align: align.Right, Top: 2})),
	)
}
