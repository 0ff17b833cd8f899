package models

import "github.com/shopspring/decimal"

type Payroll struct {
	ID          string          `json:"_id"`
	User        Ref             `json:"userId"`
	Month       string          `json:"month"`
	Salary      decimal.Decimal `json:"salary"`
	Bonus       decimal.Decimal `json:"bonus"`
	Deduction   decimal.Decimal `json:"deduction"`
	FinalSalary decimal.Decimal `json:"finalSalary"`
}

// PayrollInput is the payload for POST /payroll. Month is "YYYY-MM".
type PayrollInput struct {
	UserID string          `json:"userId"`
	Month  string          `json:"month"`
	Bonus  decimal.Decimal `json:"bonus"`
}
