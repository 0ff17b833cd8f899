package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"erp-console/internal/models"
)

type payrollsEnvelope struct {
	Payrolls []models.Payroll `json:"payrolls"`
}

type payrollEnvelope struct {
	Payroll models.Payroll `json:"payroll"`
}

func (c *Client) ListPayroll(ctx context.Context) ([]models.Payroll, error) {
	var out payrollsEnvelope
	err := c.do(ctx, http.MethodGet, "/payroll", nil, nil, &out)
	return out.Payrolls, err
}

func (c *Client) MyPayroll(ctx context.Context) ([]models.Payroll, error) {
	var out payrollsEnvelope
	err := c.do(ctx, http.MethodGet, "/payroll/my-payroll", nil, nil, &out)
	return out.Payrolls, err
}

func (c *Client) GetPayroll(ctx context.Context, id string) (models.Payroll, error) {
	var out payrollEnvelope
	err := c.do(ctx, http.MethodGet, "/payroll/"+url.PathEscape(id), nil, nil, &out)
	return out.Payroll, err
}

func (c *Client) GeneratePayroll(ctx context.Context, in models.PayrollInput) (models.Payroll, error) {
	var out payrollEnvelope
	err := c.do(ctx, http.MethodPost, "/payroll", nil, in, &out)
	return out.Payroll, err
}
