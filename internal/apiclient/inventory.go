package apiclient

import (
	"context"
	"net/http"

	"erp-console/internal/models"
)

type itemsEnvelope struct {
	Items []models.InventoryItem `json:"items"`
}

type itemEnvelope struct {
	Item models.InventoryItem `json:"item"`
}

type logsEnvelope struct {
	Logs []models.InventoryLog `json:"logs"`
}

func (c *Client) ListItems(ctx context.Context) ([]models.InventoryItem, error) {
	var out itemsEnvelope
	err := c.do(ctx, http.MethodGet, "/inventory", nil, nil, &out)
	return out.Items, err
}

func (c *Client) AddItem(ctx context.Context, in models.InventoryItemInput) (models.InventoryItem, error) {
	var out itemEnvelope
	err := c.do(ctx, http.MethodPost, "/inventory", nil, in, &out)
	return out.Item, err
}

// Move records a stock movement; action picks /inventory/issue or /inventory/return.
func (c *Client) Move(ctx context.Context, action models.StockAction, in models.StockMovement) error {
	path := "/inventory/issue"
	if action == models.ActionReturn {
		path = "/inventory/return"
	}
	return c.do(ctx, http.MethodPost, path, nil, in, nil)
}

func (c *Client) InventoryLogs(ctx context.Context) ([]models.InventoryLog, error) {
	var out logsEnvelope
	err := c.do(ctx, http.MethodGet, "/inventory/logs", nil, nil, &out)
	return out.Logs, err
}

func (c *Client) MyInventoryLogs(ctx context.Context) ([]models.InventoryLog, error) {
	var out logsEnvelope
	err := c.do(ctx, http.MethodGet, "/inventory/my-logs", nil, nil, &out)
	return out.Logs, err
}
