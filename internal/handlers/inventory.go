package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"erp-console/internal/apiclient"
	"erp-console/internal/middleware"
	"erp-console/internal/models"
	"erp-console/internal/views"
)

var (
	itemFields     = []string{"itemName", "quantity"}
	movementFields = []string{"itemId", "userId", "quantity"}
)

func itemDrawer() views.Drawer {
	return views.Drawer{
		ID:          "item-form",
		Title:       "Add Item",
		Action:      "/inventory",
		SubmitLabel: "Add item",
		BusyLabel:   "Adding...",
		Fields: []views.Field{
			{Name: "itemName", Label: "Item name", Type: views.FieldText, Required: true},
			{Name: "quantity", Label: "Quantity", Type: views.FieldNumber, Required: true, Step: "1"},
		},
	}
}

func movementDrawer(action models.StockAction, items []models.InventoryItem, people []models.User) views.Drawer {
	item := views.ItemOptions(items, "")
	who := views.UserOptions("userId", "Select employee", people, "")
	d := views.Drawer{
		ID:          "issue-form",
		Title:       "Issue Item",
		Action:      "/inventory/issue",
		SubmitLabel: "Issue",
		BusyLabel:   "Issuing...",
		Fields: []views.Field{
			{Name: "itemId", Label: "Item", Type: views.FieldSelect, Required: true, Select: &item},
			{Name: "userId", Label: "Employee", Type: views.FieldSelect, Required: true, Select: &who},
			{Name: "quantity", Label: "Quantity", Type: views.FieldNumber, Required: true, Step: "1"},
		},
	}
	if action == models.ActionReturn {
		d.ID = "return-form"
		d.Title = "Return Item"
		d.Action = "/inventory/return"
		d.SubmitLabel = "Return"
		d.BusyLabel = "Returning..."
	}
	return d
}

type inventoryDrawers struct {
	Add    views.Drawer
	Issue  views.Drawer
	Return views.Drawer
}

func (h *Handler) inventoryPage(c *gin.Context, status int, adjust func(*inventoryDrawers)) {
	api := middleware.API(c)
	var (
		items     []models.InventoryItem
		people    []models.User
		itemsErr  error
		peopleErr error
	)

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		items, itemsErr = api.ListItems(ctx)
		return nil
	})
	g.Go(func() error {
		page, err := api.ListUsers(ctx, models.UserFilter{Page: 1, Limit: directoryLimit, Role: models.RoleEmployee})
		people, peopleErr = page.Users, err
		return nil
	})
	_ = g.Wait()

	if sessionLost(c, itemsErr) || sessionLost(c, peopleErr) {
		return
	}

	drawers := inventoryDrawers{
		Add:    itemDrawer(),
		Issue:  movementDrawer(models.ActionIssue, items, people),
		Return: movementDrawer(models.ActionReturn, items, people),
	}
	switch c.Query("open") {
	case "add":
		drawers.Add.Open = true
	case "issue":
		drawers.Issue.Open = true
	case "return":
		drawers.Return.Open = true
	}
	if adjust != nil {
		adjust(&drawers)
	}

	data := gin.H{"Items": items, "Drawers": drawers}
	if itemsErr != nil {
		data["LoadError"] = loadFailed(itemsErr, "inventory")
	} else if peopleErr != nil {
		// issuing still works by id; only the picker is empty
		h.Log.Debug().Err(peopleErr).Msg("employee picker unavailable")
	}
	h.render(c, status, "inventory.html", data)
}

func (h *Handler) ListInventory(c *gin.Context) {
	h.inventoryPage(c, http.StatusOK, nil)
}

// quantity coerces a form value; anything that is not a number becomes zero.
func quantity(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func (h *Handler) AddItem(c *gin.Context) {
	values := formValues(c, itemFields...)

	if missing := itemDrawer().MissingRequired(values); len(missing) > 0 {
		h.inventoryPage(c, http.StatusBadRequest, func(d *inventoryDrawers) {
			d.Add = d.Add.Failed(requiredMessage(missing), values)
		})
		return
	}

	it, err := middleware.API(c).AddItem(c.Request.Context(), models.InventoryItemInput{
		ItemName: values["itemName"],
		Quantity: quantity(values["quantity"]),
	})
	if err != nil {
		if sessionLost(c, err) {
			return
		}
		h.inventoryPage(c, http.StatusUnprocessableEntity, func(d *inventoryDrawers) {
			d.Add = d.Add.Failed(apiclient.UserMessage(err, "Could not add the item."), values)
		})
		return
	}

	h.audit(c, "inventory", it.ID, "create", values["itemName"])
	done(c, "Item added.", "/inventory")
}

func (h *Handler) IssueItem(c *gin.Context)  { h.move(c, models.ActionIssue) }
func (h *Handler) ReturnItem(c *gin.Context) { h.move(c, models.ActionReturn) }

func (h *Handler) move(c *gin.Context, action models.StockAction) {
	values := formValues(c, movementFields...)
	pick := func(d *inventoryDrawers) *views.Drawer {
		if action == models.ActionReturn {
			return &d.Return
		}
		return &d.Issue
	}

	if missing := movementDrawer(action, nil, nil).MissingRequired(values); len(missing) > 0 {
		h.inventoryPage(c, http.StatusBadRequest, func(d *inventoryDrawers) {
			p := pick(d)
			*p = p.Failed(requiredMessage(missing), values)
		})
		return
	}

	err := middleware.API(c).Move(c.Request.Context(), action, models.StockMovement{
		ItemID:   values["itemId"],
		UserID:   values["userId"],
		Quantity: quantity(values["quantity"]),
	})
	if err != nil {
		if sessionLost(c, err) {
			return
		}
		h.inventoryPage(c, http.StatusUnprocessableEntity, func(d *inventoryDrawers) {
			p := pick(d)
			*p = p.Failed(apiclient.UserMessage(err, "Could not record the movement."), values)
		})
		return
	}

	h.audit(c, "inventory", values["itemId"], string(action), "qty "+values["quantity"]+" for "+values["userId"])
	msg := "Item issued."
	if action == models.ActionReturn {
		msg = "Item returned."
	}
	done(c, msg, "/inventory")
}

func (h *Handler) InventoryLogs(c *gin.Context) {
	logs, err := middleware.API(c).InventoryLogs(c.Request.Context())
	data := gin.H{"Logs": logs}
	if err != nil {
		if sessionLost(c, err) {
			return
		}
		data["LoadError"] = loadFailed(err, "stock movements")
	}
	h.render(c, http.StatusOK, "inventory_logs.html", data)
}

func (h *Handler) Assets(c *gin.Context) {
	logs, err := middleware.API(c).MyInventoryLogs(c.Request.Context())
	data := gin.H{"Logs": logs}
	if err != nil {
		if sessionLost(c, err) {
			return
		}
		data["LoadError"] = loadFailed(err, "your assets")
	}
	h.render(c, http.StatusOK, "assets.html", data)
}
