package handlers

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"erp-console/internal/apiclient"
	"erp-console/internal/middleware"
	"erp-console/internal/models"
)

// Card is one dashboard figure. Failed cards render an error marker.
type Card struct {
	Title  string
	Value  string
	Href   string
	Failed bool
}

type cardSource struct {
	title string
	href  string
	fetch func(ctx context.Context, api *apiclient.Client) (int, error)
}

func usersTotal(role models.UserRole) func(context.Context, *apiclient.Client) (int, error) {
	return func(ctx context.Context, api *apiclient.Client) (int, error) {
		page, err := api.ListUsers(ctx, models.UserFilter{Page: 1, Limit: 1, Role: role})
		return page.Pagination.Total, err
	}
}

func tasksCount(status models.TaskStatus) func(context.Context, *apiclient.Client) (int, error) {
	return func(ctx context.Context, api *apiclient.Client) (int, error) {
		tasks, err := api.ListTasks(ctx)
		return countTasks(tasks, status), err
	}
}

func myTasksCount(status models.TaskStatus) func(context.Context, *apiclient.Client) (int, error) {
	return func(ctx context.Context, api *apiclient.Client) (int, error) {
		tasks, err := api.MyTasks(ctx)
		return countTasks(tasks, status), err
	}
}

func countTasks(tasks []models.Task, status models.TaskStatus) int {
	if status == "" {
		return len(tasks)
	}
	n := 0
	for _, t := range tasks {
		if t.Status == status {
			n++
		}
	}
	return n
}

func payrollCount(ctx context.Context, api *apiclient.Client) (int, error) {
	p, err := api.ListPayroll(ctx)
	return len(p), err
}

func mySlipsCount(ctx context.Context, api *apiclient.Client) (int, error) {
	p, err := api.MyPayroll(ctx)
	return len(p), err
}

func itemsCount(lowOnly bool) func(context.Context, *apiclient.Client) (int, error) {
	return func(ctx context.Context, api *apiclient.Client) (int, error) {
		items, err := api.ListItems(ctx)
		if !lowOnly {
			return len(items), err
		}
		n := 0
		for _, it := range items {
			if it.StockLevel() != "ok" {
				n++
			}
		}
		return n, err
	}
}

func logsCount(ctx context.Context, api *apiclient.Client) (int, error) {
	l, err := api.InventoryLogs(ctx)
	return len(l), err
}

func assetsCount(ctx context.Context, api *apiclient.Client) (int, error) {
	l, err := api.MyInventoryLogs(ctx)
	return len(l), err
}

// dashboardCards lists the figures each role sees. Unknown roles see none.
var dashboardCards = map[models.UserRole][]cardSource{
	models.RoleAdmin: {
		{title: "Users", href: "/users", fetch: usersTotal("")},
		{title: "Tasks", href: "/tasks", fetch: tasksCount("")},
		{title: "Payroll entries", href: "/payroll", fetch: payrollCount},
		{title: "Inventory items", href: "/inventory", fetch: itemsCount(false)},
	},
	models.RoleManager: {
		{title: "Team members", href: "/team", fetch: usersTotal(models.RoleEmployee)},
		{title: "Tasks", href: "/tasks", fetch: tasksCount("")},
		{title: "Late tasks", href: "/tasks", fetch: tasksCount(models.TaskLate)},
	},
	models.RoleHR: {
		{title: "Employees", href: "/employees", fetch: usersTotal("")},
		{title: "Payroll entries", href: "/payroll", fetch: payrollCount},
	},
	models.RoleInventory: {
		{title: "Inventory items", href: "/inventory", fetch: itemsCount(false)},
		{title: "Low stock", href: "/inventory", fetch: itemsCount(true)},
		{title: "Stock movements", href: "/inventory-logs", fetch: logsCount},
	},
	models.RoleEmployee: {
		{title: "Pending tasks", href: "/my-tasks", fetch: myTasksCount(models.TaskPending)},
		{title: "Salary slips", href: "/salary", fetch: mySlipsCount},
		{title: "Assets", href: "/assets", fetch: assetsCount},
	},
}

const recentActivity = 8

// Dashboard fetches every card concurrently. A failing card never fails the
// page.
func (h *Handler) Dashboard(c *gin.Context) {
	sess := h.actor(c)
	api := middleware.API(c)
	sources := dashboardCards[sess.Role]

	cards := make([]Card, len(sources))
	var (
		mu       sync.Mutex
		lost     bool
		activity []models.AuditLog
	)

	g, ctx := errgroup.WithContext(c.Request.Context())
	for i, src := range sources {
		i, src := i, src
		cards[i] = Card{Title: src.title, Href: src.href}
		g.Go(func() error {
			n, err := src.fetch(ctx, api)
			if err != nil {
				h.Log.Debug().Err(err).Str("card", src.title).Msg("dashboard card failed")
				cards[i].Failed = true
				if apiclient.KindOf(err) == apiclient.KindAuth {
					mu.Lock()
					lost = true
					mu.Unlock()
				}
				return nil
			}
			cards[i].Value = strconv.Itoa(n)
			return nil
		})
	}
	if sess.Role == models.RoleAdmin && h.Audit != nil && h.Audit.Enabled() {
		g.Go(func() error {
			logs, err := h.Audit.Recent(ctx, recentActivity)
			if err != nil {
				h.Log.Warn().Err(err).Msg("recent activity unavailable")
				return nil
			}
			activity = logs
			return nil
		})
	}
	_ = g.Wait()

	if lost {
		middleware.RedirectToLogin(c)
		return
	}

	h.render(c, http.StatusOK, "dashboard.html", gin.H{
		"Cards":    cards,
		"Activity": activity,
	})
}
