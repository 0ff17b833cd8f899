package access

import (
	"strings"

	"erp-console/internal/models"
)

// RouteRule associates a route pattern with the roles allowed on it.
// An empty Roles set means any authenticated session.
type RouteRule struct {
	Path  string
	Roles []models.UserRole
}

// Allows reports whether role may use the route. Unknown roles are only
// admitted to unrestricted routes.
func (r RouteRule) Allows(role models.UserRole) bool {
	if len(r.Roles) == 0 {
		return true
	}
	if !role.Valid() {
		return false
	}
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// Restricted reports whether the rule names an explicit role set.
func (r RouteRule) Restricted() bool { return len(r.Roles) > 0 }

var (
	anyRole       []models.UserRole
	adminOnly     = []models.UserRole{models.RoleAdmin}
	taskRoles     = []models.UserRole{models.RoleAdmin, models.RoleManager}
	payrollRoles  = []models.UserRole{models.RoleAdmin, models.RoleHR}
	stockRoles    = []models.UserRole{models.RoleAdmin, models.RoleInventory}
	managerOnly   = []models.UserRole{models.RoleManager}
	hrOnly        = []models.UserRole{models.RoleHR}
	employeeOnly  = []models.UserRole{models.RoleEmployee}
	inventoryOnly = []models.UserRole{models.RoleInventory}
)

// page is one row of the declarative table: a route rule plus, when it shows
// up in the sidebar, its menu label, icon and group.
type page struct {
	rule  RouteRule
	label string
	icon  string
	group string // sidebar group label; empty for a top-level entry
}

// pages is the single source of truth for both the guard and the sidebar.
// Sidebar order follows table order.
var pages = []page{
	{rule: RouteRule{"/dashboard", anyRole}, label: "Dashboard", icon: "grid"},
	{rule: RouteRule{"/users", adminOnly}, label: "All Users", icon: "users", group: "Users"},
	{rule: RouteRule{"/users/add", adminOnly}, label: "Add User", icon: "users", group: "Users"},
	{rule: RouteRule{"/team", managerOnly}, label: "Team", icon: "users"},
	{rule: RouteRule{"/employees", hrOnly}, label: "Employees", icon: "users"},
	{rule: RouteRule{"/tasks", taskRoles}, label: "Tasks", icon: "tasks"},
	{rule: RouteRule{"/payroll", payrollRoles}, label: "Payroll", icon: "wallet"},
	{rule: RouteRule{"/inventory", stockRoles}, label: "Inventory", icon: "box"},
	{rule: RouteRule{"/inventory-logs", inventoryOnly}, label: "Inventory Logs", icon: "list"},
	{rule: RouteRule{"/profile", employeeOnly}, label: "Profile", icon: "user"},
	{rule: RouteRule{"/my-tasks", employeeOnly}, label: "My Tasks", icon: "tasks"},
	{rule: RouteRule{"/salary", employeeOnly}, label: "Salary", icon: "wallet"},
	{rule: RouteRule{"/assets", employeeOnly}, label: "Assets", icon: "box"},

	// action and detail routes, not in the sidebar
	{rule: RouteRule{"/preferences", anyRole}},
	{rule: RouteRule{"/users/edit/:id", adminOnly}},
	{rule: RouteRule{"/users/:id/toggle-status", adminOnly}},
	{rule: RouteRule{"/users/:id/delete", adminOnly}},
	{rule: RouteRule{"/tasks/:id/delete", taskRoles}},
	{rule: RouteRule{"/payroll/export", payrollRoles}},
	{rule: RouteRule{"/inventory/issue", stockRoles}},
	{rule: RouteRule{"/inventory/return", stockRoles}},
	{rule: RouteRule{"/my-tasks/:id/done", employeeOnly}},
	{rule: RouteRule{"/salary/:id/slip", employeeOnly}},
}

var rulesByPath = func() map[string]RouteRule {
	m := make(map[string]RouteRule, len(pages))
	for _, p := range pages {
		if _, dup := m[p.rule.Path]; dup {
			panic("access: duplicate route rule for " + p.rule.Path)
		}
		m[p.rule.Path] = p.rule
	}
	return m
}()

// Rules returns every route rule in table order.
func Rules() []RouteRule {
	out := make([]RouteRule, 0, len(pages))
	for _, p := range pages {
		out = append(out, p.rule)
	}
	return out
}

// Lookup finds the rule for path. Path may be a registered pattern
// ("/users/edit/:id") or a concrete request path ("/users/edit/42").
func Lookup(path string) (RouteRule, bool) {
	if r, ok := rulesByPath[path]; ok {
		return r, true
	}
	for _, p := range pages {
		if matchPattern(p.rule.Path, path) {
			return p.rule, true
		}
	}
	return RouteRule{}, false
}

func matchPattern(pattern, path string) bool {
	ps := strings.Split(strings.Trim(pattern, "/"), "/")
	xs := strings.Split(strings.Trim(path, "/"), "/")
	if len(ps) != len(xs) {
		return false
	}
	for i := range ps {
		if strings.HasPrefix(ps[i], ":") {
			if xs[i] == "" {
				return false
			}
			continue
		}
		if ps[i] != xs[i] {
			return false
		}
	}
	return true
}
