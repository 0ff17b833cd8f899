package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"erp-console/internal/apiclient"
	"erp-console/internal/middleware"
	"erp-console/internal/models"
	"erp-console/internal/views"
)

const usersPageSize = 10

func userFilter(c *gin.Context) models.UserFilter {
	page, _ := strconv.Atoi(c.Query("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	if limit < 1 || limit > 100 {
		limit = usersPageSize
	}
	f := models.UserFilter{
		Page:   page,
		Limit:  limit,
		Search: strings.TrimSpace(c.Query("search")),
		Role:   models.ParseRole(c.Query("role")),
		Status: c.Query("status"),
	}
	if f.Status != "true" && f.Status != "false" {
		f.Status = ""
	}
	return f
}

// visibleUsers drops other admins when the console is set to hide them.
func (h *Handler) visibleUsers(users []models.User, viewer string) []models.User {
	if !h.HidePeerAdmins {
		return users
	}
	out := users[:0:0]
	for _, u := range users {
		if u.Role == models.RoleAdmin && u.ID != viewer {
			continue
		}
		out = append(out, u)
	}
	return out
}

func (h *Handler) ListUsers(c *gin.Context) {
	f := userFilter(c)
	data := gin.H{
		"Filter":       f,
		"RoleFilter":   views.RoleFilterOptions(string(f.Role)),
		"StatusFilter": views.StatusFilterOptions(f.Status),
	}

	page, err := middleware.API(c).ListUsers(c.Request.Context(), f)
	if err != nil {
		if sessionLost(c, err) {
			return
		}
		data["LoadError"] = loadFailed(err, "users")
		h.render(c, http.StatusOK, "users.html", data)
		return
	}

	data["Users"] = h.visibleUsers(page.Users, h.actor(c).ID)
	data["Pagination"] = page.Pagination
	h.render(c, http.StatusOK, "users.html", data)
}

var userFields = []string{"name", "email", "password", "role", "salary", "status"}

func userDrawer(viewer models.UserRole, action string, u *models.User) views.Drawer {
	d := views.Drawer{
		ID:          "user-form",
		Title:       "Add User",
		Action:      action,
		SubmitLabel: "Create user",
		BusyLabel:   "Saving...",
		Open:        true,
	}
	role := models.UserRole("")
	active := true
	if u != nil {
		d.Title = "Edit User"
		d.SubmitLabel = "Save changes"
		role = u.Role
		active = u.Status
	}
	sel := views.RoleOptions(viewer, role)
	d.Fields = []views.Field{
		{Name: "name", Label: "Full name", Type: views.FieldText, Required: true, Placeholder: "Jane Doe"},
		{Name: "email", Label: "Email", Type: views.FieldEmail, Required: true, Placeholder: "jane@company.com"},
		{Name: "password", Label: "Password", Type: views.FieldPassword, Required: u == nil},
		{Name: "role", Label: "Role", Type: views.FieldSelect, Required: true, Select: &sel},
		{Name: "salary", Label: "Salary", Type: views.FieldNumber, Step: "0.01", Placeholder: "0.00"},
		{Name: "status", Label: "Active", Type: views.FieldToggle, Toggle: &views.Toggle{Name: "status", On: active}},
	}
	if u != nil {
		d = d.WithValues(map[string]string{
			"name":   u.Name,
			"email":  u.Email,
			"salary": u.Salary.String(),
		})
		d.Fields[2].Placeholder = "Leave blank to keep"
	}
	return d
}

// userInput turns the submitted form into the API payload. Salary is coerced:
// a blank or unparsable number becomes zero.
func userInput(v map[string]string) models.UserInput {
	salary, err := decimal.NewFromString(v["salary"])
	if err != nil {
		salary = decimal.Zero
	}
	active := v["status"] == "on" || v["status"] == "true"
	return models.UserInput{
		Name:     v["name"],
		Email:    v["email"],
		Password: v["password"],
		Role:     models.ParseRole(v["role"]),
		Salary:   salary,
		Status:   &active,
	}
}

func (h *Handler) ShowAddUser(c *gin.Context) {
	h.render(c, http.StatusOK, "user_form.html", gin.H{
		"Drawer": userDrawer(h.actor(c).Role, "/users/add", nil),
	})
}

func (h *Handler) CreateUser(c *gin.Context) {
	d := userDrawer(h.actor(c).Role, "/users/add", nil)
	values := formValues(c, userFields...)
	values["password"] = c.PostForm("password")

	if missing := d.MissingRequired(values); len(missing) > 0 {
		h.render(c, http.StatusBadRequest, "user_form.html", gin.H{"Drawer": d.Failed(requiredMessage(missing), values)})
		return
	}

	u, err := middleware.API(c).CreateUser(c.Request.Context(), userInput(values))
	if err != nil {
		if sessionLost(c, err) {
			return
		}
		h.render(c, http.StatusUnprocessableEntity, "user_form.html", gin.H{
			"Drawer": d.Failed(apiclient.UserMessage(err, "Could not create the user."), values),
		})
		return
	}

	h.audit(c, "user", u.ID, "create", values["email"])
	done(c, "User created.", "/users")
}

func (h *Handler) ShowEditUser(c *gin.Context) {
	id := c.Param("id")
	u, err := middleware.API(c).GetUser(c.Request.Context(), id)
	if err != nil {
		failed(c, err, "Could not load the user.", "/users")
		return
	}
	h.render(c, http.StatusOK, "user_form.html", gin.H{
		"Drawer": userDrawer(h.actor(c).Role, "/users/edit/"+id, &u),
		"User":   u,
	})
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id := c.Param("id")
	values := formValues(c, userFields...)
	values["password"] = c.PostForm("password")
	existing := &models.User{ID: id, Role: models.ParseRole(values["role"])}
	d := userDrawer(h.actor(c).Role, "/users/edit/"+id, existing)

	if missing := d.MissingRequired(values); len(missing) > 0 {
		h.render(c, http.StatusBadRequest, "user_form.html", gin.H{"Drawer": d.Failed(requiredMessage(missing), values)})
		return
	}

	if _, err := middleware.API(c).UpdateUser(c.Request.Context(), id, userInput(values)); err != nil {
		if sessionLost(c, err) {
			return
		}
		h.render(c, http.StatusUnprocessableEntity, "user_form.html", gin.H{
			"Drawer": d.Failed(apiclient.UserMessage(err, "Could not save the user."), values),
		})
		return
	}

	h.audit(c, "user", id, "update", values["email"])
	done(c, "User updated.", "/users")
}

// ToggleUserStatus flips one user's active flag. Script requests get back
// only the status cell of that row; the list is not fetched again.
func (h *Handler) ToggleUserStatus(c *gin.Context) {
	id := c.Param("id")
	u, known, err := middleware.API(c).ToggleUserStatus(c.Request.Context(), id)
	if err != nil {
		if middleware.IsFetch(c) {
			if apiclient.KindOf(err) == apiclient.KindAuth {
				middleware.RedirectToLogin(c)
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"message": apiclient.UserMessage(err, "Could not change the status.")})
			return
		}
		failed(c, err, "Could not change the status.", "/users")
		return
	}

	if !known {
		h.audit(c, "user", id, "toggle_status", "")
		if middleware.IsFetch(c) {
			// the row cannot be redrawn without the new state
			c.Header("X-Redirect", "/users")
			c.Status(http.StatusNoContent)
			return
		}
		done(c, "User status changed.", "/users")
		return
	}

	state := "deactivated"
	if u.Status {
		state = "activated"
	}
	h.audit(c, "user", id, "toggle_status", state)

	if middleware.IsFetch(c) {
		h.fragment(c, "user_status.html", gin.H{"User": u})
		return
	}
	done(c, "User "+state+".", "/users")
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	if id == h.actor(c).ID {
		middleware.AddFlash(c, middleware.FlashError, "You cannot delete your own account.")
		c.Redirect(http.StatusSeeOther, "/users")
		return
	}
	if err := middleware.API(c).DeleteUser(c.Request.Context(), id); err != nil {
		failed(c, err, "Could not delete the user.", "/users")
		return
	}
	h.audit(c, "user", id, "delete", "")
	done(c, "User deleted.", "/users")
}

// directoryLimit caps the user lists behind assignee and recipient pickers.
const directoryLimit = 100

// Team is the manager's read-only view of employees.
func (h *Handler) Team(c *gin.Context) {
	f := userFilter(c)
	f.Role = models.RoleEmployee
	h.directory(c, "team.html", f)
}

// Employees is HR's read-only directory.
func (h *Handler) Employees(c *gin.Context) {
	f := userFilter(c)
	f.Role = models.ParseRole(c.Query("role"))
	h.directory(c, "employees.html", f)
}

func (h *Handler) directory(c *gin.Context, tmpl string, f models.UserFilter) {
	data := gin.H{"Filter": f, "RoleFilter": views.RoleFilterOptions(string(f.Role))}
	page, err := middleware.API(c).ListUsers(c.Request.Context(), f)
	if err != nil {
		if sessionLost(c, err) {
			return
		}
		data["LoadError"] = loadFailed(err, "people")
	} else {
		data["Users"] = page.Users
		data["Pagination"] = page.Pagination
	}
	h.render(c, http.StatusOK, tmpl, data)
}
