package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"erp-console/internal/apiclient"
	"erp-console/internal/export"
	"erp-console/internal/middleware"
	"erp-console/internal/models"
	"erp-console/internal/views"
)

var payrollFields = []string{"userId", "month", "bonus"}

func payrollDrawer(people []models.User) views.Drawer {
	who := views.UserOptions("userId", "Select employee", people, "")
	return views.Drawer{
		ID:          "payroll-form",
		Title:       "Generate Payroll",
		Action:      "/payroll",
		SubmitLabel: "Generate",
		BusyLabel:   "Generating...",
		Fields: []views.Field{
			{Name: "userId", Label: "Employee", Type: views.FieldSelect, Required: true, Select: &who},
			{Name: "month", Label: "Month", Type: views.FieldMonth, Required: true},
			{Name: "bonus", Label: "Bonus", Type: views.FieldNumber, Step: "0.01", Placeholder: "0.00"},
		},
	}
}

func (h *Handler) payrollPage(c *gin.Context, status int, drawer func(views.Drawer) views.Drawer) {
	api := middleware.API(c)
	var (
		payroll    []models.Payroll
		people     []models.User
		payrollErr error
		peopleErr  error
	)

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		payroll, payrollErr = api.ListPayroll(ctx)
		return nil
	})
	g.Go(func() error {
		page, err := api.ListUsers(ctx, models.UserFilter{Page: 1, Limit: directoryLimit})
		people, peopleErr = page.Users, err
		return nil
	})
	_ = g.Wait()

	if sessionLost(c, payrollErr) || sessionLost(c, peopleErr) {
		return
	}

	d := payrollDrawer(people)
	if drawer != nil {
		d = drawer(d)
	} else {
		d.Open = c.Query("new") == "1"
	}

	data := gin.H{"Payroll": payroll, "Drawer": d}
	if payrollErr != nil {
		data["LoadError"] = loadFailed(payrollErr, "payroll")
	} else if peopleErr != nil {
		data["LoadError"] = loadFailed(peopleErr, "employees")
	}
	h.render(c, status, "payroll.html", data)
}

func (h *Handler) ListPayroll(c *gin.Context) {
	h.payrollPage(c, http.StatusOK, nil)
}

func (h *Handler) GeneratePayroll(c *gin.Context) {
	values := formValues(c, payrollFields...)

	if missing := payrollDrawer(nil).MissingRequired(values); len(missing) > 0 {
		h.payrollPage(c, http.StatusBadRequest, func(d views.Drawer) views.Drawer {
			return d.Failed(requiredMessage(missing), values)
		})
		return
	}

	bonus, err := decimal.NewFromString(values["bonus"])
	if err != nil {
		bonus = decimal.Zero
	}

	p, err := middleware.API(c).GeneratePayroll(c.Request.Context(), models.PayrollInput{
		UserID: values["userId"],
		Month:  values["month"],
		Bonus:  bonus,
	})
	if err != nil {
		if sessionLost(c, err) {
			return
		}
		h.payrollPage(c, http.StatusUnprocessableEntity, func(d views.Drawer) views.Drawer {
			return d.Failed(apiclient.UserMessage(err, "Could not generate the payroll."), values)
		})
		return
	}

	h.audit(c, "payroll", p.ID, "generate", values["month"])
	done(c, "Payroll generated.", "/payroll")
}

// ExportPayroll downloads the payroll list as a spreadsheet.
func (h *Handler) ExportPayroll(c *gin.Context) {
	payroll, err := middleware.API(c).ListPayroll(c.Request.Context())
	if err != nil {
		failed(c, err, "Could not load payroll for export.", "/payroll")
		return
	}

	name := fmt.Sprintf("payroll-%s.xlsx", h.now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	if err := export.PayrollWorkbook(c.Writer, payroll); err != nil {
		h.Log.Error().Err(err).Msg("payroll export failed")
		_ = c.Error(err)
		return
	}
	h.audit(c, "payroll", "", "export", fmt.Sprintf("%d rows", len(payroll)))
}

func (h *Handler) Salary(c *gin.Context) {
	slips, err := middleware.API(c).MyPayroll(c.Request.Context())
	data := gin.H{"Slips": slips}
	if err != nil {
		if sessionLost(c, err) {
			return
		}
		data["LoadError"] = loadFailed(err, "your salary slips")
	}
	h.render(c, http.StatusOK, "salary.html", data)
}

// SalarySlip renders one of the actor's own payroll entries as a PDF. The id
// is looked up in the actor's own list so nobody can fetch another slip.
func (h *Handler) SalarySlip(c *gin.Context) {
	id := c.Param("id")
	slips, err := middleware.API(c).MyPayroll(c.Request.Context())
	if err != nil {
		failed(c, err, "Could not load your salary slips.", "/salary")
		return
	}

	var slip *models.Payroll
	for i := range slips {
		if slips[i].ID == id {
			slip = &slips[i]
			break
		}
	}
	if slip == nil {
		middleware.AddFlash(c, middleware.FlashError, "Salary slip not found.")
		c.Redirect(http.StatusSeeOther, "/salary")
		return
	}

	sess := h.actor(c)
	pdf, err := export.SalarySlip(h.AppName, export.SlipEmployee{
		Name:  sess.Name,
		Email: sess.Email,
		Role:  sess.Role,
	}, *slip, h.now())
	if err != nil {
		h.Log.Error().Err(err).Str("payroll_id", id).Msg("salary slip failed")
		middleware.AddFlash(c, middleware.FlashError, "Could not build the salary slip.")
		c.Redirect(http.StatusSeeOther, "/salary")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="salary-%s.pdf"`, slip.Month))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

