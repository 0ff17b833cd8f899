package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"erp-console/internal/apiclient"
	"erp-console/internal/middleware"
	"erp-console/internal/models"
	"erp-console/internal/views"
)

var taskFields = []string{"title", "description", "assignedTo", "deadline"}

func taskDrawer(employees []models.User) views.Drawer {
	assignee := views.UserOptions("assignedTo", "Select employee", employees, "")
	return views.Drawer{
		ID:          "task-form",
		Title:       "Assign Task",
		Action:      "/tasks",
		SubmitLabel: "Assign task",
		BusyLabel:   "Assigning...",
		Fields: []views.Field{
			{Name: "title", Label: "Title", Type: views.FieldText, Required: true},
			{Name: "description", Label: "Description", Type: views.FieldTextarea},
			{Name: "assignedTo", Label: "Assign to", Type: views.FieldSelect, Required: true, Select: &assignee},
			{Name: "deadline", Label: "Deadline", Type: views.FieldDate, Required: true},
		},
	}
}

// tasksPage loads the task list and the assignable employees together.
func (h *Handler) tasksPage(c *gin.Context, status int, drawer func(views.Drawer) views.Drawer) {
	api := middleware.API(c)
	var (
		tasks     []models.Task
		employees []models.User
		tasksErr  error
		peopleErr error
	)

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		tasks, tasksErr = api.ListTasks(ctx)
		return nil
	})
	g.Go(func() error {
		page, err := api.ListUsers(ctx, models.UserFilter{Page: 1, Limit: directoryLimit, Role: models.RoleEmployee})
		employees, peopleErr = page.Users, err
		return nil
	})
	_ = g.Wait()

	if sessionLost(c, tasksErr) || sessionLost(c, peopleErr) {
		return
	}

	d := taskDrawer(employees)
	if drawer != nil {
		d = drawer(d)
	} else {
		d.Open = c.Query("new") == "1"
	}

	data := gin.H{"Tasks": tasks, "Drawer": d}
	if tasksErr != nil {
		data["LoadError"] = loadFailed(tasksErr, "tasks")
	} else if peopleErr != nil {
		data["LoadError"] = loadFailed(peopleErr, "employees")
	}
	h.render(c, status, "tasks.html", data)
}

func (h *Handler) ListTasks(c *gin.Context) {
	h.tasksPage(c, http.StatusOK, nil)
}

func (h *Handler) CreateTask(c *gin.Context) {
	values := formValues(c, taskFields...)

	if missing := taskDrawer(nil).MissingRequired(values); len(missing) > 0 {
		h.tasksPage(c, http.StatusBadRequest, func(d views.Drawer) views.Drawer {
			return d.Failed(requiredMessage(missing), values)
		})
		return
	}

	t, err := middleware.API(c).CreateTask(c.Request.Context(), models.TaskInput{
		Title:       values["title"],
		Description: values["description"],
		AssignedTo:  values["assignedTo"],
		Deadline:    values["deadline"],
	})
	if err != nil {
		if sessionLost(c, err) {
			return
		}
		h.tasksPage(c, http.StatusUnprocessableEntity, func(d views.Drawer) views.Drawer {
			return d.Failed(apiclient.UserMessage(err, "Could not assign the task."), values)
		})
		return
	}

	h.audit(c, "task", t.ID, "create", values["title"])
	done(c, "Task assigned.", "/tasks")
}

func (h *Handler) DeleteTask(c *gin.Context) {
	id := c.Param("id")
	if err := middleware.API(c).DeleteTask(c.Request.Context(), id); err != nil {
		failed(c, err, "Could not delete the task.", "/tasks")
		return
	}
	h.audit(c, "task", id, "delete", "")
	done(c, "Task deleted.", "/tasks")
}

func (h *Handler) MyTasks(c *gin.Context) {
	tasks, err := middleware.API(c).MyTasks(c.Request.Context())
	data := gin.H{"Tasks": tasks}
	if err != nil {
		if sessionLost(c, err) {
			return
		}
		data["LoadError"] = loadFailed(err, "your tasks")
	}
	h.render(c, http.StatusOK, "my_tasks.html", data)
}

func (h *Handler) MarkTaskDone(c *gin.Context) {
	id := c.Param("id")
	if _, err := middleware.API(c).UpdateTaskStatus(c.Request.Context(), id, models.TaskDone); err != nil {
		failed(c, err, "Could not update the task.", "/my-tasks")
		return
	}
	h.audit(c, "task", id, "done", "")
	done(c, "Task marked as done.", "/my-tasks")
}
