package server

import (
	"crypto/sha256"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/hkdf"
	"gorm.io/gorm"

	"erp-console/internal/apiclient"
	"erp-console/internal/config"
	"erp-console/internal/database"
	"erp-console/internal/handlers"
	"erp-console/internal/metrics"
	"erp-console/internal/middleware"
	"erp-console/internal/session"
	"erp-console/internal/views"
	"erp-console/web"
)

const sessionCookie = "erp_session"

// Deps are the long-lived collaborators of the router. DB and Metrics are
// optional.
type Deps struct {
	Config  *config.Config
	Log     zerolog.Logger
	API     *apiclient.Client
	DB      *gorm.DB
	Metrics *metrics.Metrics
}

// sessionKeys derives the cookie authentication and encryption keys from the
// configured secret.
func sessionKeys(secret []byte) (auth, enc []byte, err error) {
	r := hkdf.New(sha256.New, secret, nil, []byte("erp-console session cookie"))
	auth = make([]byte, 32)
	enc = make([]byte, 32)
	if _, err := io.ReadFull(r, auth); err != nil {
		return nil, nil, fmt.Errorf("derive session keys: %w", err)
	}
	if _, err := io.ReadFull(r, enc); err != nil {
		return nil, nil, fmt.Errorf("derive session keys: %w", err)
	}
	return auth, enc, nil
}

func sessionStore(cfg *config.Config, db *gorm.DB) (sessions.Store, error) {
	auth, enc, err := sessionKeys(cfg.Session.Secret)
	if err != nil {
		return nil, err
	}

	var store sessions.Store
	if cfg.Session.Store == "postgres" && db != nil {
		store = gormsessions.NewStore(db, true, auth, enc)
	} else {
		store = cookie.NewStore(auth, enc)
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.Session.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Session.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

func templates() (*template.Template, error) {
	return template.New("").Funcs(views.FuncMap()).ParseFS(web.Templates, "templates/*.html")
}

func NewRouter(deps Deps) (*gin.Engine, error) {
	cfg := deps.Config

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Log))
	r.Use(gin.Recovery())
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
	}

	tmpl, err := templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(web.Static, "static")
	if err != nil {
		return nil, err
	}
	r.StaticFS("/static", http.FS(static))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	if deps.Metrics != nil && cfg.HTTP.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	store, err := sessionStore(cfg, deps.DB)
	if err != nil {
		return nil, err
	}

	var auditor database.Auditor = database.NopAuditor{}
	if deps.DB != nil {
		auditor = database.NewAuditRepository(deps.DB, deps.Log)
	}

	var observers []func(session.Snapshot)
	var observeVerdict func(string)
	if deps.Metrics != nil {
		observers = append(observers, deps.Metrics.ObserveSession)
		observeVerdict = deps.Metrics.ObserveVerdict
	}

	h := &handlers.Handler{
		AppName:        cfg.App.Name,
		CookieSecure:   cfg.Session.CookieSecure,
		HidePeerAdmins: cfg.Features.HidePeerAdmins,
		Audit:          auditor,
		Log:            deps.Log,
	}

	app := r.Group("/")
	app.Use(sessions.Sessions(sessionCookie, store))
	app.Use(middleware.InjectSession(middleware.SessionConfig{
		API:       deps.API,
		Log:       deps.Log,
		Observers: observers,
	}))

	app.GET("/", h.IndexPage)
	app.GET("/login", h.ShowLogin)
	app.POST("/login", h.Login)
	app.POST("/logout", h.Logout)
	app.GET("/logout", h.Logout)

	auth := app.Group("/")
	auth.Use(middleware.Guard(observeVerdict))
	registerPages(auth, h)

	r.NoRoute(sessions.Sessions(sessionCookie, store), h.NotFound)

	return r, nil
}

// registerPages wires every guarded route. Each path here has one rule in
// the access table; the guard denies anything that does not.
func registerPages(g *gin.RouterGroup, h *handlers.Handler) {
	g.GET("/dashboard", h.Dashboard)
	g.GET("/preferences", h.ShowPreferences)
	g.POST("/preferences", h.SavePreferences)

	g.GET("/users", h.ListUsers)
	g.GET("/users/add", h.ShowAddUser)
	g.POST("/users/add", h.CreateUser)
	g.GET("/users/edit/:id", h.ShowEditUser)
	g.POST("/users/edit/:id", h.UpdateUser)
	g.POST("/users/:id/toggle-status", h.ToggleUserStatus)
	g.POST("/users/:id/delete", h.DeleteUser)

	g.GET("/team", h.Team)
	g.GET("/employees", h.Employees)

	g.GET("/tasks", h.ListTasks)
	g.POST("/tasks", h.CreateTask)
	g.POST("/tasks/:id/delete", h.DeleteTask)
	g.GET("/my-tasks", h.MyTasks)
	g.POST("/my-tasks/:id/done", h.MarkTaskDone)

	g.GET("/payroll", h.ListPayroll)
	g.POST("/payroll", h.GeneratePayroll)
	g.GET("/payroll/export", h.ExportPayroll)
	g.GET("/salary", h.Salary)
	g.GET("/salary/:id/slip", h.SalarySlip)

	g.GET("/inventory", h.ListInventory)
	g.POST("/inventory", h.AddItem)
	g.POST("/inventory/issue", h.IssueItem)
	g.POST("/inventory/return", h.ReturnItem)
	g.GET("/inventory-logs", h.InventoryLogs)
	g.GET("/assets", h.Assets)

	g.GET("/profile", h.Profile)
}
