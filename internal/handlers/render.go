package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"erp-console/internal/access"
	"erp-console/internal/apiclient"
	"erp-console/internal/database"
	"erp-console/internal/middleware"
	"erp-console/internal/models"
	"erp-console/internal/prefs"
	"erp-console/internal/session"
)

// Handler carries what the page handlers share.
type Handler struct {
	AppName        string
	CookieSecure   bool
	HidePeerAdmins bool
	Audit          database.Auditor
	Log            zerolog.Logger
	Now            func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// render wraps c.HTML and adds what every page layout needs: the session,
// the sidebar menu, preferences and pending notifications.
func (h *Handler) render(c *gin.Context, status int, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	data["AppName"] = h.AppName
	data["Path"] = c.Request.URL.Path
	data["Prefs"] = prefs.FromRequest(c)
	data["Flashes"] = middleware.Flashes(c)

	if sess, ok := middleware.CurrentSession(c); ok {
		data["Session"] = sess
		data["Role"] = sess.Role
		data["Menu"] = access.Menu(sess.Role, c.Request.URL.Path)
	}

	c.HTML(status, tmpl, data)
}

// fragment renders a partial for script requests, without the layout data.
func (h *Handler) fragment(c *gin.Context, tmpl string, data gin.H) {
	c.HTML(http.StatusOK, tmpl, data)
}

func (h *Handler) actor(c *gin.Context) session.Session {
	sess, _ := middleware.CurrentSession(c)
	return sess
}

// audit records a console action by the current actor.
func (h *Handler) audit(c *gin.Context, entity, entityID, action, details string) {
	if h.Audit == nil {
		return
	}
	sess := h.actor(c)
	h.Audit.Record(c.Request.Context(), models.AuditLog{
		ActorID:    sess.ID,
		ActorEmail: sess.Email,
		ActorRole:  string(sess.Role),
		Entity:     entity,
		EntityID:   entityID,
		Action:     action,
		Details:    details,
	})
}

// sessionLost finishes the request when the API rejected the token. The
// store has already dropped the session by then.
func sessionLost(c *gin.Context, err error) bool {
	if apiclient.KindOf(err) != apiclient.KindAuth {
		return false
	}
	middleware.RedirectToLogin(c)
	return true
}

// loadFailed is the banner shown when a page could not fetch its data.
func loadFailed(err error, what string) string {
	return apiclient.UserMessage(err, "Could not load "+what+". Try again later.")
}

// done finishes a successful mutation: a flash and a redirect back.
func done(c *gin.Context, msg, target string) {
	middleware.AddFlash(c, middleware.FlashSuccess, msg)
	c.Redirect(http.StatusSeeOther, target)
}

// failed finishes a mutation the API refused.
func failed(c *gin.Context, err error, fallback, target string) {
	if sessionLost(c, err) {
		return
	}
	middleware.AddFlash(c, middleware.FlashError, apiclient.UserMessage(err, fallback))
	c.Redirect(http.StatusSeeOther, target)
}

// formValues collects the trimmed form fields named in keys.
func formValues(c *gin.Context, keys ...string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		out[k] = strings.TrimSpace(c.PostForm(k))
	}
	return out
}

func requiredMessage(missing []string) string {
	return strings.Join(missing, ", ") + " required."
}
