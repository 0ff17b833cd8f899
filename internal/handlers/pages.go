package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"erp-console/internal/access"
	"erp-console/internal/middleware"
	"erp-console/internal/prefs"
)

// IndexPage sends the visitor to the dashboard or the sign-in page.
func (h *Handler) IndexPage(c *gin.Context) {
	if _, ok := middleware.CurrentSession(c); ok {
		c.Redirect(http.StatusFound, access.LandingPath)
		return
	}
	c.Redirect(http.StatusFound, access.LoginPath)
}

func (h *Handler) Profile(c *gin.Context) {
	h.render(c, http.StatusOK, "profile.html", nil)
}

func (h *Handler) ShowPreferences(c *gin.Context) {
	h.render(c, http.StatusOK, "preferences.html", gin.H{
		"Fonts":   prefs.Fonts,
		"Accents": prefs.Accents,
	})
}

func (h *Handler) SavePreferences(c *gin.Context) {
	p := prefs.Save(c, c.PostForm("font"), c.PostForm("accent"), h.CookieSecure)
	h.Log.Debug().Str("font", p.Font.ID).Str("accent", p.Accent.ID).Msg("preferences saved")
	done(c, "Preferences saved.", "/preferences")
}

func (h *Handler) NotFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "error.html", gin.H{
		"Title":   "Page not found",
		"Message": "The page you asked for does not exist.",
	})
}
